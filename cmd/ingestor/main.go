package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"house_explorer/internal/adapters/feed"
	"house_explorer/internal/adapters/observability"
	redisad "house_explorer/internal/adapters/redis"
	"house_explorer/internal/app"
	"house_explorer/internal/domain"
	"house_explorer/internal/shared"
	mysqlrepo "house_explorer/internal/storage/mysql"
	"house_explorer/internal/storage/seed"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("feed", cfg.FeedBase).
		Int("workers", cfg.Workers).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")
	repo := mysqlrepo.New(db)

	var cache domain.Cache
	if cfg.CacheEnabled {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}

	// without a feed the ingestor loads the bundled seed
	var feedClient domain.FeedClient
	if cfg.FeedBase != "" {
		c, err := feed.New(cfg.FeedBase, cfg.FeedKey, cfg.FeedRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize feed client")
		}
		feedClient = c
	}
	ing := app.NewIngestionService(feedClient, repo, cache)

	// listings go in sequentially so store order matches feed/seed order;
	// only the per-listing review work is fanned out
	var (
		listings []domain.Listing
		jobs     []func(context.Context) error
	)
	if feedClient != nil {
		listings, err = ing.FetchListings(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("listing feed failed")
		}
		for _, l := range listings {
			id := l.ID
			jobs = append(jobs, func(ctx context.Context) error { return ing.IngestReviews(ctx, id) })
		}
	} else {
		listings, jobs = seedJobs(ing)
	}

	if err := ing.StoreListings(ctx, listings); err != nil {
		log.Fatal().Err(err).Msg("storing listings failed")
	}
	log.Info().Int("listings", len(listings)).Msg("listings stored")

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	for i, job := range jobs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(n int, job func(context.Context) error) {
			defer wg.Done()
			defer sem.Release(1)

			if err := job(ctx); err != nil {
				log.Warn().Int("job", n).Err(err).Msg("ingest failed")
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			log.Debug().Int("job", n).Msg("ingest ok")
		}(i, job)
	}

	wg.Wait()
	log.Info().Int("listings", len(listings)).Int("failed", failed).Msg("ingestion completed")
}

func seedJobs(ing *app.IngestionService) ([]domain.Listing, []func(context.Context) error) {
	ls, err := seed.Listings()
	if err != nil {
		log.Fatal().Err(err).Msg("load seed listings")
	}
	rs, err := seed.Reviews()
	if err != nil {
		log.Fatal().Err(err).Msg("load seed reviews")
	}
	byListing := map[string][]domain.Review{}
	for _, r := range rs {
		byListing[r.ListingID] = append(byListing[r.ListingID], r)
	}

	jobs := make([]func(context.Context) error, 0, len(ls))
	for _, l := range ls {
		id := l.ID
		jobs = append(jobs, func(ctx context.Context) error { return ing.LoadSeedReviews(ctx, id, byListing[id]) })
	}
	return ls, jobs
}
