package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "house_explorer/internal/adapters/http_server"
	"house_explorer/internal/adapters/observability"
	redisad "house_explorer/internal/adapters/redis"
	"house_explorer/internal/app"
	"house_explorer/internal/domain"
	"house_explorer/internal/shared"
	"house_explorer/internal/storage/memory"
	mysqlrepo "house_explorer/internal/storage/mysql"
	"house_explorer/internal/storage/seed"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	listings, reviews := stores(cfg)

	// a nil interface, never a typed nil, when caching is off
	var cache domain.Cache
	if cfg.CacheEnabled {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(context.Background()); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, serving without cache")
		} else {
			cache = rc
			defer rc.Close()
		}
	}

	h := &server.Handlers{
		Catalog: app.NewCatalog(listings, reviews, cache, cfg.CacheTTL),
		Reviews: app.NewReviewService(listings, reviews, cache, cfg.CacheTTL),
	}

	// http
	srv := server.New(cfg.RequestTimeout, cfg.TrustProxy)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h, server.NewRateLimiter(cfg.ReviewRPS, cfg.ReviewBurst))

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("backend", cfg.StoreBackend).
		Bool("cache", cache != nil).
		Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

func stores(cfg shared.Config) (domain.ListingStore, domain.ReviewStore) {
	if cfg.StoreBackend == shared.BackendMySQL {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		repo := mysqlrepo.New(db)
		return repo, repo
	}

	ls, err := seed.Listings()
	if err != nil {
		log.Fatal().Err(err).Msg("load seed listings")
	}
	rs, err := seed.Reviews()
	if err != nil {
		log.Fatal().Err(err).Msg("load seed reviews")
	}
	listings := memory.NewListings(ls)
	log.Info().Int("listings", len(ls)).Int("reviews", len(rs)).Msg("serving seed data from memory")
	return listings, memory.NewReviews(rs, listings.Has)
}
