package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"house_explorer/internal/domain"
)

type IngestionService struct {
	feed  domain.FeedClient
	repo  domain.ListingWriter
	cache domain.Cache
}

func NewIngestionService(f domain.FeedClient, r domain.ListingWriter, cache domain.Cache) *IngestionService {
	return &IngestionService{feed: f, repo: r, cache: cache}
}

// FetchListings pulls the listing feed and maps it. Records that fail
// mapping are logged as misses and left out.
func (s *IngestionService) FetchListings(ctx context.Context) ([]domain.Listing, error) {
	raw, err := s.feed.GetListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch listing feed: %w", err)
	}
	out := make([]domain.Listing, 0, len(raw))
	for i, p := range raw {
		l, err := mapListing(p)
		if err != nil {
			id := lookupStr(p, "id")
			if id == "" {
				id = fmt.Sprintf("#%d", i)
			}
			_ = s.repo.LogMiss(ctx, id, 422, err.Error())
			log.Warn().Err(err).Str("id", id).Msg("feed listing rejected")
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// StoreListings upserts listings one at a time in slice order. Store order
// is the catalog's input order, so this must not run concurrently.
func (s *IngestionService) StoreListings(ctx context.Context, ls []domain.Listing) error {
	for _, l := range ls {
		if err := s.repo.UpsertListing(ctx, l); err != nil {
			return fmt.Errorf("upsert listing %s: %w", l.ID, err)
		}
	}
	return nil
}

// IngestListing upserts one listing and, best effort, its feed reviews.
func (s *IngestionService) IngestListing(ctx context.Context, l domain.Listing) error {
	if err := s.repo.UpsertListing(ctx, l); err != nil {
		return fmt.Errorf("upsert listing %s: %w", l.ID, err)
	}
	return s.IngestReviews(ctx, l.ID)
}

// IngestReviews fetches and stores the feed reviews of an already stored
// listing. A 404/401/403 on the reviews endpoint is recorded as a miss, not
// an error. Safe to run concurrently across listings.
func (s *IngestionService) IngestReviews(ctx context.Context, listingID string) error {
	revs, err := s.feed.GetReviews(ctx, listingID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		_ = s.repo.LogMiss(ctx, listingID, 404, "reviews")
	case errors.Is(err, domain.ErrAccessDenied):
		_ = s.repo.LogMiss(ctx, listingID, 403, "reviews")
	case err != nil:
		return fmt.Errorf("fetch reviews for %s: %w", listingID, err)
	default:
		if mapped := mapReviews(listingID, revs); len(mapped) > 0 {
			if err := s.repo.UpsertReviews(ctx, mapped); err != nil {
				return fmt.Errorf("upsert reviews for %s: %w", listingID, err)
			}
		}
	}

	s.invalidate(ctx, listingID)
	return nil
}

// LoadSeed writes a listing and its already-typed reviews without going
// through the feed.
func (s *IngestionService) LoadSeed(ctx context.Context, l domain.Listing, rs []domain.Review) error {
	if err := s.repo.UpsertListing(ctx, l); err != nil {
		return fmt.Errorf("upsert listing %s: %w", l.ID, err)
	}
	return s.LoadSeedReviews(ctx, l.ID, rs)
}

// LoadSeedReviews writes typed reviews for an already stored listing.
func (s *IngestionService) LoadSeedReviews(ctx context.Context, listingID string, rs []domain.Review) error {
	if len(rs) > 0 {
		if err := s.repo.UpsertReviews(ctx, rs); err != nil {
			return fmt.Errorf("upsert reviews for %s: %w", listingID, err)
		}
	}
	s.invalidate(ctx, listingID)
	return nil
}

func (s *IngestionService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, listingKey(id))
	_ = s.cache.Del(ctx, reviewsKey(id))
}
