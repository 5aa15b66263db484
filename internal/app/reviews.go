package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"house_explorer/internal/adapters/observability"
	"house_explorer/internal/domain"
)

// reviewReader is the cached read path shared by the catalog and review services.
type reviewReader struct {
	store    domain.ReviewStore
	cache    domain.Cache
	cacheTTL time.Duration
}

func reviewsKey(listingID string) string { return "reviews:" + listingID }
func listingKey(listingID string) string { return "listing:" + listingID }

func (r reviewReader) list(ctx context.Context, listingID string) ([]domain.Review, error) {
	key := reviewsKey(listingID)
	var out []domain.Review
	if r.cache != nil {
		if ok, _ := r.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}
	out, err := r.store.ListByListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if r.cache != nil {
		_ = r.cache.Set(ctx, key, out, int(r.cacheTTL.Seconds()))
	}
	return out, nil
}

type ReviewService struct {
	listings domain.ListingStore
	reader   reviewReader
	now      func() time.Time
	newID    func() string
}

func NewReviewService(l domain.ListingStore, r domain.ReviewStore, c domain.Cache, ttl time.Duration) *ReviewService {
	return &ReviewService{
		listings: l,
		reader:   reviewReader{store: r, cache: c, cacheTTL: ttl},
		now:      time.Now,
		newID:    func() string { return "review-" + uuid.NewString() },
	}
}

// WithClock replaces the submission clock; used by tests.
func (s *ReviewService) WithClock(now func() time.Time) *ReviewService {
	s.now = now
	return s
}

// ValidateDraft rejects a rating outside (0,5] or a blank comment.
func ValidateDraft(d domain.ReviewDraft) error {
	if !validRating(d.Rating) {
		return fmt.Errorf("%w: rating must be greater than 0 and at most %d", domain.ErrValidation, maxStars)
	}
	if strings.TrimSpace(d.Comment) == "" {
		return fmt.Errorf("%w: comment must not be empty", domain.ErrValidation)
	}
	return nil
}

// Submit validates the draft, assigns an id and timestamp, and prepends the
// review to the listing's collection. Nothing is written on failure.
func (s *ReviewService) Submit(ctx context.Context, listingID string, d domain.ReviewDraft) (domain.Review, error) {
	if err := ValidateDraft(d); err != nil {
		observability.ObserveReview("invalid")
		return domain.Review{}, err
	}
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			observability.ObserveReview("not_found")
			return domain.Review{}, fmt.Errorf("listing %q: %w", listingID, domain.ErrNotFound)
		}
		observability.ObserveReview("error")
		return domain.Review{}, err
	}

	rv := domain.Review{
		ID:        s.newID(),
		ListingID: listingID,
		UserID:    d.UserID,
		Username:  d.Username,
		Avatar:    d.Avatar,
		Rating:    d.Rating,
		Comment:   d.Comment,
		CreatedAt: s.now().UTC(),
	}
	stored, err := s.reader.store.Append(ctx, rv)
	if err != nil {
		observability.ObserveReview("error")
		return domain.Review{}, fmt.Errorf("append review for %s: %w", listingID, err)
	}

	if c := s.reader.cache; c != nil {
		_ = c.Del(ctx, reviewsKey(listingID))
		_ = c.Del(ctx, listingKey(listingID))
	}
	observability.ObserveReview("ok")
	log.Info().
		Str("listing_id", listingID).
		Str("review_id", stored.ID).
		Float64("rating", stored.Rating).
		Msg("review_submitted")
	return stored, nil
}

// List returns the listing's reviews in the requested order.
func (s *ReviewService) List(ctx context.Context, listingID string, by domain.ReviewSort) ([]domain.Review, error) {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return nil, err
	}
	rs, err := s.reader.list(ctx, listingID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Review, len(rs))
	copy(out, rs)
	SortReviews(out, by)
	return out, nil
}

func (s *ReviewService) Summary(ctx context.Context, listingID string) (domain.RatingSummary, error) {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return domain.RatingSummary{}, err
	}
	rs, err := s.reader.list(ctx, listingID)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	return Aggregate(rs), nil
}

// SortReviews orders in place; all orders are stable.
func SortReviews(rs []domain.Review, by domain.ReviewSort) {
	switch by {
	case domain.ReviewSortHighest:
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Rating > rs[j].Rating })
	case domain.ReviewSortLowest:
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Rating < rs[j].Rating })
	default:
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].CreatedAt.After(rs[j].CreatedAt) })
	}
}
