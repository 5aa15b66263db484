package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrAccessDenied      = errors.New("access denied")
)

// ListingStore is read-only: listings are loaded once and never change.
type ListingStore interface {
	GetAll(ctx context.Context) ([]Listing, error)
	GetByID(ctx context.Context, id string) (Listing, error)
}

// ReviewStore is append-only. ListByListing returns most-recent-first.
type ReviewStore interface {
	ListByListing(ctx context.Context, listingID string) ([]Review, error)
	Append(ctx context.Context, r Review) (Review, error)
}

// ListingWriter is used by the ingestor only; the API never writes listings.
type ListingWriter interface {
	UpsertListing(ctx context.Context, l Listing) error
	UpsertReviews(ctx context.Context, rs []Review) error
	LogMiss(ctx context.Context, id string, status int, reason string) error
}

type FeedClient interface {
	GetListings(ctx context.Context) ([]map[string]any, error)
	GetReviews(ctx context.Context, listingID string) ([]map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models

type ListingDetail struct {
	Listing    Listing       `json:"listing"`
	Images     []string      `json:"images"`
	Categories []Category    `json:"categories"`
	Summary    RatingSummary `json:"summary"`
	Similar    []Listing     `json:"similar"`
}

type ExplorePage struct {
	Items         []Listing     `json:"items"`
	Total         int           `json:"total"`
	ActiveFilters int           `json:"activeFilters"`
	Bounds        PriceBounds   `json:"priceBounds"`
	Filter        FilterOptions `json:"filter"`
	Query         string        `json:"query"`
}

type HomePage struct {
	Featured []Listing `json:"featured"`
	Latest   []Listing `json:"latest"`
}
