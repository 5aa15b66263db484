package app_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"house_explorer/internal/domain"
	"house_explorer/internal/storage/memory"
	"house_explorer/internal/storage/seed"
)

// ---- fakes ----

// fakeCache stores JSON so reads decode into any destination type, as the
// redis adapter does.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	gets  map[string]int
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gets == nil {
		c.gets = map[string]int{}
	}
	c.gets[key]++
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok
}

// countingReviews records how often the backing store is read.
type countingReviews struct {
	domain.ReviewStore
	lists int
}

func (c *countingReviews) ListByListing(ctx context.Context, id string) ([]domain.Review, error) {
	c.lists++
	return c.ReviewStore.ListByListing(ctx, id)
}

type fakeFeed struct {
	listings   []map[string]any
	listErr    error
	reviews    map[string][]map[string]any
	reviewErrs map[string]error
}

func (f *fakeFeed) GetListings(ctx context.Context) ([]map[string]any, error) {
	return f.listings, f.listErr
}

func (f *fakeFeed) GetReviews(ctx context.Context, id string) ([]map[string]any, error) {
	if err := f.reviewErrs[id]; err != nil {
		return nil, err
	}
	return f.reviews[id], nil
}

type miss struct {
	id     string
	status int
	reason string
}

type fakeWriter struct {
	listings []domain.Listing
	reviews  []domain.Review
	misses   []miss
	err      error
}

func (w *fakeWriter) UpsertListing(ctx context.Context, l domain.Listing) error {
	if w.err != nil {
		return w.err
	}
	w.listings = append(w.listings, l)
	return nil
}

func (w *fakeWriter) UpsertReviews(ctx context.Context, rs []domain.Review) error {
	w.reviews = append(w.reviews, rs...)
	return nil
}

func (w *fakeWriter) LogMiss(ctx context.Context, id string, status int, reason string) error {
	w.misses = append(w.misses, miss{id, status, reason})
	return nil
}

// ---- helpers ----

func seedListings(t *testing.T) []domain.Listing {
	t.Helper()
	ls, err := seed.Listings()
	require.NoError(t, err)
	return ls
}

func seedStores(t *testing.T) (*memory.Listings, *memory.Reviews) {
	t.Helper()
	rs, err := seed.Reviews()
	require.NoError(t, err)
	listings := memory.NewListings(seedListings(t))
	return listings, memory.NewReviews(rs, listings.Has)
}

func ids(ls []domain.Listing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}

func ptr[T any](v T) *T { return &v }
