package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"house_explorer/internal/domain"
)

// Listings is a fixed, read-only collection; safe to share without locking.
type Listings struct {
	items []domain.Listing
	byID  map[string]int
}

func NewListings(items []domain.Listing) *Listings {
	l := &Listings{
		items: make([]domain.Listing, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	copy(l.items, items)
	for i, it := range l.items {
		l.byID[it.ID] = i
	}
	return l
}

func (l *Listings) GetAll(ctx context.Context) ([]domain.Listing, error) {
	out := make([]domain.Listing, len(l.items))
	copy(out, l.items)
	return out, nil
}

func (l *Listings) GetByID(ctx context.Context, id string) (domain.Listing, error) {
	i, ok := l.byID[id]
	if !ok {
		return domain.Listing{}, domain.ErrNotFound
	}
	return l.items[i], nil
}

// Has reports whether the listing exists; it plugs into NewReviews.
func (l *Listings) Has(id string) bool {
	_, ok := l.byID[id]
	return ok
}

// Reviews is append-only. Each listing's reviews are kept most-recent-first.
type Reviews struct {
	mu     sync.RWMutex
	byList map[string][]domain.Review
	known  func(id string) bool
}

// NewReviews seeds the store, ordering each listing's reviews newest first
// (ties keep seed order). known, when non-nil, rejects appends for listings
// it does not recognise.
func NewReviews(seed []domain.Review, known func(id string) bool) *Reviews {
	r := &Reviews{byList: map[string][]domain.Review{}, known: known}
	for _, rv := range seed {
		r.byList[rv.ListingID] = append(r.byList[rv.ListingID], rv)
	}
	for _, rs := range r.byList {
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].CreatedAt.After(rs[j].CreatedAt) })
	}
	return r
}

func (r *Reviews) ListByListing(ctx context.Context, listingID string) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src := r.byList[listingID]
	out := make([]domain.Review, len(src))
	copy(out, src)
	return out, nil
}

func (r *Reviews) Append(ctx context.Context, rv domain.Review) (domain.Review, error) {
	if r.known != nil && !r.known(rv.ListingID) {
		return domain.Review{}, fmt.Errorf("listing %q: %w", rv.ListingID, domain.ErrNotFound)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur := r.byList[rv.ListingID]
	next := make([]domain.Review, 0, len(cur)+1)
	next = append(next, rv)
	r.byList[rv.ListingID] = append(next, cur...)
	return rv, nil
}
