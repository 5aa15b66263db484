package app

import (
	"context"
	"sort"
	"strings"
	"time"

	"house_explorer/internal/adapters/observability"
	"house_explorer/internal/domain"
)

const (
	latestCount     = 3
	similarCount    = 3
	suggestionLimit = 5
)

// Catalog serves the read side of the site: home, explore and detail views.
// Listing ratings are derived from the review store whenever a listing has
// stored reviews; the seeded values stand in until then.
type Catalog struct {
	listings domain.ListingStore
	reader   reviewReader
}

func NewCatalog(l domain.ListingStore, r domain.ReviewStore, c domain.Cache, ttl time.Duration) *Catalog {
	return &Catalog{listings: l, reader: reviewReader{store: r, cache: c, cacheTTL: ttl}}
}

func (c *Catalog) withLiveRating(ctx context.Context, l domain.Listing) (domain.Listing, error) {
	rs, err := c.reader.list(ctx, l.ID)
	if err != nil {
		return domain.Listing{}, err
	}
	if len(rs) > 0 {
		s := Aggregate(rs)
		l.AverageRating = s.Average
		l.ReviewCount = s.Count
	}
	return l, nil
}

func (c *Catalog) all(ctx context.Context) ([]domain.Listing, error) {
	ls, err := c.listings.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range ls {
		if ls[i], err = c.withLiveRating(ctx, ls[i]); err != nil {
			return nil, err
		}
	}
	return ls, nil
}

func (c *Catalog) Get(ctx context.Context, id string) (domain.Listing, error) {
	l, err := c.listings.GetByID(ctx, id)
	if err != nil {
		return domain.Listing{}, err
	}
	return c.withLiveRating(ctx, l)
}

func (c *Catalog) Detail(ctx context.Context, id string) (domain.ListingDetail, error) {
	key := listingKey(id)
	var out domain.ListingDetail
	if c.reader.cache != nil {
		if ok, _ := c.reader.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}

	l, err := c.Get(ctx, id)
	if err != nil {
		return domain.ListingDetail{}, err
	}
	rs, err := c.reader.list(ctx, id)
	if err != nil {
		return domain.ListingDetail{}, err
	}
	similar, err := c.Similar(ctx, id, similarCount)
	if err != nil {
		return domain.ListingDetail{}, err
	}

	out = domain.ListingDetail{
		Listing:    l,
		Images:     append([]string{l.ImageURL}, l.GalleryImages...),
		Categories: l.Ratings.Categories(),
		Summary:    Aggregate(rs),
		Similar:    similar,
	}
	if c.reader.cache != nil {
		_ = c.reader.cache.Set(ctx, key, out, int(c.reader.cacheTTL.Seconds()))
	}
	return out, nil
}

func (c *Catalog) Explore(ctx context.Context, query string, opts domain.FilterOptions) (domain.ExplorePage, error) {
	ls, err := c.all(ctx)
	if err != nil {
		return domain.ExplorePage{}, err
	}
	b := Bounds(ls)
	items := Query(ls, query, opts)
	observability.ObserveExplore(len(items))
	return domain.ExplorePage{
		Items:         items,
		Total:         len(items),
		ActiveFilters: ActiveFilterCount(opts, b),
		Bounds:        b,
		Filter:        opts,
		Query:         query,
	}, nil
}

func (c *Catalog) PriceBounds(ctx context.Context) (domain.PriceBounds, error) {
	ls, err := c.listings.GetAll(ctx)
	if err != nil {
		return domain.PriceBounds{}, err
	}
	return Bounds(ls), nil
}

func (c *Catalog) Featured(ctx context.Context) ([]domain.Listing, error) {
	ls, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Listing, 0, len(ls))
	for _, l := range ls {
		if l.Featured {
			out = append(out, l)
		}
	}
	return out, nil
}

func (c *Catalog) Home(ctx context.Context) (domain.HomePage, error) {
	ls, err := c.all(ctx)
	if err != nil {
		return domain.HomePage{}, err
	}
	hp := domain.HomePage{Featured: []domain.Listing{}}
	for _, l := range ls {
		if l.Featured {
			hp.Featured = append(hp.Featured, l)
		}
	}
	n := latestCount
	if len(ls) < n {
		n = len(ls)
	}
	hp.Latest = ls[:n]
	return hp, nil
}

// Similar returns up to n other listings: same style first, then by
// closest price.
func (c *Catalog) Similar(ctx context.Context, id string, n int) ([]domain.Listing, error) {
	base, err := c.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ls, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Listing, 0, len(ls))
	for _, l := range ls {
		if l.ID != base.ID {
			out = append(out, l)
		}
	}
	dist := func(l domain.Listing) int64 {
		if d := l.Price - base.Price; d >= 0 {
			return d
		}
		return base.Price - l.Price
	}
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].Style == base.Style, out[j].Style == base.Style
		if si != sj {
			return si
		}
		return dist(out[i]) < dist(out[j])
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Suggest offers up to five search terms drawn from titles, locations,
// architects and style names that contain q.
func (c *Catalog) Suggest(ctx context.Context, q string) ([]string, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []string{}
	if q == "" {
		return out, nil
	}
	ls, err := c.listings.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var terms []string
	for _, l := range ls {
		terms = append(terms, l.Title, l.Location, l.Architect)
	}
	for _, s := range domain.Styles {
		terms = append(terms, string(s))
	}

	seen := map[string]struct{}{}
	for _, t := range terms {
		if _, dup := seen[t]; dup || !strings.Contains(strings.ToLower(t), q) {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
		if len(out) == suggestionLimit {
			break
		}
	}
	return out, nil
}
