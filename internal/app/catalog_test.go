package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house_explorer/internal/app"
	"house_explorer/internal/domain"
)

func TestCatalog_LiveRatingOverridesSeed(t *testing.T) {
	ls, rs := seedStores(t)
	cat := app.NewCatalog(ls, rs, nil, 0)
	ctx := context.Background()

	// listing 1 has stored reviews, listing 2 has none
	l1, err := cat.Get(ctx, "1")
	require.NoError(t, err)
	assert.InDelta(t, 4.5, l1.AverageRating, 1e-9)
	assert.Equal(t, 3, l1.ReviewCount)

	l2, err := cat.Get(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, 4.7, l2.AverageRating)
	assert.Equal(t, 5, l2.ReviewCount)

	_, err = cat.Get(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalog_Detail(t *testing.T) {
	ls, rs := seedStores(t)
	cache := &fakeCache{}
	counting := &countingReviews{ReviewStore: rs}
	cat := app.NewCatalog(ls, counting, cache, time.Minute)
	ctx := context.Background()

	d, err := cat.Detail(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "1", d.Listing.ID)
	require.Len(t, d.Images, 1+len(d.Listing.GalleryImages))
	assert.Equal(t, d.Listing.ImageURL, d.Images[0])
	assert.Len(t, d.Categories, 4)
	assert.Equal(t, [5]int{1, 2, 0, 0, 0}, d.Summary.Distribution)
	assert.Len(t, d.Similar, 3)
	assert.True(t, cache.has("listing:1"))

	reads := counting.lists
	again, err := cat.Detail(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, reads, counting.lists, "cached detail should not touch the store")
	assert.Equal(t, d.Summary, again.Summary)

	_, err = cat.Detail(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalog_Similar(t *testing.T) {
	ls, rs := seedStores(t)
	cat := app.NewCatalog(ls, rs, nil, 0)

	// no other Modern listing; nearest prices to 5.25M are 4.8M, 4.2M, 3.2M
	got, err := cat.Similar(context.Background(), "1", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "4", "5"}, ids(got))

	// listing 3 is the only Contemporary one; 7.5M is closest to 8.5M
	got, err = cat.Similar(context.Background(), "3", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"6"}, ids(got))

	all, err := cat.Similar(context.Background(), "1", 10)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.NotContains(t, ids(all), "1")
}

func TestCatalog_HomeAndFeatured(t *testing.T) {
	ls, rs := seedStores(t)
	cat := app.NewCatalog(ls, rs, nil, 0)
	ctx := context.Background()

	hp, err := cat.Home(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "6"}, ids(hp.Featured))
	assert.Equal(t, []string{"1", "2", "3"}, ids(hp.Latest))

	f, err := cat.Featured(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids(hp.Featured), ids(f))
}

func TestCatalog_Explore(t *testing.T) {
	ls, rs := seedStores(t)
	cat := app.NewCatalog(ls, rs, nil, 0)
	ctx := context.Background()

	b, err := cat.PriceBounds(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PriceBounds{Min: 3200000, Max: 8500000}, b)

	opts := app.DefaultFilter(b)
	opts.MinRating = 4.6
	page, err := cat.Explore(ctx, "", opts)
	require.NoError(t, err)
	// listing 1 now rates 4.5 from its stored reviews
	assert.NotContains(t, ids(page.Items), "1")
	assert.Equal(t, len(page.Items), page.Total)
	assert.Equal(t, 1, page.ActiveFilters)
	assert.Equal(t, b, page.Bounds)
}

func TestCatalog_Suggest(t *testing.T) {
	ls, rs := seedStores(t)
	cat := app.NewCatalog(ls, rs, nil, 0)
	ctx := context.Background()

	got, err := cat.Suggest(ctx, "MODERN")
	require.NoError(t, err)
	assert.Equal(t, []string{"Modern Glass Retreat", "Coastal Modern Retreat", "Modern"}, got)

	got, err = cat.Suggest(ctx, "ca")
	require.NoError(t, err)
	assert.Len(t, got, 5)

	got, err = cat.Suggest(ctx, "  ")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
