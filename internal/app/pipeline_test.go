package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house_explorer/internal/app"
	"house_explorer/internal/domain"
)

func priced(prices ...int64) []domain.Listing {
	out := make([]domain.Listing, len(prices))
	for i, p := range prices {
		out[i] = domain.Listing{ID: string(rune('a' + i)), Price: p}
	}
	return out
}

func identity(ls []domain.Listing) domain.FilterOptions {
	return app.DefaultFilter(app.Bounds(ls))
}

func TestQuery_PriceRange(t *testing.T) {
	// shuffled so stability is visible
	ls := priced(4800000, 3200000, 8500000, 4200000, 7500000, 5250000)

	opts := identity(ls)
	opts.SortBy = ""
	opts.PriceRange = [2]int64{4000000, 5000000}
	got := app.Query(ls, "", opts)
	require.Len(t, got, 2)
	assert.Equal(t, []int64{4800000, 4200000}, []int64{got[0].Price, got[1].Price})

	// bounds are inclusive, so the 5.25M listing is in range too
	opts.PriceRange = [2]int64{4000000, 6000000}
	assert.Equal(t, []string{"a", "d", "f"}, ids(app.Query(ls, "", opts)))

	// an inverted range behaves like the ordered one
	opts.PriceRange = [2]int64{6000000, 4000000}
	assert.Equal(t, []string{"a", "d", "f"}, ids(app.Query(ls, "", opts)))
}

func TestQuery_SearchIsCaseInsensitive(t *testing.T) {
	ls := seedListings(t)
	got := app.Query(ls, "  malibu ", identity(ls))
	require.Len(t, got, 1)
	assert.Equal(t, "Coastal Modern Retreat", got[0].Title)

	// architect and style fields are searched as well
	assert.Equal(t, []string{"3"}, ids(app.Query(ls, "sarah chen", identity(ls))))
	assert.Equal(t, []string{"5"}, ids(app.Query(ls, "INDUSTRIAL", identity(ls))))
	assert.Empty(t, app.Query(ls, "igloo", identity(ls)))
}

func TestQuery_SortPriceLowToHigh(t *testing.T) {
	ls := seedListings(t)
	opts := identity(ls)
	opts.SortBy = domain.SortPriceLowToHigh

	got := app.Query(ls, "", opts)
	require.Len(t, got, 6)
	assert.Equal(t, int64(3200000), got[0].Price)
	assert.Equal(t, int64(8500000), got[5].Price)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].Price, got[i].Price)
	}
}

func TestQuery_SortsAreStable(t *testing.T) {
	ls := seedListings(t)
	opts := identity(ls)

	// years: 1=2022 2=2021 3=2023 4=2022 5=2021 6=2023
	opts.SortBy = domain.SortNewest
	assert.Equal(t, []string{"3", "6", "1", "4", "2", "5"}, ids(app.Query(ls, "", opts)))

	// ratings: 4.7 4.7 4.8 4.6 4.5 4.9
	opts.SortBy = domain.SortHighestRated
	assert.Equal(t, []string{"6", "3", "1", "2", "4", "5"}, ids(app.Query(ls, "", opts)))

	opts.SortBy = domain.SortPriceHighToLow
	assert.Equal(t, []string{"3", "6", "1", "2", "4", "5"}, ids(app.Query(ls, "", opts)))
}

func TestQuery_IdentityFilterKeepsEverything(t *testing.T) {
	ls := seedListings(t)
	opts := identity(ls)
	opts.SortBy = ""
	assert.Equal(t, ids(ls), ids(app.Query(ls, "", opts)))
	assert.Equal(t, 0, app.ActiveFilterCount(opts, app.Bounds(ls)))
}

func TestQuery_CategoricalFilters(t *testing.T) {
	ls := seedListings(t)
	b := app.Bounds(ls)

	opts := identity(ls)
	opts.Styles = []domain.Style{domain.StyleModern, domain.StyleCoastal}
	opts.Bedrooms = ptr(4)
	assert.Equal(t, []string{"6", "1"}, ids(app.Query(ls, "", opts)))
	assert.Equal(t, 2, app.ActiveFilterCount(opts, b))

	opts = identity(ls)
	opts.Bathrooms = ptr(4.5)
	opts.MinRating = 4.8
	assert.Equal(t, []string{"3", "6"}, ids(app.Query(ls, "", opts)))
	assert.Equal(t, 2, app.ActiveFilterCount(opts, b))
}

func TestQuery_DoesNotMutateInput(t *testing.T) {
	ls := seedListings(t)
	before := ids(ls)
	opts := identity(ls)
	opts.SortBy = domain.SortPriceLowToHigh
	_ = app.Query(ls, "", opts)
	assert.Equal(t, before, ids(ls))
}

func TestQuery_EmptyInput(t *testing.T) {
	got := app.Query(nil, "modern", domain.FilterOptions{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, domain.PriceBounds{}, app.Bounds(nil))
}
