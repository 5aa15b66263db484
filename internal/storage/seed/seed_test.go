package seed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house_explorer/internal/domain"
	"house_explorer/internal/storage/seed"
)

func TestListings_Decode(t *testing.T) {
	ls, err := seed.Listings()
	require.NoError(t, err)
	require.Len(t, ls, 6)

	ids := map[string]bool{}
	for _, l := range ls {
		assert.False(t, ids[l.ID], "duplicate id %s", l.ID)
		ids[l.ID] = true
		_, ok := domain.ParseStyle(string(l.Style))
		assert.True(t, ok, "unknown style %q", l.Style)
		assert.Positive(t, l.Price)
		assert.NotEmpty(t, l.GalleryImages)
	}
	assert.Equal(t, 3.5, ls[3].Bathrooms)
}

func TestReviews_ReferenceSeedListings(t *testing.T) {
	ls, err := seed.Listings()
	require.NoError(t, err)
	rs, err := seed.Reviews()
	require.NoError(t, err)
	require.Len(t, rs, 3)

	known := map[string]bool{}
	for _, l := range ls {
		known[l.ID] = true
	}
	for _, r := range rs {
		assert.True(t, known[r.ListingID], "review %s references unknown listing %s", r.ID, r.ListingID)
		assert.False(t, r.CreatedAt.IsZero())
	}
}
