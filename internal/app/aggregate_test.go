package app_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"house_explorer/internal/app"
	"house_explorer/internal/domain"
)

func rated(vs ...float64) []domain.Review {
	out := make([]domain.Review, len(vs))
	for i, v := range vs {
		out[i] = domain.Review{ID: string(rune('a' + i)), ListingID: "1", Rating: v}
	}
	return out
}

func TestAggregate_ThreeReviews(t *testing.T) {
	s := app.Aggregate(rated(4.5, 5, 4))
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 4.5, s.Average, 1e-9)
	assert.Equal(t, [5]int{1, 2, 0, 0, 0}, s.Distribution)
	assert.InDelta(t, 100.0/3, app.Percent(s, 0), 1e-9)
	assert.InDelta(t, 200.0/3, app.Percent(s, 1), 1e-9)
	assert.Zero(t, app.Percent(s, 4))
	assert.Zero(t, app.Percent(s, 5))
}

func TestAggregate_Empty(t *testing.T) {
	s := app.Aggregate(nil)
	assert.Equal(t, domain.RatingSummary{}, s)
	assert.Zero(t, app.Percent(s, 0))
}

func TestAggregate_OrderIndependent(t *testing.T) {
	a := app.Aggregate(rated(1, 2.5, 3, 5, 4.9))
	b := app.Aggregate(rated(4.9, 5, 3, 1, 2.5))
	assert.Equal(t, a.Count, b.Count)
	assert.Equal(t, a.Distribution, b.Distribution)
	assert.InDelta(t, a.Average, b.Average, 1e-9)
	assert.Equal(t, [5]int{1, 1, 1, 1, 1}, a.Distribution)
}

func TestAggregate_SkipsOutOfRangeRatings(t *testing.T) {
	s := app.Aggregate(rated(4, 0, 7, math.NaN(), 0.5))
	assert.Equal(t, 5, s.Count)
	assert.InDelta(t, 2.25, s.Average, 1e-9)
	// 0.5 lands in the one-star bucket
	assert.Equal(t, [5]int{0, 1, 0, 0, 1}, s.Distribution)

	// shares are over the two bucketed reviews, not all five
	assert.Equal(t, 50.0, app.Percent(s, 1))
	assert.Equal(t, 50.0, app.Percent(s, 4))
	sum := 0.0
	for i := range s.Distribution {
		sum += app.Percent(s, i)
	}
	assert.InDelta(t, 100, sum, 1e-9)
}

func TestPercent_NoBucketedReviews(t *testing.T) {
	s := app.Aggregate(rated(0, 9))
	assert.Equal(t, 2, s.Count)
	assert.Zero(t, app.Percent(s, 0))
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 4.7, app.RoundRating(4.66))
	assert.Equal(t, 4.5, app.RoundRating(4.5))
	assert.Equal(t, 0.0, app.RoundRating(0.04))
}
