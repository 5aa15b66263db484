package app

import (
	"math"

	"github.com/rs/zerolog/log"

	"house_explorer/internal/domain"
)

const maxStars = 5

// Aggregate computes the mean rating and the 5..1 star histogram of a
// listing's reviews. Ratings outside (0,5] are logged and left out of both
// the mean and the histogram; Count still reports every review. The mean is
// never rounded here.
func Aggregate(reviews []domain.Review) domain.RatingSummary {
	out := domain.RatingSummary{Count: len(reviews)}
	if len(reviews) == 0 {
		return out
	}

	var (
		sum   float64
		valid int
	)
	for _, r := range reviews {
		if !validRating(r.Rating) {
			log.Warn().
				Str("review_id", r.ID).
				Str("listing_id", r.ListingID).
				Float64("rating", r.Rating).
				Msg("rating out of range, skipped from distribution")
			continue
		}
		sum += r.Rating
		valid++
		stars := int(math.Floor(r.Rating))
		if stars < 1 {
			stars = 1
		}
		out.Distribution[maxStars-stars]++
	}
	if valid > 0 {
		out.Average = sum / float64(valid)
	}
	return out
}

func validRating(v float64) bool {
	return !math.IsNaN(v) && v > 0 && v <= maxStars
}

// RoundRating rounds to one decimal for display.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}

// Percent is the share of bucketed reviews in the bucket at idx (0 = five
// stars). Reviews skipped as out of range are not part of the base.
func Percent(s domain.RatingSummary, idx int) float64 {
	if idx < 0 || idx >= len(s.Distribution) {
		return 0
	}
	total := 0
	for _, n := range s.Distribution {
		total += n
	}
	if total == 0 {
		return 0
	}
	return float64(s.Distribution[idx]) / float64(total) * 100
}
