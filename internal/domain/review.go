package domain

import "time"

type Review struct {
	ID        string    `json:"id"`
	ListingID string    `json:"houseId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	Rating    float64   `json:"rating"` // (0,5]
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"date"`
}

// ReviewDraft is what a user composes before submission; the id and
// timestamp are assigned on submit.
type ReviewDraft struct {
	UserID   string  `json:"userId"`
	Username string  `json:"username"`
	Avatar   string  `json:"avatar"`
	Rating   float64 `json:"rating"`
	Comment  string  `json:"comment"`
}

type RatingSummary struct {
	Average float64 `json:"averageRating"`
	Count   int     `json:"reviewCount"`
	// Distribution holds review counts ordered from 5 stars down to 1 star.
	Distribution [5]int `json:"distribution"`
}

type ReviewSort string

const (
	ReviewSortNewest  ReviewSort = "newest"
	ReviewSortHighest ReviewSort = "highest"
	ReviewSortLowest  ReviewSort = "lowest"
)

func ParseReviewSort(s string) (ReviewSort, bool) {
	switch ReviewSort(s) {
	case "":
		return ReviewSortNewest, true
	case ReviewSortNewest, ReviewSortHighest, ReviewSortLowest:
		return ReviewSort(s), true
	}
	return "", false
}
