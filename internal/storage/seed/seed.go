// Package seed holds the catalog shipped with the binary: six listings and
// the reviews attached to them at startup.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"house_explorer/internal/domain"
)

//go:embed listings.json
var listingsJSON []byte

//go:embed reviews.json
var reviewsJSON []byte

func Listings() ([]domain.Listing, error) {
	var out []domain.Listing
	if err := json.Unmarshal(listingsJSON, &out); err != nil {
		return nil, fmt.Errorf("decode seed listings: %w", err)
	}
	return out, nil
}

func Reviews() ([]domain.Review, error) {
	var out []domain.Review
	if err := json.Unmarshal(reviewsJSON, &out); err != nil {
		return nil, fmt.Errorf("decode seed reviews: %w", err)
	}
	return out, nil
}
