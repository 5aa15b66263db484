package domain

type SortOption string

const (
	SortNewest         SortOption = "newest"
	SortHighestRated   SortOption = "highest-rated"
	SortPriceHighToLow SortOption = "price-high-to-low"
	SortPriceLowToHigh SortOption = "price-low-to-high"
)

func ParseSortOption(s string) (SortOption, bool) {
	switch SortOption(s) {
	case "":
		return SortNewest, true
	case SortNewest, SortHighestRated, SortPriceHighToLow, SortPriceLowToHigh:
		return SortOption(s), true
	}
	return "", false
}

// FilterOptions is the full set of user-chosen constraints for the explore view.
// Nil Bedrooms/Bathrooms mean "any"; an empty Styles set means no restriction.
type FilterOptions struct {
	PriceRange [2]int64   `json:"priceRange"`
	Styles     []Style    `json:"styles"`
	Bedrooms   *int       `json:"bedrooms"`
	Bathrooms  *float64   `json:"bathrooms"`
	MinRating  float64    `json:"minRating"` // 0..5, 0 = no restriction
	SortBy     SortOption `json:"sortBy"`
}

type PriceBounds struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}
