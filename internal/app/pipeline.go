package app

import (
	"sort"
	"strings"

	"house_explorer/internal/domain"
)

// Query runs the explore pipeline: text search, price, style, bedroom and
// bathroom minimums, minimum rating, then a stable sort. It never mutates
// its input and always returns a non-nil slice.
func Query(listings []domain.Listing, query string, opts domain.FilterOptions) []domain.Listing {
	lo, hi := opts.PriceRange[0], opts.PriceRange[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	q := strings.ToLower(strings.TrimSpace(query))

	var styles map[domain.Style]struct{}
	if len(opts.Styles) > 0 {
		styles = make(map[domain.Style]struct{}, len(opts.Styles))
		for _, s := range opts.Styles {
			styles[s] = struct{}{}
		}
	}

	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if q != "" && !matchesText(l, q) {
			continue
		}
		if l.Price < lo || l.Price > hi {
			continue
		}
		if styles != nil {
			if _, ok := styles[l.Style]; !ok {
				continue
			}
		}
		if opts.Bedrooms != nil && l.Bedrooms < *opts.Bedrooms {
			continue
		}
		if opts.Bathrooms != nil && l.Bathrooms < *opts.Bathrooms {
			continue
		}
		if opts.MinRating > 0 && l.AverageRating < opts.MinRating {
			continue
		}
		out = append(out, l)
	}

	sortListings(out, opts.SortBy)
	return out
}

func matchesText(l domain.Listing, q string) bool {
	for _, f := range []string{l.Title, l.Location, l.Description, string(l.Style), l.Architect} {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// sortListings orders in place. Unknown options leave the order unchanged.
func sortListings(ls []domain.Listing, by domain.SortOption) {
	var less func(i, j int) bool
	switch by {
	case domain.SortNewest:
		less = func(i, j int) bool { return ls[i].Year > ls[j].Year }
	case domain.SortHighestRated:
		less = func(i, j int) bool { return ls[i].AverageRating > ls[j].AverageRating }
	case domain.SortPriceHighToLow:
		less = func(i, j int) bool { return ls[i].Price > ls[j].Price }
	case domain.SortPriceLowToHigh:
		less = func(i, j int) bool { return ls[i].Price < ls[j].Price }
	default:
		return
	}
	sort.SliceStable(ls, less)
}

// Bounds returns the lowest and highest price in the collection.
func Bounds(listings []domain.Listing) domain.PriceBounds {
	if len(listings) == 0 {
		return domain.PriceBounds{}
	}
	b := domain.PriceBounds{Min: listings[0].Price, Max: listings[0].Price}
	for _, l := range listings[1:] {
		if l.Price < b.Min {
			b.Min = l.Price
		}
		if l.Price > b.Max {
			b.Max = l.Price
		}
	}
	return b
}

// DefaultFilter is the reset state of the explore view: the identity filter
// over the given bounds, sorted newest first.
func DefaultFilter(b domain.PriceBounds) domain.FilterOptions {
	return domain.FilterOptions{
		PriceRange: [2]int64{b.Min, b.Max},
		Styles:     []domain.Style{},
		SortBy:     domain.SortNewest,
	}
}

// ActiveFilterCount counts the filter groups that narrow the result set.
// Sorting and search are not counted.
func ActiveFilterCount(opts domain.FilterOptions, b domain.PriceBounds) int {
	n := 0
	if len(opts.Styles) > 0 {
		n++
	}
	if opts.Bedrooms != nil {
		n++
	}
	if opts.Bathrooms != nil {
		n++
	}
	if opts.MinRating > 0 {
		n++
	}
	if opts.PriceRange[0] > b.Min || opts.PriceRange[1] < b.Max {
		n++
	}
	return n
}
