package domain

import "strings"

type Listing struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Location      string   `json:"location"`
	Description   string   `json:"description"`
	Price         int64    `json:"price"` // whole USD
	ImageURL      string   `json:"imageUrl"`
	GalleryImages []string `json:"galleryImages"`
	Architect     string   `json:"architect"`
	Year          int      `json:"year"`
	Sqft          float64  `json:"sqft"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     float64  `json:"bathrooms"` // may be fractional (3.5)
	Style         Style    `json:"style"`
	Featured      bool     `json:"featured"`
	Ratings       Ratings  `json:"ratings"`
	AverageRating float64  `json:"averageRating"`
	ReviewCount   int      `json:"reviewCount"`
}

// Ratings are the four independently authored category scores, each in [0,5].
// They are not derived from reviews.
type Ratings struct {
	Architecture float64 `json:"architecture"`
	Interior     float64 `json:"interior"`
	Landscape    float64 `json:"landscape"`
	Overall      float64 `json:"overall"`
}

// Category is one named row of a rating breakdown.
type Category struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func (r Ratings) Categories() []Category {
	return []Category{
		{Name: "Architecture", Value: r.Architecture},
		{Name: "Interior", Value: r.Interior},
		{Name: "Landscape", Value: r.Landscape},
		{Name: "Overall", Value: r.Overall},
	}
}

type Style string

const (
	StyleModern        Style = "Modern"
	StyleContemporary  Style = "Contemporary"
	StyleMinimalist    Style = "Minimalist"
	StyleTraditional   Style = "Traditional"
	StyleMediterranean Style = "Mediterranean"
	StyleCraftsman     Style = "Craftsman"
	StyleColonial      Style = "Colonial"
	StyleVictorian     Style = "Victorian"
	StyleMidCentury    Style = "Mid-Century"
	StyleFarmhouse     Style = "Farmhouse"
	StyleIndustrial    Style = "Industrial"
	StyleCoastal       Style = "Coastal"
)

// Styles lists every style tag in display order.
var Styles = []Style{
	StyleModern, StyleContemporary, StyleMinimalist, StyleTraditional,
	StyleMediterranean, StyleCraftsman, StyleColonial, StyleVictorian,
	StyleMidCentury, StyleFarmhouse, StyleIndustrial, StyleCoastal,
}

// ParseStyle matches s case-insensitively against the known styles and
// returns the canonical spelling.
func ParseStyle(s string) (Style, bool) {
	s = strings.TrimSpace(s)
	for _, st := range Styles {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}
