package widget

import "math"

// StarRating tracks a selected rating and a hover preview. With half
// precision, hovering the left half of a star previews star-0.5.
type StarRating struct {
	Total       int
	Half        bool
	Interactive bool

	rating float64
	hover  float64
}

func NewStarRating(initial float64, half, interactive bool) *StarRating {
	return &StarRating{Total: 5, Half: half, Interactive: interactive, rating: initial}
}

func (s *StarRating) Rating() float64 { return s.rating }

// Hover records a preview; fraction is the pointer position within the star, 0..1.
func (s *StarRating) Hover(star int, fraction float64) {
	if !s.Interactive {
		return
	}
	v := float64(star)
	if s.Half && fraction <= 0.5 {
		v -= 0.5
	}
	s.hover = v
}

func (s *StarRating) Leave() {
	if s.Interactive {
		s.hover = 0
	}
}

// Click selects the star, or its half when the preview sits on that half.
// It returns the new rating and whether it changed.
func (s *StarRating) Click(star int) (float64, bool) {
	if !s.Interactive || star < 1 || star > s.Total {
		return s.rating, false
	}
	v := float64(star)
	if s.Half && s.hover == v-0.5 {
		v -= 0.5
	}
	s.rating = v
	return v, true
}

// Display is the value the stars currently render: the hover preview when
// one is active, else the selected rating.
func (s *StarRating) Display() float64 {
	if s.hover != 0 {
		return s.hover
	}
	return s.rating
}

// Fill reports how a given star (1-based) renders: full, half or empty.
func (s *StarRating) Fill(star int) (full, half bool) {
	v := s.Display()
	full = v >= float64(star)
	half = s.Half && !full && math.Ceil(v) == float64(star) && math.Mod(v, 1) != 0
	return full, half
}
