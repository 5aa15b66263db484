// Package widget holds the bookkeeping behind the site's interactive
// components. None of it touches the catalog; the types only track cursors
// and toggles.
package widget

// Carousel is a sliding window of Visible items over Count items. The
// cursor saturates at both ends.
type Carousel struct {
	Count   int
	Visible int
	Index   int
}

func NewCarousel(count, visible int) *Carousel {
	c := &Carousel{Count: count, Visible: visible}
	c.clamp()
	return c
}

func (c *Carousel) MaxIndex() int {
	if m := c.Count - c.Visible; m > 0 {
		return m
	}
	return 0
}

func (c *Carousel) CanPrev() bool { return c.Index > 0 }
func (c *Carousel) CanNext() bool { return c.Index < c.MaxIndex() }

func (c *Carousel) Next() {
	c.Index++
	c.clamp()
}

func (c *Carousel) Prev() {
	c.Index--
	c.clamp()
}

// VisibleForWidth maps a viewport width in pixels to the number of cards shown.
func VisibleForWidth(width int) int {
	switch {
	case width < 640:
		return 1
	case width < 1024:
		return 2
	default:
		return 3
	}
}

// Resize applies a new viewport width and re-clamps the cursor.
func (c *Carousel) Resize(width int) {
	c.Visible = VisibleForWidth(width)
	c.clamp()
}

func (c *Carousel) clamp() {
	if c.Index > c.MaxIndex() {
		c.Index = c.MaxIndex()
	}
	if c.Index < 0 {
		c.Index = 0
	}
}
