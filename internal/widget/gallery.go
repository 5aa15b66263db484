package widget

import "fmt"

// Gallery cycles through a listing's images; navigation wraps around.
type Gallery struct {
	images     []string
	index      int
	fullscreen bool
}

// NewGallery shows the main image first, followed by the gallery images.
func NewGallery(main string, rest []string) *Gallery {
	imgs := make([]string, 0, len(rest)+1)
	imgs = append(imgs, main)
	imgs = append(imgs, rest...)
	return &Gallery{images: imgs}
}

func (g *Gallery) Len() int         { return len(g.images) }
func (g *Gallery) Index() int       { return g.index }
func (g *Gallery) Current() string  { return g.images[g.index] }
func (g *Gallery) Fullscreen() bool { return g.fullscreen }

func (g *Gallery) Next() {
	g.index = (g.index + 1) % len(g.images)
}

func (g *Gallery) Prev() {
	g.index = (g.index - 1 + len(g.images)) % len(g.images)
}

// Select jumps to a thumbnail; out-of-range indexes are ignored.
func (g *Gallery) Select(i int) bool {
	if i < 0 || i >= len(g.images) {
		return false
	}
	g.index = i
	return true
}

func (g *Gallery) ToggleFullscreen() { g.fullscreen = !g.fullscreen }

// Position is the "3 / 4" counter.
func (g *Gallery) Position() string {
	return fmt.Sprintf("%d / %d", g.index+1, len(g.images))
}
