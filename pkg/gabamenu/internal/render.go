package internal

import (
	"hash/fnv"

	"github.com/veandco/go-sdl2/sdl"
)

// Surface is a rasterized piece of text owned by a widget.
type Surface interface {
	Size() (w, h int32)
	Free()
}

// FontRenderer measures and rasterizes text.
type FontRenderer interface {
	Size(text string) (w, h int32, err error)
	Render(text string, color sdl.Color) (Surface, error)
}

// Canvas is the drawing target a menu is drawn onto once per tick.
type Canvas interface {
	Blit(surface Surface, x, y int32)
	FillRoundedRect(rect sdl.Rect, radius int32, color sdl.Color)
}

// RenderCache keeps the last rasterized surface of a widget together with a
// hash of what produced it. A widget is CLEAN while the cache is valid and
// DIRTY after Invalidate, until the next Store.
type RenderCache struct {
	hash    uint64
	valid   bool
	surface Surface
	renders int
}

func renderHash(text string, selected bool) uint64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	if selected {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// Changed reports whether text/selected differ from what the cached surface
// was rendered from.
func (c *RenderCache) Changed(text string, selected bool) bool {
	if c.valid && c.surface != nil && renderHash(text, selected) == c.hash {
		return false
	}
	return true
}

// Store replaces the cached surface, freeing the previous one.
func (c *RenderCache) Store(text string, selected bool, surface Surface) {
	if c.surface != nil && c.surface != surface {
		c.surface.Free()
	}
	c.surface = surface
	c.hash = renderHash(text, selected)
	c.valid = true
	c.renders++
}

func (c *RenderCache) Invalidate() {
	c.valid = false
}

func (c *RenderCache) Dirty() bool {
	return !c.valid
}

func (c *RenderCache) Surface() Surface {
	return c.surface
}

// Renders counts how many surfaces have been stored.
func (c *RenderCache) Renders() int {
	return c.renders
}

func (c *RenderCache) Free() {
	if c.surface != nil {
		c.surface.Free()
		c.surface = nil
	}
	c.valid = false
}
