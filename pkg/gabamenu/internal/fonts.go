package internal

import (
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

const (
	DefaultFontSize = 30
	FallbackFontEnv = "FALLBACK_FONT"
)

func CalculateFontSizeForResolution(baseSize int, screenWidth int32) int {
	const referenceWidth int32 = 1024
	if screenWidth <= 0 {
		return baseSize
	}
	scaleFactor := float32(screenWidth) / float32(referenceWidth)

	// Dampen growth on large screens
	if screenWidth > referenceWidth {
		scaleFactor = 1.0 + (scaleFactor-1.0)*0.75
	}

	return int(float32(baseSize) * scaleFactor)
}

// TTFRenderer is the SDL_ttf backed FontRenderer.
type TTFRenderer struct {
	font *ttf.Font
	path string
	size int
}

// OpenFont loads path at size, trying FALLBACK_FONT when path cannot be opened.
func OpenFont(path string, size int) (*TTFRenderer, error) {
	if size <= 0 {
		size = DefaultFontSize
	}

	candidates := []string{path}
	if fallback := os.Getenv(FallbackFontEnv); fallback != "" {
		candidates = append(candidates, fallback)
	}

	var lastErr error
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		font, err := ttf.OpenFont(candidate, size)
		if err == nil {
			return &TTFRenderer{font: font, path: candidate, size: size}, nil
		}
		GetInternalLogger().Debug("Failed to load font", "path", candidate, "error", err)
		lastErr = err
	}

	if lastErr == nil {
		return nil, fmt.Errorf("no font path configured")
	}
	return nil, fmt.Errorf("failed to open font: %w", lastErr)
}

func (r *TTFRenderer) Size(text string) (int32, int32, error) {
	if text == "" {
		return 0, int32(r.font.Height()), nil
	}
	w, h, err := r.font.SizeUTF8(text)
	if err != nil {
		return 0, 0, err
	}
	return int32(w), int32(h), nil
}

func (r *TTFRenderer) Render(text string, color sdl.Color) (Surface, error) {
	// SDL_ttf refuses zero width text
	if text == "" {
		text = " "
	}
	surface, err := r.font.RenderUTF8Blended(text, color)
	if err != nil {
		return nil, err
	}
	return &SDLSurface{Surface: surface}, nil
}

func (r *TTFRenderer) Close() {
	if r.font != nil {
		r.font.Close()
		r.font = nil
	}
}

// SDLSurface wraps an sdl.Surface and lazily uploads it as a texture on first blit.
type SDLSurface struct {
	Surface *sdl.Surface
	texture *sdl.Texture
}

func (s *SDLSurface) Size() (int32, int32) {
	return s.Surface.W, s.Surface.H
}

func (s *SDLSurface) Texture(renderer *sdl.Renderer) (*sdl.Texture, error) {
	if s.texture != nil {
		return s.texture, nil
	}
	texture, err := renderer.CreateTextureFromSurface(s.Surface)
	if err != nil {
		return nil, err
	}
	s.texture = texture
	return texture, nil
}

func (s *SDLSurface) Free() {
	if s.texture != nil {
		s.texture.Destroy()
		s.texture = nil
	}
	if s.Surface != nil {
		s.Surface.Free()
		s.Surface = nil
	}
}
