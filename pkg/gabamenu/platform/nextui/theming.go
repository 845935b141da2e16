package nextui

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pawndev/gabamenu/pkg/gabamenu/internal"
	"github.com/veandco/go-sdl2/sdl"
)

// NextVal is the theme dump NextUI writes for its tools.
type NextVal struct {
	Color1   string `json:"color1"`
	Color2   string `json:"color2"`
	Color3   string `json:"color3"`
	Color4   string `json:"color4"`
	Color5   string `json:"color5"`
	Color6   string `json:"color6"`
	BGColor  string `json:"bgcolor"`
	FontPath string `json:"fontpath"`
}

var defaultTheme = internal.Theme{
	FontColor:           internal.HexToColor(0xFFFFFF),
	SelectedColor:       internal.HexToColor(0x000000),
	HighlightColor:      internal.HexToColor(0xFFFFFF),
	TitleColor:          internal.HexToColor(0x9B2257),
	BackgroundColor:     internal.HexToColor(0x000000),
	FontSize:            internal.DefaultFontSize,
	BackgroundImagePath: "/mnt/SDCARD/bg.png",
}

// InitNextUITheme builds a theme from a nextval JSON dump, falling back to
// the stock NextUI colours when it cannot be read.
func InitNextUITheme(nextValPath string) internal.Theme {
	nv, err := LoadNextVal(nextValPath)
	if err != nil {
		internal.GetInternalLogger().Debug("Using default NextUI theme", "path", nextValPath, "error", err)
		return defaultTheme
	}

	theme := defaultTheme
	theme.HighlightColor = parseHexColor(nv.Color1, defaultTheme.HighlightColor)
	theme.TitleColor = parseHexColor(nv.Color2, defaultTheme.TitleColor)
	theme.FontColor = parseHexColor(nv.Color4, defaultTheme.FontColor)
	theme.SelectedColor = parseHexColor(nv.Color5, defaultTheme.SelectedColor)
	theme.BackgroundColor = parseHexColor(nv.BGColor, defaultTheme.BackgroundColor)
	if nv.FontPath != "" {
		theme.FontPath = nv.FontPath
	}

	return theme
}

func LoadNextVal(filePath string) (*NextVal, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading nextval file: %w", err)
	}

	var nextval NextVal
	if err := json.Unmarshal(data, &nextval); err != nil {
		return nil, fmt.Errorf("error parsing nextval JSON: %w", err)
	}

	return &nextval, nil
}

func parseHexColor(hexStr string, fallback sdl.Color) sdl.Color {
	if hexStr == "" {
		return fallback
	}
	color, err := internal.ParseHexColor(hexStr)
	if err != nil {
		internal.GetInternalLogger().Warn("Invalid nextval color", "value", hexStr, "error", err)
		return fallback
	}
	return color
}
