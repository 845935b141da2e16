package internal

import (
	"github.com/veandco/go-sdl2/sdl"
)

type Theme struct {
	FontColor           sdl.Color // Widget text
	SelectedColor       sdl.Color // Text of the focused widget
	HighlightColor      sdl.Color // Pill drawn behind the focused widget
	TitleColor          sdl.Color // Menu title
	BackgroundColor     sdl.Color // Screen clear colour
	FontPath            string
	FontSize            int
	BackgroundImagePath string
}

var DefaultTheme = Theme{
	FontColor:       HexToColor(0xFFFFFF),
	SelectedColor:   HexToColor(0x000000),
	HighlightColor:  HexToColor(0xFFFFFF),
	TitleColor:      HexToColor(0xFFFFFF),
	BackgroundColor: HexToColor(0x282828),
	FontSize:        DefaultFontSize,
}

var currentTheme = DefaultTheme

func SetTheme(theme Theme) {
	if theme.FontSize <= 0 {
		theme.FontSize = DefaultFontSize
	}
	currentTheme = theme
}

func GetTheme() Theme {
	return currentTheme
}
