package cannoli

import (
	"github.com/pawndev/gabamenu/pkg/gabamenu/internal"
)

func InitCannoliTheme(fontPath string) internal.Theme {
	return internal.Theme{
		FontColor:       internal.HexToColor(0xFFFFFF),
		SelectedColor:   internal.HexToColor(0x000000),
		HighlightColor:  internal.HexToColor(0xFFFFFF),
		TitleColor:      internal.HexToColor(0x008080),
		BackgroundColor: internal.HexToColor(0x000000),
		FontPath:        fontPath,
		FontSize:        internal.DefaultFontSize,
	}
}
