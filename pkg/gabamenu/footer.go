package gabamenu

import (
	"github.com/pawndev/gabamenu/pkg/gabamenu/i18n"
	"github.com/pawndev/gabamenu/pkg/gabamenu/internal"
	"github.com/veandco/go-sdl2/sdl"
)

// FooterHelpItem represents a button and its help text displayed under the menu.
// ButtonName is the text that will be displayed in the inner pill.
// HelpText is the text that will be displayed to the right of the inner pill.
type FooterHelpItem struct {
	ButtonName string
	HelpText   string
}

const (
	footerPillMargin = 6
	footerEdge       = 10
	footerTextGap    = 10
	footerItemGap    = 20
)

type footerEntry struct {
	item   FooterHelpItem
	button internal.RenderCache
	help   internal.RenderCache
}

// footer draws the help items as one continuous pill.
type footer struct {
	entries []*footerEntry
}

func newFooter(items []FooterHelpItem, localize bool) footer {
	var f footer
	for _, item := range items {
		if localize {
			item.HelpText = i18n.Translate(item.HelpText)
		}
		f.entries = append(f.entries, &footerEntry{item: item})
	}
	return f
}

func renderCached(cache *internal.RenderCache, font FontRenderer, text string, color sdl.Color) Surface {
	if !cache.Changed(text, false) {
		return cache.Surface()
	}
	surface, err := font.Render(text, color)
	if err != nil {
		internal.GetInternalLogger().Error("Failed to render footer text", "text", text, "error", err)
		return nil
	}
	cache.Store(text, false, surface)
	return surface
}

func innerPillWidth(buttonWidth, innerPillHeight int32) int32 {
	if buttonWidth <= innerPillHeight-20 {
		return innerPillHeight
	}
	return buttonWidth + 20
}

// size rasterizes the items that changed and returns the outer pill size.
func (f *footer) size(style Style) (int32, int32) {
	if style.Font == nil || len(f.entries) == 0 {
		return 0, 0
	}

	var textHeight int32
	for _, e := range f.entries {
		button := renderCached(&e.button, style.Font, e.item.ButtonName, style.SelectedColor)
		help := renderCached(&e.help, style.Font, e.item.HelpText, style.SelectedColor)
		if button == nil || help == nil {
			continue
		}
		_, bh := button.Size()
		_, hh := help.Size()
		textHeight = internal.Max32(textHeight, internal.Max32(bh, hh))
	}

	var width int32 = 2 * footerEdge
	for i, e := range f.entries {
		button, help := e.button.Surface(), e.help.Surface()
		if button == nil || help == nil {
			continue
		}
		bw, _ := button.Size()
		hw, _ := help.Size()
		width += innerPillWidth(bw, textHeight) + footerTextGap + hw
		if i < len(f.entries)-1 {
			width += footerItemGap
		}
	}
	return width, textHeight + 2*footerPillMargin
}

func (f *footer) draw(canvas Canvas, x, y int32, style Style) {
	width, height := f.size(style)
	if width == 0 {
		return
	}

	canvas.FillRoundedRect(sdl.Rect{X: x, Y: y, W: width, H: height}, height/2, style.HighlightColor)

	innerPillHeight := height - 2*footerPillMargin
	currentX := x + footerEdge
	for _, e := range f.entries {
		button, help := e.button.Surface(), e.help.Surface()
		if button == nil || help == nil {
			continue
		}

		bw, bh := button.Size()
		hw, hh := help.Size()
		inner := innerPillWidth(bw, innerPillHeight)

		canvas.FillRoundedRect(sdl.Rect{X: currentX, Y: y + footerPillMargin, W: inner, H: innerPillHeight}, innerPillHeight/2, style.FontColor)
		canvas.Blit(button, currentX+(inner-bw)/2, y+(height-bh)/2)

		currentX += inner + footerTextGap
		canvas.Blit(help, currentX, y+(height-hh)/2)
		currentX += hw + footerItemGap
	}
}

func (f *footer) free() {
	for _, e := range f.entries {
		e.button.Free()
		e.help.Free()
	}
}
