package gabamenu

import "github.com/pawndev/gabamenu/pkg/gabamenu/internal"

type ButtonSettings struct {
	ID      string
	OnApply Binding
}

// Button fires its on-apply binding on the apply input or a click inside it.
// It holds no value.
type Button struct {
	widgetBase
}

func NewButton(label string, settings ButtonSettings) *Button {
	b := &Button{widgetBase: newWidgetBase(settings.ID, label)}
	b.onApply = settings.OnApply
	b.text = func() string { return b.label }
	b.rules = []inputRule{
		{action: internal.ActionApply, cue: SoundOpenMenu, handle: func(Event) bool { b.Apply(); return true }},
		{action: internal.ActionClick, handle: b.click},
	}
	return b
}

func (b *Button) Apply() {
	b.onApply.invoke(b.label)
}

func (b *Button) click(ev Event) bool {
	if !b.contains(ev.X, ev.Y) {
		return false
	}
	b.play(SoundClickMouse)
	b.Apply()
	return true
}
