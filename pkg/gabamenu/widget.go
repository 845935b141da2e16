package gabamenu

import (
	"github.com/pawndev/gabamenu/pkg/gabamenu/internal"
	"github.com/veandco/go-sdl2/sdl"
)

// Event is one discrete input event. Hosts either build these directly or
// translate them with EventFromSDL / an EvdevSource.
type Event = internal.Event

// EventType tags the payload carried by an Event.
type EventType = internal.EventType

const (
	EventKeyDown       = internal.EventKeyDown
	EventKeyUp         = internal.EventKeyUp
	EventTextInput     = internal.EventTextInput
	EventMouseButtonUp = internal.EventMouseButtonUp
	EventJoyHatMotion  = internal.EventJoyHatMotion
	EventJoyAxisMotion = internal.EventJoyAxisMotion
	EventJoyButtonDown = internal.EventJoyButtonDown
)

// Controls binds logical actions to keys, hat directions, axes and buttons.
type Controls = internal.Controls

// FontRenderer measures and rasterizes widget text.
type FontRenderer = internal.FontRenderer

// Surface is a rasterized widget image.
type Surface = internal.Surface

// Canvas receives the blits of a draw pass.
type Canvas = internal.Canvas

// KeyboardState lets widgets drop key-down events for keys no longer held.
type KeyboardState = internal.KeyboardState

// EventFromSDL translates an SDL event, reporting false for events widgets ignore.
func EventFromSDL(event sdl.Event) (Event, bool) {
	return internal.FromSDL(event)
}

func DefaultControls() *Controls {
	return internal.DefaultControls()
}

// Callback receives the widget value followed by the selected option payload
// (selectors only) and the arguments bound with Bind.
type Callback func(value any, args ...any)

// Binding is a callback plus the extra arguments it was bound with.
type Binding struct {
	Fn   Callback
	Args []any
}

func Bind(fn Callback, args ...any) Binding {
	return Binding{Fn: fn, Args: args}
}

func (b Binding) invoke(value any, extra ...any) {
	if b.Fn == nil {
		return
	}
	args := make([]any, 0, len(extra)+len(b.Args))
	args = append(args, extra...)
	args = append(args, b.Args...)
	b.Fn(value, args...)
}

// Style carries everything a widget borrows from its menu: font, colours,
// the sound sink and the input configuration.
type Style struct {
	Font           FontRenderer
	FontColor      sdl.Color
	SelectedColor  sdl.Color
	HighlightColor sdl.Color
	TitleColor     sdl.Color
	Sound          SoundPlayer

	JoystickEnabled bool
	MouseEnabled    bool
	Controls        *Controls
	KeyboardState   KeyboardState
}

// DefaultStyle returns the style prepared by Init. Before Init it fills the
// colours from the active theme and loads the controls, leaving Font and
// Sound to the caller.
func DefaultStyle() Style {
	if current != nil {
		return current.style
	}
	theme := internal.GetTheme()
	return Style{
		FontColor:      theme.FontColor,
		SelectedColor:  theme.SelectedColor,
		HighlightColor: theme.HighlightColor,
		TitleColor:     theme.TitleColor,
		Controls:       internal.GetControls(),
	}
}

// Widget is the contract shared by Selector, TextInput and Button.
type Widget interface {
	ID() string
	Label() string

	// Update consumes one tick of events and reports whether any of them
	// changed the widget.
	Update(events []Event) bool
	// Draw re-renders when dirty and blits at the widget position.
	Draw(canvas Canvas)

	Value() (any, error)
	Set(value any) error

	SetFocused(focused bool)
	Focused() bool
	Rect() sdl.Rect
	SetPosition(x, y int32)
	Dirty() bool
	SetStyle(style Style)

	core() *widgetBase
}

type inputRule struct {
	action internal.Action
	cue    SoundType
	handle func(ev Event) bool
}

type widgetBase struct {
	id      string
	label   string
	focused bool
	rect    sdl.Rect

	font          FontRenderer
	fontColor     sdl.Color
	selectedColor sdl.Color
	sound         SoundPlayer
	flags         internal.Flags
	controls      *Controls
	keyState      KeyboardState

	labelWidth int32
	cache      internal.RenderCache
	text       func() string
	rules      []inputRule

	onChange     Binding
	onApply      Binding
	onSizeChange func()
}

// newWidgetBase falls back to the label when no id is given.
func newWidgetBase(id, label string) widgetBase {
	if id == "" {
		id = label
	}
	return widgetBase{
		id:       id,
		label:    label,
		controls: internal.DefaultControls(),
	}
}

func (w *widgetBase) core() *widgetBase { return w }

func (w *widgetBase) ID() string { return w.id }

func (w *widgetBase) Label() string { return w.label }

func (w *widgetBase) Focused() bool { return w.focused }

func (w *widgetBase) Rect() sdl.Rect { return w.rect }

func (w *widgetBase) Dirty() bool { return w.cache.Dirty() }

func (w *widgetBase) SetFocused(focused bool) {
	if w.focused == focused {
		return
	}
	w.focused = focused
	w.cache.Invalidate()
}

func (w *widgetBase) SetPosition(x, y int32) {
	w.rect.X, w.rect.Y = x, y
}

func (w *widgetBase) SetStyle(style Style) {
	w.font = style.Font
	w.fontColor = style.FontColor
	w.selectedColor = style.SelectedColor
	w.sound = style.Sound
	w.flags = internal.Flags{Joystick: style.JoystickEnabled, Mouse: style.MouseEnabled}
	w.keyState = style.KeyboardState
	w.controls = style.Controls
	if w.controls == nil {
		w.controls = internal.DefaultControls()
	}

	w.labelWidth = 0
	if w.font != nil {
		if lw, _, err := w.font.Size(w.label); err == nil {
			w.labelWidth = lw
		}
	}
	w.cache.Invalidate()
}

func (w *widgetBase) setSound(sound SoundPlayer) {
	w.sound = sound
}

func (w *widgetBase) play(cue SoundType) {
	if cue == "" || w.sound == nil {
		return
	}
	w.sound.Play(cue)
}

func (w *widgetBase) contains(x, y int32) bool {
	p := sdl.Point{X: x, Y: y}
	return p.InRect(&w.rect)
}

// dispatch runs every valid event through the rule table. The first rule
// whose action matches wins: its cue plays, then its handler runs.
func (w *widgetBase) dispatch(events []Event) bool {
	updated := false
	for _, ev := range events {
		if !internal.ValidKeyPress(ev, w.keyState) {
			continue
		}
		for _, rule := range w.rules {
			if !w.controls.Matches(rule.action, ev, w.flags) {
				continue
			}
			w.play(rule.cue)
			if rule.handle(ev) {
				updated = true
			}
			break
		}
	}
	return updated
}

func (w *widgetBase) Update(events []Event) bool {
	return w.dispatch(events)
}

func (w *widgetBase) render() {
	if w.font == nil || w.text == nil {
		return
	}

	text := w.text()
	if !w.cache.Changed(text, w.focused) {
		return
	}

	color := w.fontColor
	if w.focused {
		color = w.selectedColor
	}

	surface, err := w.font.Render(text, color)
	if err != nil {
		internal.GetInternalLogger().Error("Failed to render widget", "id", w.id, "error", err)
		return
	}
	w.cache.Store(text, w.focused, surface)

	width, height := surface.Size()
	resized := width != w.rect.W || height != w.rect.H
	w.rect.W, w.rect.H = width, height

	if resized && w.onSizeChange != nil {
		w.onSizeChange()
	}
}

func (w *widgetBase) Draw(canvas Canvas) {
	w.render()
	if surface := w.cache.Surface(); surface != nil {
		canvas.Blit(surface, w.rect.X, w.rect.Y)
	}
}

// Renders reports how many times the widget has been rasterized.
func (w *widgetBase) Renders() int {
	return w.cache.Renders()
}

func (w *widgetBase) Value() (any, error) {
	return nil, ErrNoValue
}

func (w *widgetBase) Set(any) error {
	return ErrNoValue
}
