package gabamenu

import (
	"fmt"

	"github.com/pawndev/gabamenu/pkg/gabamenu/i18n"
	"github.com/pawndev/gabamenu/pkg/gabamenu/internal"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/veandco/go-sdl2/sdl"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// MenuSettings configures a Menu.
// Widgets are stacked vertically from (X, Y) below the title, WidgetMargin
// apart. With AlignCenter they are centered in Width.
// Localize translates the title and widget labels through the i18n package.
// DisableClose ignores the back input.
// Footer items are drawn as button hints FooterMargin below the last widget.
type MenuSettings struct {
	Title        string
	X, Y         int32
	Width        int32
	TitleMargin  int32
	WidgetMargin int32
	Align        Align

	HighlightPadding  int32
	HighlightRadius   int32
	HighlightDuration float32
	HighlightEase     ease.TweenFunc

	Footer       []FooterHelpItem
	FooterMargin int32

	Localize     bool
	DisableClose bool
	OnClose      Binding
	Style        Style
}

func DefaultMenuSettings(title string) MenuSettings {
	return MenuSettings{
		Title:             title,
		X:                 20,
		Y:                 20,
		TitleMargin:       20,
		WidgetMargin:      10,
		Align:             AlignLeft,
		HighlightPadding:  6,
		HighlightRadius:   8,
		HighlightDuration: 0.12,
		HighlightEase:     ease.OutQuad,
		FooterMargin:      20,
		Style:             DefaultStyle(),
	}
}

var menuActions = []internal.Action{
	internal.ActionUp,
	internal.ActionDown,
	internal.ActionBack,
	internal.ActionClick,
}

// highlight is the rounded box drawn under the focused widget. It glides
// to a new target over HighlightDuration seconds.
type highlight struct {
	target sdl.Rect
	placed bool
	values [4]float32
	tweens [4]*gween.Tween
}

func (h *highlight) moveTo(target sdl.Rect, duration float32, fn ease.TweenFunc) {
	if h.placed && target == h.target {
		return
	}

	to := [4]float32{float32(target.X), float32(target.Y), float32(target.W), float32(target.H)}
	if !h.placed || duration <= 0 {
		h.values = to
		h.tweens = [4]*gween.Tween{}
	} else {
		for i := range h.tweens {
			h.tweens[i] = gween.New(h.values[i], to[i], duration, fn)
		}
	}
	h.target = target
	h.placed = true
}

func (h *highlight) advance(dt float32) {
	for i, tween := range h.tweens {
		if tween == nil {
			continue
		}
		value, finished := tween.Update(dt)
		h.values[i] = value
		if finished {
			h.tweens[i] = nil
		}
	}
}

func (h *highlight) rect() sdl.Rect {
	return sdl.Rect{X: int32(h.values[0]), Y: int32(h.values[1]), W: int32(h.values[2]), H: int32(h.values[3])}
}

// Menu owns an ordered list of widgets, routes input to the focused one and
// draws them stacked under a title.
//
// Menus nest: a submenu button opens a child menu, which then receives the
// input and is drawn in place of its parent until the back input returns
// to the parent. The closed and submitted state belongs to the root menu.
type Menu struct {
	settings MenuSettings
	style    Style
	title    string

	widgets []Widget
	focused int
	reflow  bool

	titleCache internal.RenderCache
	titleRect  sdl.Rect
	highlight  highlight
	footer     footer
	bottom     int32

	parent   *Menu
	submenus []*Menu
	active   *Menu

	closed    bool
	submitted bool
}

func NewMenu(settings MenuSettings) *Menu {
	if settings.Style.Controls == nil {
		settings.Style.Controls = internal.DefaultControls()
	}
	if settings.HighlightEase == nil {
		settings.HighlightEase = ease.OutQuad
	}

	title := settings.Title
	if settings.Localize {
		title = i18n.Translate(title)
	}

	return &Menu{
		settings: settings,
		style:    settings.Style,
		title:    title,
		footer:   newFooter(settings.Footer, settings.Localize),
		focused:  -1,
		reflow:   true,
	}
}

func (m *Menu) Title() string {
	return m.title
}

// AddWidget appends w, styling it with the menu style. The first widget
// added takes the focus.
func (m *Menu) AddWidget(w Widget) {
	c := w.core()
	if m.settings.Localize {
		c.label = i18n.Translate(c.label)
	}
	w.SetStyle(m.style)
	c.onSizeChange = func() { m.reflow = true }

	m.widgets = append(m.widgets, w)
	if m.focused < 0 {
		m.focused = len(m.widgets) - 1
		w.SetFocused(true)
	}
	m.reflow = true
}

func (m *Menu) AddSelector(label string, options []Option, settings SelectorSettings) (*Selector, error) {
	s, err := NewSelector(label, options, settings)
	if err != nil {
		return nil, err
	}
	m.AddWidget(s)
	return s, nil
}

func (m *Menu) AddTextInput(label string, settings TextInputSettings) (*TextInput, error) {
	t, err := NewTextInput(label, settings)
	if err != nil {
		return nil, err
	}
	m.AddWidget(t)
	return t, nil
}

func (m *Menu) AddButton(label string, settings ButtonSettings) *Button {
	b := NewButton(label, settings)
	m.AddWidget(b)
	return b
}

// AddSubmenuButton appends a button that opens sub. The back input in sub
// returns here. A menu can only be attached to one parent and never to
// itself or one of its ancestors.
func (m *Menu) AddSubmenuButton(label string, sub *Menu, settings ButtonSettings) (*Button, error) {
	if sub == nil {
		return nil, fmt.Errorf("submenu %q: %w: nil menu", label, ErrInvalidValue)
	}
	if sub.parent != nil {
		return nil, fmt.Errorf("submenu %q: %w: %q already has a parent", label, ErrInvalidValue, sub.title)
	}
	for a := m; a != nil; a = a.parent {
		if a == sub {
			return nil, fmt.Errorf("submenu %q: %w: %q would contain itself", label, ErrInvalidValue, sub.title)
		}
	}

	sub.parent = m
	m.submenus = append(m.submenus, sub)

	next := settings.OnApply
	settings.OnApply = Binding{
		Fn: func(value any, args ...any) {
			m.openSubmenu(sub)
			if next.Fn != nil {
				next.Fn(value, args...)
			}
		},
		Args: next.Args,
	}
	return m.AddButton(label, settings), nil
}

func (m *Menu) openSubmenu(sub *Menu) {
	m.active = sub
	sub.active = nil
	internal.GetInternalLogger().Debug("Opened submenu", "parent", m.title, "title", sub.title)
}

// Back does what the back input does: a submenu returns to its parent, a
// root menu closes. Bind it to a button for a "return" entry.
func (m *Menu) Back() {
	if m.parent == nil {
		m.Close()
		return
	}
	if m.parent.active != m {
		return
	}
	m.back()
}

func (m *Menu) back() {
	m.play(SoundCloseMenu)
	m.active = nil
	m.parent.active = nil
	m.settings.OnClose.invoke(m.GetInputData(true))
	internal.GetInternalLogger().Debug("Returned from submenu", "parent", m.parent.title, "title", m.title)
}

// Parent returns the menu this one was attached to, or nil for a root menu.
func (m *Menu) Parent() *Menu {
	return m.parent
}

func (m *Menu) Submenus() []*Menu {
	return append([]*Menu(nil), m.submenus...)
}

// Current returns the innermost open menu below m, or m itself.
func (m *Menu) Current() *Menu {
	c := m
	for c.active != nil {
		c = c.active
	}
	return c
}

func (m *Menu) root() *Menu {
	r := m
	for r.parent != nil {
		r = r.parent
	}
	return r
}

func (m *Menu) Widgets() []Widget {
	return append([]Widget(nil), m.widgets...)
}

// GetWidget returns the first widget with the given id. With recursive set
// the submenus are searched too, depth first after m's own widgets.
func (m *Menu) GetWidget(id string, recursive bool) (Widget, bool) {
	for _, w := range m.widgets {
		if w.ID() == id {
			return w, true
		}
	}
	if recursive {
		for _, sub := range m.submenus {
			if w, ok := sub.GetWidget(id, true); ok {
				return w, true
			}
		}
	}
	return nil, false
}

// Focused returns the focused widget, or nil for an empty menu.
func (m *Menu) Focused() Widget {
	if m.focused < 0 {
		return nil
	}
	return m.widgets[m.focused]
}

func (m *Menu) FocusedIndex() int {
	return m.focused
}

// SetFocus moves the focus to the widget at index.
func (m *Menu) SetFocus(index int) bool {
	if index < 0 || index >= len(m.widgets) || index == m.focused {
		return false
	}
	if m.focused >= 0 {
		m.widgets[m.focused].SetFocused(false)
	}
	m.focused = index
	m.widgets[index].SetFocused(true)
	return true
}

func (m *Menu) moveFocus(step int) bool {
	n := len(m.widgets)
	if n < 2 {
		return false
	}
	m.play(SoundKeyAdd)
	return m.SetFocus((m.focused + step + n) % n)
}

// GetInputData maps the id of every widget holding a value to that value.
// With recursive set the submenus are included; on a duplicate id the
// widget closest to m wins.
func (m *Menu) GetInputData(recursive bool) map[string]any {
	data := make(map[string]any, len(m.widgets))
	m.collectInputData(data, recursive)
	return data
}

func (m *Menu) collectInputData(data map[string]any, recursive bool) {
	for _, w := range m.widgets {
		if _, seen := data[w.ID()]; seen {
			continue
		}
		if v, err := w.Value(); err == nil {
			data[w.ID()] = v
		}
	}
	if recursive {
		for _, sub := range m.submenus {
			sub.collectInputData(data, true)
		}
	}
}

// SetSound replaces the cue sink of the menu and of every widget in it,
// and of its submenus when recursive is set.
func (m *Menu) SetSound(sound SoundPlayer, recursive bool) {
	m.style.Sound = sound
	for _, w := range m.widgets {
		w.core().setSound(sound)
	}
	if recursive {
		for _, sub := range m.submenus {
			sub.SetSound(sound, true)
		}
	}
}

func (m *Menu) setKeyboardState(state KeyboardState) {
	m.style.KeyboardState = state
	for _, w := range m.widgets {
		w.core().keyState = state
	}
	for _, sub := range m.submenus {
		sub.setKeyboardState(state)
	}
}

func (m *Menu) play(cue SoundType) {
	if m.style.Sound != nil {
		m.style.Sound.Play(cue)
	}
}

// Close ends the run of the root menu as cancelled and fires its on-close
// with the input data of the whole tree.
func (m *Menu) Close() {
	r := m.root()
	if r.closed {
		return
	}
	r.closed = true
	r.play(SoundCloseMenu)
	r.settings.OnClose.invoke(r.GetInputData(true))
}

// Submit ends the run of the root menu successfully, typically from a
// button binding.
func (m *Menu) Submit() {
	r := m.root()
	if r.closed {
		return
	}
	r.closed = true
	r.submitted = true
}

func (m *Menu) Closed() bool {
	return m.root().closed
}

func (m *Menu) Submitted() bool {
	return m.root().submitted
}

// Reopen clears the closed state and returns to the root menu so the tree
// can run again.
func (m *Menu) Reopen() {
	r := m.root()
	r.closed = false
	r.submitted = false
	r.closeSubmenus()
}

func (m *Menu) closeSubmenus() {
	m.active = nil
	for _, sub := range m.submenus {
		sub.closeSubmenus()
	}
}

// Update consumes one tick of events on the innermost open menu. Up and down
// move the focus, back returns to the parent menu or closes a root menu and
// a click focuses the widget under the pointer; every other event goes to
// the focused widget.
func (m *Menu) Update(events []Event) bool {
	updated := false
	for _, ev := range events {
		if m.Closed() {
			break
		}
		if m.Current().handle(ev) {
			updated = true
		}
	}
	return updated
}

func (m *Menu) handle(ev Event) bool {
	if !internal.ValidKeyPress(ev, m.style.KeyboardState) {
		return false
	}

	flags := internal.Flags{Joystick: m.style.JoystickEnabled, Mouse: m.style.MouseEnabled}
	switch m.style.Controls.Classify(ev, flags, menuActions) {
	case internal.ActionUp:
		return m.moveFocus(-1)
	case internal.ActionDown:
		return m.moveFocus(1)
	case internal.ActionBack:
		if !m.settings.DisableClose {
			m.Back()
			return true
		}
	case internal.ActionClick:
		index := m.widgetAt(ev.X, ev.Y)
		if index < 0 {
			return false
		}
		focused := m.SetFocus(index)
		if w := m.Focused(); w != nil && w.Update([]Event{ev}) {
			return true
		}
		return focused
	}

	w := m.Focused()
	return w != nil && w.Update([]Event{ev})
}

func (m *Menu) widgetAt(x, y int32) int {
	for i, w := range m.widgets {
		if w.core().contains(x, y) {
			return i
		}
	}
	return -1
}

// Advance moves the focus highlight animation of the innermost open menu
// forward by dt seconds.
func (m *Menu) Advance(dt float32) {
	m.Current().highlight.advance(dt)
}

func (m *Menu) renderTitle() {
	font := m.style.Font
	if font == nil || m.title == "" || !m.titleCache.Changed(m.title, false) {
		return
	}

	surface, err := font.Render(m.title, m.style.TitleColor)
	if err != nil {
		internal.GetInternalLogger().Error("Failed to render menu title", "title", m.title, "error", err)
		return
	}
	m.titleCache.Store(m.title, false, surface)

	w, h := surface.Size()
	if w != m.titleRect.W || h != m.titleRect.H {
		m.titleRect = sdl.Rect{X: m.settings.X, Y: m.settings.Y, W: w, H: h}
		m.reflow = true
	}
}

func (m *Menu) alignX(width int32) int32 {
	if m.settings.Align == AlignCenter && m.settings.Width > 0 {
		return m.settings.X + (m.settings.Width-width)/2
	}
	return m.settings.X
}

func (m *Menu) layout() {
	y := m.settings.Y
	m.bottom = y
	if m.titleRect.H > 0 {
		m.titleRect.X = m.alignX(m.titleRect.W)
		m.titleRect.Y = y
		m.bottom = y + m.titleRect.H
		y += m.titleRect.H + m.settings.TitleMargin
	}

	for _, w := range m.widgets {
		r := w.Rect()
		w.SetPosition(m.alignX(r.W), y)
		m.bottom = y + r.H
		y += r.H + m.settings.WidgetMargin
	}

	m.reflow = false
	internal.GetInternalLogger().Debug("Menu layout rebuilt", "title", m.title, "widgets", len(m.widgets))
}

// Draw draws the innermost open menu. It re-renders dirty widgets and lays
// the menu out again when a widget changed size, then draws the title, the
// focus highlight, the widgets and the footer in that order.
func (m *Menu) Draw(canvas Canvas) {
	m.Current().draw(canvas)
}

func (m *Menu) draw(canvas Canvas) {
	m.renderTitle()
	for _, w := range m.widgets {
		w.core().render()
	}
	if m.reflow {
		m.layout()
	}

	if surface := m.titleCache.Surface(); surface != nil {
		canvas.Blit(surface, m.titleRect.X, m.titleRect.Y)
	}

	if w := m.Focused(); w != nil {
		pad := m.settings.HighlightPadding
		r := w.Rect()
		target := sdl.Rect{X: r.X - pad, Y: r.Y - pad, W: r.W + 2*pad, H: r.H + 2*pad}
		m.highlight.moveTo(target, m.settings.HighlightDuration, m.settings.HighlightEase)
		canvas.FillRoundedRect(m.highlight.rect(), m.settings.HighlightRadius, m.style.HighlightColor)
	}

	for _, w := range m.widgets {
		w.Draw(canvas)
	}

	if width, _ := m.footer.size(m.style); width > 0 {
		m.footer.draw(canvas, m.alignX(width), m.bottom+m.settings.FooterMargin, m.style)
	}
}

// Free releases the rendered surfaces of the title and the widgets, in m and
// in its submenus.
func (m *Menu) Free() {
	m.titleCache.Free()
	m.footer.free()
	for _, w := range m.widgets {
		w.core().cache.Free()
	}
	for _, sub := range m.submenus {
		sub.Free()
	}
}
