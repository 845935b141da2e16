package gabamenu

import (
	"fmt"
	"reflect"

	"github.com/pawndev/gabamenu/pkg/gabamenu/internal"
)

// Option represents a single choice of a Selector.
// Label is the text displayed between the arrows.
// Payload is handed to the callbacks after the selector value, in order.
type Option struct {
	Label   string
	Payload []any
}

func NewOption(label string, payload ...any) Option {
	return Option{Label: label, Payload: payload}
}

func (o Option) equal(other Option) bool {
	return o.Label == other.Label && reflect.DeepEqual(o.Payload, other.Payload)
}

// Selection is the value of a Selector: the selected label and its index.
type Selection struct {
	Label string
	Index int
}

// SelectorSettings configures a Selector.
// Default is the initially selected index. Negative values count from the end
// of the list, values past the end are rejected.
type SelectorSettings struct {
	ID       string
	Default  int
	OnChange Binding
	OnApply  Binding
}

// Selector cycles through a fixed list of options with left/right input and
// renders as "Label< Option >".
type Selector struct {
	widgetBase
	options []Option
	index   int
}

func validateOptions(options []Option) error {
	if len(options) == 0 {
		return ErrEmptyOptions
	}
	for i, option := range options {
		if option.Label == "" {
			return fmt.Errorf("%w: option %d", ErrInvalidLabel, i)
		}
	}
	return nil
}

func NewSelector(label string, options []Option, settings SelectorSettings) (*Selector, error) {
	if err := validateOptions(options); err != nil {
		return nil, fmt.Errorf("selector %q: %w", label, err)
	}

	// Negative defaults of any size wrap modulo len; only indexes past the end are rejected.
	n := len(options)
	if settings.Default >= n {
		return nil, fmt.Errorf("selector %q: %w: %d with %d options", label, ErrInvalidDefault, settings.Default, n)
	}

	s := &Selector{
		widgetBase: newWidgetBase(settings.ID, label),
		options:    append([]Option(nil), options...),
		index:      (settings.Default%n + n) % n,
	}
	s.onChange = settings.OnChange
	s.onApply = settings.OnApply
	s.text = s.displayText
	s.rules = []inputRule{
		{action: internal.ActionLeft, cue: SoundKeyAdd, handle: func(Event) bool { s.Left(); return true }},
		{action: internal.ActionRight, cue: SoundKeyAdd, handle: func(Event) bool { s.Right(); return true }},
		{action: internal.ActionApply, cue: SoundOpenMenu, handle: func(Event) bool { s.Apply(); return true }},
		{action: internal.ActionClick, handle: s.click},
	}

	return s, nil
}

func (s *Selector) displayText() string {
	return fmt.Sprintf("%s< %s >", s.label, s.options[s.index].Label)
}

// GetValue returns the selected label and its index.
func (s *Selector) GetValue() (string, int) {
	return s.options[s.index].Label, s.index
}

func (s *Selector) Value() (any, error) {
	return s.selection(), nil
}

func (s *Selector) Set(value any) error {
	return s.SetValue(value)
}

func (s *Selector) selection() Selection {
	return Selection{Label: s.options[s.index].Label, Index: s.index}
}

// Options returns a copy of the option list.
func (s *Selector) Options() []Option {
	return append([]Option(nil), s.options...)
}

// Left selects the previous option, wrapping to the last one, and fires on-change.
func (s *Selector) Left() {
	s.move(-1)
}

// Right selects the next option, wrapping to the first one, and fires on-change.
func (s *Selector) Right() {
	s.move(1)
}

func (s *Selector) move(step int) {
	n := len(s.options)
	s.index = (s.index + step + n) % n
	s.cache.Invalidate()
	s.change()
}

func (s *Selector) change() {
	s.onChange.invoke(s.selection(), s.options[s.index].Payload...)
}

// Apply fires on-apply with the current selection.
func (s *Selector) Apply() {
	s.onApply.invoke(s.selection(), s.options[s.index].Payload...)
}

// SetValue selects an option without firing callbacks. A string selects the
// first option with that label, an int selects by index.
func (s *Selector) SetValue(item any) error {
	switch v := item.(type) {
	case string:
		for i, option := range s.options {
			if option.Label == v {
				s.choose(i)
				return nil
			}
		}
		return fmt.Errorf("%w: %q", ErrNotFound, v)
	case int:
		if v < 0 || v >= len(s.options) {
			return fmt.Errorf("%w: %d with %d options", ErrOutOfRange, v, len(s.options))
		}
		s.choose(v)
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrInvalidValue, item)
	}
}

func (s *Selector) choose(index int) {
	if s.index == index {
		return
	}
	s.index = index
	s.cache.Invalidate()
}

// UpdateElements replaces the option list. The selected option stays
// selected when an equal option is present, otherwise the index is clamped
// to the new list. Callbacks are not fired.
func (s *Selector) UpdateElements(options []Option) error {
	if err := validateOptions(options); err != nil {
		return fmt.Errorf("selector %q: %w", s.label, err)
	}

	current := s.options[s.index]
	index := -1
	for i, option := range options {
		if option.equal(current) {
			index = i
			break
		}
	}
	if index < 0 {
		index = min(s.index, len(options)-1)
	}

	s.options = append([]Option(nil), options...)
	s.index = index
	s.cache.Invalidate()
	return nil
}

// click maps a pointer release inside the widget to Left or Right depending
// on which half of the value area, right of the label, was hit.
func (s *Selector) click(ev Event) bool {
	if !s.contains(ev.X, ev.Y) {
		return false
	}

	offset := ev.X - s.rect.X - s.labelWidth
	span := s.rect.W - s.labelWidth
	if offset <= 0 || span <= 0 {
		return false
	}

	if float64(offset)/float64(span) <= 0.5 {
		s.Left()
	} else {
		s.Right()
	}
	return true
}
