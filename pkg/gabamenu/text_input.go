package gabamenu

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/pawndev/gabamenu/pkg/gabamenu/internal"
)

type InputType int

const (
	InputText InputType = iota
	InputInt
	InputFloat
)

func (t InputType) String() string {
	switch t {
	case InputInt:
		return "int"
	case InputFloat:
		return "float"
	default:
		return "text"
	}
}

// TextInputSettings configures a TextInput.
// MaxChar limits the number of characters, zero means unlimited.
// Underline pads the displayed value with the given string up to MaxWidth characters.
// Password masks the value with PasswordChar ('*' when unset).
type TextInputSettings struct {
	ID           string
	Default      string
	InputType    InputType
	MaxChar      int
	MaxWidth     int
	Underline    string
	Password     bool
	PasswordChar rune
	Cursor       string
	OnChange     Binding
	OnApply      Binding
}

// TextInput is an editable single line field rendered as "Label" followed by
// the value. The cursor is shown while the widget is focused.
type TextInput struct {
	widgetBase
	settings TextInputSettings
	value    []rune
	cursor   int
}

func NewTextInput(label string, settings TextInputSettings) (*TextInput, error) {
	if settings.MaxChar < 0 || settings.MaxWidth < 0 {
		return nil, fmt.Errorf("text input %q: %w: negative size", label, ErrInvalidValue)
	}
	if settings.PasswordChar == 0 {
		settings.PasswordChar = '*'
	}
	if settings.Cursor == "" {
		settings.Cursor = "|"
	}

	t := &TextInput{
		widgetBase: newWidgetBase(settings.ID, label),
		settings:   settings,
	}
	if err := t.SetValue(settings.Default); err != nil {
		return nil, fmt.Errorf("text input %q: %w", label, err)
	}

	t.onChange = settings.OnChange
	t.onApply = settings.OnApply
	t.text = t.displayText
	t.rules = []inputRule{
		{action: internal.ActionBackspace, cue: SoundKeyDelete, handle: func(Event) bool { return t.Backspace() }},
		{action: internal.ActionDelete, cue: SoundKeyDelete, handle: func(Event) bool { return t.Delete() }},
		{action: internal.ActionLeft, handle: func(Event) bool { return t.moveCursor(t.cursor - 1) }},
		{action: internal.ActionRight, handle: func(Event) bool { return t.moveCursor(t.cursor + 1) }},
		{action: internal.ActionHome, handle: func(Event) bool { return t.moveCursor(0) }},
		{action: internal.ActionEnd, handle: func(Event) bool { return t.moveCursor(len(t.value)) }},
		{action: internal.ActionApply, cue: SoundOpenMenu, handle: func(Event) bool { t.Apply(); return true }},
		{action: internal.ActionText, handle: func(ev Event) bool { return t.Insert(ev.Text) }},
	}

	return t, nil
}

func (t *TextInput) displayText() string {
	var b strings.Builder
	b.WriteString(t.label)

	shown := t.value
	if t.settings.Password {
		shown = []rune(strings.Repeat(string(t.settings.PasswordChar), len(t.value)))
	}

	if t.focused {
		b.WriteString(string(shown[:t.cursor]))
		b.WriteString(t.settings.Cursor)
		b.WriteString(string(shown[t.cursor:]))
	} else {
		b.WriteString(string(shown))
	}

	if t.settings.Underline != "" && t.settings.MaxWidth > len(t.value) {
		b.WriteString(strings.Repeat(t.settings.Underline, t.settings.MaxWidth-len(t.value)))
	}
	return b.String()
}

// Text returns the raw characters typed so far.
func (t *TextInput) Text() string {
	return string(t.value)
}

func (t *TextInput) Cursor() int {
	return t.cursor
}

// GetValue converts the text to the input type. Incomplete numbers such as
// "" or "-" read as zero.
func (t *TextInput) GetValue() any {
	text := string(t.value)
	switch t.settings.InputType {
	case InputInt:
		n, err := strconv.Atoi(text)
		if err != nil {
			return 0
		}
		return n
	case InputFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0.0
		}
		return f
	default:
		return text
	}
}

func (t *TextInput) Value() (any, error) {
	return t.GetValue(), nil
}

func (t *TextInput) Set(value any) error {
	return t.SetValue(value)
}

// SetValue replaces the text without firing callbacks. Strings are checked
// against the input type; ints and floats are accepted by the matching type.
func (t *TextInput) SetValue(value any) error {
	var text string
	switch v := value.(type) {
	case string:
		text = v
	case int:
		if t.settings.InputType == InputFloat {
			text = strconv.FormatFloat(float64(v), 'f', -1, 64)
		} else {
			text = strconv.Itoa(v)
		}
	case float64:
		if t.settings.InputType != InputFloat {
			return fmt.Errorf("%w: float for %s input", ErrInvalidValue, t.settings.InputType)
		}
		text = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Errorf("%w: %T", ErrInvalidValue, value)
	}

	runes := []rune(text)
	if t.settings.MaxChar > 0 && len(runes) > t.settings.MaxChar {
		return fmt.Errorf("%w: %d characters exceed limit of %d", ErrInvalidValue, len(runes), t.settings.MaxChar)
	}
	if !t.accepts(runes) {
		return fmt.Errorf("%w: %q is not a valid %s", ErrInvalidValue, text, t.settings.InputType)
	}

	t.value = runes
	t.cursor = len(runes)
	t.cache.Invalidate()
	return nil
}

// accepts reports whether text is a valid, possibly incomplete, entry for
// the input type.
func (t *TextInput) accepts(text []rune) bool {
	switch t.settings.InputType {
	case InputInt, InputFloat:
		dot := false
		for i, r := range text {
			switch {
			case r >= '0' && r <= '9':
			case r == '-' && i == 0:
			case r == '.' && t.settings.InputType == InputFloat && !dot:
				dot = true
			default:
				return false
			}
		}
		return true
	default:
		for _, r := range text {
			if !unicode.IsPrint(r) {
				return false
			}
		}
		return true
	}
}

// Insert types text at the cursor one character at a time. Characters that
// would break the input type or the length limit are rejected with the
// event-error cue.
func (t *TextInput) Insert(text string) bool {
	changed := false
	for _, r := range text {
		if t.settings.MaxChar > 0 && len(t.value) >= t.settings.MaxChar {
			t.play(SoundEventError)
			continue
		}

		candidate := make([]rune, 0, len(t.value)+1)
		candidate = append(candidate, t.value[:t.cursor]...)
		candidate = append(candidate, r)
		candidate = append(candidate, t.value[t.cursor:]...)
		if !t.accepts(candidate) {
			t.play(SoundEventError)
			continue
		}

		t.value = candidate
		t.cursor++
		t.play(SoundKeyAdd)
		changed = true
	}

	if changed {
		t.cache.Invalidate()
		t.change()
	}
	return changed
}

// Backspace removes the character before the cursor.
func (t *TextInput) Backspace() bool {
	if t.cursor == 0 {
		return false
	}
	t.value = append(t.value[:t.cursor-1], t.value[t.cursor:]...)
	t.cursor--
	t.cache.Invalidate()
	t.change()
	return true
}

// Delete removes the character under the cursor.
func (t *TextInput) Delete() bool {
	if t.cursor >= len(t.value) {
		return false
	}
	t.value = append(t.value[:t.cursor], t.value[t.cursor+1:]...)
	t.cache.Invalidate()
	t.change()
	return true
}

func (t *TextInput) moveCursor(position int) bool {
	position = max(0, min(position, len(t.value)))
	if position == t.cursor {
		return false
	}
	t.cursor = position
	t.cache.Invalidate()
	return true
}

func (t *TextInput) change() {
	t.onChange.invoke(t.GetValue())
}

// Apply fires on-apply with the current value.
func (t *TextInput) Apply() {
	t.onApply.invoke(t.GetValue())
}
