package gabamenu

import (
	"errors"
	"reflect"
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func newTestTextInput(t *testing.T, settings TextInputSettings) (*TextInput, *fakeSound) {
	t.Helper()
	ti, err := NewTextInput("Name: ", settings)
	if err != nil {
		t.Fatalf("NewTextInput failed: %v", err)
	}
	sound := &fakeSound{}
	ti.SetStyle(testStyle(&fakeFont{}, sound))
	return ti, sound
}

func textEvent(text string) Event {
	return Event{Type: EventTextInput, Text: text}
}

func TestTextInputTyping(t *testing.T) {
	var changes []any
	ti, sound := newTestTextInput(t, TextInputSettings{
		OnChange: Bind(func(value any, args ...any) { changes = append(changes, value) }),
	})

	if !ti.Update([]Event{textEvent("ab"), textEvent("c")}) {
		t.Fatal("expected typing to report an update")
	}
	if ti.Text() != "abc" || ti.Cursor() != 3 {
		t.Errorf("expected \"abc\" with cursor 3, got %q with cursor %d", ti.Text(), ti.Cursor())
	}
	if want := []any{"ab", "abc"}; !reflect.DeepEqual(changes, want) {
		t.Errorf("expected changes %v, got %v", want, changes)
	}
	if want := []SoundType{SoundKeyAdd, SoundKeyAdd, SoundKeyAdd}; !reflect.DeepEqual(sound.played, want) {
		t.Errorf("expected cues %v, got %v", want, sound.played)
	}
}

func TestTextInputEditing(t *testing.T) {
	ti, sound := newTestTextInput(t, TextInputSettings{Default: "hello"})

	steps := []struct {
		name       string
		event      Event
		wantText   string
		wantCursor int
	}{
		{"home", keyDown(sdl.K_HOME), "hello", 0},
		{"backspace at start", keyDown(sdl.K_BACKSPACE), "hello", 0},
		{"delete", keyDown(sdl.K_DELETE), "ello", 0},
		{"right", keyDown(sdl.K_RIGHT), "ello", 1},
		{"insert", textEvent("X"), "eXllo", 2},
		{"end", keyDown(sdl.K_END), "eXllo", 5},
		{"right at end", keyDown(sdl.K_RIGHT), "eXllo", 5},
		{"backspace", keyDown(sdl.K_BACKSPACE), "eXll", 4},
		{"left", keyDown(sdl.K_LEFT), "eXll", 3},
		{"delete at end", keyDown(sdl.K_END), "eXll", 4},
		{"delete nothing", keyDown(sdl.K_DELETE), "eXll", 4},
	}

	for _, step := range steps {
		ti.Update([]Event{step.event})
		if ti.Text() != step.wantText || ti.Cursor() != step.wantCursor {
			t.Fatalf("%s: expected %q/%d, got %q/%d", step.name, step.wantText, step.wantCursor, ti.Text(), ti.Cursor())
		}
	}

	deletes := 0
	for _, cue := range sound.played {
		if cue == SoundKeyDelete {
			deletes++
		}
	}
	if deletes != 4 {
		t.Errorf("expected 4 key-delete cues, got %d", deletes)
	}
}

func TestTextInputMaxChar(t *testing.T) {
	ti, sound := newTestTextInput(t, TextInputSettings{MaxChar: 3})

	ti.Update([]Event{textEvent("abcd")})

	if ti.Text() != "abc" {
		t.Errorf("expected \"abc\", got %q", ti.Text())
	}
	if last := sound.played[len(sound.played)-1]; last != SoundEventError {
		t.Errorf("expected event-error cue for the rejected char, got %v", last)
	}
	if err := ti.SetValue("abcd"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}

func TestTextInputNumericTypes(t *testing.T) {
	tests := []struct {
		name      string
		inputType InputType
		typed     string
		wantText  string
		wantValue any
	}{
		{name: "int", inputType: InputInt, typed: "-12a3", wantText: "-123", wantValue: -123},
		{name: "int rejects dot", inputType: InputInt, typed: "4.2", wantText: "42", wantValue: 42},
		{name: "int rejects inner minus", inputType: InputInt, typed: "1-2", wantText: "12", wantValue: 12},
		{name: "float", inputType: InputFloat, typed: "3.14.15", wantText: "3.1415", wantValue: 3.1415},
		{name: "int rejects arabic-indic digits", inputType: InputInt, typed: "1٣٠2", wantText: "12", wantValue: 12},
		{name: "float rejects fullwidth digits", inputType: InputFloat, typed: "５.5", wantText: ".5", wantValue: 0.5},
		{name: "incomplete int", inputType: InputInt, typed: "-", wantText: "-", wantValue: 0},
		{name: "text", inputType: InputText, typed: "a1.-", wantText: "a1.-", wantValue: "a1.-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ti, _ := newTestTextInput(t, TextInputSettings{InputType: tt.inputType})
			ti.Update([]Event{textEvent(tt.typed)})

			if ti.Text() != tt.wantText {
				t.Errorf("expected text %q, got %q", tt.wantText, ti.Text())
			}
			if got := ti.GetValue(); got != tt.wantValue {
				t.Errorf("expected value %v (%T), got %v (%T)", tt.wantValue, tt.wantValue, got, got)
			}
		})
	}
}

func TestTextInputSetValue(t *testing.T) {
	calls := 0
	ti, _ := newTestTextInput(t, TextInputSettings{
		InputType: InputInt,
		OnChange:  Bind(func(any, ...any) { calls++ }),
	})

	if err := ti.SetValue(42); err != nil {
		t.Fatal(err)
	}
	if ti.GetValue() != 42 || ti.Cursor() != 2 {
		t.Errorf("unexpected state %v/%d", ti.GetValue(), ti.Cursor())
	}
	if err := ti.SetValue("12x"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
	if err := ti.SetValue(1.5); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue for float, got %v", err)
	}
	if err := ti.SetValue("٤٢"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue for non-ASCII digits, got %v", err)
	}
	if err := ti.SetValue([]byte("1")); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue for bytes, got %v", err)
	}
	if ti.GetValue() != 42 {
		t.Errorf("failed SetValue must keep the value, got %v", ti.GetValue())
	}
	if calls != 0 {
		t.Errorf("SetValue must not fire callbacks, got %d", calls)
	}
}

func TestNewTextInputRejectsInvalidDefault(t *testing.T) {
	if _, err := NewTextInput("Age", TextInputSettings{InputType: InputInt, Default: "abc"}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
	if _, err := NewTextInput("Age", TextInputSettings{MaxChar: -1}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}

func TestTextInputApply(t *testing.T) {
	var applied any
	ti, sound := newTestTextInput(t, TextInputSettings{
		InputType: InputFloat,
		Default:   "2.5",
		OnApply:   Bind(func(value any, args ...any) { applied = value }),
	})

	if !ti.Update([]Event{keyDown(sdl.K_RETURN)}) {
		t.Error("expected apply to report an update")
	}
	if applied != 2.5 {
		t.Errorf("expected 2.5, got %v", applied)
	}
	if !reflect.DeepEqual(sound.played, []SoundType{SoundOpenMenu}) {
		t.Errorf("expected open-menu cue, got %v", sound.played)
	}
}

func TestTextInputDisplay(t *testing.T) {
	tests := []struct {
		name     string
		settings TextInputSettings
		focused  bool
		want     string
	}{
		{name: "plain", settings: TextInputSettings{Default: "bob"}, want: "Name: bob"},
		{name: "focused shows cursor", settings: TextInputSettings{Default: "bob"}, focused: true, want: "Name: bob|"},
		{name: "password", settings: TextInputSettings{Default: "bob", Password: true}, want: "Name: ***"},
		{name: "underline", settings: TextInputSettings{Default: "bob", MaxWidth: 6, Underline: "_"}, want: "Name: bob___"},
		{name: "custom cursor", settings: TextInputSettings{Default: "", Cursor: "_"}, focused: true, want: "Name: _"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			font := &fakeFont{}
			ti, err := NewTextInput("Name: ", tt.settings)
			if err != nil {
				t.Fatal(err)
			}
			ti.SetStyle(testStyle(font, nil))
			ti.SetFocused(tt.focused)
			ti.Draw(&fakeCanvas{})

			if len(font.rendered) != 1 || font.rendered[0] != tt.want {
				t.Errorf("expected render %q, got %v", tt.want, font.rendered)
			}
		})
	}
}

func TestTextInputCursorMoveRerenders(t *testing.T) {
	font := &fakeFont{}
	ti, err := NewTextInput("Name: ", TextInputSettings{Default: "ab"})
	if err != nil {
		t.Fatal(err)
	}
	ti.SetStyle(testStyle(font, nil))
	ti.SetFocused(true)

	ti.Draw(&fakeCanvas{})
	ti.Update([]Event{keyDown(sdl.K_LEFT)})
	ti.Draw(&fakeCanvas{})
	ti.Draw(&fakeCanvas{})

	if want := []string{"Name: ab|", "Name: a|b"}; !reflect.DeepEqual(font.rendered, want) {
		t.Errorf("expected renders %v, got %v", want, font.rendered)
	}
}
