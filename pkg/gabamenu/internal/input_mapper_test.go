package internal

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestLoadControlsFromBytes(t *testing.T) {
	c, err := LoadControlsFromBytes([]byte(`{"key_left": 97, "joy_deadzone": 8000, "joy_button_select": 0}`))
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultControls()
	want.KeyLeft = sdl.K_a
	want.JoyDeadzone = 8000
	want.JoyButtonSelect = 0
	if !reflect.DeepEqual(c, want) {
		t.Errorf("expected %+v, got %+v", want, c)
	}
}

func TestLoadControlsFromBytesErrors(t *testing.T) {
	for _, data := range []string{`{`, `{"joy_deadzone": -1}`, `{"joy_up": 300}`} {
		if _, err := LoadControlsFromBytes([]byte(data)); err == nil {
			t.Errorf("expected an error for %s", data)
		}
	}
}

func TestControlsJSONRoundTrip(t *testing.T) {
	c := DefaultControls()
	c.KeyApply = sdl.K_SPACE
	c.JoyAxisY = 4
	path := filepath.Join(t.TempDir(), "controls.json")

	if err := c.SaveToJSON(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadControlsFromJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded, c) {
		t.Errorf("expected %+v, got %+v", c, loaded)
	}
}

func TestGetControlsFromBytes(t *testing.T) {
	SetControlsBytes([]byte(`{"key_back": 8}`))
	defer SetControlsBytes(nil)

	if c := GetControls(); c.KeyBack != sdl.K_BACKSPACE {
		t.Errorf("expected embedded controls, got %+v", c)
	}

	SetControlsBytes([]byte(`not json`))
	t.Setenv(MappingPathEnvVar, "")
	if !reflect.DeepEqual(GetControls(), DefaultControls()) {
		t.Error("expected defaults for unreadable controls")
	}
}
