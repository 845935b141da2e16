package internal

import (
	"fmt"
	"sync"

	"github.com/veandco/go-sdl2/sdl"
)

type EventType int

const (
	EventNone EventType = iota
	EventKeyDown
	EventKeyUp
	EventTextInput
	EventMouseButtonUp
	EventJoyHatMotion
	EventJoyAxisMotion
	EventJoyButtonDown
)

func (t EventType) String() string {
	switch t {
	case EventKeyDown:
		return "KeyDown"
	case EventKeyUp:
		return "KeyUp"
	case EventTextInput:
		return "TextInput"
	case EventMouseButtonUp:
		return "MouseButtonUp"
	case EventJoyHatMotion:
		return "JoyHatMotion"
	case EventJoyAxisMotion:
		return "JoyAxisMotion"
	case EventJoyButtonDown:
		return "JoyButtonDown"
	default:
		return "None"
	}
}

// Event is one discrete input event delivered to a widget during a tick.
// Only the fields relevant to Type are populated.
type Event struct {
	Type EventType

	Key    sdl.Keycode
	Mod    uint16
	Repeat bool
	Text   string

	// Synthetic events were not produced by the SDL keyboard (generated by
	// code, or read from a device SDL does not track) and skip the
	// keyboard-state check of key-press validation.
	Synthetic bool

	X, Y        int32
	MouseButton uint8

	Hat        uint8
	Axis       uint8
	Value      int16
	Button     uint8
	Controller bool
}

// KeyboardState reports the live state of the keyboard, used to drop stale key-down events.
type KeyboardState interface {
	AnyKeyPressed() bool
}

type SDLKeyboardState struct{}

func (SDLKeyboardState) AnyKeyPressed() bool {
	for _, pressed := range sdl.GetKeyboardState() {
		if pressed != 0 {
			return true
		}
	}
	return false
}

var modifierKeys = map[sdl.Keycode]bool{
	sdl.K_LSHIFT:   true,
	sdl.K_RSHIFT:   true,
	sdl.K_LCTRL:    true,
	sdl.K_RCTRL:    true,
	sdl.K_LALT:     true,
	sdl.K_RALT:     true,
	sdl.K_LGUI:     true,
	sdl.K_RGUI:     true,
	sdl.K_CAPSLOCK: true,
	sdl.K_MODE:     true,
}

// ValidKeyPress filters key-down events that must not reach a widget: held
// modifier keys on their own, and events whose key is no longer down when the
// tick processes them. Non key-down events are always valid.
func ValidKeyPress(ev Event, state KeyboardState) bool {
	if ev.Type != EventKeyDown || ev.Synthetic {
		return true
	}
	if modifierKeys[ev.Key] {
		return false
	}
	if state != nil && !state.AnyKeyPressed() {
		GetInternalLogger().Debug("Dropping stale key press", "key", sdl.GetKeyName(ev.Key))
		return false
	}
	return true
}

// SDL mirrors every game controller input as a raw joystick event as well.
// Raw events from joysticks opened as controllers are dropped so one press
// is delivered once.
var (
	controllerJoysticksMu sync.RWMutex
	controllerJoysticks   = make(map[sdl.JoystickID]bool)
)

func RegisterGameControllerJoystick(id sdl.JoystickID) {
	controllerJoysticksMu.Lock()
	defer controllerJoysticksMu.Unlock()
	controllerJoysticks[id] = true
}

func IsGameControllerJoystick(id sdl.JoystickID) bool {
	controllerJoysticksMu.RLock()
	defer controllerJoysticksMu.RUnlock()
	return controllerJoysticks[id]
}

func ResetGameControllerJoysticks() {
	controllerJoysticksMu.Lock()
	defer controllerJoysticksMu.Unlock()
	controllerJoysticks = make(map[sdl.JoystickID]bool)
}

// FromSDL translates an SDL event into an Event. The second result is false
// for events the widgets never consume.
func FromSDL(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.KeyboardEvent:
		ev := Event{
			Key:    e.Keysym.Sym,
			Mod:    e.Keysym.Mod,
			Repeat: e.Repeat != 0,
		}
		if e.Type == sdl.KEYDOWN {
			ev.Type = EventKeyDown
		} else {
			ev.Type = EventKeyUp
		}
		return ev, true
	case *sdl.TextInputEvent:
		text := e.GetText()
		if text == "" {
			return Event{}, false
		}
		return Event{Type: EventTextInput, Text: text}, true
	case *sdl.MouseButtonEvent:
		if e.Type != sdl.MOUSEBUTTONUP {
			return Event{}, false
		}
		return Event{Type: EventMouseButtonUp, X: e.X, Y: e.Y, MouseButton: e.Button}, true
	case *sdl.JoyHatEvent:
		if IsGameControllerJoystick(e.Which) {
			return Event{}, false
		}
		return Event{Type: EventJoyHatMotion, Hat: e.Value}, true
	case *sdl.JoyAxisEvent:
		if IsGameControllerJoystick(e.Which) {
			return Event{}, false
		}
		return Event{Type: EventJoyAxisMotion, Axis: e.Axis, Value: e.Value}, true
	case *sdl.JoyButtonEvent:
		if e.Type != sdl.JOYBUTTONDOWN || IsGameControllerJoystick(e.Which) {
			return Event{}, false
		}
		return Event{Type: EventJoyButtonDown, Button: e.Button}, true
	case *sdl.ControllerAxisEvent:
		return Event{Type: EventJoyAxisMotion, Axis: e.Axis, Value: e.Value, Controller: true}, true
	case *sdl.ControllerButtonEvent:
		if e.Type != sdl.CONTROLLERBUTTONDOWN {
			return Event{}, false
		}
		if hat, ok := controllerDPad[sdl.GameControllerButton(e.Button)]; ok {
			return Event{Type: EventJoyHatMotion, Hat: hat, Controller: true}, true
		}
		return Event{Type: EventJoyButtonDown, Button: e.Button, Controller: true}, true
	}
	return Event{}, false
}

var controllerDPad = map[sdl.GameControllerButton]uint8{
	sdl.CONTROLLER_BUTTON_DPAD_UP:    sdl.HAT_UP,
	sdl.CONTROLLER_BUTTON_DPAD_DOWN:  sdl.HAT_DOWN,
	sdl.CONTROLLER_BUTTON_DPAD_LEFT:  sdl.HAT_LEFT,
	sdl.CONTROLLER_BUTTON_DPAD_RIGHT: sdl.HAT_RIGHT,
}

func (e Event) String() string {
	switch e.Type {
	case EventKeyDown, EventKeyUp:
		return fmt.Sprintf("%s(%s)", e.Type, sdl.GetKeyName(e.Key))
	case EventTextInput:
		return fmt.Sprintf("%s(%q)", e.Type, e.Text)
	case EventMouseButtonUp:
		return fmt.Sprintf("%s(%d,%d)", e.Type, e.X, e.Y)
	case EventJoyHatMotion:
		return fmt.Sprintf("%s(%s)", e.Type, getHatDirectionName(e.Hat))
	case EventJoyAxisMotion:
		return fmt.Sprintf("%s(axis=%d value=%d)", e.Type, e.Axis, e.Value)
	case EventJoyButtonDown:
		return fmt.Sprintf("%s(%d)", e.Type, e.Button)
	}
	return e.Type.String()
}

func getHatDirectionName(value uint8) string {
	switch value {
	case sdl.HAT_CENTERED:
		return "Hat Centered"
	case sdl.HAT_UP:
		return "Hat Up"
	case sdl.HAT_DOWN:
		return "Hat Down"
	case sdl.HAT_LEFT:
		return "Hat Left"
	case sdl.HAT_RIGHT:
		return "Hat Right"
	case sdl.HAT_LEFTUP:
		return "Hat Left Up"
	case sdl.HAT_LEFTDOWN:
		return "Hat Left Down"
	case sdl.HAT_RIGHTUP:
		return "Hat Right Up"
	case sdl.HAT_RIGHTDOWN:
		return "Hat Right Down"
	default:
		return "Hat Unknown"
	}
}
