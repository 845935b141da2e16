package internal

type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionApply
	ActionBack
	ActionClick
	ActionBackspace
	ActionDelete
	ActionHome
	ActionEnd
	ActionText
)

func (a Action) String() string {
	switch a {
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionApply:
		return "Apply"
	case ActionBack:
		return "Back"
	case ActionClick:
		return "Click"
	case ActionBackspace:
		return "Backspace"
	case ActionDelete:
		return "Delete"
	case ActionHome:
		return "Home"
	case ActionEnd:
		return "End"
	case ActionText:
		return "Text"
	default:
		return "None"
	}
}

// Flags are the modal switches that enable the secondary input devices.
type Flags struct {
	Joystick bool
	Mouse    bool
}

// Matches reports whether ev triggers action under the given flags.
// Joystick readings only count when flags.Joystick is set, pointer events
// only when flags.Mouse is set.
func (c *Controls) Matches(action Action, ev Event, flags Flags) bool {
	keyDown := ev.Type == EventKeyDown
	hat := flags.Joystick && ev.Type == EventJoyHatMotion
	axis := flags.Joystick && ev.Type == EventJoyAxisMotion
	button := flags.Joystick && ev.Type == EventJoyButtonDown

	switch action {
	case ActionLeft:
		return keyDown && ev.Key == c.KeyLeft ||
			hat && ev.Hat == c.JoyLeft ||
			axis && ev.Axis == c.JoyAxisX && ev.Value < -c.JoyDeadzone
	case ActionRight:
		return keyDown && ev.Key == c.KeyRight ||
			hat && ev.Hat == c.JoyRight ||
			axis && ev.Axis == c.JoyAxisX && ev.Value > c.JoyDeadzone
	case ActionUp:
		return keyDown && ev.Key == c.KeyUp ||
			hat && ev.Hat == c.JoyUp ||
			axis && ev.Axis == c.JoyAxisY && ev.Value < -c.JoyDeadzone
	case ActionDown:
		return keyDown && ev.Key == c.KeyDown ||
			hat && ev.Hat == c.JoyDown ||
			axis && ev.Axis == c.JoyAxisY && ev.Value > c.JoyDeadzone
	case ActionApply:
		return keyDown && ev.Key == c.KeyApply ||
			button && c.isButton(ev, c.JoyButtonSelect, c.ControllerButtonSelect)
	case ActionBack:
		return keyDown && ev.Key == c.KeyBack ||
			button && c.isButton(ev, c.JoyButtonBack, c.ControllerButtonBack)
	case ActionClick:
		return flags.Mouse && ev.Type == EventMouseButtonUp
	case ActionBackspace:
		return keyDown && ev.Key == c.KeyBackspace
	case ActionDelete:
		return keyDown && ev.Key == c.KeyDelete
	case ActionHome:
		return keyDown && ev.Key == c.KeyHome
	case ActionEnd:
		return keyDown && ev.Key == c.KeyEnd
	case ActionText:
		return ev.Type == EventTextInput && ev.Text != ""
	}
	return false
}

func (c *Controls) isButton(ev Event, joystick, controller uint8) bool {
	if ev.Controller {
		return ev.Button == controller
	}
	return ev.Button == joystick
}

// Classify evaluates the actions in priority order and returns the first one
// ev matches, or ActionNone.
func (c *Controls) Classify(ev Event, flags Flags, order []Action) Action {
	for _, action := range order {
		if c.Matches(action, ev, flags) {
			return action
		}
	}
	return ActionNone
}
