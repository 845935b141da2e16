package internal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/sdl"
)

const MappingPathEnvVar = "INPUT_MAPPING_PATH"

var controlsBytes []byte

func SetControlsBytes(data []byte) {
	controlsBytes = data
}

// Controls binds the logical widget actions to physical inputs.
// Hat values use the SDL hat constants, axis and button fields are device indices.
type Controls struct {
	KeyLeft      sdl.Keycode
	KeyRight     sdl.Keycode
	KeyUp        sdl.Keycode
	KeyDown      sdl.Keycode
	KeyApply     sdl.Keycode
	KeyBack      sdl.Keycode
	KeyBackspace sdl.Keycode
	KeyDelete    sdl.Keycode
	KeyHome      sdl.Keycode
	KeyEnd       sdl.Keycode

	JoyLeft  uint8
	JoyRight uint8
	JoyUp    uint8
	JoyDown  uint8

	JoyAxisX    uint8
	JoyAxisY    uint8
	JoyDeadzone int16

	JoyButtonSelect uint8
	JoyButtonBack   uint8

	ControllerButtonSelect uint8
	ControllerButtonBack   uint8
}

// controlsFile is the on-disk shape of Controls. Keys are raw SDL codes.
type controlsFile struct {
	KeyLeft      *int `json:"key_left,omitempty"`
	KeyRight     *int `json:"key_right,omitempty"`
	KeyUp        *int `json:"key_up,omitempty"`
	KeyDown      *int `json:"key_down,omitempty"`
	KeyApply     *int `json:"key_apply,omitempty"`
	KeyBack      *int `json:"key_back,omitempty"`
	KeyBackspace *int `json:"key_backspace,omitempty"`
	KeyDelete    *int `json:"key_delete,omitempty"`
	KeyHome      *int `json:"key_home,omitempty"`
	KeyEnd       *int `json:"key_end,omitempty"`

	JoyLeft  *uint8 `json:"joy_left,omitempty"`
	JoyRight *uint8 `json:"joy_right,omitempty"`
	JoyUp    *uint8 `json:"joy_up,omitempty"`
	JoyDown  *uint8 `json:"joy_down,omitempty"`

	JoyAxisX    *uint8 `json:"joy_axis_x,omitempty"`
	JoyAxisY    *uint8 `json:"joy_axis_y,omitempty"`
	JoyDeadzone *int16 `json:"joy_deadzone,omitempty"`

	JoyButtonSelect *uint8 `json:"joy_button_select,omitempty"`
	JoyButtonBack   *uint8 `json:"joy_button_back,omitempty"`

	ControllerButtonSelect *uint8 `json:"controller_button_select,omitempty"`
	ControllerButtonBack   *uint8 `json:"controller_button_back,omitempty"`
}

func DefaultControls() *Controls {
	return &Controls{
		KeyLeft:      sdl.K_LEFT,
		KeyRight:     sdl.K_RIGHT,
		KeyUp:        sdl.K_UP,
		KeyDown:      sdl.K_DOWN,
		KeyApply:     sdl.K_RETURN,
		KeyBack:      sdl.K_ESCAPE,
		KeyBackspace: sdl.K_BACKSPACE,
		KeyDelete:    sdl.K_DELETE,
		KeyHome:      sdl.K_HOME,
		KeyEnd:       sdl.K_END,

		JoyLeft:  sdl.HAT_LEFT,
		JoyRight: sdl.HAT_RIGHT,
		JoyUp:    sdl.HAT_UP,
		JoyDown:  sdl.HAT_DOWN,

		JoyAxisX:    0,
		JoyAxisY:    1,
		JoyDeadzone: 16384,

		JoyButtonSelect: 8,
		JoyButtonBack:   1,

		ControllerButtonSelect: uint8(sdl.CONTROLLER_BUTTON_A),
		ControllerButtonBack:   uint8(sdl.CONTROLLER_BUTTON_B),
	}
}

// GetControls returns the controls from embedded bytes if set,
// from the environment variable if set, otherwise the defaults.
func GetControls() *Controls {
	logger := GetInternalLogger()

	if len(controlsBytes) > 0 {
		controls, err := LoadControlsFromBytes(controlsBytes)
		if err == nil {
			logger.Info("Loaded custom controls from embedded bytes")
			return controls
		}
		logger.Warn("Failed to load custom controls from bytes, trying file path", "error", err)
	}

	mappingPath := os.Getenv(MappingPathEnvVar)
	if mappingPath != "" {
		controls, err := LoadControlsFromJSON(mappingPath)
		if err == nil {
			logger.Info("Loaded custom controls from environment variable", "path", mappingPath)
			return controls
		}
		logger.Warn("Failed to load custom controls, using default", "path", mappingPath, "error", err)
	}
	return DefaultControls()
}

func LoadControlsFromJSON(filePath string) (*Controls, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	return LoadControlsFromBytes(data)
}

// LoadControlsFromBytes overlays the bindings present in data on top of the defaults.
func LoadControlsFromBytes(data []byte) (*Controls, error) {
	var file controlsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	c := DefaultControls()

	setKey := func(dst *sdl.Keycode, src *int) {
		if src != nil {
			*dst = sdl.Keycode(*src)
		}
	}
	setByte := func(dst *uint8, src *uint8) {
		if src != nil {
			*dst = *src
		}
	}

	setKey(&c.KeyLeft, file.KeyLeft)
	setKey(&c.KeyRight, file.KeyRight)
	setKey(&c.KeyUp, file.KeyUp)
	setKey(&c.KeyDown, file.KeyDown)
	setKey(&c.KeyApply, file.KeyApply)
	setKey(&c.KeyBack, file.KeyBack)
	setKey(&c.KeyBackspace, file.KeyBackspace)
	setKey(&c.KeyDelete, file.KeyDelete)
	setKey(&c.KeyHome, file.KeyHome)
	setKey(&c.KeyEnd, file.KeyEnd)

	setByte(&c.JoyLeft, file.JoyLeft)
	setByte(&c.JoyRight, file.JoyRight)
	setByte(&c.JoyUp, file.JoyUp)
	setByte(&c.JoyDown, file.JoyDown)
	setByte(&c.JoyAxisX, file.JoyAxisX)
	setByte(&c.JoyAxisY, file.JoyAxisY)
	setByte(&c.JoyButtonSelect, file.JoyButtonSelect)
	setByte(&c.JoyButtonBack, file.JoyButtonBack)
	setByte(&c.ControllerButtonSelect, file.ControllerButtonSelect)
	setByte(&c.ControllerButtonBack, file.ControllerButtonBack)

	if file.JoyDeadzone != nil {
		if *file.JoyDeadzone < 0 {
			return nil, fmt.Errorf("joy_deadzone must not be negative, got %d", *file.JoyDeadzone)
		}
		c.JoyDeadzone = *file.JoyDeadzone
	}

	return c, nil
}

// ToJSON converts the Controls to JSON bytes in the export format.
func (c *Controls) ToJSON() ([]byte, error) {
	key := func(k sdl.Keycode) *int {
		v := int(k)
		return &v
	}
	b := func(v uint8) *uint8 { return &v }
	deadzone := c.JoyDeadzone

	file := controlsFile{
		KeyLeft:      key(c.KeyLeft),
		KeyRight:     key(c.KeyRight),
		KeyUp:        key(c.KeyUp),
		KeyDown:      key(c.KeyDown),
		KeyApply:     key(c.KeyApply),
		KeyBack:      key(c.KeyBack),
		KeyBackspace: key(c.KeyBackspace),
		KeyDelete:    key(c.KeyDelete),
		KeyHome:      key(c.KeyHome),
		KeyEnd:       key(c.KeyEnd),

		JoyLeft:  b(c.JoyLeft),
		JoyRight: b(c.JoyRight),
		JoyUp:    b(c.JoyUp),
		JoyDown:  b(c.JoyDown),

		JoyAxisX:    b(c.JoyAxisX),
		JoyAxisY:    b(c.JoyAxisY),
		JoyDeadzone: &deadzone,

		JoyButtonSelect:        b(c.JoyButtonSelect),
		JoyButtonBack:          b(c.JoyButtonBack),
		ControllerButtonSelect: b(c.ControllerButtonSelect),
		ControllerButtonBack:   b(c.ControllerButtonBack),
	}

	return json.MarshalIndent(file, "", "  ")
}

func (c *Controls) SaveToJSON(filePath string) error {
	data, err := c.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal controls to JSON: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	return nil
}
