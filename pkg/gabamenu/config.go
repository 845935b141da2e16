package gabamenu

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pawndev/gabamenu/pkg/gabamenu/internal"
	"github.com/veandco/go-sdl2/sdl"
)

// Config is the TOML file a host application ships next to its binary.
//
//	joystick_enabled = true
//	language = "fr"
//
//	[font]
//	path = "/mnt/SDCARD/fonts/menu.ttf"
//	size = 28
//
//	[colors]
//	selected = "#000000"
//	highlight = "#FFFFFF"
//
//	[sound]
//	enabled = true
//	dir = "sounds"
type Config struct {
	JoystickEnabled bool     `toml:"joystick_enabled"`
	MouseEnabled    bool     `toml:"mouse_enabled"`
	Language        string   `toml:"language"`
	MessageFiles    []string `toml:"message_files"`
	ControlsFile    string   `toml:"controls_file"`

	Font   FontConfig  `toml:"font"`
	Colors ColorConfig `toml:"colors"`
	Sound  SoundConfig `toml:"sound"`
	Log    LogConfig   `toml:"log"`
}

type FontConfig struct {
	Path string `toml:"path"`
	Size int    `toml:"size"`
	// ScaleToWindow grows or shrinks Size with the window width.
	ScaleToWindow bool `toml:"scale_to_window"`
}

// ColorConfig holds "#RRGGBB" colours. Empty entries keep the theme colour.
type ColorConfig struct {
	Font       string `toml:"font"`
	Selected   string `toml:"selected"`
	Highlight  string `toml:"highlight"`
	Title      string `toml:"title"`
	Background string `toml:"background"`
}

type SoundConfig struct {
	Enabled       bool    `toml:"enabled"`
	Dir           string  `toml:"dir"`
	Volume        float64 `toml:"volume"`
	UniqueChannel bool    `toml:"unique_channel"`
	Frequency     int     `toml:"frequency"`
	Channels      int     `toml:"channels"`
	Buffer        int     `toml:"buffer"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

func DefaultConfig() Config {
	sound := DefaultSoundSettings()
	return Config{
		Font: FontConfig{Size: internal.DefaultFontSize},
		Sound: SoundConfig{
			Volume:        DefaultSoundOptions().Volume,
			UniqueChannel: sound.UniqueChannel,
			Frequency:     sound.Frequency,
			Channels:      sound.Channels,
			Buffer:        sound.Buffer,
		},
		Log: LogConfig{Level: "ERROR"},
	}
}

// LoadConfig reads the TOML file at path over the defaults. A missing file
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		internal.GetInternalLogger().Debug("No config file, using defaults", "path", path)
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	for _, key := range md.Undecoded() {
		internal.GetInternalLogger().Warn("Unknown config key", "key", key.String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Font.Size < 0 {
		return fmt.Errorf("%w: font size %d", ErrInvalidValue, c.Font.Size)
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return fmt.Errorf("%w: sound volume %.2f not in [0, 1]", ErrInvalidValue, c.Sound.Volume)
	}
	if c.Sound.Frequency <= 0 || c.Sound.Channels <= 0 || c.Sound.Buffer <= 0 {
		return fmt.Errorf("%w: sound frequency, channels and buffer must be positive", ErrInvalidValue)
	}
	if _, err := c.Theme(internal.DefaultTheme); err != nil {
		return err
	}
	return nil
}

// Theme overlays the configured font and colours on base.
func (c Config) Theme(base Theme) (Theme, error) {
	theme := base
	if c.Font.Path != "" {
		theme.FontPath = c.Font.Path
	}
	if c.Font.Size > 0 {
		theme.FontSize = c.Font.Size
	}

	colors := []struct {
		name  string
		value string
		dst   *sdl.Color
	}{
		{"font", c.Colors.Font, &theme.FontColor},
		{"selected", c.Colors.Selected, &theme.SelectedColor},
		{"highlight", c.Colors.Highlight, &theme.HighlightColor},
		{"title", c.Colors.Title, &theme.TitleColor},
		{"background", c.Colors.Background, &theme.BackgroundColor},
	}
	for _, color := range colors {
		if color.value == "" {
			continue
		}
		parsed, err := internal.ParseHexColor(color.value)
		if err != nil {
			return base, fmt.Errorf("%w: %s colour: %v", ErrInvalidValue, color.name, err)
		}
		*color.dst = parsed
	}
	return theme, nil
}

// Style builds a widget style from the config and theme. Font and Sound are
// left for the caller.
func (c Config) Style(theme Theme) (Style, error) {
	controls := internal.GetControls()
	if c.ControlsFile != "" {
		loaded, err := internal.LoadControlsFromJSON(c.ControlsFile)
		if err != nil {
			return Style{}, fmt.Errorf("failed to load controls %s: %w", c.ControlsFile, err)
		}
		controls = loaded
	}

	return Style{
		FontColor:       theme.FontColor,
		SelectedColor:   theme.SelectedColor,
		HighlightColor:  theme.HighlightColor,
		TitleColor:      theme.TitleColor,
		JoystickEnabled: c.JoystickEnabled,
		MouseEnabled:    c.MouseEnabled,
		Controls:        controls,
	}, nil
}

func (c Config) SoundSettings() SoundSettings {
	return SoundSettings{
		UniqueChannel: c.Sound.UniqueChannel,
		Frequency:     c.Sound.Frequency,
		Channels:      c.Sound.Channels,
		Buffer:        c.Sound.Buffer,
	}
}
