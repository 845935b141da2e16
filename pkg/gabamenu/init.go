package gabamenu

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pawndev/gabamenu/pkg/gabamenu/i18n"
	"github.com/pawndev/gabamenu/pkg/gabamenu/internal"
	"github.com/pawndev/gabamenu/pkg/gabamenu/platform/cannoli"
	"github.com/pawndev/gabamenu/pkg/gabamenu/platform/nextui"
)

// Theme holds the colours and font used by menus.
type Theme = internal.Theme

// EvdevSource reads a raw /dev/input device. Pass it to RunMenu as an EventSource.
type EvdevSource = internal.EvdevSource

type ThemePreset string

const (
	ThemeDefault ThemePreset = ""
	ThemeCannoli ThemePreset = "cannoli"
	ThemeNextUI  ThemePreset = "nextui"
)

const (
	debugEnvVar        = "GABAMENU_DEBUG"
	defaultCannoliFont = "/mnt/SDCARD/System/fonts/Cannoli.ttf"
	defaultNextValPath = "/mnt/SDCARD/.userdata/shared/nextval.json"
)

type Options struct {
	WindowTitle    string
	WindowWidth    int32
	WindowHeight   int32
	ShowBackground bool

	Theme                ThemePreset
	FontPath             string
	NextValPath          string
	PrimaryThemeColorHex uint32

	ConfigFile   string
	ControlsFile string
	LogFilename  string
}

type session struct {
	config Config
	theme  Theme
	font   *internal.TTFRenderer
	sound  *Sound
	style  Style
}

var current *session

// Init initializes SDL, the window, the font and the sound engine.
// Must be called before RunMenu!
func Init(options Options) error {
	if options.LogFilename != "" {
		internal.SetLogFilename(options.LogFilename)
	}

	if os.Getenv(debugEnvVar) != "" {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}

	cfg := DefaultConfig()
	if options.ConfigFile != "" {
		loaded, err := LoadConfig(options.ConfigFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	internal.SetRawLogLevel(cfg.Log.Level)

	theme, err := cfg.Theme(presetTheme(options))
	if err != nil {
		return err
	}
	if options.PrimaryThemeColorHex != 0 && options.Theme != ThemeNextUI {
		theme.HighlightColor = internal.HexToColor(options.PrimaryThemeColorHex)
	}
	internal.SetTheme(theme)

	if options.ControlsFile != "" {
		data, err := os.ReadFile(options.ControlsFile)
		if err != nil {
			return fmt.Errorf("failed to read controls file: %w", err)
		}
		internal.SetControlsBytes(data)
	}

	if err := internal.Init(options.WindowTitle, options.WindowWidth, options.WindowHeight, options.ShowBackground); err != nil {
		return err
	}

	size := theme.FontSize
	if cfg.Font.ScaleToWindow {
		size = internal.CalculateFontSizeForResolution(size, internal.GetWindow().GetWidth())
	}
	font, err := internal.OpenFont(theme.FontPath, size)
	if err != nil {
		internal.SDLCleanup()
		return err
	}

	if len(cfg.MessageFiles) > 0 {
		if err := i18n.InitI18N(cfg.MessageFiles); err != nil {
			internal.GetInternalLogger().Error("Failed to load message files", "error", err)
		}
	}
	if cfg.Language != "" {
		if err := i18n.SetWithCode(cfg.Language); err != nil {
			internal.GetInternalLogger().Error("Invalid language code", "language", cfg.Language, "error", err)
		}
	}

	style, err := cfg.Style(theme)
	if err != nil {
		font.Close()
		internal.SDLCleanup()
		return err
	}
	style.Font = font
	style.KeyboardState = internal.SDLKeyboardState{}

	var sound *Sound
	if cfg.Sound.Enabled {
		sound = openSound(cfg)
	}
	if sound != nil {
		style.Sound = sound
	}

	current = &session{config: cfg, theme: theme, font: font, sound: sound, style: style}
	return nil
}

func presetTheme(options Options) Theme {
	switch options.Theme {
	case ThemeCannoli:
		fontPath := options.FontPath
		if fontPath == "" {
			fontPath = defaultCannoliFont
		}
		return cannoli.InitCannoliTheme(fontPath)
	case ThemeNextUI:
		path := options.NextValPath
		if path == "" {
			path = defaultNextValPath
		}
		return nextui.InitNextUITheme(path)
	default:
		theme := internal.DefaultTheme
		theme.FontPath = options.FontPath
		return theme
	}
}

func openSound(cfg Config) *Sound {
	sound := NewSound(cfg.SoundSettings())
	if err := sound.Init(); err != nil {
		internal.GetInternalLogger().Error("Sound disabled", "error", err)
		return nil
	}
	if cfg.Sound.Dir != "" {
		if err := sound.LoadSounds(cfg.Sound.Dir, cfg.Sound.Volume); err != nil {
			internal.GetInternalLogger().Error("Failed to load sounds", "dir", cfg.Sound.Dir, "error", err)
		}
	}
	return sound
}

// Close tidies up the sound engine, the font and SDL.
// Must be called after all UI functions!
func Close() {
	if current != nil {
		if current.sound != nil {
			current.sound.Close()
		}
		current.font.Close()
		current = nil
	}
	internal.SDLCleanup()
	internal.CloseLogger()
}

// GetConfig returns the config loaded by Init, or the defaults before it.
func GetConfig() Config {
	if current == nil {
		return DefaultConfig()
	}
	return current.config
}

// GetSound returns the sound engine opened by Init, nil when sound is disabled.
func GetSound() *Sound {
	if current == nil {
		return nil
	}
	return current.sound
}

func GetFont() FontRenderer {
	if current == nil {
		return nil
	}
	return current.font
}

// OpenFont loads an additional TrueType font, e.g. for a larger title.
func OpenFont(path string, size int) (FontRenderer, error) {
	font, err := internal.OpenFont(path, size)
	if err != nil {
		return nil, err
	}
	return font, nil
}

func OpenEvdevSource(path string) (*EvdevSource, error) {
	return internal.OpenEvdevSource(path)
}

func SetLogFilename(filename string) {
	internal.SetLogFilename(filename)
}

func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

func SetControlsBytes(data []byte) {
	internal.SetControlsBytes(data)
}

func GetWindow() *internal.Window {
	return internal.GetWindow()
}

func HideWindow() {
	internal.GetWindow().Window.Hide()
}

func ShowWindow() {
	internal.GetWindow().Window.Show()
}
