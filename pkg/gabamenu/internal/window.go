package internal

import (
	"fmt"
	"os"
	"strconv"

	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

type Window struct {
	Window            *sdl.Window
	Renderer          *sdl.Renderer
	Title             string
	Background        *sdl.Texture
	DisplayBackground bool
}

var window *Window

// Init brings up SDL, SDL_ttf and the window. Audio is opened separately by the sound handle.
func Init(title string, width, height int32, displayBackground bool) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_JOYSTICK | sdl.INIT_GAMECONTROLLER | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("failed to initialize SDL: %w", err)
	}

	if err := ttf.Init(); err != nil {
		return fmt.Errorf("failed to initialize SDL_ttf: %w", err)
	}

	openJoysticks()

	w, err := initWindow(title, width, height, displayBackground)
	if err != nil {
		return err
	}
	window = w

	return nil
}

func SDLCleanup() {
	if window != nil {
		window.closeWindow()
		window = nil
	}
	closeJoysticks()
	ttf.Quit()
	sdl.Quit()
}

func GetWindow() *Window {
	return window
}

func initWindow(title string, width, height int32, displayBackground bool) (*Window, error) {
	if width <= 0 || height <= 0 {
		displayMode, err := sdl.GetCurrentDisplayMode(0)
		if err != nil {
			GetInternalLogger().Error("Failed to get display mode", "error", err)
			width, height = 1024, 768
		} else {
			width, height = displayMode.W, displayMode.H
		}
	}

	width = envDimension("WINDOW_WIDTH", width)
	height = envDimension("WINDOW_HEIGHT", height)

	GetInternalLogger().Debug("Initializing SDL Window", "width", width, "height", height)

	sdlWindow, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(sdlWindow, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		sdlWindow.Destroy()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	renderer.SetLogicalSize(width, height)

	win := &Window{
		Window:            sdlWindow,
		Renderer:          renderer,
		Title:             title,
		DisplayBackground: displayBackground,
	}

	if displayBackground {
		win.loadBackground()
	}

	return win, nil
}

func envDimension(name string, fallback int32) int32 {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n <= 0 {
		GetInternalLogger().Warn("Invalid window dimension; using default", "name", name, "value", v, "error", err)
		return fallback
	}
	return int32(n)
}

func (window *Window) loadBackground() {
	theme := GetTheme()
	if theme.BackgroundImagePath == "" {
		return
	}

	img.Init(img.INIT_PNG)

	bgTexture, err := img.LoadTexture(window.Renderer, theme.BackgroundImagePath)
	if err != nil {
		GetInternalLogger().Debug("Failed to load background", "path", theme.BackgroundImagePath, "error", err)
		window.Background = nil
		return
	}
	window.Background = bgTexture
}

func (window *Window) closeWindow() {
	if window.Background != nil {
		window.Background.Destroy()
		img.Quit()
	}
	window.Renderer.Destroy()
	window.Window.Destroy()
}

func (window *Window) GetWidth() int32 {
	w, _ := window.Window.GetSize()
	return w
}

func (window *Window) GetHeight() int32 {
	_, h := window.Window.GetSize()
	return h
}

// Clear paints the background image, or the theme background colour when there is none.
func (window *Window) Clear() {
	if window.Background != nil {
		window.Renderer.Copy(window.Background, nil, &sdl.Rect{X: 0, Y: 0, W: window.GetWidth(), H: window.GetHeight()})
		return
	}
	bg := GetTheme().BackgroundColor
	window.Renderer.SetDrawColor(bg.R, bg.G, bg.B, bg.A)
	window.Renderer.Clear()
}

func (window *Window) Present() {
	window.Renderer.Present()
}

func (window *Window) Blit(surface Surface, x, y int32) {
	s, ok := surface.(*SDLSurface)
	if !ok || s.Surface == nil {
		return
	}
	texture, err := s.Texture(window.Renderer)
	if err != nil {
		GetInternalLogger().Debug("Failed to create texture", "error", err)
		return
	}
	w, h := s.Size()
	window.Renderer.Copy(texture, nil, &sdl.Rect{X: x, Y: y, W: w, H: h})
}

func (window *Window) FillRoundedRect(rect sdl.Rect, radius int32, color sdl.Color) {
	DrawRoundedRect(window.Renderer, &rect, radius, color)
}

var (
	gameControllers []*sdl.GameController
	rawJoysticks    []*sdl.Joystick
)

func openJoysticks() {
	numJoysticks := sdl.NumJoysticks()
	GetInternalLogger().Debug("Detecting controllers", "joystick_count", numJoysticks)

	for i := 0; i < numJoysticks; i++ {
		if sdl.IsGameController(i) {
			if controller := sdl.GameControllerOpen(i); controller != nil {
				GetInternalLogger().Debug("Opened game controller", "index", i, "name", controller.Name())
				gameControllers = append(gameControllers, controller)
				if joystick := controller.Joystick(); joystick != nil {
					RegisterGameControllerJoystick(joystick.InstanceID())
				}
				continue
			}
			GetInternalLogger().Error("Failed to open game controller", "index", i)
			continue
		}
		if joystick := sdl.JoystickOpen(i); joystick != nil {
			GetInternalLogger().Debug("Opened raw joystick", "index", i, "name", joystick.Name())
			rawJoysticks = append(rawJoysticks, joystick)
		}
	}
}

func closeJoysticks() {
	for _, controller := range gameControllers {
		if controller != nil {
			controller.Close()
		}
	}
	for _, joystick := range rawJoysticks {
		if joystick != nil {
			joystick.Close()
		}
	}
	gameControllers = nil
	rawJoysticks = nil
	ResetGameControllerJoysticks()
}
