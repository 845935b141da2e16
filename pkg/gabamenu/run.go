package gabamenu

import (
	"time"

	"github.com/pawndev/gabamenu/pkg/gabamenu/internal"
	"github.com/veandco/go-sdl2/sdl"
)

// EventSource is an extra input device polled once per tick, such as an
// EvdevSource.
type EventSource interface {
	Poll() []Event
}

// MenuResult holds the values of a menu when RunMenu returns.
type MenuResult struct {
	Values map[string]any
}

// RunMenu drives menu and its submenus on the SDL window opened by Init
// until it is submitted or closed. Closing with the back input returns ErrCancelled, closing the
// window returns ErrQuit. The values are returned in both cases.
func RunMenu(menu *Menu, sources ...EventSource) (*MenuResult, error) {
	window := internal.GetWindow()
	menu.Reopen()

	if menu.style.KeyboardState == nil {
		menu.setKeyboardState(internal.SDLKeyboardState{})
	}

	sdl.StartTextInput()
	defer sdl.StopTextInput()

	quit := false
	last := time.Now()
	events := make([]Event, 0, 16)

	for !menu.Closed() && !quit {
		events = events[:0]
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				quit = true
				break
			}
			if ev, ok := internal.FromSDL(event); ok {
				events = append(events, ev)
			}
		}
		for _, source := range sources {
			events = append(events, source.Poll()...)
		}

		if len(events) > 0 {
			menu.Update(events)
		}

		now := time.Now()
		menu.Advance(float32(now.Sub(last).Seconds()))
		last = now

		if window != nil {
			window.Clear()
			menu.Draw(window)
			window.Present()
		}

		sdl.Delay(16)
	}

	result := &MenuResult{Values: menu.GetInputData(true)}

	switch {
	case quit:
		return result, ErrQuit
	case !menu.Submitted():
		return result, ErrCancelled
	}
	return result, nil
}
