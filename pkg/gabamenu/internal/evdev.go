package internal

import (
	"fmt"
	"sync"

	"github.com/holoplot/go-evdev"
	"github.com/veandco/go-sdl2/sdl"
)

const evdevQueueSize = 64

var evdevKeys = map[evdev.EvCode]sdl.Keycode{
	evdev.KEY_LEFT:      sdl.K_LEFT,
	evdev.KEY_RIGHT:     sdl.K_RIGHT,
	evdev.KEY_UP:        sdl.K_UP,
	evdev.KEY_DOWN:      sdl.K_DOWN,
	evdev.KEY_ENTER:     sdl.K_RETURN,
	evdev.KEY_ESC:       sdl.K_ESCAPE,
	evdev.KEY_BACKSPACE: sdl.K_BACKSPACE,
	evdev.KEY_DELETE:    sdl.K_DELETE,
	evdev.KEY_HOME:      sdl.K_HOME,
	evdev.KEY_END:       sdl.K_END,
}

// Gamepad buttons follow the SDL joystick numbering of an XInput pad.
var evdevButtons = map[evdev.EvCode]uint8{
	evdev.BTN_SOUTH:  0,
	evdev.BTN_EAST:   1,
	evdev.BTN_NORTH:  2,
	evdev.BTN_WEST:   3,
	evdev.BTN_TL:     4,
	evdev.BTN_TR:     5,
	evdev.BTN_SELECT: 6,
	evdev.BTN_START:  7,
	evdev.BTN_MODE:   8,
	evdev.BTN_THUMBL: 9,
	evdev.BTN_THUMBR: 10,
}

// FromEvdev translates a raw kernel input event. Key releases, sync reports
// and unknown codes are dropped.
func FromEvdev(ev *evdev.InputEvent) (Event, bool) {
	if ev == nil {
		return Event{}, false
	}

	switch ev.Type {
	case evdev.EV_KEY:
		// 0 release, 1 press, 2 autorepeat
		if ev.Value == 0 {
			return Event{}, false
		}
		if key, ok := evdevKeys[ev.Code]; ok {
			return Event{Type: EventKeyDown, Key: key, Repeat: ev.Value == 2, Synthetic: true}, true
		}
		if button, ok := evdevButtons[ev.Code]; ok && ev.Value == 1 {
			return Event{Type: EventJoyButtonDown, Button: button}, true
		}
	case evdev.EV_ABS:
		switch ev.Code {
		case evdev.ABS_HAT0X:
			return hatEvent(ev.Value, sdl.HAT_LEFT, sdl.HAT_RIGHT), true
		case evdev.ABS_HAT0Y:
			return hatEvent(ev.Value, sdl.HAT_UP, sdl.HAT_DOWN), true
		case evdev.ABS_X:
			return Event{Type: EventJoyAxisMotion, Axis: 0, Value: clampInt16(ev.Value)}, true
		case evdev.ABS_Y:
			return Event{Type: EventJoyAxisMotion, Axis: 1, Value: clampInt16(ev.Value)}, true
		}
	}
	return Event{}, false
}

func hatEvent(value int32, negative, positive uint8) Event {
	var hat uint8 = sdl.HAT_CENTERED
	if value < 0 {
		hat = negative
	} else if value > 0 {
		hat = positive
	}
	return Event{Type: EventJoyHatMotion, Hat: hat}
}

func clampInt16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// EvdevSource reads a /dev/input device for hosts without an SDL video
// backend, e.g. a framebuffer handheld. A reader goroutine feeds a bounded
// queue that Poll drains once per tick; when the queue is full new events are dropped.
type EvdevSource struct {
	device *evdev.InputDevice
	events chan Event
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

func OpenEvdevSource(path string) (*EvdevSource, error) {
	device, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input device %s: %w", path, err)
	}

	name, _ := device.Name()
	GetInternalLogger().Debug("Opened evdev input device", "path", path, "name", name)

	s := &EvdevSource{
		device: device,
		events: make(chan Event, evdevQueueSize),
		done:   make(chan struct{}),
	}

	s.wg.Add(1)
	go s.read()

	return s, nil
}

func (s *EvdevSource) read() {
	defer s.wg.Done()
	logger := GetInternalLogger()

	for {
		raw, err := s.device.ReadOne()
		if err != nil {
			select {
			case <-s.done:
			default:
				logger.Error("Failed to read input device", "error", err)
			}
			return
		}

		ev, ok := FromEvdev(raw)
		if !ok {
			continue
		}

		select {
		case s.events <- ev:
		case <-s.done:
			return
		default:
			logger.Debug("Input queue full, dropping event", "event", ev.String())
		}
	}
}

// Poll returns every event queued since the previous call without blocking.
func (s *EvdevSource) Poll() []Event {
	var events []Event
	for {
		select {
		case ev := <-s.events:
			events = append(events, ev)
		default:
			return events
		}
	}
}

func (s *EvdevSource) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.device.Close()
		s.wg.Wait()
	})
	return err
}
