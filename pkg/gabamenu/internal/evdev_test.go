package internal

import (
	"testing"

	"github.com/holoplot/go-evdev"
	"github.com/veandco/go-sdl2/sdl"
)

func TestFromEvdev(t *testing.T) {
	tests := []struct {
		name   string
		ev     *evdev.InputEvent
		want   Event
		wantOK bool
	}{
		{
			name:   "key press",
			ev:     &evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_LEFT, Value: 1},
			want:   Event{Type: EventKeyDown, Key: sdl.K_LEFT, Synthetic: true},
			wantOK: true,
		},
		{
			name:   "key autorepeat",
			ev:     &evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_ENTER, Value: 2},
			want:   Event{Type: EventKeyDown, Key: sdl.K_RETURN, Repeat: true, Synthetic: true},
			wantOK: true,
		},
		{
			name: "key release",
			ev:   &evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_LEFT, Value: 0},
		},
		{
			name:   "gamepad button",
			ev:     &evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.BTN_EAST, Value: 1},
			want:   Event{Type: EventJoyButtonDown, Button: 1},
			wantOK: true,
		},
		{
			name: "gamepad button repeat",
			ev:   &evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.BTN_EAST, Value: 2},
		},
		{
			name:   "dpad left",
			ev:     &evdev.InputEvent{Type: evdev.EV_ABS, Code: evdev.ABS_HAT0X, Value: -1},
			want:   Event{Type: EventJoyHatMotion, Hat: sdl.HAT_LEFT},
			wantOK: true,
		},
		{
			name:   "dpad released",
			ev:     &evdev.InputEvent{Type: evdev.EV_ABS, Code: evdev.ABS_HAT0Y, Value: 0},
			want:   Event{Type: EventJoyHatMotion, Hat: sdl.HAT_CENTERED},
			wantOK: true,
		},
		{
			name:   "stick clamped",
			ev:     &evdev.InputEvent{Type: evdev.EV_ABS, Code: evdev.ABS_X, Value: 70000},
			want:   Event{Type: EventJoyAxisMotion, Axis: 0, Value: 32767},
			wantOK: true,
		},
		{
			name: "sync report",
			ev:   &evdev.InputEvent{Type: evdev.EV_SYN},
		},
		{
			name: "nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromEvdev(tt.ev)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if ok && got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestEvdevSourcePollDrainsQueue(t *testing.T) {
	s := &EvdevSource{events: make(chan Event, evdevQueueSize)}
	s.events <- Event{Type: EventKeyDown, Key: sdl.K_UP}
	s.events <- Event{Type: EventKeyDown, Key: sdl.K_DOWN}

	if got := s.Poll(); len(got) != 2 || got[1].Key != sdl.K_DOWN {
		t.Errorf("expected both queued events in order, got %v", got)
	}
	if got := s.Poll(); len(got) != 0 {
		t.Errorf("expected an empty poll, got %v", got)
	}
}
