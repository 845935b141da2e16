package gabamenu

import (
	"time"
	"unicode/utf8"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	fakeCharWidth  = 10
	fakeLineHeight = 20
)

type fakeSurface struct {
	text  string
	color sdl.Color
	w, h  int32
	freed bool
}

func (s *fakeSurface) Size() (int32, int32) { return s.w, s.h }
func (s *fakeSurface) Free()                { s.freed = true }

// fakeFont lays text out at a fixed 10px per character and counts renders.
type fakeFont struct {
	renders  int
	rendered []string
}

func (f *fakeFont) Size(text string) (int32, int32, error) {
	return int32(utf8.RuneCountInString(text)) * fakeCharWidth, fakeLineHeight, nil
}

func (f *fakeFont) Render(text string, color sdl.Color) (Surface, error) {
	f.renders++
	f.rendered = append(f.rendered, text)
	w, h, _ := f.Size(text)
	return &fakeSurface{text: text, color: color, w: w, h: h}, nil
}

type blit struct {
	text string
	x, y int32
}

type fakeCanvas struct {
	blits []blit
	rects []sdl.Rect
}

func (c *fakeCanvas) Blit(surface Surface, x, y int32) {
	text := ""
	if s, ok := surface.(*fakeSurface); ok {
		text = s.text
	}
	c.blits = append(c.blits, blit{text: text, x: x, y: y})
}

func (c *fakeCanvas) FillRoundedRect(rect sdl.Rect, radius int32, color sdl.Color) {
	c.rects = append(c.rects, rect)
}

type fakeSound struct {
	played []SoundType
}

func (s *fakeSound) Play(sound SoundType) {
	s.played = append(s.played, sound)
}

type fakeKeyboard struct {
	pressed bool
}

func (k fakeKeyboard) AnyKeyPressed() bool { return k.pressed }

type fakeClip struct {
	length time.Duration
	volume float64
	freed  bool
}

func (c *fakeClip) Length() time.Duration    { return c.length }
func (c *fakeClip) SetVolume(volume float64) { c.volume = volume }
func (c *fakeClip) Free()                    { c.freed = true }

type fakePlay struct {
	channel int
	clip    *fakeClip
}

type fakeMixer struct {
	opens   int
	openErr error
	closed  bool
	channel int
	finds   int
	plays   []fakePlay
	halts   []int
	paused  []int
	resumed []int
	clipLen time.Duration
	loadErr error
	onOpen  func()
}

func newFakeMixer() *fakeMixer {
	return &fakeMixer{clipLen: time.Second}
}

func (m *fakeMixer) Open(SoundSettings) error {
	m.opens++
	if m.onOpen != nil {
		m.onOpen()
	}
	return m.openErr
}

func (m *fakeMixer) Close() { m.closed = true }

func (m *fakeMixer) Load(string) (clip, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return &fakeClip{length: m.clipLen}, nil
}

func (m *fakeMixer) FindChannel() int {
	m.finds++
	return m.channel
}

func (m *fakeMixer) Play(channel int, c clip, _ SoundOptions) error {
	m.plays = append(m.plays, fakePlay{channel: channel, clip: c.(*fakeClip)})
	return nil
}

func (m *fakeMixer) Halt(channel int)      { m.halts = append(m.halts, channel) }
func (m *fakeMixer) Pause(channel int)     { m.paused = append(m.paused, channel) }
func (m *fakeMixer) Resume(channel int)    { m.resumed = append(m.resumed, channel) }
func (m *fakeMixer) Busy(channel int) bool { return len(m.plays) > 0 }
func (m *fakeMixer) Volume(int) int        { return 64 }

func keyDown(key sdl.Keycode) Event {
	return Event{Type: EventKeyDown, Key: key}
}

func testStyle(font FontRenderer, sound SoundPlayer) Style {
	return Style{
		Font:          font,
		FontColor:     sdl.Color{R: 255, G: 255, B: 255, A: 255},
		SelectedColor: sdl.Color{A: 255},
		Sound:         sound,
		Controls:      DefaultControls(),
	}
}
