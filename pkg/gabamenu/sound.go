package gabamenu

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pawndev/gabamenu/pkg/gabamenu/internal"
	"go.uber.org/atomic"
)

type SoundType string

const (
	SoundClickMouse SoundType = "click_mouse"
	SoundCloseMenu  SoundType = "close_menu"
	SoundError      SoundType = "error"
	SoundEvent      SoundType = "event"
	SoundEventError SoundType = "event_error"
	SoundKeyAdd     SoundType = "key_add"
	SoundKeyDelete  SoundType = "key_delete"
	SoundOpenMenu   SoundType = "open_menu"
)

// SoundTypes lists every cue a widget or menu can play.
var SoundTypes = []SoundType{
	SoundClickMouse,
	SoundCloseMenu,
	SoundError,
	SoundEvent,
	SoundEventError,
	SoundKeyAdd,
	SoundKeyDelete,
	SoundOpenMenu,
}

func (t SoundType) valid() bool {
	for _, known := range SoundTypes {
		if t == known {
			return true
		}
	}
	return false
}

// SoundPlayer is the cue sink widgets play through. Playback is fire and
// forget; implementations swallow their own failures.
type SoundPlayer interface {
	Play(sound SoundType)
}

// SoundSettings configures the audio device opened by Sound.Init.
// With UniqueChannel every cue plays on the same mixer channel and a new cue
// cuts the previous one.
type SoundSettings struct {
	UniqueChannel bool
	Frequency     int
	Channels      int
	Buffer        int
}

func DefaultSoundSettings() SoundSettings {
	return SoundSettings{
		UniqueChannel: true,
		Frequency:     22050,
		Channels:      2,
		Buffer:        4096,
	}
}

// SoundOptions tune how a loaded cue is played.
// Volume goes from 0 to 1. MaxTime of zero plays the whole clip.
type SoundOptions struct {
	Volume  float64
	Loops   int
	MaxTime time.Duration
	FadeIn  time.Duration
}

func DefaultSoundOptions() SoundOptions {
	return SoundOptions{Volume: 0.5}
}

// ChannelInfo describes the mixer channel the engine plays on.
type ChannelInfo struct {
	Channel int
	Busy    bool
	Volume  int
}

// clip is a decoded sound loaded into the mixer.
type clip interface {
	Length() time.Duration
	SetVolume(volume float64)
	Free()
}

// mixer is the audio backend driven by Sound. The SDL_mixer implementation
// lives in sound_sdl.go.
type mixer interface {
	Open(settings SoundSettings) error
	Close()
	Load(path string) (clip, error)
	// FindChannel returns a free channel or -1 when all are busy.
	FindChannel() int
	Play(channel int, c clip, options SoundOptions) error
	Halt(channel int)
	Pause(channel int)
	Resume(channel int)
	Busy(channel int) bool
	Volume(channel int) int
}

type loadedSound struct {
	clip    clip
	path    string
	options SoundOptions
	length  time.Duration
}

// Sound is the audio cue engine. Init opens the device once per handle; the
// play methods are silent no-ops until it succeeds, and when every mixer
// channel is busy.
type Sound struct {
	settings SoundSettings
	mixer    mixer
	ready    *atomic.Bool
	channel  *atomic.Int32

	// initMu serializes device open and close; ready flips only once Open succeeded.
	initMu sync.Mutex

	mu         sync.Mutex
	sounds     map[SoundType]*loadedSound
	lastPlayed SoundType
	lastTime   time.Time
	now        func() time.Time
}

const noChannel = -1

func NewSound(settings SoundSettings) *Sound {
	return newSound(settings, sdlMixer{})
}

func newSound(settings SoundSettings, m mixer) *Sound {
	return &Sound{
		settings: settings,
		mixer:    m,
		ready:    atomic.NewBool(false),
		channel:  atomic.NewInt32(noChannel),
		sounds:   make(map[SoundType]*loadedSound),
		now:      time.Now,
	}
}

// Init opens the audio device. Repeated calls are no-ops once it succeeded.
func (s *Sound) Init() error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	if s.ready.Load() {
		return nil
	}
	if err := s.mixer.Open(s.settings); err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	s.ready.Store(true)
	internal.GetInternalLogger().Debug("Sound engine initialized",
		"frequency", s.settings.Frequency,
		"channels", s.settings.Channels,
		"unique_channel", s.settings.UniqueChannel)
	return nil
}

func (s *Sound) Initialized() bool {
	return s.ready.Load()
}

// SetSound links a sound file to a cue type. An empty path unlinks the cue.
func (s *Sound) SetSound(sound SoundType, path string, options SoundOptions) error {
	if !sound.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSound, sound)
	}
	if options.Volume < 0 || options.Volume > 1 {
		return fmt.Errorf("%w: volume %.2f not in [0, 1]", ErrInvalidValue, options.Volume)
	}
	if options.Loops < 0 || options.MaxTime < 0 || options.FadeIn < 0 {
		return fmt.Errorf("%w: negative loops, max time or fade", ErrInvalidValue)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.unload(sound)
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("sound file %s: %w", path, err)
	}

	if err := s.Init(); err != nil {
		return err
	}

	c, err := s.mixer.Load(path)
	if err != nil {
		internal.GetInternalLogger().Error("Sound format not supported; cue disabled", "sound", sound, "path", path, "error", err)
		return fmt.Errorf("failed to load sound %s: %w", path, err)
	}
	c.SetVolume(options.Volume)

	s.sounds[sound] = &loadedSound{
		clip:    c,
		path:    path,
		options: options,
		length:  c.Length(),
	}
	return nil
}

func (s *Sound) unload(sound SoundType) {
	if loaded, ok := s.sounds[sound]; ok {
		loaded.clip.Free()
		delete(s.sounds, sound)
	}
}

// LoadSounds links every cue to <dir>/<cue>.ogg, or .wav when there is no
// ogg file. Cues without a file are left silent.
func (s *Sound) LoadSounds(dir string, volume float64) error {
	options := DefaultSoundOptions()
	options.Volume = volume

	for _, sound := range SoundTypes {
		for _, ext := range []string{".ogg", ".wav"} {
			path := filepath.Join(dir, string(sound)+ext)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := s.SetSound(sound, path, options); err != nil {
				return err
			}
			break
		}
	}
	return nil
}

// Loaded reports whether a file is linked to the cue.
func (s *Sound) Loaded(sound SoundType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sounds[sound]
	return ok
}

func (s *Sound) currentChannel() int {
	if s.settings.UniqueChannel {
		if c := s.channel.Load(); c != noChannel {
			return int(c)
		}
	}
	c := s.mixer.FindChannel()
	s.channel.Store(int32(c))
	return c
}

// Play plays the cue linked to sound. The same cue is not restarted on a
// shared channel until a fifth of its length has elapsed.
func (s *Sound) Play(sound SoundType) {
	if !s.ready.Load() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loaded, ok := s.sounds[sound]
	if !ok {
		return
	}

	channel := s.currentChannel()
	if channel < 0 {
		return
	}

	now := s.now()
	if sound != s.lastPlayed || now.Sub(s.lastTime) >= loaded.length/5 || s.settings.UniqueChannel {
		if s.settings.UniqueChannel {
			s.mixer.Halt(channel)
		}
		if err := s.mixer.Play(channel, loaded.clip, loaded.options); err != nil {
			internal.GetInternalLogger().Debug("Failed to play sound", "sound", sound, "error", err)
		}
	}
	s.lastPlayed = sound
	s.lastTime = now
}

func (s *Sound) PlayClickMouse() { s.Play(SoundClickMouse) }
func (s *Sound) PlayCloseMenu()  { s.Play(SoundCloseMenu) }
func (s *Sound) PlayError()      { s.Play(SoundError) }
func (s *Sound) PlayEvent()      { s.Play(SoundEvent) }
func (s *Sound) PlayEventError() { s.Play(SoundEventError) }
func (s *Sound) PlayKeyAdd()     { s.Play(SoundKeyAdd) }
func (s *Sound) PlayKeyDelete()  { s.Play(SoundKeyDelete) }
func (s *Sound) PlayOpenMenu()   { s.Play(SoundOpenMenu) }

func (s *Sound) withChannel(fn func(channel int)) {
	if !s.ready.Load() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if channel := s.currentChannel(); channel >= 0 {
		fn(channel)
	}
}

func (s *Sound) Stop() {
	s.withChannel(s.mixer.Halt)
}

func (s *Sound) Pause() {
	s.withChannel(s.mixer.Pause)
}

func (s *Sound) Unpause() {
	s.withChannel(s.mixer.Resume)
}

// ChannelInfo reports the state of the engine channel. The second result is
// false when no channel is available.
func (s *Sound) ChannelInfo() (ChannelInfo, bool) {
	var info ChannelInfo
	found := false
	s.withChannel(func(channel int) {
		info = ChannelInfo{
			Channel: channel,
			Busy:    s.mixer.Busy(channel),
			Volume:  s.mixer.Volume(channel),
		}
		found = true
	})
	return info, found
}

// Close frees every loaded clip and closes the audio device.
func (s *Sound) Close() {
	s.mu.Lock()
	for sound := range s.sounds {
		s.unload(sound)
	}
	s.mu.Unlock()

	s.initMu.Lock()
	if s.ready.CompareAndSwap(true, false) {
		s.mixer.Close()
	}
	s.initMu.Unlock()
	s.channel.Store(noChannel)
}
