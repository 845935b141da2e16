package gabamenu

import (
	"time"

	"github.com/pawndev/gabamenu/pkg/gabamenu/internal"
	"github.com/veandco/go-sdl2/mix"
)

// sdlMixer drives SDL_mixer. Clips are decoded with the default 16 bit format.
type sdlMixer struct{}

const sdlBytesPerSample = 2

// Parameters of the open audio device, used to turn chunk sizes into durations.
var sdlFrequency, sdlChannels int

type sdlClip struct {
	chunk  *mix.Chunk
	length time.Duration
	freed  bool
}

func (sdlMixer) Open(settings SoundSettings) error {
	if err := mix.Init(mix.INIT_OGG); err != nil {
		internal.GetInternalLogger().Debug("OGG support unavailable", "error", err)
	}
	if err := mix.OpenAudio(settings.Frequency, mix.DEFAULT_FORMAT, settings.Channels, settings.Buffer); err != nil {
		return err
	}
	sdlFrequency, sdlChannels = settings.Frequency, settings.Channels
	return nil
}

func (sdlMixer) Close() {
	mix.CloseAudio()
	mix.Quit()
}

func (sdlMixer) Load(path string) (clip, error) {
	chunk, err := mix.LoadWAV(path)
	if err != nil {
		return nil, err
	}

	var length time.Duration
	if bytesPerSecond := sdlFrequency * sdlChannels * sdlBytesPerSample; bytesPerSecond > 0 {
		length = time.Duration(chunk.LEN) * time.Second / time.Duration(bytesPerSecond)
	}
	return &sdlClip{chunk: chunk, length: length}, nil
}

func (sdlMixer) FindChannel() int {
	return mix.GroupAvailable(-1)
}

func (sdlMixer) Play(channel int, c clip, options SoundOptions) error {
	sc, ok := c.(*sdlClip)
	if !ok || sc.freed {
		return nil
	}

	ticks := -1
	if options.MaxTime > 0 {
		ticks = int(options.MaxTime.Milliseconds())
	}

	var err error
	if options.FadeIn > 0 {
		_, err = sc.chunk.FadeInTimed(channel, options.Loops, int(options.FadeIn.Milliseconds()), ticks)
	} else {
		_, err = sc.chunk.PlayTimed(channel, options.Loops, ticks)
	}
	return err
}

func (sdlMixer) Halt(channel int) {
	mix.HaltChannel(channel)
}

func (sdlMixer) Pause(channel int) {
	mix.Pause(channel)
}

func (sdlMixer) Resume(channel int) {
	mix.Resume(channel)
}

func (sdlMixer) Busy(channel int) bool {
	return mix.Playing(channel) != 0
}

func (sdlMixer) Volume(channel int) int {
	return mix.Volume(channel, -1)
}

func (c *sdlClip) Length() time.Duration {
	return c.length
}

func (c *sdlClip) SetVolume(volume float64) {
	c.chunk.Volume(int(volume * float64(mix.MAX_VOLUME)))
}

func (c *sdlClip) Free() {
	if c.freed {
		return
	}
	c.chunk.Free()
	c.freed = true
}
