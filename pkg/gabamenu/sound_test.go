package gabamenu

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSoundFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestSound(t *testing.T, settings SoundSettings) (*Sound, *fakeMixer, string) {
	t.Helper()
	m := newFakeMixer()
	s := newSound(settings, m)
	return s, m, t.TempDir()
}

func TestSoundInitIsIdempotent(t *testing.T) {
	s, m, _ := newTestSound(t, DefaultSoundSettings())

	for i := 0; i < 3; i++ {
		if err := s.Init(); err != nil {
			t.Fatal(err)
		}
	}
	if m.opens != 1 {
		t.Errorf("expected one device open, got %d", m.opens)
	}
	if !s.Initialized() {
		t.Error("expected engine to be initialized")
	}
}

func TestSoundInitRetriesAfterFailure(t *testing.T) {
	s, m, _ := newTestSound(t, DefaultSoundSettings())
	m.openErr = errors.New("no audio device")

	if err := s.Init(); err == nil {
		t.Fatal("expected open failure")
	}
	if s.Initialized() {
		t.Error("failed init must leave the engine uninitialized")
	}

	m.openErr = nil
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if m.opens != 2 {
		t.Errorf("expected a second open attempt, got %d", m.opens)
	}
}

func TestSoundNotReadyWhileOpening(t *testing.T) {
	s, m, _ := newTestSound(t, DefaultSoundSettings())

	var readyDuringOpen bool
	m.onOpen = func() {
		readyDuringOpen = s.Initialized()
		s.Play(SoundKeyAdd)
	}
	m.openErr = errors.New("no audio device")

	if err := s.Init(); err == nil {
		t.Fatal("expected open failure")
	}
	if readyDuringOpen {
		t.Error("engine reported ready before the device opened")
	}
	if m.finds != 0 || len(m.plays) != 0 {
		t.Error("expected no playback while the device is opening")
	}

	m.openErr = nil
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if readyDuringOpen {
		t.Error("engine reported ready before a successful open returned")
	}
	if !s.Initialized() {
		t.Error("expected engine to be initialized after a successful open")
	}
}

func TestSoundSetSoundValidation(t *testing.T) {
	s, _, dir := newTestSound(t, DefaultSoundSettings())
	path := writeSoundFile(t, dir, "click.wav")

	tests := []struct {
		name    string
		sound   SoundType
		path    string
		options SoundOptions
		wantErr error
	}{
		{name: "unknown cue", sound: "boom", path: path, options: DefaultSoundOptions(), wantErr: ErrUnknownSound},
		{name: "volume too high", sound: SoundKeyAdd, path: path, options: SoundOptions{Volume: 1.5}, wantErr: ErrInvalidValue},
		{name: "negative volume", sound: SoundKeyAdd, path: path, options: SoundOptions{Volume: -0.1}, wantErr: ErrInvalidValue},
		{name: "negative loops", sound: SoundKeyAdd, path: path, options: SoundOptions{Loops: -1}, wantErr: ErrInvalidValue},
		{name: "missing file", sound: SoundKeyAdd, path: filepath.Join(dir, "nope.ogg"), options: DefaultSoundOptions(), wantErr: fs.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.SetSound(tt.sound, tt.path, tt.options); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
	if s.Initialized() {
		t.Error("rejected cues must not open the device")
	}
}

func TestSoundSetSoundLoadsAndReplaces(t *testing.T) {
	s, m, dir := newTestSound(t, DefaultSoundSettings())
	first := writeSoundFile(t, dir, "a.wav")
	second := writeSoundFile(t, dir, "b.wav")

	if err := s.SetSound(SoundKeyAdd, first, SoundOptions{Volume: 0.25}); err != nil {
		t.Fatal(err)
	}
	if !s.Initialized() || !s.Loaded(SoundKeyAdd) {
		t.Fatal("expected SetSound to open the device and link the cue")
	}
	old := s.sounds[SoundKeyAdd].clip.(*fakeClip)
	if old.volume != 0.25 {
		t.Errorf("expected clip volume 0.25, got %v", old.volume)
	}

	if err := s.SetSound(SoundKeyAdd, second, DefaultSoundOptions()); err != nil {
		t.Fatal(err)
	}
	if !old.freed {
		t.Error("expected the replaced clip to be freed")
	}

	if err := s.SetSound(SoundKeyAdd, "", DefaultSoundOptions()); err != nil {
		t.Fatal(err)
	}
	if s.Loaded(SoundKeyAdd) {
		t.Error("expected an empty path to unlink the cue")
	}

	m.loadErr = errors.New("unsupported format")
	if err := s.SetSound(SoundKeyAdd, first, DefaultSoundOptions()); err == nil {
		t.Error("expected load failure to be reported")
	}
	if s.Loaded(SoundKeyAdd) {
		t.Error("a failed load must leave the cue silent")
	}
}

func TestSoundLoadSounds(t *testing.T) {
	s, _, dir := newTestSound(t, DefaultSoundSettings())
	writeSoundFile(t, dir, "key_add.ogg")
	writeSoundFile(t, dir, "key_add.wav")
	writeSoundFile(t, dir, "close_menu.wav")

	if err := s.LoadSounds(dir, 0.8); err != nil {
		t.Fatal(err)
	}

	if got := s.sounds[SoundKeyAdd].path; got != filepath.Join(dir, "key_add.ogg") {
		t.Errorf("expected ogg to win over wav, got %s", got)
	}
	if !s.Loaded(SoundCloseMenu) {
		t.Error("expected wav fallback for close_menu")
	}
	if s.Loaded(SoundOpenMenu) {
		t.Error("cues without a file must stay silent")
	}
	if v := s.sounds[SoundCloseMenu].options.Volume; v != 0.8 {
		t.Errorf("expected volume 0.8, got %v", v)
	}
}

func TestSoundPlayBeforeInitIsSilent(t *testing.T) {
	s, m, _ := newTestSound(t, DefaultSoundSettings())

	s.Play(SoundKeyAdd)
	s.Stop()

	if len(m.plays) != 0 || len(m.halts) != 0 || m.finds != 0 {
		t.Error("expected no mixer calls before init")
	}
	if _, ok := s.ChannelInfo(); ok {
		t.Error("expected no channel info before init")
	}
}

func TestSoundUniqueChannel(t *testing.T) {
	s, m, dir := newTestSound(t, DefaultSoundSettings())
	m.channel = 3
	if err := s.SetSound(SoundKeyAdd, writeSoundFile(t, dir, "k.wav"), DefaultSoundOptions()); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSound(SoundKeyDelete, writeSoundFile(t, dir, "d.wav"), DefaultSoundOptions()); err != nil {
		t.Fatal(err)
	}

	s.PlayKeyAdd()
	s.PlayKeyAdd()
	s.PlayKeyDelete()
	s.PlayOpenMenu()

	if len(m.plays) != 3 {
		t.Fatalf("expected 3 plays, got %d", len(m.plays))
	}
	for _, p := range m.plays {
		if p.channel != 3 {
			t.Errorf("expected channel 3, got %d", p.channel)
		}
	}
	if len(m.halts) != 3 {
		t.Errorf("expected every play to cut the previous one, got %d halts", len(m.halts))
	}
	if m.finds != 1 {
		t.Errorf("expected the channel to be looked up once, got %d", m.finds)
	}
}

func TestSoundSharedChannelThrottle(t *testing.T) {
	settings := DefaultSoundSettings()
	settings.UniqueChannel = false
	s, m, dir := newTestSound(t, settings)
	m.clipLen = time.Second

	clock := time.Unix(0, 0)
	s.now = func() time.Time { return clock }

	if err := s.SetSound(SoundKeyAdd, writeSoundFile(t, dir, "k.wav"), DefaultSoundOptions()); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSound(SoundKeyDelete, writeSoundFile(t, dir, "d.wav"), DefaultSoundOptions()); err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		advance time.Duration
		sound   SoundType
		plays   int
	}{
		{0, SoundKeyAdd, 1},
		{100 * time.Millisecond, SoundKeyAdd, 1},
		{200 * time.Millisecond, SoundKeyAdd, 2},
		{0, SoundKeyDelete, 3},
		{10 * time.Millisecond, SoundKeyAdd, 4},
	}
	for i, step := range steps {
		clock = clock.Add(step.advance)
		s.Play(step.sound)
		if len(m.plays) != step.plays {
			t.Fatalf("step %d: expected %d plays, got %d", i, step.plays, len(m.plays))
		}
	}
	if len(m.halts) != 0 {
		t.Errorf("shared channel must not halt, got %d halts", len(m.halts))
	}
	if m.finds != len(steps) {
		t.Errorf("expected a channel lookup per play, got %d", m.finds)
	}
}

func TestSoundBusyMixerIsSilent(t *testing.T) {
	s, m, dir := newTestSound(t, DefaultSoundSettings())
	m.channel = noChannel
	if err := s.SetSound(SoundEvent, writeSoundFile(t, dir, "e.wav"), DefaultSoundOptions()); err != nil {
		t.Fatal(err)
	}

	s.PlayEvent()
	s.Pause()

	if len(m.plays) != 0 || len(m.paused) != 0 {
		t.Error("expected no playback without a free channel")
	}
}

func TestSoundChannelControls(t *testing.T) {
	s, m, dir := newTestSound(t, DefaultSoundSettings())
	m.channel = 2
	if err := s.SetSound(SoundEvent, writeSoundFile(t, dir, "e.wav"), DefaultSoundOptions()); err != nil {
		t.Fatal(err)
	}

	s.PlayEvent()
	s.Pause()
	s.Unpause()
	s.Stop()

	info, ok := s.ChannelInfo()
	if !ok {
		t.Fatal("expected channel info")
	}
	if want := (ChannelInfo{Channel: 2, Busy: true, Volume: 64}); info != want {
		t.Errorf("expected %+v, got %+v", want, info)
	}
	if len(m.paused) != 1 || len(m.resumed) != 1 || m.paused[0] != 2 || m.resumed[0] != 2 {
		t.Errorf("unexpected pause/resume calls %v/%v", m.paused, m.resumed)
	}
}

func TestSoundClose(t *testing.T) {
	s, m, dir := newTestSound(t, DefaultSoundSettings())
	if err := s.SetSound(SoundError, writeSoundFile(t, dir, "x.wav"), DefaultSoundOptions()); err != nil {
		t.Fatal(err)
	}
	c := s.sounds[SoundError].clip.(*fakeClip)

	s.Close()
	s.Close()

	if !c.freed || !m.closed {
		t.Error("expected clips freed and device closed")
	}
	if s.Initialized() || s.Loaded(SoundError) {
		t.Error("expected a closed engine to be empty")
	}
	s.PlayError()
	if len(m.plays) != 0 {
		t.Error("expected no playback after close")
	}
}
