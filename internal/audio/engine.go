package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"go.uber.org/zap"
)

// Channel is one of the three mixer inputs with its own volume.
type Channel int

const (
	Music Channel = iota
	Background
	Brainwave
	numChannels
)

func (c Channel) String() string {
	switch c {
	case Music:
		return "music"
	case Background:
		return "background"
	case Brainwave:
		return "brainwave"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// State is the transport state of the player.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

const (
	resampleQuality = 4
	levelWindow     = 2048
	ringSize        = 8192
)

// Sink is the audio output. The speaker package is the production sink.
type Sink interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
}

type speakerSink struct{}

// SpeakerSink plays through the system audio device.
func SpeakerSink() Sink { return speakerSink{} }

func (speakerSink) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}
func (speakerSink) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerSink) Lock()                   { speaker.Lock() }
func (speakerSink) Unlock()                 { speaker.Unlock() }

type nullSink struct{ mu sync.Mutex }

// NullSink discards all audio, for running without an output device.
func NullSink() Sink { return &nullSink{} }

func (*nullSink) Init(beep.SampleRate, int) error { return nil }
func (*nullSink) Play(...beep.Streamer)         {}
func (n *nullSink) Lock()                        { n.mu.Lock() }
func (n *nullSink) Unlock()                      { n.mu.Unlock() }

// Options configure a new Engine.
type Options struct {
	SampleRate beep.SampleRate
	Buffer     time.Duration
	DeviceType string
	Volumes    [3]int // music, background, brainwave, 0..100
	Settings   Settings
	NoiseSeed  int64
}

// Engine mixes music, background noise and the brainwave tone and owns the
// play/pause/stop transport. Its methods must be called from one goroutine;
// changes reach the audio thread under the sink lock.
type Engine struct {
	sink Sink
	log  *zap.Logger
	opts Options

	ctrl    *beep.Ctrl
	tap     *levelTap
	volumes [numChannels]*effects.Volume
	levels  [numChannels]int
	music   *slot
	tone    *Tone
	track   *Track

	state   State
	started bool
}

func NewEngine(sink Sink, opts Options, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		sink:  sink,
		log:   log,
		opts:  opts,
		music: &slot{},
		tone:  NewTone(opts.SampleRate, opts.Settings),
	}

	sources := [numChannels]beep.Streamer{
		Music:      e.music,
		Background: newBrownNoise(opts.NoiseSeed),
		Brainwave:  e.tone,
	}
	mixer := &beep.Mixer{}
	for ch, src := range sources {
		e.volumes[ch] = &effects.Volume{Streamer: src, Base: 2}
		mixer.Add(e.volumes[ch])
	}
	e.tap = newLevelTap(mixer, ringSize)
	e.ctrl = &beep.Ctrl{Streamer: e.tap, Paused: true}

	for ch := range e.volumes {
		e.setGain(Channel(ch), opts.Volumes[ch])
	}
	if _, err := e.ApplySettings(opts.Settings); err != nil {
		log.Warn("tone settings adjusted", zap.Error(err))
	}
	return e
}

// Play starts or resumes playback, opening the output on first use.
func (e *Engine) Play() error {
	if e.state == Playing {
		return nil
	}
	if !e.started {
		bufferSize := e.opts.SampleRate.N(e.opts.Buffer)
		if err := e.sink.Init(e.opts.SampleRate, bufferSize); err != nil {
			return fmt.Errorf("init audio output: %w", err)
		}
		e.sink.Play(e.ctrl)
		e.started = true
		e.log.Info("audio output started",
			zap.Int("sample_rate", int(e.opts.SampleRate)),
			zap.Int("buffer", bufferSize))
	}

	e.sink.Lock()
	e.ctrl.Paused = false
	e.sink.Unlock()
	e.state = Playing
	return nil
}

// Pause holds playback. It does nothing unless playing.
func (e *Engine) Pause() {
	if e.state != Playing {
		return
	}
	e.sink.Lock()
	e.ctrl.Paused = true
	e.sink.Unlock()
	e.state = Paused
}

// Toggle switches between playing and paused.
func (e *Engine) Toggle() error {
	if e.state == Playing {
		e.Pause()
		return nil
	}
	return e.Play()
}

// Stop halts playback and rewinds music and tone. Stopping twice is harmless.
func (e *Engine) Stop() {
	if e.state == Stopped {
		return
	}
	e.sink.Lock()
	e.ctrl.Paused = true
	e.tone.Reset()
	if e.track != nil {
		if err := e.track.Streamer.Seek(0); err != nil {
			e.log.Warn("rewind failed", zap.String("track", e.track.Path), zap.Error(err))
		}
	}
	e.sink.Unlock()
	e.tap.reset()
	e.state = Stopped
}

func (e *Engine) State() State {
	return e.state
}

// SetVolume sets a channel volume in percent, clamped to 0..100.
func (e *Engine) SetVolume(ch Channel, percent int) {
	if ch < 0 || ch >= numChannels {
		return
	}
	e.sink.Lock()
	e.setGain(ch, percent)
	e.sink.Unlock()
}

func (e *Engine) Volume(ch Channel) int {
	if ch < 0 || ch >= numChannels {
		return 0
	}
	return e.levels[ch]
}

func (e *Engine) setGain(ch Channel, percent int) {
	percent = max(0, min(100, percent))
	e.levels[ch] = percent
	v := e.volumes[ch]
	v.Silent = percent == 0
	if percent > 0 {
		v.Volume = math.Log2(float64(percent) / 100)
	}
}

// ApplySettings clamps and installs new tone settings. Isochronic mode is
// switched off for devices that cannot play it; the applied settings are
// returned together with ErrIsochronicUnavailable in that case.
func (e *Engine) ApplySettings(s Settings) (Settings, error) {
	s = s.Clamp()
	var err error
	if s.Isochronic && !IsochronicAvailable(e.opts.DeviceType) {
		s.Isochronic = false
		err = ErrIsochronicUnavailable
	}
	e.sink.Lock()
	e.tone.Configure(s)
	e.sink.Unlock()
	e.log.Debug("tone settings applied",
		zap.Float64("base_hz", s.BaseFrequency),
		zap.Float64("beat_hz", s.BeatFrequency),
		zap.Bool("isochronic", s.Isochronic))
	return s, err
}

func (e *Engine) Settings() Settings {
	return e.tone.Settings()
}

// DeviceType is the configured output device kind.
func (e *Engine) DeviceType() string {
	return e.opts.DeviceType
}

// LoadMusic replaces the music channel with the file at path, looped and
// resampled to the engine rate.
func (e *Engine) LoadMusic(path string) error {
	track, err := Open(path)
	if err != nil {
		return err
	}

	loop := beep.Loop(-1, track.Streamer)
	var src beep.Streamer = loop
	if track.Format.SampleRate != e.opts.SampleRate {
		src = beep.Resample(resampleQuality, track.Format.SampleRate, e.opts.SampleRate, loop)
	}

	e.sink.Lock()
	old := e.track
	e.music.s = src
	e.track = track
	e.sink.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			e.log.Warn("closing previous track", zap.String("track", old.Path), zap.Error(err))
		}
	}
	e.log.Info("music loaded",
		zap.String("path", path),
		zap.Int("sample_rate", int(track.Format.SampleRate)))
	return nil
}

// TrackPath is the loaded music file, empty when none.
func (e *Engine) TrackPath() string {
	if e.track == nil {
		return ""
	}
	return e.track.Path
}

// MusicProgress reports the position within the current loop of the track.
func (e *Engine) MusicProgress() (pos, total time.Duration, ok bool) {
	if e.track == nil {
		return 0, 0, false
	}
	e.sink.Lock()
	p, n := e.track.Streamer.Position(), e.track.Streamer.Len()
	e.sink.Unlock()
	sr := e.track.Format.SampleRate
	return sr.D(p), sr.D(n), true
}

// Level is the recent output level in 0..1 for the meter.
func (e *Engine) Level() float64 {
	return e.tap.level(levelWindow)
}

// Close releases the music file.
func (e *Engine) Close() error {
	e.Stop()
	if e.track == nil {
		return nil
	}
	e.sink.Lock()
	e.music.s = nil
	track := e.track
	e.track = nil
	e.sink.Unlock()
	return track.Close()
}

// slot is a never-ending streamer whose source can be swapped. It plays
// silence while empty.
type slot struct {
	s beep.Streamer
}

func (sl *slot) Stream(samples [][2]float64) (int, bool) {
	n := 0
	if sl.s != nil {
		var ok bool
		n, ok = sl.s.Stream(samples)
		if !ok {
			sl.s = nil
		}
	}
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (sl *slot) Err() error { return nil }
