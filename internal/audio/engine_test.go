package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSink records what the engine asks of the audio device.
type fakeSink struct {
	initErr error
	inits   int
	played  []beep.Streamer
	locked  int
}

func (f *fakeSink) Init(sr beep.SampleRate, bufferSize int) error {
	f.inits++
	return f.initErr
}
func (f *fakeSink) Play(s ...beep.Streamer) { f.played = append(f.played, s...) }
func (f *fakeSink) Lock()                   { f.locked++ }
func (f *fakeSink) Unlock()                 { f.locked-- }

func testOptions() Options {
	return Options{
		SampleRate: 8000,
		Buffer:     50 * time.Millisecond,
		DeviceType: "headphones",
		Volumes:    [3]int{70, 30, 50},
		Settings:   DefaultSettings(),
		NoiseSeed:  1,
	}
}

func TestTransportStateMachine(t *testing.T) {
	sink := &fakeSink{}
	e := NewEngine(sink, testOptions(), nil)
	assert.Equal(t, Stopped, e.State())

	e.Pause()
	assert.Equal(t, Stopped, e.State(), "pause is ignored while stopped")

	require.NoError(t, e.Play())
	assert.Equal(t, Playing, e.State())
	assert.Equal(t, 1, sink.inits)
	require.Len(t, sink.played, 1)

	require.NoError(t, e.Toggle())
	assert.Equal(t, Paused, e.State())
	require.NoError(t, e.Toggle())
	assert.Equal(t, Playing, e.State())

	e.Stop()
	e.Stop()
	assert.Equal(t, Stopped, e.State())

	require.NoError(t, e.Play())
	assert.Equal(t, 1, sink.inits, "output is opened once")
	assert.Zero(t, sink.locked, "every lock is released")
}

func TestPlayInitFailure(t *testing.T) {
	sink := &fakeSink{initErr: errors.New("no device")}
	e := NewEngine(sink, testOptions(), nil)

	err := e.Play()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no device")
	assert.Equal(t, Stopped, e.State())
}

func TestOutputSilentWhenStoppedAndAudibleWhenPlaying(t *testing.T) {
	sink := &fakeSink{}
	e := NewEngine(sink, testOptions(), nil)
	require.NoError(t, e.Play())
	out := sink.played[0]

	buf := make([][2]float64, 512)
	n, ok := out.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 512, n)
	assert.Greater(t, e.Level(), 0.0)

	e.Stop()
	assert.Zero(t, e.Level())
	out.Stream(buf)
	for _, s := range buf {
		require.Zero(t, s[0])
		require.Zero(t, s[1])
	}
}

func TestSetVolumeClamps(t *testing.T) {
	e := NewEngine(&fakeSink{}, testOptions(), nil)
	assert.Equal(t, 70, e.Volume(Music))

	e.SetVolume(Brainwave, 150)
	assert.Equal(t, 100, e.Volume(Brainwave))
	assert.Zero(t, e.volumes[Brainwave].Volume)

	e.SetVolume(Background, -4)
	assert.Equal(t, 0, e.Volume(Background))
	assert.True(t, e.volumes[Background].Silent)

	e.SetVolume(Music, 50)
	assert.InDelta(t, -1, e.volumes[Music].Volume, 1e-12)

	e.SetVolume(Channel(9), 10)
	assert.Zero(t, e.Volume(Channel(9)))
}

func TestApplySettingsIsochronicAvailability(t *testing.T) {
	e := NewEngine(&fakeSink{}, testOptions(), nil)
	applied, err := e.ApplySettings(Settings{BaseFrequency: 440, BeatFrequency: 10, Isochronic: true})
	require.ErrorIs(t, err, ErrIsochronicUnavailable)
	assert.False(t, applied.Isochronic)
	assert.False(t, e.Settings().Isochronic)

	opts := testOptions()
	opts.DeviceType = "stereo"
	e = NewEngine(&fakeSink{}, opts, nil)
	applied, err = e.ApplySettings(Settings{BaseFrequency: 433, BeatFrequency: 70, Isochronic: true, LeftEar: 1500})
	require.NoError(t, err)
	assert.True(t, applied.Isochronic)
	assert.Equal(t, 430.0, applied.BaseFrequency)
	assert.Equal(t, 50.0, applied.BeatFrequency)
	assert.Equal(t, 1000.0, applied.LeftEar)
}

func TestLoadMusicRejectsUnknownExtension(t *testing.T) {
	e := NewEngine(&fakeSink{}, testOptions(), nil)
	err := e.LoadMusic("song.ogg")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Empty(t, e.TrackPath())
}

func TestLoadMusicWav(t *testing.T) {
	path := writeSineWav(t, 8000, 4000)

	sink := &fakeSink{}
	e := NewEngine(sink, testOptions(), nil)
	require.NoError(t, e.LoadMusic(path))
	assert.Equal(t, path, e.TrackPath())

	_, total, ok := e.MusicProgress()
	require.True(t, ok)
	assert.Equal(t, 500*time.Millisecond, total)

	require.NoError(t, e.Play())
	buf := make([][2]float64, 1000)
	sink.played[0].Stream(buf)
	pos, _, _ := e.MusicProgress()
	assert.Equal(t, 125*time.Millisecond, pos)

	e.Stop()
	pos, _, _ = e.MusicProgress()
	assert.Zero(t, pos)
	require.NoError(t, e.Close())
	assert.Empty(t, e.TrackPath())
}

func writeSineWav(t *testing.T, rate beep.SampleRate, samples int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	phase := 0.0
	src := beep.Take(samples, beep.StreamerFunc(func(buf [][2]float64) (int, bool) {
		for i := range buf {
			v := math.Sin(phase) * 0.3
			buf[i] = [2]float64{v, v}
			phase += 2 * math.Pi * 220 / float64(rate)
		}
		return len(buf), true
	}))
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, src, format))
	require.NoError(t, f.Close())
	return path
}

func TestNullSinkRunsTransport(t *testing.T) {
	e := NewEngine(NullSink(), testOptions(), nil)
	require.NoError(t, e.Play())
	assert.Equal(t, Playing, e.State())
	e.SetVolume(Brainwave, 80)
	assert.Equal(t, 80, e.Volume(Brainwave))
	e.Stop()
	assert.Equal(t, Stopped, e.State())
	require.NoError(t, e.Close())
}
