package audio

import (
	"errors"
	"math"

	"github.com/faiface/beep"
)

// ErrIsochronicUnavailable is returned when isochronic tones are requested for
// an output device that cannot reproduce them.
var ErrIsochronicUnavailable = errors.New("isochronic tones require stereo or external speakers")

const toneAmplitude = 0.5

// Settings are the advanced brainwave tone parameters.
type Settings struct {
	BaseFrequency float64 // Hz, 100..1000 in steps of 10
	BeatFrequency float64 // Hz, 1..50
	Isochronic    bool
	LeftEar       float64 // Hz, 0 means base frequency
	RightEar      float64
}

func DefaultSettings() Settings {
	return Settings{BaseFrequency: 440, BeatFrequency: 10}
}

// Clamp snaps every field into its control range.
func (s Settings) Clamp() Settings {
	s.BaseFrequency = math.Round(clamp(s.BaseFrequency, 100, 1000)/10) * 10
	s.BeatFrequency = math.Round(clamp(s.BeatFrequency, 1, 50))
	s.LeftEar = math.Round(clamp(s.LeftEar, 0, 1000))
	s.RightEar = math.Round(clamp(s.RightEar, 0, 1000))
	return s
}

// EarFrequencies returns the carrier frequency for each ear.
func (s Settings) EarFrequencies() (left, right float64) {
	if !s.Isochronic {
		return s.BaseFrequency, s.BaseFrequency + s.BeatFrequency
	}
	left, right = s.BaseFrequency, s.BaseFrequency
	if s.LeftEar > 0 {
		left = s.LeftEar
	}
	if s.RightEar > 0 {
		right = s.RightEar
	}
	return left, right
}

// IsochronicAvailable reports whether device can play isochronic tones.
func IsochronicAvailable(device string) bool {
	return device == "stereo" || device == "external"
}

// Tone is an endless binaural or isochronic beat generator.
type Tone struct {
	sr       beep.SampleRate
	settings Settings

	phaseL, phaseR, phaseBeat float64
}

func NewTone(sr beep.SampleRate, s Settings) *Tone {
	return &Tone{sr: sr, settings: s.Clamp()}
}

// Configure swaps the settings without resetting phases, so changes are
// click free. Callers serialize with the speaker lock.
func (t *Tone) Configure(s Settings) {
	t.settings = s.Clamp()
}

func (t *Tone) Settings() Settings {
	return t.settings
}

// Reset rewinds all oscillators.
func (t *Tone) Reset() {
	t.phaseL, t.phaseR, t.phaseBeat = 0, 0, 0
}

func (t *Tone) Stream(samples [][2]float64) (int, bool) {
	rate := float64(t.sr)
	left, right := t.settings.EarFrequencies()
	incL, incR := left/rate, right/rate
	incBeat := t.settings.BeatFrequency / rate

	for i := range samples {
		gain := toneAmplitude
		if t.settings.Isochronic {
			// raised cosine pulse, one per beat period
			gain *= 0.5 - 0.5*math.Cos(2*math.Pi*t.phaseBeat)
		}
		samples[i][0] = math.Sin(2*math.Pi*t.phaseL) * gain
		samples[i][1] = math.Sin(2*math.Pi*t.phaseR) * gain

		t.phaseL = wrap(t.phaseL + incL)
		t.phaseR = wrap(t.phaseR + incR)
		t.phaseBeat = wrap(t.phaseBeat + incBeat)
	}
	return len(samples), true
}

func (t *Tone) Err() error { return nil }

func wrap(phase float64) float64 {
	if phase >= 1 {
		phase -= math.Floor(phase)
	}
	return phase
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
