package preset

import (
	"strings"
	"time"
)

// Style is a musical style tag selecting a wave preset.
type Style string

const (
	Classic    Style = "classic"
	Ballad     Style = "ballad"
	Jazz       Style = "jazz"
	Meditation Style = "meditation"
	Rock       Style = "rock"
)

// Preset parameterizes the waveform synthesis for one style.
type Preset struct {
	Frequency    float64
	Amplitude    float64
	WaveCount    int
	Speed        float64
	Irregularity float64 // weight of the random jitter term, 0 disables it
	HeartbeatMix float64
}

var table = map[Style]Preset{
	Classic:    {Frequency: 0.02, Amplitude: 40, WaveCount: 3, Speed: 1, Irregularity: 0, HeartbeatMix: 0.3},
	Ballad:     {Frequency: 0.015, Amplitude: 35, WaveCount: 2, Speed: 0.7, Irregularity: 0.1, HeartbeatMix: 0.4},
	Jazz:       {Frequency: 0.025, Amplitude: 45, WaveCount: 4, Speed: 1.5, Irregularity: 0.6, HeartbeatMix: 0.2},
	Meditation: {Frequency: 0.008, Amplitude: 25, WaveCount: 2, Speed: 0.4, Irregularity: 0, HeartbeatMix: 0.6},
	Rock:       {Frequency: 0.035, Amplitude: 60, WaveCount: 5, Speed: 2, Irregularity: 0.8, HeartbeatMix: 0.1},
}

var order = []Style{Classic, Ballad, Jazz, Meditation, Rock}

// Lookup returns the preset for style. Unknown styles get the classic preset.
func Lookup(style string) Preset {
	if p, ok := table[Style(style)]; ok {
		return p
	}
	return table[Classic]
}

// Parse resolves a user-supplied style name, ignoring case and surrounding space.
func Parse(s string) (Style, bool) {
	st := Style(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := table[st]; ok {
		return st, true
	}
	return Classic, false
}

// Styles lists every style in display order.
func Styles() []Style {
	out := make([]Style, len(order))
	copy(out, order)
	return out
}

// LayerCount is the number of wave layers actually drawn for p.
func LayerCount(p Preset) int {
	return min(3, p.WaveCount)
}

// PulsePeriod is the cadence of the centre pulse overlay.
func PulsePeriod(style Style) time.Duration {
	switch style {
	case Meditation:
		return 3 * time.Second
	case Rock:
		return 800 * time.Millisecond
	default:
		return 2 * time.Second
	}
}

// Next cycles to the style after s.
func Next(s Style) Style {
	for i, st := range order {
		if st == s {
			return order[(i+1)%len(order)]
		}
	}
	return Classic
}
