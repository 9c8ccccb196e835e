package viz

import (
	"math"

	"github.com/iburimskiy/brainwave-visualizer/internal/preset"
)

// sampleStep is the horizontal distance between wave samples.
const sampleStep = 2.0

// Rand is the randomness source of the animator. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Heartbeat is a biphasic pulse driven by the frame counter; its rate grows
// with intensity.
func Heartbeat(frame, intensity float64) float64 {
	phase := frame * (0.05 * intensity / 100)
	cycle := math.Mod(phase, 2*math.Pi)

	switch {
	case cycle < math.Pi*0.3:
		return math.Sin(cycle*3.33) * 0.8
	case cycle < math.Pi*0.5:
		return math.Sin((cycle-math.Pi*0.3)*5) * 0.6
	default:
		return math.Sin((cycle-math.Pi*0.5)*0.5) * 0.2
	}
}

// HarmonicSum is the base brainwave of one layer: WaveCount decaying sines.
func HarmonicSum(p preset.Preset, normX, frame float64, layer int) float64 {
	phase := frame*p.Speed + float64(layer)*0.5
	sum := 0.0
	for k := 0; k < p.WaveCount; k++ {
		freq := p.Frequency * (1 + float64(k)*0.3)
		sum += math.Sin(normX*math.Pi*2*freq+phase) * (1 / float64(k+1))
	}
	return sum
}

// Irregularity is the jitter term for irregular styles, zero otherwise.
func Irregularity(p preset.Preset, normX, frame float64, r Rand) float64 {
	if p.Irregularity == 0 {
		return 0
	}
	return math.Sin(normX*50+frame*3) * r.Float64() * p.Irregularity
}

// AmplitudeScale converts the preset amplitude into pixels for an intensity.
func AmplitudeScale(p preset.Preset, intensity float64) float64 {
	return p.Amplitude * (intensity / 100)
}

// Deterministic is the composite offset at x without the random jitter.
func Deterministic(p preset.Preset, normX, frame, intensity float64, layer int) float64 {
	beat := Heartbeat(frame, intensity) * p.HeartbeatMix
	return (HarmonicSum(p, normX, frame, layer) + beat) * AmplitudeScale(p, intensity)
}

// SampleLayer samples one wave layer across the surface width.
func SampleLayer(p preset.Preset, width, height, frame, intensity float64, layer int, r Rand) []Point {
	centerY := height / 2
	amplitude := AmplitudeScale(p, intensity)
	beat := Heartbeat(frame, intensity) * p.HeartbeatMix
	offset := float64(layer-1) * 10

	points := make([]Point, 0, int(width/sampleStep)+1)
	for x := 0.0; x <= width; x += sampleStep {
		normX := 0.0
		if width > 0 {
			normX = x / width
		}
		composite := (HarmonicSum(p, normX, frame, layer) + beat + Irregularity(p, normX, frame, r)) * amplitude
		points = append(points, Point{X: x, Y: centerY + composite + offset})
	}
	return points
}

// layerStroke returns the paint for a layer: warm khaki for the front layer,
// dark green for the rest.
func layerStroke(layer int, height, intensity float64) Stroke {
	f := intensity / 100
	if layer == 0 {
		return Stroke{
			Width:    2,
			Top:      rgba(141, 112, 83, 0.6*f),
			Bottom:   rgba(141, 112, 83, 0.1*f),
			Height:   height,
			Glow:     rgba(0x8D, 0x70, 0x53, 1),
			GlowBlur: 10 * f,
		}
	}
	return Stroke{
		Width:    2 + float64(layer),
		Top:      rgba(45, 80, 22, 0.4*f),
		Bottom:   rgba(45, 80, 22, 0.05*f),
		Height:   height,
		Glow:     rgba(0x2D, 0x50, 0x16, 1),
		GlowBlur: 10 * f,
	}
}
