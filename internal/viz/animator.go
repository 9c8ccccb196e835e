package viz

import (
	"math/rand"
	"time"

	"github.com/iburimskiy/brainwave-visualizer/internal/preset"
)

// Inputs are the externally owned parameters of the animation. They may change
// between any two frames.
type Inputs struct {
	Playing   bool
	Style     string
	Intensity float64 // nominally 0..100, not clamped
}

// Animator renders the brainwave animation one frame at a time. It owns the
// frame counter and the live particles; neither is shared.
type Animator struct {
	rng       Rand
	frame     int
	particles []Particle
}

// NewAnimator returns an idle animator. A nil rng seeds one from the clock.
func NewAnimator(rng Rand) *Animator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Animator{rng: rng}
}

// Frame paints one frame on s. It returns false when the surface was not ready
// and nothing was drawn.
func (a *Animator) Frame(s Surface, in Inputs) bool {
	width, height, ok := s.Resize()
	if !ok {
		return false
	}

	s.FillRadial(width/2, height/2, width/2,
		rgba(249, 249, 249, 0.1), rgba(249, 249, 249, 0.02))

	if !in.Playing {
		a.Stop()
		return true
	}

	a.frame++
	frame := float64(a.frame)
	p := preset.Lookup(in.Style)

	for layer := 0; layer < preset.LayerCount(p); layer++ {
		points := SampleLayer(p, width, height, frame, in.Intensity, layer, a.rng)
		s.StrokeCurve(Smooth(points), layerStroke(layer, height, in.Intensity))
	}

	a.particles = maybeSpawn(a.particles, width, height, in.Intensity, a.rng)
	a.particles = stepParticles(a.particles, s)
	return true
}

// Stop returns the animator to idle: frame counter zero, no particles.
func (a *Animator) Stop() {
	a.frame = 0
	clear(a.particles)
	a.particles = a.particles[:0]
}

// FrameCount is the number of playing frames since the last stop.
func (a *Animator) FrameCount() int {
	return a.frame
}

// Particles returns a snapshot of the live particles.
func (a *Animator) Particles() []Particle {
	out := make([]Particle, len(a.particles))
	copy(out, a.particles)
	return out
}
