package viz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// framesUntilRemoved steps a lone particle until it dies.
func framesUntilRemoved(t *testing.T, p Particle, limit int) int {
	t.Helper()
	ps := []Particle{p}
	for n := 1; n <= limit; n++ {
		ps = stepParticles(ps, nil)
		if len(ps) == 0 {
			return n
		}
	}
	t.Fatalf("particle still alive after %d frames", limit)
	return 0
}

func TestParticleRemovedWhenLifeRunsOut(t *testing.T) {
	for _, life := range []float64{1, 50, 149} {
		n := framesUntilRemoved(t, Particle{Alpha: 1, Life: life}, 1000)
		assert.LessOrEqual(t, float64(n), life)
		assert.Equal(t, int(life), n)
	}
}

func TestParticleRemovedWhenAlphaFades(t *testing.T) {
	const alpha = 0.0105
	bound := int(math.Ceil(math.Log(0.01/alpha) / math.Log(0.995)))

	n := framesUntilRemoved(t, Particle{Alpha: alpha, Life: 150}, 1000)
	assert.LessOrEqual(t, n, bound)
	assert.Equal(t, 10, n)
}

func TestSpawnedParticleRanges(t *testing.T) {
	r := &seqRand{vals: []float64{0, 0.5, 0.25, 0.999, 0.0, 0.75, 0.5}}
	ps := maybeSpawn(nil, 400, 200, 100, r)
	require.Len(t, ps, 1)
	p := ps[0]

	assert.Equal(t, 200.0, p.X)
	assert.Equal(t, 75.0, p.Y)
	assert.InDelta(t, 0.998, p.VX, 1e-12)
	assert.Equal(t, -1.0, p.VY)
	assert.Equal(t, 0.875, p.Alpha)
	assert.Equal(t, 100.0, p.Life)
}

func TestSpawnProbability(t *testing.T) {
	// intensity 100 spawns when the draw is below 0.1
	assert.Len(t, maybeSpawn(nil, 10, 10, 100, fixedRand(0.09)), 1)
	assert.Empty(t, maybeSpawn(nil, 10, 10, 100, fixedRand(0.1)))
	assert.Empty(t, maybeSpawn(nil, 10, 10, 0, fixedRand(0)))
}

func TestNoDeadParticlesAfterFrame(t *testing.T) {
	a := NewAnimator(&seqRand{vals: []float64{0.01, 0.3, 0.6, 0.2, 0.9, 0.4, 0.8, 0.05}})
	s := newRecorder(300, 120)
	in := Inputs{Playing: true, Style: "jazz", Intensity: 100}

	for i := 0; i < 400; i++ {
		a.Frame(s, in)
		for _, p := range a.Particles() {
			require.Greater(t, p.Life, 0.0)
			require.GreaterOrEqual(t, p.Alpha, alphaFloor)
		}
	}
}

func TestStepMovesAndDecays(t *testing.T) {
	p := Particle{X: 1, Y: 2, VX: 0.5, VY: -1, Alpha: 1, Life: 3}
	require.True(t, p.step())
	assert.Equal(t, 1.5, p.X)
	assert.Equal(t, 1.0, p.Y)
	assert.Equal(t, 0.995, p.Alpha)
	assert.Equal(t, 2.0, p.Life)
}
