package audio

import (
	"math/rand"
)

// brownNoise is an endless soft background bed: leaky-integrated white noise.
type brownNoise struct {
	rng  *rand.Rand
	last [2]float64
}

func newBrownNoise(seed int64) *brownNoise {
	return &brownNoise{rng: rand.New(rand.NewSource(seed))}
}

func (b *brownNoise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		for ch := 0; ch < 2; ch++ {
			white := b.rng.Float64()*2 - 1
			b.last[ch] = (b.last[ch] + 0.02*white) / 1.02
			samples[i][ch] = b.last[ch] * 3.5
		}
	}
	return len(samples), true
}

func (b *brownNoise) Err() error { return nil }
