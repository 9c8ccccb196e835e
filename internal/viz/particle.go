package viz

const (
	alphaDecay = 0.995
	alphaFloor = 0.01
	particleR  = 2.0
)

// Particle is an ambient dot drifting away from the centre line.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Alpha  float64
	Life   float64 // remaining frames
}

func newParticle(x, y float64, r Rand) Particle {
	return Particle{
		X:     x,
		Y:     y,
		VX:    (r.Float64() - 0.5) * 2,
		VY:    (r.Float64() - 0.5) * 2,
		Alpha: r.Float64()*0.5 + 0.5,
		Life:  r.Float64()*100 + 50,
	}
}

// step advances p by one frame and reports whether it is still alive.
func (p *Particle) step() bool {
	p.X += p.VX
	p.Y += p.VY
	p.Alpha *= alphaDecay
	p.Life--
	return p.Life > 0 && p.Alpha >= alphaFloor
}

// maybeSpawn adds one particle with probability intensity/1000.
func maybeSpawn(particles []Particle, width, height, intensity float64, r Rand) []Particle {
	if r.Float64() >= intensity/1000 {
		return particles
	}
	x := r.Float64() * width
	y := height/2 + (r.Float64()-0.5)*100
	return append(particles, newParticle(x, y, r))
}

// stepParticles advances every particle, drops the dead ones in place and
// draws the survivors when s is non-nil.
func stepParticles(particles []Particle, s Surface) []Particle {
	alive := particles[:0]
	for _, p := range particles {
		if !p.step() {
			continue
		}
		alive = append(alive, p)
		if s != nil {
			s.FillCircle(p.X, p.Y, particleR, rgba(0x8D, 0x70, 0x53, p.Alpha))
		}
	}
	clear(particles[len(alive):])
	return alive
}
