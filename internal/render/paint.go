package render

import (
	"image"
	"image/color"
	"math"

	"github.com/iburimskiy/brainwave-visualizer/internal/viz"
)

// GlowPass is one translucent re-stroke of a curve.
type GlowPass struct {
	Width float64
	Color color.NRGBA
}

// GlowPasses approximates a canvas shadow blur with widening faint strokes.
func GlowPasses(s viz.Stroke) []GlowPass {
	if s.GlowBlur <= 0 || s.Glow.A == 0 {
		return nil
	}
	strength := clamp01(s.GlowBlur / 10)
	passes := make([]GlowPass, 0, 3)
	for k := 1; k <= 3; k++ {
		c := s.Glow
		c.A = uint8(float64(s.Glow.A) * 0.25 * strength / float64(k))
		passes = append(passes, GlowPass{
			Width: s.Width + s.GlowBlur*float64(k)*2/3,
			Color: c,
		})
	}
	return passes
}

// GradientAt is the stroke colour at logical height y.
func GradientAt(s viz.Stroke, y float64) color.NRGBA {
	if s.Height <= 0 {
		return s.Top
	}
	return lerp(s.Top, s.Bottom, clamp01(y/s.Height))
}

// RadialAt is the wash colour at distance d from the centre.
func RadialAt(d, radius float64, inner, outer color.NRGBA) color.NRGBA {
	if radius <= 0 {
		return outer
	}
	return lerp(inner, outer, clamp01(d/radius))
}

// Flatten converts a curve to a polyline with steps points per segment.
func Flatten(c viz.Curve, steps int) []viz.Point {
	out := make([]viz.Point, 0, 1+len(c.Quads)*steps)
	out = append(out, c.Start)
	from := c.Start
	for _, q := range c.Quads {
		for i := 1; i <= steps; i++ {
			t := float64(i) / float64(steps)
			u := 1 - t
			out = append(out, viz.Point{
				X: u*u*from.X + 2*u*t*q.Ctrl.X + t*t*q.End.X,
				Y: u*u*from.Y + 2*u*t*q.Ctrl.Y + t*t*q.End.Y,
			})
		}
		from = q.End
	}
	return out
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

var infinite = image.Rectangle{
	Min: image.Point{X: -1e9, Y: -1e9},
	Max: image.Point{X: 1e9, Y: 1e9},
}

// verticalGradient is a source image for gradient strokes on a raster scaled
// by scale device pixels per logical unit.
type verticalGradient struct {
	stroke viz.Stroke
	scale  float64
}

func (g *verticalGradient) ColorModel() color.Model { return color.NRGBAModel }
func (g *verticalGradient) Bounds() image.Rectangle { return infinite }

func (g *verticalGradient) At(x, y int) color.Color {
	return GradientAt(g.stroke, (float64(y)+0.5)/g.scale)
}

type radialGradient struct {
	cx, cy, radius float64
	inner, outer   color.NRGBA
	scale          float64
}

func (g *radialGradient) ColorModel() color.Model { return color.NRGBAModel }
func (g *radialGradient) Bounds() image.Rectangle { return infinite }

func (g *radialGradient) At(x, y int) color.Color {
	dx := (float64(x)+0.5)/g.scale - g.cx
	dy := (float64(y)+0.5)/g.scale - g.cy
	return RadialAt(math.Hypot(dx, dy), g.radius, g.inner, g.outer)
}
