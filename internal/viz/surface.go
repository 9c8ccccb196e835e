package viz

import "image/color"

// Point is one sample of a wave layer in surface coordinates.
type Point struct {
	X, Y float64
}

// Quad is a quadratic Bézier segment continuing from the previous end point.
type Quad struct {
	Ctrl, End Point
}

// Curve is a smoothed polyline: a start point followed by quadratic segments.
type Curve struct {
	Start Point
	Quads []Quad
}

// Stroke describes how a curve is painted. The colour runs as a vertical
// gradient from Top at y=0 to Bottom at y=Height.
type Stroke struct {
	Width    float64
	Top      color.NRGBA
	Bottom   color.NRGBA
	Height   float64
	Glow     color.NRGBA
	GlowBlur float64
}

// Surface is the drawing target of the animator. Coordinates are logical
// (pre pixel density) units.
type Surface interface {
	// Resize matches the backing store to the displayed size at the current
	// pixel density, clears it and returns the logical size. ok is false when
	// the surface is not attached yet.
	Resize() (width, height float64, ok bool)
	FillRadial(cx, cy, radius float64, inner, outer color.NRGBA)
	StrokeCurve(c Curve, s Stroke)
	FillCircle(x, y, radius float64, c color.NRGBA)
}

// Smooth turns sampled points into a curve the way a canvas path built with
// quadraticCurveTo through segment midpoints does.
func Smooth(points []Point) Curve {
	if len(points) == 0 {
		return Curve{}
	}
	c := Curve{Start: points[0]}
	if len(points) > 2 {
		c.Quads = make([]Quad, 0, len(points)-2)
	}
	for i := 1; i < len(points)-1; i++ {
		mid := Point{
			X: (points[i].X + points[i+1].X) / 2,
			Y: (points[i].Y + points[i+1].Y) / 2,
		}
		c.Quads = append(c.Quads, Quad{Ctrl: points[i], End: mid})
	}
	return c
}

func rgba(r, g, b uint8, alpha float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(alpha)*255 + 0.5)}
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
