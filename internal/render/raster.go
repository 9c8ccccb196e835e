package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/iburimskiy/brainwave-visualizer/internal/viz"
	"golang.org/x/image/vector"
)

const (
	curveSteps   = 4
	circleKappa  = 0.5522847498
	joinSegments = 8
)

// Raster is an in-memory surface backed by an RGBA image, for headless
// rendering.
type Raster struct {
	width, height float64
	scale         float64

	img *image.RGBA
	ras *vector.Rasterizer
}

// NewRaster creates a surface displayed at width x height logical units and
// scale device pixels per unit.
func NewRaster(width, height int, scale float64) *Raster {
	if scale <= 0 {
		scale = 1
	}
	return &Raster{
		width:  float64(width),
		height: float64(height),
		scale:  scale,
	}
}

// SetSize changes the displayed size; the backing store follows on Resize.
func (r *Raster) SetSize(width, height int) {
	r.width, r.height = float64(width), float64(height)
}

// Image is the backing store of the last frame. It is reused between frames.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

func (r *Raster) Resize() (float64, float64, bool) {
	if r.width <= 0 || r.height <= 0 {
		return 0, 0, false
	}
	pw := int(math.Ceil(r.width * r.scale))
	ph := int(math.Ceil(r.height * r.scale))
	if r.img == nil || r.img.Rect.Dx() != pw || r.img.Rect.Dy() != ph {
		r.img = image.NewRGBA(image.Rect(0, 0, pw, ph))
		r.ras = vector.NewRasterizer(pw, ph)
	} else {
		clear(r.img.Pix)
	}
	return r.width, r.height, true
}

func (r *Raster) FillRadial(cx, cy, radius float64, inner, outer color.NRGBA) {
	src := &radialGradient{cx: cx, cy: cy, radius: radius, inner: inner, outer: outer, scale: r.scale}
	draw.Draw(r.img, r.img.Bounds(), src, image.Point{}, draw.Over)
}

func (r *Raster) StrokeCurve(c viz.Curve, s viz.Stroke) {
	line := Flatten(c, curveSteps)
	gradient := &verticalGradient{stroke: s, scale: r.scale}
	r.strokeLine(line, s.Width, gradient)
	for _, pass := range GlowPasses(s) {
		r.strokeLine(line, pass.Width, image.NewUniform(pass.Color))
	}
	r.strokeLine(line, s.Width, gradient)
}

func (r *Raster) FillCircle(x, y, radius float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	r.begin()
	r.circle(x*r.scale, y*r.scale, radius*r.scale)
	r.ras.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}

func (r *Raster) begin() {
	b := r.img.Bounds()
	r.ras.Reset(b.Dx(), b.Dy())
	r.ras.DrawOp = draw.Over
}

// strokeLine fills the union of one quad per segment plus round joins. All
// sub-paths share a winding direction so overlaps do not cancel out.
func (r *Raster) strokeLine(line []viz.Point, width float64, src image.Image) {
	if len(line) == 0 || width <= 0 {
		return
	}
	r.begin()
	hw := width * r.scale / 2
	for i := 0; i+1 < len(line); i++ {
		ax, ay := line[i].X*r.scale, line[i].Y*r.scale
		bx, by := line[i+1].X*r.scale, line[i+1].Y*r.scale
		dx, dy := bx-ax, by-ay
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw
		r.ras.MoveTo(float32(ax+nx), float32(ay+ny))
		r.ras.LineTo(float32(bx+nx), float32(by+ny))
		r.ras.LineTo(float32(bx-nx), float32(by-ny))
		r.ras.LineTo(float32(ax-nx), float32(ay-ny))
		r.ras.ClosePath()
	}
	for _, p := range line {
		r.join(p.X*r.scale, p.Y*r.scale, hw)
	}
	r.ras.Draw(r.img, r.img.Bounds(), src, image.Point{})
}

// join adds a polygonal disc wound the same way as the segment quads.
func (r *Raster) join(cx, cy, radius float64) {
	for i := 0; i <= joinSegments; i++ {
		a := -2 * math.Pi * float64(i) / joinSegments
		x, y := float32(cx+radius*math.Cos(a)), float32(cy+radius*math.Sin(a))
		if i == 0 {
			r.ras.MoveTo(x, y)
			continue
		}
		r.ras.LineTo(x, y)
	}
	r.ras.ClosePath()
}

func (r *Raster) circle(cx, cy, radius float64) {
	k := radius * circleKappa
	f := func(v float64) float32 { return float32(v) }
	r.ras.MoveTo(f(cx+radius), f(cy))
	r.ras.CubeTo(f(cx+radius), f(cy+k), f(cx+k), f(cy+radius), f(cx), f(cy+radius))
	r.ras.CubeTo(f(cx-k), f(cy+radius), f(cx-radius), f(cy+k), f(cx-radius), f(cy))
	r.ras.CubeTo(f(cx-radius), f(cy-k), f(cx-k), f(cy-radius), f(cx), f(cy-radius))
	r.ras.CubeTo(f(cx+k), f(cy-radius), f(cx+radius), f(cy-k), f(cx+radius), f(cy))
	r.ras.ClosePath()
}
