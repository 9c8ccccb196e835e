package app

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/brainwave-visualizer/internal/render"
	"github.com/iburimskiy/brainwave-visualizer/internal/viz"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

const (
	// quads per stroke batch, keeps vertex counts well inside uint16 indices
	strokeChunk = 64
	washGrid    = 16
)

// screenSurface renders the animation into an offscreen image at device
// resolution, which is then composited into rect on the window.
type screenSurface struct {
	rect image.Rectangle
	dpr  float64
	off  *ebiten.Image

	vs []ebiten.Vertex
	is []uint16
}

func newScreenSurface(rect image.Rectangle) *screenSurface {
	return &screenSurface{rect: rect, dpr: 1}
}

func (s *screenSurface) Resize() (float64, float64, bool) {
	w, h := s.rect.Dx(), s.rect.Dy()
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	dpr := 1.0
	if m := ebiten.Monitor(); m != nil && m.DeviceScaleFactor() > 0 {
		dpr = m.DeviceScaleFactor()
	}
	pw := int(math.Ceil(float64(w) * dpr))
	ph := int(math.Ceil(float64(h) * dpr))
	if s.off == nil || s.off.Bounds().Dx() != pw || s.off.Bounds().Dy() != ph {
		if s.off != nil {
			s.off.Deallocate()
		}
		s.off = ebiten.NewImage(pw, ph)
	} else {
		s.off.Clear()
	}
	s.dpr = dpr
	return float64(w), float64(h), true
}

func (s *screenSurface) FillRadial(cx, cy, radius float64, inner, outer color.NRGBA) {
	w, h := float64(s.rect.Dx()), float64(s.rect.Dy())
	vs, is := s.vs[:0], s.is[:0]
	for j := 0; j <= washGrid; j++ {
		for i := 0; i <= washGrid; i++ {
			x := w * float64(i) / washGrid
			y := h * float64(j) / washGrid
			c := render.RadialAt(math.Hypot(x-cx, y-cy), radius, inner, outer)
			vs = append(vs, vertex(x*s.dpr, y*s.dpr, c))
		}
	}
	for j := 0; j < washGrid; j++ {
		for i := 0; i < washGrid; i++ {
			a := uint16(j*(washGrid+1) + i)
			b := a + washGrid + 1
			is = append(is, a, a+1, b, a+1, b+1, b)
		}
	}
	s.off.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{})
	s.vs, s.is = vs, is
}

func (s *screenSurface) StrokeCurve(c viz.Curve, st viz.Stroke) {
	gradient := func(y float64) color.NRGBA { return render.GradientAt(st, y) }
	s.strokePath(c, st.Width, gradient)
	for _, pass := range render.GlowPasses(st) {
		col := pass.Color
		s.strokePath(c, pass.Width, func(float64) color.NRGBA { return col })
	}
	s.strokePath(c, st.Width, gradient)
}

func (s *screenSurface) strokePath(c viz.Curve, width float64, paint func(y float64) color.NRGBA) {
	if width <= 0 || len(c.Quads) == 0 {
		return
	}
	op := &vector.StrokeOptions{
		Width:    float32(width * s.dpr),
		LineCap:  vector.LineCapRound,
		LineJoin: vector.LineJoinRound,
	}
	f := func(v float64) float32 { return float32(v * s.dpr) }

	from := c.Start
	for start := 0; start < len(c.Quads); start += strokeChunk {
		end := min(start+strokeChunk, len(c.Quads))
		var path vector.Path
		path.MoveTo(f(from.X), f(from.Y))
		for _, q := range c.Quads[start:end] {
			path.QuadTo(f(q.Ctrl.X), f(q.Ctrl.Y), f(q.End.X), f(q.End.Y))
			from = q.End
		}

		vs, is := path.AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], op)
		for i := range vs {
			col := paint(float64(vs[i].DstY) / s.dpr)
			vs[i].SrcX, vs[i].SrcY = 1, 1
			vs[i].ColorR = float32(col.R) / 255
			vs[i].ColorG = float32(col.G) / 255
			vs[i].ColorB = float32(col.B) / 255
			vs[i].ColorA = float32(col.A) / 255
		}
		s.off.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
		s.vs, s.is = vs, is
	}
}

func (s *screenSurface) FillCircle(x, y, radius float64, c color.NRGBA) {
	vector.DrawFilledCircle(s.off, float32(x*s.dpr), float32(y*s.dpr), float32(radius*s.dpr), c, true)
}

// drawTo composites the last frame onto dst. Idle frames are dimmed.
func (s *screenSurface) drawTo(dst *ebiten.Image, dim bool) {
	if s.off == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1/s.dpr, 1/s.dpr)
	op.GeoM.Translate(float64(s.rect.Min.X), float64(s.rect.Min.Y))
	op.Filter = ebiten.FilterLinear
	if dim {
		op.ColorScale.Scale(0.7, 0.7, 0.7, 1)
	}
	dst.DrawImage(s.off, op)
}

func (s *screenSurface) dispose() {
	if s.off != nil {
		s.off.Deallocate()
		s.off = nil
	}
}

func vertex(x, y float64, c color.NRGBA) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 255,
		ColorG: float32(c.G) / 255,
		ColorB: float32(c.B) / 255,
		ColorA: float32(c.A) / 255,
	}
}
