package render

import (
	"image/color"
	"testing"

	"github.com/iburimskiy/brainwave-visualizer/internal/viz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func alphaSum(r *Raster) int {
	sum := 0
	pix := r.Image().Pix
	for i := 3; i < len(pix); i += 4 {
		sum += int(pix[i])
	}
	return sum
}

func TestRasterNotReadyWithoutSize(t *testing.T) {
	r := NewRaster(0, 100, 1)
	_, _, ok := r.Resize()
	assert.False(t, ok)

	a := viz.NewAnimator(constRand(0.5))
	assert.False(t, a.Frame(r, viz.Inputs{Playing: true, Intensity: 50}))
}

func TestRasterResizeFollowsScale(t *testing.T) {
	r := NewRaster(100, 40, 2)
	w, h, ok := r.Resize()
	require.True(t, ok)
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 40.0, h)
	assert.Equal(t, 200, r.Image().Rect.Dx())
	assert.Equal(t, 80, r.Image().Rect.Dy())

	r.SetSize(50, 40)
	r.Resize()
	assert.Equal(t, 100, r.Image().Rect.Dx())
}

func TestRasterResizeClears(t *testing.T) {
	r := NewRaster(20, 20, 1)
	r.Resize()
	r.FillCircle(10, 10, 5, color.NRGBA{255, 0, 0, 255})
	require.Positive(t, alphaSum(r))

	r.Resize()
	assert.Zero(t, alphaSum(r))
}

func TestPlayingFrameDrawsMoreThanIdle(t *testing.T) {
	idle := NewRaster(160, 80, 1)
	a := viz.NewAnimator(constRand(0.5))
	require.True(t, a.Frame(idle, viz.Inputs{Playing: false, Intensity: 100}))
	washOnly := alphaSum(idle)
	assert.Positive(t, washOnly)

	playing := NewRaster(160, 80, 1)
	require.True(t, a.Frame(playing, viz.Inputs{Playing: true, Style: "rock", Intensity: 100}))
	assert.Greater(t, alphaSum(playing), washOnly)
}

func TestGradientAt(t *testing.T) {
	s := viz.Stroke{
		Top:    color.NRGBA{0, 0, 0, 200},
		Bottom: color.NRGBA{100, 100, 100, 0},
		Height: 100,
	}
	assert.Equal(t, s.Top, GradientAt(s, -5))
	assert.Equal(t, color.NRGBA{50, 50, 50, 100}, GradientAt(s, 50))
	assert.Equal(t, s.Bottom, GradientAt(s, 500))
}

func TestVerticalGradientSamplesPixelCentres(t *testing.T) {
	s := viz.Stroke{
		Top:    color.NRGBA{0, 0, 0, 200},
		Bottom: color.NRGBA{100, 100, 100, 0},
		Height: 100,
	}
	g := &verticalGradient{stroke: s, scale: 2}
	assert.Equal(t, s.Top, g.At(0, -10), "stroke alpha is kept as is")
	assert.Equal(t, GradientAt(s, 49.75), g.At(7, 99))
	assert.Equal(t, s.Bottom, g.At(0, 400))
}

func TestRadialAt(t *testing.T) {
	inner := color.NRGBA{249, 249, 249, 26}
	outer := color.NRGBA{249, 249, 249, 5}
	assert.Equal(t, inner, RadialAt(0, 10, inner, outer))
	assert.Equal(t, outer, RadialAt(20, 10, inner, outer))
	assert.Equal(t, outer, RadialAt(0, 0, inner, outer))
}

func TestGlowPasses(t *testing.T) {
	s := viz.Stroke{Width: 2, Glow: color.NRGBA{45, 80, 22, 255}, GlowBlur: 10}
	passes := GlowPasses(s)
	require.Len(t, passes, 3)
	assert.Greater(t, passes[2].Width, passes[0].Width)
	assert.Greater(t, passes[0].Color.A, passes[2].Color.A)

	s.GlowBlur = -5
	assert.Nil(t, GlowPasses(s))
}

func TestFlatten(t *testing.T) {
	c := viz.Curve{
		Start: viz.Point{X: 0, Y: 0},
		Quads: []viz.Quad{{Ctrl: viz.Point{X: 1, Y: 2}, End: viz.Point{X: 2, Y: 0}}},
	}
	line := Flatten(c, 2)
	require.Len(t, line, 3)
	assert.Equal(t, viz.Point{X: 1, Y: 1}, line[1])
	assert.Equal(t, viz.Point{X: 2, Y: 0}, line[2])
}
