package app

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHSV(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 255, A: 200}, hsv(0, 1, 1, 200))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, hsv(120, 1, 1, 255))
	assert.Equal(t, hsv(30, 0.5, 0.5, 9), hsv(390, 0.5, 0.5, 9), "hue wraps")
	assert.Equal(t, hsv(330, 1, 1, 1), hsv(-30, 1, 1, 1))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00", formatDuration(0))
	assert.Equal(t, "01:05", formatDuration(65*time.Second))
	assert.Equal(t, "61:01", formatDuration(time.Hour+61*time.Second))
}

func TestSnap(t *testing.T) {
	tests := []struct {
		ratio, lo, hi, step, want float64
	}{
		{0, 100, 1000, 10, 100},
		{1, 100, 1000, 10, 1000},
		{0.5, 100, 1000, 10, 550},
		{0.501, 100, 1000, 10, 550},
		{-1, 1, 50, 1, 1},
		{2, 1, 50, 1, 50},
		{0.25, 0, 100, 0, 25},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, snap(tt.ratio, tt.lo, tt.hi, tt.step), 1e-9, "ratio %v", tt.ratio)
	}
}

func TestButtonClickNeedsPressAndReleaseInside(t *testing.T) {
	b := button{rect: rectAt(10, 10, 50, 20)}
	inside := mouse{pos: ptAt(20, 15)}
	outside := mouse{pos: ptAt(200, 15)}

	down := inside
	down.down, down.pressed = true, true
	assert.False(t, b.update(down))
	up := inside
	up.released = true
	assert.True(t, b.update(up))

	assert.False(t, b.update(down))
	up = outside
	up.released = true
	assert.False(t, b.update(up), "release outside cancels")

	b.disabled = true
	b.update(down)
	up = inside
	up.released = true
	assert.False(t, b.update(up))
}

func TestSliderDragSnaps(t *testing.T) {
	s := slider{rect: rectAt(0, 0, 100, 20), min: 0, max: 100, step: 10, value: 0}
	m := mouse{pos: ptAt(47, 5), down: true, pressed: true}
	assert.True(t, s.update(m))
	assert.Equal(t, 50.0, s.value)

	m.down = false
	assert.False(t, s.update(m), "no change")

	m.pressed = false
	assert.False(t, s.update(m))
	assert.False(t, s.dragging)
}

func rectAt(x, y, w, h int) image.Rectangle { return image.Rect(x, y, x+w, y+h) }
func ptAt(x, y int) image.Point             { return image.Pt(x, y) }
