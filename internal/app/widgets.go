package app

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const charWidth = 6 // debug font glyph width

// mouse is the pointer state sampled once per Update.
type mouse struct {
	pos      image.Point
	pressed  bool
	down     bool // went down this tick
	released bool // went up this tick
}

func readMouse() mouse {
	x, y := ebiten.CursorPosition()
	return mouse{
		pos:      image.Pt(x, y),
		pressed:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		down:     inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}

type button struct {
	rect     image.Rectangle
	label    string
	hovered  bool
	pressed  bool
	disabled bool
	active   bool // highlighted, e.g. a toggle that is on
}

// update reports a click: press and release both inside the button.
func (b *button) update(m mouse) bool {
	b.hovered = m.pos.In(b.rect)
	if b.disabled {
		b.pressed = false
		return false
	}
	if b.hovered && m.down {
		b.pressed = true
	}
	clicked := false
	if m.released {
		clicked = b.pressed && b.hovered
		b.pressed = false
	}
	return clicked
}

func (b *button) draw(screen *ebiten.Image) {
	var bg color.Color
	switch {
	case b.disabled:
		bg = color.RGBA{R: 70, G: 72, B: 68, A: 255}
	case b.pressed:
		bg = color.RGBA{R: 95, G: 76, B: 56, A: 255}
	case b.hovered || b.active:
		bg = color.RGBA{R: 120, G: 96, B: 70, A: 255}
	default:
		bg = color.RGBA{R: 141, G: 112, B: 83, A: 255}
	}
	x, y := float32(b.rect.Min.X), float32(b.rect.Min.Y)
	w, h := float32(b.rect.Dx()), float32(b.rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, bg, false)
	vector.StrokeRect(screen, x, y, w, h, 2, color.RGBA{R: 200, G: 185, B: 160, A: 255}, false)

	textX := b.rect.Min.X + (b.rect.Dx()-len(b.label)*charWidth)/2
	textY := b.rect.Min.Y + (b.rect.Dy()-16)/2
	ebitenutil.DebugPrintAt(screen, b.label, textX, textY)
}

type slider struct {
	rect     image.Rectangle
	label    string
	unit     string
	min, max float64
	step     float64
	value    float64
	dragging bool
	disabled bool
}

// update drags the value and reports whether it changed.
func (s *slider) update(m mouse) bool {
	if s.disabled {
		s.dragging = false
		return false
	}
	if m.down && m.pos.In(s.rect) {
		s.dragging = true
	}
	if !m.pressed {
		s.dragging = false
		return false
	}
	if !s.dragging {
		return false
	}
	ratio := float64(m.pos.X-s.rect.Min.X) / float64(s.rect.Dx())
	v := snap(ratio, s.min, s.max, s.step)
	if v == s.value {
		return false
	}
	s.value = v
	return true
}

func (s *slider) draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, s.label, s.rect.Min.X, s.rect.Min.Y-16)
	valueText := fmt.Sprintf("%g%s", s.value, s.unit)
	ebitenutil.DebugPrintAt(screen, valueText, s.rect.Max.X-len(valueText)*charWidth, s.rect.Min.Y-16)

	x, y := float32(s.rect.Min.X), float32(s.rect.Min.Y)
	w, h := float32(s.rect.Dx()), float32(s.rect.Dy())
	trackY := y + h/2 - 3
	vector.DrawFilledRect(screen, x, trackY, w, 6, color.RGBA{R: 60, G: 62, B: 55, A: 255}, false)

	ratio := 0.0
	if s.max > s.min {
		ratio = (s.value - s.min) / (s.max - s.min)
	}
	fill := color.RGBA{R: 141, G: 112, B: 83, A: 255}
	if s.disabled {
		fill = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	}
	vector.DrawFilledRect(screen, x, trackY, w*float32(ratio), 6, fill, false)
	knobX := x + w*float32(ratio)
	vector.DrawFilledCircle(screen, knobX, y+h/2, 8, color.RGBA{R: 249, G: 249, B: 249, A: 255}, true)
	vector.StrokeCircle(screen, knobX, y+h/2, 8, 2, fill, true)
}

// snap maps a 0..1 ratio to a value in [lo, hi] on the step grid.
func snap(ratio, lo, hi, step float64) float64 {
	ratio = clamp01(ratio)
	v := lo + ratio*(hi-lo)
	if step > 0 {
		v = lo + math.Round((v-lo)/step)*step
	}
	return math.Max(lo, math.Min(hi, v))
}
