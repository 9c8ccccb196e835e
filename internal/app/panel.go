package app

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/brainwave-visualizer/internal/audio"
	"github.com/iburimskiy/brainwave-visualizer/internal/config"
)

const (
	panelTop     = config.VisualizerY + config.VisualizerHeight + 20
	leftColumnX  = 20
	leftColumnW  = 460
	rightColumnX = 540
	rightColumnW = config.WindowWidth - rightColumnX - 20
)

// panel is the audio control card below the visualizer: transport buttons,
// channel volumes and the advanced tone settings.
type panel struct {
	stop, play, settings, style, open button

	volumes [3]slider // indexed by audio.Channel
	meter   image.Rectangle

	showAdvanced bool
	isoAvailable bool
	base, beat   slider
	left, right  slider
	isochronic   button
	apply        button
	pending      audio.Settings
}

func newPanel(settings audio.Settings, volumes [3]int, isoAvailable bool) *panel {
	row := func(x, y, w int) image.Rectangle { return image.Rect(x, y, x+w, y+40) }
	sliderAt := func(x, y, w int) image.Rectangle { return image.Rect(x, y, x+w, y+20) }

	p := &panel{
		stop:         button{rect: row(leftColumnX, panelTop, 70), label: "Stop"},
		play:         button{rect: row(leftColumnX+80, panelTop, 90), label: "Play"},
		settings:     button{rect: row(leftColumnX+180, panelTop, 90), label: "Settings"},
		style:        button{rect: row(leftColumnX+280, panelTop, 110), label: "Style"},
		open:         button{rect: row(leftColumnX+400, panelTop, 60), label: "Open"},
		meter:        image.Rect(leftColumnX, panelTop+200, leftColumnX+leftColumnW, panelTop+220),
		isoAvailable: isoAvailable,
		pending:      settings,
	}

	names := [3]string{"Music", "Background", "Brainwave"}
	for ch := range p.volumes {
		p.volumes[ch] = slider{
			rect:  sliderAt(leftColumnX, panelTop+70+ch*42, leftColumnW),
			label: names[ch],
			unit:  "%",
			min:   0, max: 100, step: 1,
			value: float64(volumes[ch]),
		}
	}

	y := panelTop + 16
	p.base = slider{rect: sliderAt(rightColumnX, y, rightColumnW), label: "Base Frequency", unit: " Hz",
		min: 100, max: 1000, step: 10, value: settings.BaseFrequency}
	p.beat = slider{rect: sliderAt(rightColumnX, y+42, rightColumnW), label: "Beat Frequency", unit: " Hz",
		min: 1, max: 50, step: 1, value: settings.BeatFrequency}
	p.isochronic = button{rect: row(rightColumnX, y+72, 160), label: "Isochronic Tones", disabled: !isoAvailable}
	p.left = slider{rect: sliderAt(rightColumnX, y+146, rightColumnW/2-10), label: "Left Ear", unit: " Hz",
		min: 0, max: 1000, step: 10, value: settings.LeftEar}
	p.right = slider{rect: sliderAt(rightColumnX+rightColumnW/2+10, y+146, rightColumnW/2-10), label: "Right Ear", unit: " Hz",
		min: 0, max: 1000, step: 10, value: settings.RightEar}
	p.apply = button{rect: row(rightColumnX, y+184, rightColumnW), label: "Apply Settings"}
	return p
}

// earsVisible mirrors the rule that per-ear inputs only exist for an enabled,
// available isochronic mode.
func (p *panel) earsVisible() bool {
	return p.pending.Isochronic && p.isoAvailable
}

// updateAdvanced handles the settings card and reports an apply click.
func (p *panel) updateAdvanced(m mouse) bool {
	if !p.showAdvanced {
		return false
	}
	if p.base.update(m) {
		p.pending.BaseFrequency = p.base.value
	}
	if p.beat.update(m) {
		p.pending.BeatFrequency = p.beat.value
	}
	if p.isochronic.update(m) {
		p.pending.Isochronic = !p.pending.Isochronic
	}
	p.isochronic.active = p.pending.Isochronic
	if p.earsVisible() {
		if p.left.update(m) {
			p.pending.LeftEar = p.left.value
		}
		if p.right.update(m) {
			p.pending.RightEar = p.right.value
		}
	}
	return p.apply.update(m)
}

// syncSettings resets the pending form to what the engine applied.
func (p *panel) syncSettings(s audio.Settings) {
	p.pending = s
	p.base.value, p.beat.value = s.BaseFrequency, s.BeatFrequency
	p.left.value, p.right.value = s.LeftEar, s.RightEar
	p.isochronic.active = s.Isochronic
}

func (p *panel) draw(screen *ebiten.Image, state audio.State, level float64, phase float64) {
	card := color.RGBA{R: 30, G: 32, B: 28, A: 230}
	vector.DrawFilledRect(screen, 10, panelTop-10, config.WindowWidth-20, config.WindowHeight-panelTop, card, false)

	p.stop.disabled = state == audio.Stopped
	if state == audio.Playing {
		p.play.label = "Pause"
	} else {
		p.play.label = "Play"
	}
	for _, b := range []*button{&p.stop, &p.play, &p.settings, &p.style, &p.open} {
		b.draw(screen)
	}
	for i := range p.volumes {
		p.volumes[i].draw(screen)
	}
	p.drawMeter(screen, level, phase)

	if p.showAdvanced {
		p.drawAdvanced(screen)
	} else {
		ebitenutil.DebugPrintAt(screen, "Advanced Settings (click Settings)", rightColumnX, panelTop+10)
	}
}

func (p *panel) drawAdvanced(screen *ebiten.Image) {
	p.base.draw(screen)
	p.beat.draw(screen)
	p.isochronic.draw(screen)
	if !p.isoAvailable {
		ebitenutil.DebugPrintAt(screen, "Available only for stereo/external speakers",
			p.isochronic.rect.Max.X+10, p.isochronic.rect.Min.Y+12)
	}
	if p.earsVisible() {
		p.left.draw(screen)
		p.right.draw(screen)
	}
	p.apply.draw(screen)
}

// drawMeter draws the output level bar in the style of a segmented VU meter.
func (p *panel) drawMeter(screen *ebiten.Image, level, phase float64) {
	const segments = 32
	r := p.meter
	x, y := float32(r.Min.X), float32(r.Min.Y)
	w, h := float32(r.Dx()), float32(r.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, color.RGBA{R: 20, G: 25, B: 20, A: 200}, false)
	vector.StrokeRect(screen, x, y, w, h, 1, color.RGBA{R: 90, G: 100, B: 80, A: 255}, false)

	lit := int(clamp01(level) * segments)
	segW := w / segments
	for i := 0; i < lit; i++ {
		ratio := float64(i) / segments
		c := hsv(90-ratio*70+phase*10, 0.6, 0.55, 220)
		vector.DrawFilledRect(screen, x+float32(i)*segW+1, y+2, segW-2, h-4, c, false)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Level %3.0f%%", clamp01(level)*100), r.Min.X, r.Max.Y+4)
}
