package app

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/brainwave-visualizer/internal/audio"
	"github.com/iburimskiy/brainwave-visualizer/internal/config"
	"github.com/iburimskiy/brainwave-visualizer/internal/loop"
	"github.com/iburimskiy/brainwave-visualizer/internal/preset"
	"github.com/iburimskiy/brainwave-visualizer/internal/viz"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"
)

const intensityStep = 5

var styleKeys = map[ebiten.Key]preset.Style{
	ebiten.Key1: preset.Classic,
	ebiten.Key2: preset.Ballad,
	ebiten.Key3: preset.Jazz,
	ebiten.Key4: preset.Meditation,
	ebiten.Key5: preset.Rock,
}

// Game is the interactive player window.
type Game struct {
	log     *zap.Logger
	engine  *audio.Engine
	updates <-chan *config.Config

	sched   *loop.Scheduler
	vis     *viz.Visualizer
	surface *screenSurface
	panel   *panel

	style           preset.Style
	intensity       float64
	followBrainwave bool

	ticks   int
	level   float64
	lastErr error
}

// New builds the window state. updates may be nil when config reload is off.
func New(cfg *config.Config, engine *audio.Engine, updates <-chan *config.Config, log *zap.Logger) *Game {
	style, ok := preset.Parse(cfg.Visualizer.Style)
	if !ok {
		log.Warn("unknown style, using classic", zap.String("style", cfg.Visualizer.Style))
	}

	rect := image.Rect(config.VisualizerX, config.VisualizerY,
		config.VisualizerX+config.VisualizerWidth, config.VisualizerY+config.VisualizerHeight)

	g := &Game{
		log:             log,
		engine:          engine,
		updates:         updates,
		sched:           loop.NewScheduler(),
		surface:         newScreenSurface(rect),
		style:           style,
		intensity:       cfg.Visualizer.Intensity,
		followBrainwave: cfg.Visualizer.FollowBrainwave,
	}
	volumes := [3]int{
		engine.Volume(audio.Music),
		engine.Volume(audio.Background),
		engine.Volume(audio.Brainwave),
	}
	g.panel = newPanel(engine.Settings(), volumes, audio.IsochronicAvailable(engine.DeviceType()))
	g.vis = viz.NewVisualizer(g.sched, viz.NewAnimator(nil), log.Named("visualizer"))
	g.vis.Mount(g.surface)
	g.syncInputs()

	if cfg.Visualizer.Playing {
		g.setErr(engine.Play())
	}
	return g
}

func (g *Game) Update() error {
	g.drainConfig()

	m := readMouse()
	g.updatePanel(m)

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.engine.Stop()
	}
	for key, style := range styleKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.setStyle(style)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.nudgeIntensity(intensityStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.nudgeIntensity(-intensityStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.openMusic()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.level = config.MeterSmoothing*g.level + (1-config.MeterSmoothing)*g.engine.Level()
	g.syncInputs()
	g.ticks++
	return nil
}

func (g *Game) updatePanel(m mouse) {
	p := g.panel
	if p.stop.update(m) {
		g.engine.Stop()
	}
	if p.play.update(m) {
		g.toggle()
	}
	if p.settings.update(m) {
		p.showAdvanced = !p.showAdvanced
	}
	if p.style.update(m) {
		g.setStyle(preset.Next(g.style))
	}
	if p.open.update(m) {
		g.openMusic()
	}
	for ch := range p.volumes {
		if p.volumes[ch].update(m) {
			g.engine.SetVolume(audio.Channel(ch), int(p.volumes[ch].value))
		}
	}
	if p.updateAdvanced(m) {
		applied, err := g.engine.ApplySettings(p.pending)
		p.syncSettings(applied)
		g.setErr(err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)

	g.sched.Tick(g.sched.Elapsed())
	playing := g.vis.Inputs().Playing
	g.surface.drawTo(screen, !playing)
	g.drawOverlay(screen, playing)

	phase := float64(g.ticks) / 60
	g.panel.draw(screen, g.engine.State(), g.level, phase)
	g.drawStatus(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// Close unmounts the visualizer and releases audio resources.
func (g *Game) Close() error {
	g.vis.Unmount()
	g.surface.dispose()
	return g.engine.Close()
}

func (g *Game) toggle() {
	g.setErr(g.engine.Toggle())
}

func (g *Game) setStyle(s preset.Style) {
	if s == g.style {
		return
	}
	g.style = s
	g.log.Debug("style changed", zap.String("style", string(s)))
}

func (g *Game) nudgeIntensity(delta float64) {
	g.followBrainwave = false
	g.intensity = math.Max(0, math.Min(100, g.currentIntensity()+delta))
}

func (g *Game) currentIntensity() float64 {
	if g.followBrainwave {
		return float64(g.engine.Volume(audio.Brainwave))
	}
	return g.intensity
}

// syncInputs pushes the player state into the visualizer.
func (g *Game) syncInputs() {
	g.panel.style.label = "Style: " + string(g.style)
	g.vis.SetInputs(viz.Inputs{
		Playing:   g.engine.State() == audio.Playing,
		Style:     string(g.style),
		Intensity: g.currentIntensity(),
	})
}

func (g *Game) drainConfig() {
	if g.updates == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-g.updates:
			if !ok {
				g.updates = nil
				return
			}
			g.applyConfig(cfg)
		default:
			return
		}
	}
}

func (g *Game) applyConfig(cfg *config.Config) {
	if style, ok := preset.Parse(cfg.Visualizer.Style); ok {
		g.setStyle(style)
	}
	g.intensity = cfg.Visualizer.Intensity
	g.followBrainwave = cfg.Visualizer.FollowBrainwave

	a := cfg.Audio
	for ch, v := range [3]int{a.MusicVolume, a.BackgroundVolume, a.BrainwaveVolume} {
		g.engine.SetVolume(audio.Channel(ch), v)
		g.panel.volumes[ch].value = float64(g.engine.Volume(audio.Channel(ch)))
	}
	applied, err := g.engine.ApplySettings(audio.Settings{
		BaseFrequency: a.BaseFrequency,
		BeatFrequency: a.BeatFrequency,
		Isochronic:    a.Isochronic,
		LeftEar:       a.LeftEar,
		RightEar:      a.RightEar,
	})
	g.panel.syncSettings(applied)
	g.setErr(err)
}

func (g *Game) openMusic() {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Music File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: audio.Patterns,
		}},
	)
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			g.setErr(err)
		}
		return
	}
	g.setErr(g.engine.LoadMusic(filename))
}

func (g *Game) setErr(err error) {
	if err == nil {
		return
	}
	g.lastErr = err
	g.log.Warn("player error", zap.Error(err))
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	t := float64(g.ticks) / 60
	for y := 0; y < config.WindowHeight; y += 4 {
		ratio := float64(y) / config.WindowHeight
		c := color.RGBA{
			R: uint8(22 + 8*math.Sin(t*0.3+ratio*math.Pi)),
			G: uint8(24 + 8*math.Cos(t*0.2+ratio*math.Pi)),
			B: uint8(20 + 6*math.Sin(t*0.4+ratio*math.Pi)),
			A: 255,
		}
		vector.DrawFilledRect(screen, 0, float32(y), config.WindowWidth, 4, c, false)
	}
}

// drawOverlay adds the centre pulse, corner glows and the activity badge.
func (g *Game) drawOverlay(screen *ebiten.Image, playing bool) {
	r := g.surface.rect
	cx, cy := float32(r.Min.X+r.Dx()/2), float32(r.Min.Y+r.Dy()/2)

	if playing {
		period := preset.PulsePeriod(g.style).Seconds()
		p := math.Mod(float64(g.ticks)/60, period) / period
		radius := 2 + 14*float32(p)
		alpha := uint8(110 * (1 - p))
		vector.DrawFilledCircle(screen, cx, cy, radius, color.NRGBA{R: 141, G: 112, B: 83, A: alpha}, true)
	}

	vector.DrawFilledCircle(screen, float32(r.Min.X+10), float32(r.Min.Y+10), 30, color.NRGBA{R: 141, G: 112, B: 83, A: 18}, true)
	vector.DrawFilledCircle(screen, float32(r.Max.X-10), float32(r.Max.Y-10), 30, color.NRGBA{R: 45, G: 80, B: 22, A: 18}, true)

	label := "Paused"
	dot := color.NRGBA{R: 150, G: 150, B: 140, A: 128}
	if playing {
		label = "Active"
		pulse := 0.6 + 0.4*math.Sin(float64(g.ticks)/10)
		dot = color.NRGBA{R: 141, G: 112, B: 83, A: uint8(255 * pulse)}
	}
	x := r.Max.X - 70
	vector.DrawFilledCircle(screen, float32(x), float32(r.Min.Y+20), 4, dot, true)
	ebitenutil.DebugPrintAt(screen, label, x+10, r.Min.Y+12)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	status := fmt.Sprintf("%s | %s | intensity %.0f", g.engine.State(), g.style, g.currentIntensity())
	if pos, total, ok := g.engine.MusicProgress(); ok {
		status += fmt.Sprintf(" | music %s / %s", formatDuration(pos), formatDuration(total))
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 8)
	ebitenutil.DebugPrintAt(screen, "Space play/pause  S stop  1-5 style  Up/Down intensity  O open  Esc quit",
		12, config.WindowHeight-20)
}
