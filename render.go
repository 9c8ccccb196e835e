package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/iburimskiy/brainwave-visualizer/internal/config"
	"github.com/iburimskiy/brainwave-visualizer/internal/loop"
	"github.com/iburimskiy/brainwave-visualizer/internal/render"
	"github.com/iburimskiy/brainwave-visualizer/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	renderFrames int
	renderOut    string
	renderWidth  int
	renderHeight int
	renderScale  float64
	renderSeed   int64
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render animation frames to PNG files without a window",
	Long: `Runs the visualizer in playing state against an offscreen raster and writes
each frame as frame_NNNNN.png into the output directory.

Example:
  brainwave render --style meditation --intensity 80 --frames 300 --out frames/`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntVar(&renderFrames, "frames", 0, "Number of frames (default from config)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output directory (default from config)")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Frame width in logical pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "Frame height in logical pixels")
	renderCmd.Flags().Float64Var(&renderScale, "scale", 0, "Device pixels per logical pixel")
	renderCmd.Flags().Int64Var(&renderSeed, "seed", 0, "Random seed, 0 picks one from the clock")
}

func runRender(cmd *cobra.Command, args []string) error {
	rc := cfg.Render
	if cmd.Flags().Changed("frames") {
		rc.Frames = renderFrames
	}
	if renderOut != "" {
		rc.OutDir = renderOut
	}
	if renderWidth > 0 {
		rc.Width = renderWidth
	}
	if renderHeight > 0 {
		rc.Height = renderHeight
	}
	if renderScale > 0 {
		rc.Scale = renderScale
	}
	seed := renderSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	inputs := viz.Inputs{
		Playing:   true,
		Style:     cfg.Visualizer.Style,
		Intensity: cfg.Visualizer.Intensity,
	}
	n, err := exportFrames(cmd.Context(), rc, inputs, seed, logger.Named("render"))
	logger.Info("render finished",
		zap.Int("frames", n),
		zap.String("out", rc.OutDir),
		zap.Int64("seed", seed))
	return err
}

// exportFrames drives a visualizer on an offscreen raster and writes up to
// rc.Frames PNGs. It returns the number of frames captured. rc is validated
// first since flags may have overridden the loaded config. Cancelling ctx
// ends the run early without error.
func exportFrames(ctx context.Context, rc config.RenderConfig, in viz.Inputs, seed int64, log *zap.Logger) (int, error) {
	if err := rc.Validate(); err != nil {
		return 0, err
	}
	if rc.Frames == 0 {
		return 0, nil
	}
	if err := os.MkdirAll(rc.OutDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rc.Workers)

	raster := render.NewRaster(rc.Width, rc.Height, rc.Scale)
	sched := loop.NewScheduler()
	vis := viz.NewVisualizer(sched, viz.NewAnimator(rand.New(rand.NewSource(seed))), log.Named("visualizer"))
	vis.SetInputs(in)
	vis.Mount(raster)
	defer vis.Unmount()

	// capture is queued after the visualizer, so within a tick it always sees
	// the frame just painted.
	captured := 0
	var capture loop.FrameFunc
	capture = func(time.Duration) {
		img := raster.Image()
		if img == nil {
			sched.Request(capture)
			return
		}
		captured++
		frame := image.NewRGBA(img.Rect)
		copy(frame.Pix, img.Pix)
		path := filepath.Join(rc.OutDir, fmt.Sprintf("frame_%05d.png", captured))
		g.Go(func() error {
			return writePNG(path, frame)
		})
		if captured >= rc.Frames {
			cancel()
			return
		}
		sched.Request(capture)
	}
	sched.Request(capture)

	runErr := sched.Run(gctx, rc.FrameInterval())
	if err := g.Wait(); err != nil {
		return captured, err
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, context.DeadlineExceeded) {
		return captured, runErr
	}
	log.Debug("frames written", zap.Int("count", captured))
	return captured, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create frame: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
