package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/faiface/beep"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/iburimskiy/brainwave-visualizer/internal/app"
	"github.com/iburimskiy/brainwave-visualizer/internal/audio"
	"github.com/iburimskiy/brainwave-visualizer/internal/config"
	"github.com/iburimskiy/brainwave-visualizer/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	verbose    bool
	watch      bool
	style      string
	intensity  float64

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "brainwave",
	Short: "Brainwave visualizer and binaural tone player",
	Long: `brainwave plays music mixed with background noise and a binaural or
isochronic tone, and animates the brainwave pattern for the selected style.

Run without a subcommand to open the player window.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlags(cmd, cfg)

		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return err
		}
		logger.Debug("configuration loaded", zap.String("path", configPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runWindow,
}

// applyFlags lets explicit command line values win over the config file.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	if cmd.Flags().Changed("style") {
		c.Visualizer.Style = style
	}
	if cmd.Flags().Changed("intensity") {
		c.Visualizer.Intensity = intensity
		c.Visualizer.FollowBrainwave = false
	}
}

func runWindow(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	engine, err := newEngine(cfg.Audio)
	if err != nil {
		return err
	}
	if cfg.Audio.MusicFile != "" {
		if err := engine.LoadMusic(cfg.Audio.MusicFile); err != nil {
			logger.Warn("music file not loaded", zap.String("path", cfg.Audio.MusicFile), zap.Error(err))
		}
	}

	var updates <-chan *config.Config
	if watch && configPath != "" {
		updates, err = config.Watch(ctx, configPath, logger.Named("config"))
		if err != nil {
			return fmt.Errorf("failed to watch config: %w", err)
		}
	}

	game := app.New(cfg, engine, updates, logger.Named("app"))
	defer func() {
		if err := game.Close(); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.TPS)

	logger.Info("starting player",
		zap.String("style", cfg.Visualizer.Style),
		zap.Bool("audio", cfg.Audio.Enabled))
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

func newEngine(a config.AudioConfig) (*audio.Engine, error) {
	buffer, err := a.BufferDuration()
	if err != nil {
		return nil, err
	}
	sink := audio.SpeakerSink()
	if !a.Enabled {
		sink = audio.NullSink()
	}
	return audio.NewEngine(sink, audio.Options{
		SampleRate: beep.SampleRate(a.SampleRate),
		Buffer:     buffer,
		DeviceType: a.DeviceType,
		Volumes:    [3]int{a.MusicVolume, a.BackgroundVolume, a.BrainwaveVolume},
		Settings: audio.Settings{
			BaseFrequency: a.BaseFrequency,
			BeatFrequency: a.BeatFrequency,
			Isochronic:    a.Isochronic,
			LeftEar:       a.LeftEar,
			RightEar:      a.RightEar,
		},
		NoiseSeed: time.Now().UnixNano(),
	}, logger.Named("audio")), nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&style, "style", "classic", "Music style: classic, ballad, jazz, meditation, rock")
	rootCmd.PersistentFlags().Float64Var(&intensity, "intensity", 50, "Animation intensity, 0-100")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "Reload the config file when it changes")

	rootCmd.AddCommand(renderCmd, presetsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
