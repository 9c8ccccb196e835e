package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Visualizer region, panel sits below it
	VisualizerX      = 20
	VisualizerY      = 30
	VisualizerWidth  = WindowWidth - 40
	VisualizerHeight = 300

	VisualRingSize = 8192
	MeterSmoothing = 0.6
)

// Config holds all brainwave-visualizer configuration.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Visualizer VisualizerConfig `yaml:"visualizer"`
	Audio      AudioConfig      `yaml:"audio"`
	Render     RenderConfig     `yaml:"render"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type WindowConfig struct {
	Title string `yaml:"title"`
	TPS   int    `yaml:"tps"`
}

// VisualizerConfig sets the initial animation inputs.
type VisualizerConfig struct {
	Style     string  `yaml:"style"`
	Intensity float64 `yaml:"intensity"`
	Playing   bool    `yaml:"playing"`

	// FollowBrainwave ties intensity to the brainwave volume slider.
	FollowBrainwave bool `yaml:"follow_brainwave"`
}

// AudioConfig configures the player engine.
type AudioConfig struct {
	Enabled    bool   `yaml:"enabled"`
	SampleRate int    `yaml:"sample_rate"`
	Buffer     string `yaml:"buffer"`     // speaker buffer duration
	DeviceType string `yaml:"device_type"` // headphones, stereo, external, mono
	MusicFile  string `yaml:"music_file"`

	MusicVolume      int `yaml:"music_volume"`
	BackgroundVolume int `yaml:"background_volume"`
	BrainwaveVolume  int `yaml:"brainwave_volume"`

	BaseFrequency float64 `yaml:"base_frequency"`
	BeatFrequency float64 `yaml:"beat_frequency"`
	Isochronic    bool    `yaml:"isochronic"`
	LeftEar       float64 `yaml:"left_ear"`
	RightEar      float64 `yaml:"right_ear"`
}

// RenderConfig configures headless frame export.
type RenderConfig struct {
	Frames  int     `yaml:"frames"`
	FPS     int     `yaml:"fps"`
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Scale   float64 `yaml:"scale"`
	OutDir  string  `yaml:"out_dir"`
	Workers int     `yaml:"workers"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title: "Brainwave Visualizer - Space: Play/Pause, S: Stop, 1-5: Style, Esc/Q: Quit",
			TPS:   60,
		},
		Visualizer: VisualizerConfig{
			Style:           "classic",
			Intensity:       50,
			FollowBrainwave: true,
		},
		Audio: AudioConfig{
			Enabled:          true,
			SampleRate:       44100,
			Buffer:           "50ms",
			DeviceType:       "headphones",
			MusicVolume:      70,
			BackgroundVolume: 30,
			BrainwaveVolume:  50,
			BaseFrequency:    440,
			BeatFrequency:    10,
		},
		Render: RenderConfig{
			Frames:  120,
			FPS:     60,
			Width:   800,
			Height:  300,
			Scale:   1,
			OutDir:  "frames",
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate rejects values the program cannot run with. Visual parameters
// (style, intensity) are deliberately left alone.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window.tps must be positive, got %d", c.Window.TPS))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate))
	}
	if _, err := c.Audio.BufferDuration(); err != nil {
		errs = append(errs, err)
	}
	for name, v := range map[string]int{
		"audio.music_volume":      c.Audio.MusicVolume,
		"audio.background_volume": c.Audio.BackgroundVolume,
		"audio.brainwave_volume":  c.Audio.BrainwaveVolume,
	} {
		if v < 0 || v > 100 {
			errs = append(errs, fmt.Errorf("%s must be within 0..100, got %d", name, v))
		}
	}
	if err := c.Render.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Validate checks the render section. The render command runs it again after
// applying command line overrides.
func (r RenderConfig) Validate() error {
	var errs []error
	if r.FPS <= 0 {
		errs = append(errs, fmt.Errorf("render.fps must be positive, got %d", r.FPS))
	}
	if r.Frames < 0 {
		errs = append(errs, fmt.Errorf("render.frames must not be negative, got %d", r.Frames))
	}
	if r.Workers <= 0 {
		errs = append(errs, fmt.Errorf("render.workers must be positive, got %d", r.Workers))
	}
	if r.Width <= 0 || r.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size must be positive, got %dx%d", r.Width, r.Height))
	}
	if r.Scale < 0 {
		errs = append(errs, fmt.Errorf("render.scale must not be negative, got %g", r.Scale))
	}
	return errors.Join(errs...)
}

// BufferDuration parses audio.buffer.
func (a AudioConfig) BufferDuration() (time.Duration, error) {
	d, err := time.ParseDuration(a.Buffer)
	if err != nil {
		return 0, fmt.Errorf("invalid audio.buffer %q: %w", a.Buffer, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("audio.buffer must be positive, got %s", d)
	}
	return d, nil
}

// FrameInterval is the wall time between headless frames.
func (r RenderConfig) FrameInterval() time.Duration {
	return time.Second / time.Duration(r.FPS)
}
