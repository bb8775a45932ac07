// Package config holds the runtime settings of the room viewer, read from
// a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is where the viewer looks for settings when none is given.
const DefaultFile = "config/room.toml"

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Camera  CameraConfig  `toml:"camera"`
	Orbit   OrbitConfig   `toml:"orbit"`
	Light   LightConfig   `toml:"light"`
	Assets  AssetsConfig  `toml:"assets"`
	Logging LoggingConfig `toml:"logging"`
}

type WindowConfig struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Title     string `toml:"title"`
	VSync     bool   `toml:"vsync"`
	Resizable bool   `toml:"resizable"`
	Samples   int    `toml:"samples"`
}

type CameraConfig struct {
	FOV      float32    `toml:"fov"`
	Near     float32    `toml:"near"`
	Far      float32    `toml:"far"`
	Position [3]float32 `toml:"position"`
}

type OrbitConfig struct {
	Step       float32 `toml:"step"`
	HeightStep float32 `toml:"height_step"`
	Radius     float32 `toml:"radius"`
	Damping    float32 `toml:"damping"`
	ClickSlop  float64 `toml:"click_slop"`
}

type LightConfig struct {
	Radius     float32 `toml:"radius"`
	Height     float32 `toml:"height"`
	Intensity  float32 `toml:"intensity"`
	Range      float32 `toml:"range"`
	ShadowSize int     `toml:"shadow_size"`
}

type AssetsConfig struct {
	Dir     string `toml:"dir"`
	Workers int    `toml:"workers"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "Desk Room",
			VSync:     true,
			Resizable: true,
			Samples:   4,
		},
		Camera: CameraConfig{
			FOV:      75,
			Near:     0.1,
			Far:      1000,
			Position: [3]float32{5, 2, 5},
		},
		Orbit: OrbitConfig{
			Step:       0.05,
			HeightStep: 0.1,
			Radius:     5,
			Damping:    0.05,
			ClickSlop:  4,
		},
		Light: LightConfig{
			Radius:     3,
			Height:     3,
			Intensity:  30,
			Range:      100,
			ShadowSize: 1024,
		},
		Assets: AssetsConfig{
			Dir:     "assets",
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error; a
// file that fails to parse or validate is.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("config file not found, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %v out of range (0, 180)", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip planes near=%v far=%v invalid", c.Camera.Near, c.Camera.Far))
	}
	if c.Light.ShadowSize <= 0 {
		errs = append(errs, fmt.Errorf("light shadow_size %d must be positive", c.Light.ShadowSize))
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging level %q: %w", l.Level, err)
	}
	return level, nil
}
