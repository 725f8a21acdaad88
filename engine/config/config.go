package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all viewer configuration.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Renderer RendererConfig `toml:"renderer"`
	Viewer   ViewerConfig   `toml:"viewer"`
	Assets   AssetsConfig   `toml:"assets"`
	Logging  LoggingConfig  `toml:"logging"`
}

// WindowConfig configures the platform window, if applicable.
type WindowConfig struct {
	// The application name used in windowing.
	Title  string `toml:"title"`
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
	// Window starting position.
	PosX uint32 `toml:"pos_x"`
	PosY uint32 `toml:"pos_y"`
}

// RendererConfig selects and tunes the rendering backend.
type RendererConfig struct {
	Backend    string `toml:"backend"` // software, headless
	RequireGPU bool   `toml:"require_gpu"`
	TargetFPS  int    `toml:"target_fps"`
	// Background colour as a colour name (golang.org/x/image/colornames).
	ClearColour string `toml:"clear_colour"`
}

// ViewerConfig configures the camera rig and controls.
type ViewerConfig struct {
	AutoRotate    bool    `toml:"auto_rotate"`
	RotateSpeed   float32 `toml:"rotate_speed"` // radians per second
	DefaultPreset string  `toml:"default_preset"`
	FOV           float32 `toml:"fov"` // degrees
	Near          float32 `toml:"near"`
	Far           float32 `toml:"far"`
	MinDistance   float32 `toml:"min_distance"`
	MaxDistance   float32 `toml:"max_distance"`
	// Spring parameters for the orbit damping.
	SpringFrequency float64 `toml:"spring_frequency"`
	SpringDamping   float64 `toml:"spring_damping"`
	ShowGround      bool    `toml:"show_ground"`
}

// AssetsConfig configures the external model path.
type AssetsConfig struct {
	ModelsDir string  `toml:"models_dir"`
	Origin    string  `toml:"origin"`
	Timeout   string  `toml:"timeout"`
	FitSize   float32 `toml:"fit_size"`
	Watch     bool    `toml:"watch"`
	Workers   int     `toml:"workers"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `toml:"level"` // debug, info, warn, error
	Caller bool   `toml:"caller"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Heritage Monument Viewer",
			Width:  1280,
			Height: 720,
			PosX:   100,
			PosY:   100,
		},
		Renderer: RendererConfig{
			Backend:     "software",
			TargetFPS:   60,
			ClearColour: "midnightblue",
		},
		Viewer: ViewerConfig{
			AutoRotate:      true,
			RotateSpeed:     0.5,
			DefaultPreset:   "3d",
			FOV:             45,
			Near:            0.1,
			Far:             1000,
			MinDistance:     2,
			MaxDistance:     100,
			SpringFrequency: 6.0,
			SpringDamping:   1.0,
			ShowGround:      true,
		},
		Assets: AssetsConfig{
			ModelsDir: "assets/models",
			Origin:    "http://localhost:8080",
			Timeout:   "30s",
			FitSize:   5,
			Watch:     true,
			Workers:   2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Caller: true,
		},
	}
}

// Load reads a TOML configuration file on top of the defaults. An empty
// path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a TOML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("HERITAGE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("HERITAGE_MODELS_DIR"); v != "" {
		c.Assets.ModelsDir = v
	}
	if v := os.Getenv("HERITAGE_ASSET_ORIGIN"); v != "" {
		c.Assets.Origin = v
	}
	if v := os.Getenv("HERITAGE_BACKEND"); v != "" {
		c.Renderer.Backend = v
	}
	if v := os.Getenv("HERITAGE_REQUIRE_GPU"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Renderer.RequireGPU = b
		}
	}
}

// AssetTimeout returns the asset download timeout as a duration.
func (c *Config) AssetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Assets.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// ValidBackends lists the rendering backends that can be selected.
var ValidBackends = []string{"software", "headless"}

// ValidPresets lists the accepted view preset names.
var ValidPresets = []string{"3d", "front", "side", "top"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width == 0 || c.Window.Height == 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if !contains(ValidBackends, c.Renderer.Backend) {
		errs = append(errs, fmt.Errorf("invalid renderer backend: %s (valid: %v)", c.Renderer.Backend, ValidBackends))
	}
	if c.Renderer.TargetFPS < 0 {
		errs = append(errs, fmt.Errorf("target_fps must not be negative"))
	}
	if !contains(ValidPresets, strings.ToLower(c.Viewer.DefaultPreset)) {
		errs = append(errs, fmt.Errorf("invalid default preset: %s (valid: %v)", c.Viewer.DefaultPreset, ValidPresets))
	}
	if c.Viewer.FOV <= 0 || c.Viewer.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov must be in (0, 180), got %v", c.Viewer.FOV))
	}
	if c.Viewer.Near <= 0 || c.Viewer.Far <= c.Viewer.Near {
		errs = append(errs, fmt.Errorf("clip planes must satisfy 0 < near < far"))
	}
	if c.Viewer.MinDistance <= 0 || c.Viewer.MaxDistance <= c.Viewer.MinDistance {
		errs = append(errs, fmt.Errorf("distance limits must satisfy 0 < min < max"))
	}
	if c.Assets.FitSize <= 0 {
		errs = append(errs, fmt.Errorf("fit_size must be positive"))
	}
	if c.Assets.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive"))
	}

	return errors.Join(errs...)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
