package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/subdive/internal/engine/input"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		UserConfigPath(),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Subdive")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Subdive")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "subdive")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "subdive")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// normalize fills values a partial file leaves at zero.
func (c *Config) normalize() {
	fixScale := func(m *ModelConfig) {
		if m.Scale == (Vec3{}) {
			m.Scale = Vec3{1, 1, 1}
		}
	}
	fixScale(&c.Scene.Submarine)
	fixScale(&c.Scene.Marker.ModelConfig)
	for i := range c.Scene.Enemies {
		fixScale(&c.Scene.Enemies[i])
	}
}

// Validate reports every problem found, not just the first.
func (c *Config) Validate() error {
	var err error
	fail := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	g := c.Graphics
	if g.Width <= 0 || g.Height <= 0 {
		fail("graphics size %dx%d", g.Width, g.Height)
	}
	if g.FOV <= 0 || g.FOV >= 180 {
		fail("graphics.fov %v out of (0, 180)", g.FOV)
	}
	if g.Near <= 0 || g.Far <= g.Near {
		fail("graphics near/far %v/%v", g.Near, g.Far)
	}

	for name := range c.Controls.Bindings {
		if _, ok := input.ParseAction(name); !ok {
			fail("controls.bindings: unknown action %q", name)
		}
	}
	switch c.Controls.DragButton {
	case "left", "middle", "right":
	default:
		fail("controls.drag_button %q", c.Controls.DragButton)
	}

	s := c.Scene
	switch s.InitialMode {
	case "first-person", "third-person", "orthographic":
	default:
		fail("scene.initial_mode %q", s.InitialMode)
	}
	if len(s.AssetRoots) == 0 {
		fail("scene.asset_roots is empty")
	}
	if s.Submarine.Mesh == "" || s.Submarine.Diffuse == "" {
		fail("scene.submarine needs mesh and diffuse")
	}
	if s.Marker.Mesh == "" || s.Marker.Diffuse == "" {
		fail("scene.marker needs mesh and diffuse")
	}
	for i, e := range s.Enemies {
		if e.Mesh == "" || e.Diffuse == "" {
			fail("scene.enemies[%d] needs mesh and diffuse", i)
		}
	}
	if len(s.Skybox.Faces) != 6 {
		fail("scene.skybox.faces: want 6, got %d", len(s.Skybox.Faces))
	}
	sc := s.Skybox.Scales
	if sc.FirstPerson <= 0 || sc.ThirdPerson <= 0 || sc.Orthographic <= 0 {
		fail("scene.skybox.scales must be positive")
	}

	return err
}
