package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"go.uber.org/multierr"

	"github.com/Faultbox/subdive/internal/game/world"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Graphics.FOV != 60 {
		t.Errorf("expected fov 60, got %v", cfg.Graphics.FOV)
	}

	scales := cfg.Scene.Skybox.Scales
	if !(scales.FirstPerson < scales.ThirdPerson && scales.ThirdPerson < scales.Orthographic) {
		t.Errorf("skybox presets should grow small to large, got %+v", scales)
	}
	if scales != world.DefaultSkyboxScales() {
		t.Errorf("skybox presets %+v differ from the world defaults", scales)
	}
	if cfg.Scene.Marker.FarRadius <= cfg.Scene.Marker.NearRadius {
		t.Error("marker far radius should exceed near radius")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fov: 75

controls:
  bindings:
    cycle_light: "F"
  drag_button: left

scene:
  initial_mode: third-person
  submarine:
    mesh: models/u-boat.obj
    diffuse: textures/u-boat.tga
    position: [1, -4, 2]
  enemies:
    - name: mine
      mesh: models/mine.obj
      diffuse: textures/mine.png
      position: [0, -10, -30]
  skybox:
    scales:
      orthographic: 400

audio:
  enabled: false
  muted: true

logging:
  level: "debug"
  log_file: "subdive.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	cfg.normalize()

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FOV != 75 {
		t.Errorf("expected fov 75, got %v", cfg.Graphics.FOV)
	}

	// Bindings merge into the defaults.
	if got := cfg.Controls.Bindings["cycle_light"]; got != "F" {
		t.Errorf("expected cycle_light F, got %q", got)
	}
	if got := cfg.Controls.Bindings["forward"]; got != "W" {
		t.Errorf("expected default forward binding to survive, got %q", got)
	}

	if cfg.Scene.InitialMode != "third-person" {
		t.Errorf("expected initial mode third-person, got %s", cfg.Scene.InitialMode)
	}
	if cfg.Scene.Submarine.Position != (Vec3{1, -4, 2}) {
		t.Errorf("unexpected submarine position %v", cfg.Scene.Submarine.Position)
	}
	if len(cfg.Scene.Enemies) != 1 || cfg.Scene.Enemies[0].Name != "mine" {
		t.Fatalf("expected one enemy named mine, got %+v", cfg.Scene.Enemies)
	}
	if cfg.Scene.Enemies[0].Scale != (Vec3{1, 1, 1}) {
		t.Errorf("expected missing scale to default to 1, got %v", cfg.Scene.Enemies[0].Scale)
	}
	if cfg.Scene.Skybox.Scales.Orthographic != 400 || cfg.Scene.Skybox.Scales.FirstPerson != 50 {
		t.Errorf("unexpected skybox scales %+v", cfg.Scene.Skybox.Scales)
	}

	if cfg.Audio.Enabled || !cfg.Audio.Muted {
		t.Error("expected audio disabled and muted")
	}
	if cfg.Logging.LogFile != "subdive.log" {
		t.Errorf("expected log file 'subdive.log', got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config is invalid: %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Graphics.Width = 0
	cfg.Graphics.FOV = 200
	cfg.Controls.Bindings["jump"] = "J"
	cfg.Controls.DragButton = "thumb"
	cfg.Scene.Skybox.Faces = cfg.Scene.Skybox.Faces[:5]

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if n := len(multierr.Errors(err)); n != 5 {
		t.Errorf("expected 5 problems, got %d: %v", n, err)
	}
}

func TestValidateInitialMode(t *testing.T) {
	for _, mode := range []string{"first-person", "third-person", "orthographic"} {
		cfg := Default()
		cfg.Scene.InitialMode = mode
		if err := cfg.Validate(); err != nil {
			t.Errorf("mode %s rejected: %v", mode, err)
		}
	}

	cfg := Default()
	cfg.Scene.InitialMode = "top-down"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for unknown mode, got %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "assets flag",
			setup: func() { *flagAssets = "/srv/subdive" },
			verify: func(t *testing.T, cfg *Config) {
				roots := cfg.Scene.AssetRoots
				if len(roots) != 2 || roots[0] != "/srv/subdive" || roots[1] != "assets" {
					t.Errorf("expected flag root searched first, got %v", roots)
				}
			},
			teardown: func() { *flagAssets = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Graphics.Width = 1024
	cfg.Scene.Camera.DragFactor = 0.25
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Graphics.Width != 1024 || loaded.Scene.Camera.DragFactor != 0.25 {
		t.Errorf("saved values not restored: width %d, drag %v", loaded.Graphics.Width, loaded.Scene.Camera.DragFactor)
	}
}

func TestSaveThenLoad(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("user config directory is only redirectable through XDG_CONFIG_HOME")
	}
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)
	os.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	*flagSaveConfig = true
	defer func() { *flagSaveConfig = false }()
	if !SaveRequested() {
		t.Fatal("SaveRequested should follow the --save-config flag")
	}

	cfg := Default()
	cfg.Graphics.Width = 1600
	cfg.Audio.Muted = true
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(UserConfigPath()); err != nil {
		t.Fatalf("expected config at %s: %v", UserConfigPath(), err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Graphics.Width != 1600 || !loaded.Audio.Muted {
		t.Errorf("saved config not picked up: width %d, muted %v", loaded.Graphics.Width, loaded.Audio.Muted)
	}
}
