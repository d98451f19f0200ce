// Package config handles scene configuration loading and management.
package config

import "github.com/Faultbox/subdive/internal/game/world"

// Vec3 is a YAML-friendly three component vector.
type Vec3 [3]float32

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Controls ControlsConfig `yaml:"controls"`
	Scene    SceneConfig    `yaml:"scene"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
	Debug    DebugConfig    `yaml:"debug"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// ControlsConfig maps action names to SDL scancode names.
type ControlsConfig struct {
	Bindings   map[string]string `yaml:"bindings"`
	DragButton string            `yaml:"drag_button"` // left, middle or right
}

// SceneConfig describes what the scene is built from.
type SceneConfig struct {
	AssetRoots  []string       `yaml:"asset_roots"`
	InitialMode string         `yaml:"initial_mode"`
	Shaders     ShaderConfig   `yaml:"shaders"`
	Submarine   ModelConfig    `yaml:"submarine"`
	Marker      MarkerConfig   `yaml:"marker"`
	Enemies     []ModelConfig  `yaml:"enemies"`
	Skybox      SkyboxConfig   `yaml:"skybox"`
	Camera      CameraConfig   `yaml:"camera"`
	Movement    MovementConfig `yaml:"movement"`
	Lights      LightsConfig   `yaml:"lights"`
}

// ShaderConfig names shader source files. Empty paths use the built-in shaders.
type ShaderConfig struct {
	ModelVertex    string `yaml:"model_vertex"`
	ModelFragment  string `yaml:"model_fragment"`
	SkyboxVertex   string `yaml:"skybox_vertex"`
	SkyboxFragment string `yaml:"skybox_fragment"`
}

// ModelConfig places a textured mesh.
type ModelConfig struct {
	Name     string `yaml:"name"`
	Mesh     string `yaml:"mesh"`
	Diffuse  string `yaml:"diffuse"`
	Normal   string `yaml:"normal"` // optional
	Alpha    bool   `yaml:"alpha"`
	Position Vec3   `yaml:"position"`
	Rotation Vec3   `yaml:"rotation"`
	Scale    Vec3   `yaml:"scale"`
}

// MarkerConfig is the first-person viewpoint marker.
type MarkerConfig struct {
	ModelConfig `yaml:",inline"`
	NearRadius  float32 `yaml:"near_radius"`
	FarRadius   float32 `yaml:"far_radius"`
}

// SkyboxConfig lists cube faces in +X, -X, +Y, -Y, +Z, -Z order and the
// per-mode scale presets.
type SkyboxConfig struct {
	Faces  []string           `yaml:"faces"`
	Scales world.SkyboxScales `yaml:"scales"`
}

// CameraConfig holds camera tunables.
type CameraConfig struct {
	Start        Vec3    `yaml:"start"`
	OrbitRadius  float32 `yaml:"orbit_radius"`
	OrbitHeight  float32 `yaml:"orbit_height"`
	DragFactor   float32 `yaml:"drag_factor"`
	OrthoHeight  float32 `yaml:"ortho_height"`
	OrthoPanStep float32 `yaml:"ortho_pan_step"`
	OrthoExtent  float32 `yaml:"ortho_extent"` // half width of the top-down box
}

// MovementConfig holds per-frame movement steps.
type MovementConfig struct {
	Step     float32 `yaml:"step"`
	TurnStep float32 `yaml:"turn_step"`
	DiveStep float32 `yaml:"dive_step"`
	MeshYaw  float32 `yaml:"mesh_yaw"` // submarine model facing correction
}

// LightsConfig holds light parameters.
type LightsConfig struct {
	SunAzimuth      float32 `yaml:"sun_azimuth"`
	SunElevation    float32 `yaml:"sun_elevation"`
	SunColor        Vec3    `yaml:"sun_color"`
	SunIntensity    float32 `yaml:"sun_intensity"`
	PointColor      Vec3    `yaml:"point_color"`
	AmbientStrength float32 `yaml:"ambient_strength"`
	AmbientColor    Vec3    `yaml:"ambient_color"`
	SpecStrength    float32 `yaml:"spec_strength"`
	SpecPhong       float32 `yaml:"spec_phong"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	Enabled       bool    `yaml:"enabled"`
	MasterVolume  float32 `yaml:"master_volume"`
	AmbientVolume float32 `yaml:"ambient_volume"`
	SFXVolume     float32 `yaml:"sfx_volume"`
	Muted         bool    `yaml:"muted"`
	Ambient       string  `yaml:"ambient"`
	Ping          string  `yaml:"ping"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// DefaultBindings returns the stock key map.
func DefaultBindings() map[string]string {
	return map[string]string{
		"forward":      "W",
		"back":         "S",
		"left":         "A",
		"right":        "D",
		"ascend":       "E",
		"descend":      "Q",
		"pan_up":       "Up",
		"pan_down":     "Down",
		"pan_left":     "Left",
		"pan_right":    "Right",
		"mode_toggle":  "Tab",
		"ortho_select": "O",
		"cycle_light":  "L",
		"screenshot":   "F12",
		"mute":         "M",
		"volume_up":    "=",
		"volume_down":  "-",
		"quit":         "Escape",
	}
}

// Default returns a Config with sensible default values.
func Default() *Config {
	white := Vec3{1, 1, 1}
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        60,
			Near:       0.1,
			Far:        1000,
		},
		Controls: ControlsConfig{
			Bindings:   DefaultBindings(),
			DragButton: "right",
		},
		Scene: SceneConfig{
			AssetRoots:  []string{"assets"},
			InitialMode: "first-person",
			Submarine: ModelConfig{
				Name:     "submarine",
				Mesh:     "models/submarine.obj",
				Diffuse:  "textures/submarine_diffuse.png",
				Normal:   "textures/submarine_normal.png",
				Position: Vec3{0, -2, 0},
				Scale:    white,
			},
			Marker: MarkerConfig{
				ModelConfig: ModelConfig{
					Name:    "marker",
					Mesh:    "models/filter.obj",
					Diffuse: "textures/filter.png",
					Alpha:   true,
					Scale:   Vec3{0.2, 0.2, 0.2},
				},
				NearRadius: 0.5,
				FarRadius:  2.5,
			},
			Enemies: []ModelConfig{
				{Name: "enemy-1", Mesh: "models/enemy.obj", Diffuse: "textures/enemy.png", Position: Vec3{8, -6, 12}, Scale: white},
				{Name: "enemy-2", Mesh: "models/enemy.obj", Diffuse: "textures/enemy.png", Position: Vec3{-10, -9, 20}, Rotation: Vec3{0, 45, 0}, Scale: white},
			},
			Skybox: SkyboxConfig{
				Faces: []string{
					"skybox/right.png", "skybox/left.png",
					"skybox/top.png", "skybox/bottom.png",
					"skybox/front.png", "skybox/back.png",
				},
				Scales: world.DefaultSkyboxScales(),
			},
			Camera: CameraConfig{
				Start:        Vec3{0, -1, -6},
				OrbitRadius:  6,
				OrbitHeight:  2,
				DragFactor:   0.1,
				OrthoHeight:  100,
				OrthoPanStep: 0.5,
				OrthoExtent:  20,
			},
			Movement: MovementConfig{
				Step:     0.05,
				TurnStep: 1.0,
				DiveStep: 0.05,
			},
			Lights: LightsConfig{
				SunAzimuth:      30,
				SunElevation:    60,
				SunColor:        Vec3{0.6, 0.8, 1.0},
				SunIntensity:    0.8,
				PointColor:      white,
				AmbientStrength: 0.2,
				AmbientColor:    Vec3{0.1, 0.3, 0.5},
				SpecStrength:    0.5,
				SpecPhong:       32,
			},
		},
		Audio: AudioConfig{
			Enabled:       true,
			MasterVolume:  0.8,
			AmbientVolume: 0.6,
			SFXVolume:     0.8,
			Muted:         false,
			Ambient:       "audio/ambient.wav",
			Ping:          "audio/ping.wav",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
	}
}
