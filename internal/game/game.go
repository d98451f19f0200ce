// Package game wires the window, renderer, assets and audio to the scene
// and runs the frame loop.
package game

import (
	"errors"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/subdive/internal/assets"
	"github.com/Faultbox/subdive/internal/config"
	"github.com/Faultbox/subdive/internal/engine/audio"
	"github.com/Faultbox/subdive/internal/engine/debug"
	"github.com/Faultbox/subdive/internal/engine/input"
	"github.com/Faultbox/subdive/internal/engine/renderer"
	"github.com/Faultbox/subdive/internal/engine/shader"
	"github.com/Faultbox/subdive/internal/engine/window"
	"github.com/Faultbox/subdive/internal/game/world"
	"github.com/Faultbox/subdive/internal/logger"
)

// Title is the window title prefix.
const Title = "Subdive"

// Game is the main game instance.
type Game struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	assets   *assets.Manager
	audio    *audio.Manager

	program  *shader.Program
	skybox   *renderer.Skybox
	textures map[*image.RGBA]*renderer.Texture
	pending  []*renderer.GPUMesh // uploaded but not yet owned by the world

	world     *world.World
	shots     *debug.ScreenshotCapture
	shotKey   input.Latch
	audioKeys audioKeys
	running   bool
}

// New opens the window and builds the scene. Any asset, shader or GL
// failure is returned before the first frame.
func New(cfg *config.Config) (_ *Game, err error) {
	g := &Game{
		cfg:      cfg,
		log:      logger.Named("game"),
		assets:   assets.NewManager(),
		textures: make(map[*image.RGBA]*renderer.Texture),
		shots:    debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "subdive"),
	}
	// Any failure below releases whatever was built so far.
	defer func() {
		if err != nil {
			g.Close()
		}
	}()

	// Roots are listed highest priority first.
	for i := len(cfg.Scene.AssetRoots) - 1; i >= 0; i-- {
		g.assets.AddRoot(cfg.Scene.AssetRoots[i])
	}

	g.log.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Strings("asset_roots", g.assets.Roots()),
	)

	// Decode everything before touching the display so asset problems are
	// reported together and without a window flashing up.
	start := time.Now()
	sd, err := loadScene(cfg.Scene, g.assets)
	if err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}
	g.log.Info("scene decoded", zap.Int("enemies", len(sd.enemies)), zap.Duration("took", time.Since(start)))

	snd, sndErr := loadSounds(cfg.Audio, g.assets)
	if sndErr != nil {
		g.log.Warn("some sounds could not be read", zap.Error(sndErr))
	}
	for _, path := range snd.missing {
		g.log.Info("sound not found, skipping", zap.String("path", path))
	}

	// Every file has been read; the raw bytes are not needed again.
	hits, misses := g.assets.Cache().Stats()
	g.log.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
	g.assets.Cache().Clear()

	g.window, err = window.New(window.Config{
		Title:      title(world.ModeFirstPerson),
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Bindings:   cfg.Controls.Bindings,
		DragButton: cfg.Controls.DragButton,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer comes after the window, since the GL context must exist.
	width, height := g.window.Size()
	g.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: renderer.DefaultClearColor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	res, err := g.upload(sd)
	if err != nil {
		return nil, err
	}

	g.world, err = buildWorld(cfg, res, width, height)
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}
	g.pending = nil
	g.window.SetTitle(title(g.world.Mode()))

	g.setupAudio(snd)

	g.log.Info("game initialized successfully",
		zap.Stringer("mode", g.world.Mode()),
		zap.Int("entities", g.world.EntityCount()),
	)
	return g, nil
}

// upload moves decoded scene data to the GPU.
func (g *Game) upload(sd *sceneData) (resources, error) {
	var res resources
	var err error

	g.program, err = shader.New(sd.modelVS, sd.modelFS)
	if err != nil {
		return res, fmt.Errorf("model shader: %w", err)
	}

	skyProgram, err := shader.New(sd.skyboxVS, sd.skyboxFS)
	if err != nil {
		return res, fmt.Errorf("skybox shader: %w", err)
	}
	cubemap, err := renderer.UploadCubemap(sd.skyFaces)
	if err != nil {
		skyProgram.Delete()
		return res, fmt.Errorf("skybox: %w", err)
	}
	g.skybox = renderer.NewSkybox(skyProgram, cubemap)

	res.program = g.program
	res.skybox = g.skybox

	if res.submarine, err = g.uploadModel(sd.submarine); err != nil {
		return res, err
	}
	if res.marker, err = g.uploadModel(sd.marker); err != nil {
		return res, err
	}
	for _, md := range sd.enemies {
		m, err := g.uploadModel(md)
		if err != nil {
			return res, err
		}
		res.enemies = append(res.enemies, m)
	}
	return res, nil
}

// uploadModel gives each model its own vertex buffer. Textures are shared
// between models that name the same file.
func (g *Game) uploadModel(md modelData) (model, error) {
	gm, err := renderer.UploadMesh(md.mesh)
	if err != nil {
		return model{}, fmt.Errorf("model %s: %w", md.config.Name, err)
	}

	g.pending = append(g.pending, gm)

	m := model{mesh: gm}
	m.skin.Diffuse = g.texture(md.diffuse)
	// Leave the interface nil rather than holding a nil *Texture.
	if md.normal != nil {
		m.skin.Normal = g.texture(md.normal)
	}

	g.log.Debug("model uploaded",
		zap.String("name", md.config.Name),
		zap.Int32("vertices", gm.VertexCount()),
		zap.Bool("normal_map", md.normal != nil),
	)
	return m, nil
}

func (g *Game) texture(img *image.RGBA) *renderer.Texture {
	if t, ok := g.textures[img]; ok {
		return t
	}
	t := renderer.UploadTexture(img)
	g.textures[img] = t
	return t
}

// setupAudio starts the ambient loop and loads the ping. Audio is optional:
// failures are logged and the scene runs silent.
func (g *Game) setupAudio(snd sounds) {
	ac := g.cfg.Audio
	if !ac.Enabled {
		return
	}

	m := audio.New()
	configureAudio(m, ac)
	if err := m.Init(); err != nil {
		g.log.Warn("audio disabled", zap.Error(err))
		return
	}
	g.audio = m

	if snd.ambient != nil {
		if err := m.PlayAmbient(snd.ambient); err != nil {
			g.log.Warn("ambient track skipped", zap.String("path", ac.Ambient), zap.Error(err))
		}
	}
	if snd.ping != nil {
		if err := m.LoadPing(snd.ping); err != nil {
			g.log.Warn("ping sound skipped", zap.String("path", ac.Ping), zap.Error(err))
		}
	}

	v := m.Volumes()
	g.log.Info("audio ready",
		zap.Float64("master", v.Master),
		zap.Bool("muted", v.Muted),
		zap.Int("ping_samples", m.PingLoaded()),
	)
}

// Run starts the main loop and returns when the window closes or the quit
// key is pressed.
func (g *Game) Run() error {
	g.running = true

	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting frame loop")

	for g.running {
		frame := g.window.Poll()
		if frame.Quit {
			g.running = false
			break
		}
		if frame.Resized {
			g.resize()
		}

		g.world.Update(frame.Input)
		g.handleEvents(g.world.Events())
		if g.audio != nil && g.audioKeys.apply(g.audio, frame.Input) {
			v := g.audio.Volumes()
			g.log.Info("volume changed", zap.Float64("master", v.Master), zap.Bool("muted", v.Muted))
		}

		g.renderer.Begin()
		g.world.Draw()

		// Read back before the swap, while the frame is still in the back buffer.
		if g.shotKey.Rising(frame.Input.Held(input.ActionScreenshot)) {
			g.screenshot()
		}

		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Stringer("mode", g.world.Mode()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	g.log.Info("frame loop stopped")
	return nil
}

func (g *Game) resize() {
	width, height := g.window.Size()
	g.renderer.Resize(width, height)
	g.world.Resize(width, height)
}

func (g *Game) handleEvents(events []world.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case world.EventModeChanged:
			g.log.Info("camera mode changed", zap.Stringer("mode", ev.Mode))
			g.window.SetTitle(title(ev.Mode))
		case world.EventLightCycled:
			g.log.Debug("point light cycled", zap.Float32("intensity", ev.Intensity))
			g.ping()
		}
	}
}

func (g *Game) ping() {
	if g.audio == nil || !g.audio.IsInitialized() {
		return
	}
	if err := g.audio.Ping(); err != nil && !errors.Is(err, audio.ErrNoPing) {
		g.log.Warn("ping failed", zap.Error(err))
	}
}

func (g *Game) screenshot() {
	pixels, width, height := g.renderer.ReadPixels()
	path, err := g.shots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases everything New created, in reverse order. It is safe on a
// partially built game.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.world != nil {
		g.world.Close()
		g.world = nil
	}
	for _, m := range g.pending {
		m.Release()
	}
	g.pending = nil
	for _, t := range g.textures {
		t.Delete()
	}
	g.textures = nil
	if g.skybox != nil {
		g.skybox.Delete()
		g.skybox = nil
	}
	if g.program != nil {
		g.program.Delete()
		g.program = nil
	}
	if g.audio != nil {
		g.audio.Close()
		g.audio = nil
	}
	if g.renderer != nil {
		g.renderer.Close()
		g.renderer = nil
	}
	if g.window != nil {
		g.window.Close()
		g.window = nil
	}
	g.assets.Close()
}

func title(mode world.Mode) string {
	return fmt.Sprintf("%s - %s", Title, mode)
}
