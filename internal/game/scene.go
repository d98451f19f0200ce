package game

import (
	"fmt"
	"image"

	"go.uber.org/multierr"

	"github.com/Faultbox/subdive/internal/assets"
	"github.com/Faultbox/subdive/internal/config"
	"github.com/Faultbox/subdive/internal/engine/mesh"
	"github.com/Faultbox/subdive/internal/engine/renderer/shaders"
	"github.com/Faultbox/subdive/internal/engine/texture"
	"github.com/Faultbox/subdive/pkg/formats"
)

// modelData is a decoded model ready for upload.
type modelData struct {
	config  config.ModelConfig
	mesh    *mesh.Data
	diffuse *image.RGBA
	normal  *image.RGBA // nil without a normal map
}

// sceneData is everything the scene needs, decoded on the CPU.
type sceneData struct {
	modelVS, modelFS   string
	skyboxVS, skyboxFS string

	submarine modelData
	marker    modelData
	enemies   []modelData
	skyFaces  [6]*image.RGBA
}

type imageKey struct {
	path        string
	alpha, flip bool
}

// loader reads and decodes assets, collecting every failure instead of
// stopping at the first one.
type loader struct {
	assets *assets.Manager
	objs   map[string]*formats.OBJ
	images map[imageKey]*image.RGBA
	err    error
}

func newLoader(am *assets.Manager) *loader {
	return &loader{
		assets: am,
		objs:   make(map[string]*formats.OBJ),
		images: make(map[imageKey]*image.RGBA),
	}
}

func (l *loader) fail(err error) {
	l.err = multierr.Append(l.err, err)
}

// loadScene decodes every mesh, texture and shader the scene names.
func loadScene(sc config.SceneConfig, am *assets.Manager) (*sceneData, error) {
	l := newLoader(am)

	sd := &sceneData{
		modelVS:   l.source(sc.Shaders.ModelVertex, shaders.ModelVertexShader),
		modelFS:   l.source(sc.Shaders.ModelFragment, shaders.ModelFragmentShader),
		skyboxVS:  l.source(sc.Shaders.SkyboxVertex, shaders.SkyboxVertexShader),
		skyboxFS:  l.source(sc.Shaders.SkyboxFragment, shaders.SkyboxFragmentShader),
		submarine: l.model(sc.Submarine),
		marker:    l.model(sc.Marker.ModelConfig),
	}
	for _, e := range sc.Enemies {
		sd.enemies = append(sd.enemies, l.model(e))
	}

	if len(sc.Skybox.Faces) != len(sd.skyFaces) {
		l.fail(fmt.Errorf("skybox: want %d faces, got %d", len(sd.skyFaces), len(sc.Skybox.Faces)))
	} else {
		// Cubemap faces keep their top-down row order.
		for i, face := range sc.Skybox.Faces {
			sd.skyFaces[i] = l.image(face, false, false)
		}
	}

	if l.err != nil {
		return nil, l.err
	}
	return sd, nil
}

// source returns the named shader file, or builtin when no path is set.
func (l *loader) source(path, builtin string) string {
	if path == "" {
		return builtin
	}
	data, err := l.assets.Load(path)
	if err != nil {
		l.fail(fmt.Errorf("shader: %w", err))
		return ""
	}
	return string(data)
}

func (l *loader) model(mc config.ModelConfig) modelData {
	md := modelData{config: mc}

	if obj := l.obj(mc.Mesh); obj != nil {
		opts := mesh.Options{Normals: true, TexCoords: true, Tangents: mc.Normal != ""}
		data, err := mesh.Build(obj, opts)
		if err != nil {
			l.fail(fmt.Errorf("model %s: mesh %s: %w", mc.Name, mc.Mesh, err))
		}
		md.mesh = data
	}

	md.diffuse = l.image(mc.Diffuse, mc.Alpha, true)
	if mc.Normal != "" {
		md.normal = l.image(mc.Normal, false, true)
	}
	return md
}

// obj parses a mesh once. A failed path is remembered so it is reported once.
func (l *loader) obj(path string) *formats.OBJ {
	if obj, seen := l.objs[path]; seen {
		return obj
	}
	l.objs[path] = nil

	data, err := l.assets.Load(path)
	if err != nil {
		l.fail(fmt.Errorf("mesh: %w", err))
		return nil
	}
	obj, err := formats.ParseOBJ(data)
	if err != nil {
		l.fail(fmt.Errorf("mesh %s: %w", path, err))
		return nil
	}
	l.objs[path] = obj
	return obj
}

func (l *loader) image(path string, alpha, flip bool) *image.RGBA {
	key := imageKey{path, alpha, flip}
	if img, seen := l.images[key]; seen {
		return img
	}
	l.images[key] = nil

	data, err := l.assets.Load(path)
	if err != nil {
		l.fail(fmt.Errorf("texture: %w", err))
		return nil
	}
	img, err := texture.Decode(data, path)
	if err != nil {
		l.fail(fmt.Errorf("texture: %w", err))
		return nil
	}
	rgba := texture.Prepare(img, alpha, flip)
	l.images[key] = rgba
	return rgba
}

// sounds are the optional audio clips. The scene runs silent without them.
type sounds struct {
	ambient []byte
	ping    []byte
	missing []string // configured but present in no root
}

// loadSounds reads the configured clips. A clip no root holds is listed in
// missing; a clip that exists but cannot be read is returned as an error.
// Neither stops the scene.
func loadSounds(ac config.AudioConfig, am *assets.Manager) (sounds, error) {
	var (
		s    sounds
		errs error
	)
	if !ac.Enabled {
		return s, nil
	}

	load := func(path string) []byte {
		if path == "" {
			return nil
		}
		if !am.Exists(path) {
			s.missing = append(s.missing, path)
			return nil
		}
		data, err := am.Load(path)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("audio: %w", err))
			return nil
		}
		return data
	}
	s.ambient = load(ac.Ambient)
	s.ping = load(ac.Ping)
	return s, errs
}
