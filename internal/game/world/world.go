// Package world composes the scene: it owns the entities, cameras, lights and
// skybox, routes controls by mode and orders the per-frame update and draw.
package world

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/subdive/internal/engine/camera"
	"github.com/Faultbox/subdive/internal/engine/input"
	"github.com/Faultbox/subdive/internal/engine/lighting"
	"github.com/Faultbox/subdive/internal/game/entity"
)

// ErrIncompleteScene is returned by New when a required part is missing.
var ErrIncompleteScene = errors.New("incomplete scene")

// Skin is the texture set an entity is drawn with. Normal may be nil.
type Skin struct {
	Diffuse entity.Texture
	Normal  entity.Texture
}

// Cameras holds one camera per mode.
type Cameras struct {
	FirstPerson  *camera.FirstPerson
	ThirdPerson  *camera.ThirdPerson
	Orthographic *camera.Orthographic
}

// Enemy is a static entity and its skin.
type Enemy struct {
	Entity *entity.Entity
	Skin   Skin
}

// Params is everything New needs to assemble a scene.
type Params struct {
	Program      entity.Program
	Skybox       Skybox
	Rig          *lighting.Rig
	Cameras      Cameras
	Submarine    *entity.Submarine
	SubSkin      Skin
	Marker       *entity.Marker
	MarkerSkin   Skin
	Enemies      []Enemy
	SkyboxScales SkyboxScales
	InitialMode  Mode
}

// EventKind identifies something the game layer may react to.
type EventKind int

const (
	EventModeChanged EventKind = iota
	EventLightCycled
)

// Event is reported by Update.
type Event struct {
	Kind      EventKind
	Mode      Mode    // EventModeChanged
	Intensity float32 // EventLightCycled
}

// World is the scene.
type World struct {
	modes   *ModeSwitch
	cams    Cameras
	cameras [ModeCount]camera.Camera

	entities *entity.Manager
	skins    map[*entity.Entity]Skin
	tracked  entity.Handle // followed by the third-person and orthographic cameras
	attached entity.Handle // marker attached to the first-person camera
	sub      *entity.Submarine
	marker   *entity.Marker

	rig      *lighting.Rig
	program  entity.Program
	skybox   Skybox
	scales   SkyboxScales
	skyScale float32

	events []Event
}

// New assembles a world. The world takes ownership of every entity.
func New(p Params) (*World, error) {
	switch {
	case p.Program == nil:
		return nil, fmt.Errorf("%w: no program", ErrIncompleteScene)
	case p.Skybox == nil:
		return nil, fmt.Errorf("%w: no skybox", ErrIncompleteScene)
	case p.Rig == nil || p.Rig.Directional == nil || p.Rig.Point == nil:
		return nil, fmt.Errorf("%w: light rig needs a directional and a point light", ErrIncompleteScene)
	case p.Cameras.FirstPerson == nil || p.Cameras.ThirdPerson == nil || p.Cameras.Orthographic == nil:
		return nil, fmt.Errorf("%w: missing camera", ErrIncompleteScene)
	case p.Submarine == nil || p.Marker == nil:
		return nil, fmt.Errorf("%w: missing submarine or marker", ErrIncompleteScene)
	case p.SubSkin.Diffuse == nil || p.MarkerSkin.Diffuse == nil:
		return nil, fmt.Errorf("%w: missing diffuse texture", ErrIncompleteScene)
	case p.InitialMode < 0 || p.InitialMode >= ModeCount:
		return nil, fmt.Errorf("%w: unknown initial mode %v", ErrIncompleteScene, p.InitialMode)
	}

	for i, e := range p.Enemies {
		if e.Entity == nil || e.Skin.Diffuse == nil {
			return nil, fmt.Errorf("%w: enemy %d", ErrIncompleteScene, i)
		}
		if e.Entity.Type != entity.TypeEnemy {
			return nil, fmt.Errorf("%w: enemy %d has type %v", ErrIncompleteScene, i, e.Entity.Type)
		}
	}

	w := &World{
		modes:    NewModeSwitch(p.InitialMode),
		cams:     p.Cameras,
		entities: entity.NewManager(),
		skins:    make(map[*entity.Entity]Skin),
		sub:      p.Submarine,
		marker:   p.Marker,
		rig:      p.Rig,
		program:  p.Program,
		skybox:   p.Skybox,
		scales:   p.SkyboxScales,
	}
	w.cameras[ModeFirstPerson] = p.Cameras.FirstPerson
	w.cameras[ModeThirdPerson] = p.Cameras.ThirdPerson
	w.cameras[ModeOrthographic] = p.Cameras.Orthographic

	w.tracked = w.add(p.Submarine.Entity, p.SubSkin)
	w.attached = w.add(p.Marker.Entity, p.MarkerSkin)
	for _, e := range p.Enemies {
		w.add(e.Entity, e.Skin)
	}

	w.skyScale = w.scales.For(w.modes.Mode())
	w.cams.Orthographic.ResetAbove(w.trackedPosition())
	w.cams.ThirdPerson.UpdateOrbit(w.trackedPosition())
	w.marker.SyncTo(w.cams.FirstPerson)

	return w, nil
}

func (w *World) add(e *entity.Entity, s Skin) entity.Handle {
	w.skins[e] = s
	return w.entities.Add(e)
}

func (w *World) trackedPosition() mgl32.Vec3 {
	return w.entities.Get(w.tracked).Position()
}

// Mode returns the active mode.
func (w *World) Mode() Mode {
	return w.modes.Mode()
}

// Camera returns the camera for mode.
func (w *World) Camera(mode Mode) camera.Camera {
	if mode < 0 || mode >= ModeCount {
		panic(fmt.Sprintf("world: no camera for %v", mode))
	}
	return w.cameras[mode]
}

// ActiveCamera returns the camera of the active mode.
func (w *World) ActiveCamera() camera.Camera {
	return w.Camera(w.modes.Mode())
}

// SkyboxScale returns the scale applied to the skybox this frame.
func (w *World) SkyboxScale() float32 {
	return w.skyScale
}

// Submarine returns the player entity.
func (w *World) Submarine() *entity.Submarine { return w.sub }

// Marker returns the first-person viewpoint marker.
func (w *World) Marker() *entity.Marker { return w.marker }

// Rig returns the light rig.
func (w *World) Rig() *lighting.Rig { return w.rig }

// EntityCount returns the number of entities the world owns.
func (w *World) EntityCount() int {
	return w.entities.Count()
}

// Events returns what happened during the last Update.
func (w *World) Events() []Event {
	return w.events
}

// Update advances the scene by one frame of controls.
func (w *World) Update(s input.State) {
	w.events = w.events[:0]

	// Mode keys. Holding the ortho key re-centres the top-down camera
	// above the submarine on every held frame.
	if w.modes.Update(s.Held(input.ActionModeToggle), s.Held(input.ActionOrthoSelect)) {
		w.events = append(w.events, Event{Kind: EventModeChanged, Mode: w.modes.Mode()})
	}
	mode := w.modes.Mode()
	if mode == ModeOrthographic && s.Held(input.ActionOrthoSelect) {
		w.cams.Orthographic.ResetAbove(w.trackedPosition())
	}
	w.skyScale = w.scales.For(mode)

	// Controls.
	switch mode {
	case ModeFirstPerson:
		w.cams.FirstPerson.HandleControlInput(s)
		w.marker.OnCameraYaw(w.cams.FirstPerson.YawDelta())
	case ModeThirdPerson:
		w.sub.HandleControlInput(s)
	case ModeOrthographic:
		w.sub.HandleControlInput(s)
		w.cams.Orthographic.HandleControlInput(s)
	}

	// Orbit drag.
	if mode == ModeThirdPerson && s.Drag {
		w.cams.ThirdPerson.OnMouseDrag(s.CursorX)
	} else {
		w.cams.ThirdPerson.ResetDrag()
	}
	w.cams.ThirdPerson.UpdateOrbit(w.trackedPosition())

	// Point light rides ahead of the first-person viewpoint.
	w.marker.SyncTo(w.cams.FirstPerson)
	w.rig.Point.SetPosition(w.marker.ForwardPoint(w.cams.FirstPerson))

	if w.rig.Point.CycleIntensity(s.Held(input.ActionCycleLight)) {
		w.events = append(w.events, Event{Kind: EventLightCycled, Intensity: w.rig.Point.Intensity})
	}
}

// Draw renders the skybox, the enemies, then either the marker in
// first-person or the submarine otherwise, never both.
func (w *World) Draw() {
	mode := w.modes.Mode()
	cam := w.ActiveCamera()

	sky := skyboxTransform(mode, w.skyScale)
	w.skybox.Draw(cam.ViewMatrix(), cam.ProjectionMatrix(), sky.Matrix())

	for _, e := range w.entities.GetByType(entity.TypeEnemy) {
		w.drawEntity(e, cam)
	}

	if mode == ModeFirstPerson {
		w.drawEntity(w.entities.Get(w.attached), cam)
	} else {
		w.drawEntity(w.entities.Get(w.tracked), cam)
	}
}

func (w *World) drawEntity(e *entity.Entity, cam camera.Camera) {
	skin := w.skins[e]
	e.Draw(w.program, cam, skin.Diffuse, skin.Normal, w.rig)
}

// Resize updates the perspective aspect ratios.
func (w *World) Resize(width, height int) {
	w.cams.FirstPerson.SetAspect(width, height)
	w.cams.ThirdPerson.SetAspect(width, height)
}

// Close destroys every entity, releasing each mesh once.
func (w *World) Close() {
	w.entities.Clear()
	w.skins = make(map[*entity.Entity]Skin)
}
