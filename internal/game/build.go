package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/subdive/internal/config"
	"github.com/Faultbox/subdive/internal/engine/camera"
	"github.com/Faultbox/subdive/internal/engine/lighting"
	"github.com/Faultbox/subdive/internal/engine/transform"
	"github.com/Faultbox/subdive/internal/game/entity"
	"github.com/Faultbox/subdive/internal/game/world"
)

// model is an uploaded mesh with its textures.
type model struct {
	mesh entity.Mesh
	skin world.Skin
}

// resources are the GPU-side pieces the world is assembled from.
type resources struct {
	program   entity.Program
	skybox    world.Skybox
	submarine model
	marker    model
	enemies   []model
}

func placement(mc config.ModelConfig) transform.Transform {
	return transform.Transform{
		Position: mgl32.Vec3(mc.Position),
		Rotation: mgl32.Vec3(mc.Rotation),
		Scale:    mgl32.Vec3(mc.Scale),
	}
}

func aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 16.0 / 9.0
	}
	return float32(width) / float32(height)
}

func movement(mc config.MovementConfig) transform.Movement {
	m := transform.DefaultMovement()
	m.Step = mc.Step
	m.TurnStep = mc.TurnStep
	m.DiveStep = mc.DiveStep
	return m
}

func buildCameras(cfg *config.Config, width, height int) world.Cameras {
	g, c := cfg.Graphics, cfg.Scene.Camera

	proj := camera.DefaultPerspective(aspect(width, height))
	proj.FOV, proj.Near, proj.Far = g.FOV, g.Near, g.Far

	bounds := camera.DefaultBounds()
	if c.OrthoExtent > 0 {
		bounds.Left, bounds.Right = -c.OrthoExtent, c.OrthoExtent
		bounds.Bottom, bounds.Top = -c.OrthoExtent, c.OrthoExtent
	}
	bounds.Far = g.Far

	return world.Cameras{
		FirstPerson:  camera.NewFirstPerson(mgl32.Vec3(c.Start), proj, movement(cfg.Scene.Movement)),
		ThirdPerson:  camera.NewThirdPerson(proj, c.OrbitRadius, c.OrbitHeight, c.DragFactor),
		Orthographic: camera.NewOrthographic(bounds, c.OrthoHeight, c.OrthoPanStep),
	}
}

func buildRig(lc config.LightsConfig) *lighting.Rig {
	shared := lighting.Base{
		AmbientStrength: lc.AmbientStrength,
		AmbientColor:    mgl32.Vec3(lc.AmbientColor),
		SpecStrength:    lc.SpecStrength,
		SpecPhong:       lc.SpecPhong,
	}

	sun := lighting.NewDirectional(lighting.SunDirection(lc.SunAzimuth, lc.SunElevation))
	sun.Base = shared
	sun.Color = mgl32.Vec3(lc.SunColor)
	sun.Intensity = lc.SunIntensity

	lamp := lighting.NewPoint(mgl32.Vec3{})
	intensity := lamp.Intensity
	lamp.Base = shared
	lamp.Color = mgl32.Vec3(lc.PointColor)
	lamp.Intensity = intensity

	return &lighting.Rig{Directional: sun, Point: lamp}
}

// buildWorld assembles cameras, lights and entities from config and
// uploaded resources.
func buildWorld(cfg *config.Config, res resources, width, height int) (*world.World, error) {
	mode, ok := world.ParseMode(cfg.Scene.InitialMode)
	if !ok {
		return nil, fmt.Errorf("unknown initial mode %q", cfg.Scene.InitialMode)
	}

	sc := cfg.Scene
	sub := entity.NewSubmarine(
		entity.NewEntity(sc.Submarine.Name, entity.TypeSubmarine, res.submarine.mesh, placement(sc.Submarine)),
		movement(sc.Movement),
		sc.Movement.MeshYaw,
	)
	marker := entity.NewMarker(
		entity.NewEntity(sc.Marker.Name, entity.TypeMarker, res.marker.mesh, placement(sc.Marker.ModelConfig)),
		sc.Marker.NearRadius,
		sc.Marker.FarRadius,
	)

	if len(res.enemies) != len(sc.Enemies) {
		return nil, fmt.Errorf("have %d enemy models for %d enemies", len(res.enemies), len(sc.Enemies))
	}
	enemies := make([]world.Enemy, len(sc.Enemies))
	for i, ec := range sc.Enemies {
		enemies[i] = world.Enemy{
			Entity: entity.NewEntity(ec.Name, entity.TypeEnemy, res.enemies[i].mesh, placement(ec)),
			Skin:   res.enemies[i].skin,
		}
	}

	return world.New(world.Params{
		Program:      res.program,
		Skybox:       res.skybox,
		Rig:          buildRig(sc.Lights),
		Cameras:      buildCameras(cfg, width, height),
		Submarine:    sub,
		SubSkin:      res.submarine.skin,
		Marker:       marker,
		MarkerSkin:   res.marker.skin,
		Enemies:      enemies,
		SkyboxScales: sc.Skybox.Scales,
		InitialMode:  mode,
	})
}
