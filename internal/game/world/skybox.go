package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/subdive/internal/engine/transform"
)

// Skybox draws the environment cube.
type Skybox interface {
	Draw(view, projection, model mgl32.Mat4)
}

// SkyboxScales holds the cube scale used in each mode.
type SkyboxScales struct {
	FirstPerson  float32 `yaml:"first_person"`
	ThirdPerson  float32 `yaml:"third_person"`
	Orthographic float32 `yaml:"orthographic"`
}

// DefaultSkyboxScales returns small, medium and large presets.
func DefaultSkyboxScales() SkyboxScales {
	return SkyboxScales{FirstPerson: 50, ThirdPerson: 100, Orthographic: 250}
}

// For returns the preset for mode.
func (s SkyboxScales) For(mode Mode) float32 {
	switch mode {
	case ModeFirstPerson:
		return s.FirstPerson
	case ModeThirdPerson:
		return s.ThirdPerson
	case ModeOrthographic:
		return s.Orthographic
	default:
		panic(fmt.Sprintf("world: no skybox scale for %v", mode))
	}
}

// skyboxTransform scales the cube for mode. In orthographic mode the cube is
// turned 90 degrees about X so the top-down camera sees its underside face.
func skyboxTransform(mode Mode, scale float32) transform.Transform {
	t := transform.New(mgl32.Vec3{})
	t.Scale = mgl32.Vec3{scale, scale, scale}
	if mode == ModeOrthographic {
		t.Rotation[0] = 90
	}
	return t
}
