package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/subdive/internal/engine/camera"
	"github.com/Faultbox/subdive/internal/engine/lighting"
)

// Texture units used by the lit model shader.
const (
	DiffuseUnit = 0
	NormalUnit  = 1
)

// Mesh is GPU-resident vertex data.
type Mesh interface {
	Draw()
	Release()
}

// Texture is a bindable 2D texture.
type Texture interface {
	Bind(unit uint32)
}

// Program is the shader program entities draw with.
type Program interface {
	lighting.Uniforms
	Use()
	SetInt(name string, v int32)
	SetMat4(name string, m mgl32.Mat4)
}

// Draw submits the entity with the camera's matrices, the textures and the
// light rig. normal may be nil. Destroyed entities draw nothing.
func (e *Entity) Draw(p Program, cam camera.Camera, diffuse, normal Texture, rig *lighting.Rig) {
	if e.mesh == nil {
		return
	}

	p.Use()

	diffuse.Bind(DiffuseUnit)
	p.SetInt("diffuseMap", DiffuseUnit)
	if normal != nil {
		normal.Bind(NormalUnit)
		p.SetInt("normalMap", NormalUnit)
		p.SetInt("hasNormalMap", 1)
	} else {
		p.SetInt("hasNormalMap", 0)
	}

	p.SetMat4("view", cam.ViewMatrix())
	p.SetMat4("projection", cam.ProjectionMatrix())
	p.SetMat4("model", e.ModelMatrix())

	rig.Apply(p)

	e.mesh.Draw()
}
