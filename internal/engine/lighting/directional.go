package lighting

import "github.com/go-gl/mathgl/mgl32"

const directionalPrefix = "dirLight."

// Directional is a light with parallel rays and no falloff.
type Directional struct {
	Base
	Direction mgl32.Vec3
}

// NewDirectional creates a directional light shining along dir.
func NewDirectional(dir mgl32.Vec3) *Directional {
	return &Directional{
		Base:      DefaultBase(),
		Direction: dir.Normalize(),
	}
}

func (d *Directional) Kind() Kind { return KindDirectional }

func (d *Directional) ApplyShared(viewer mgl32.Vec3, u Uniforms) {
	d.applyShared(directionalPrefix, viewer, u)
}

func (d *Directional) ApplyVariant(u Uniforms) {
	u.SetVec3(directionalPrefix+"direction", d.Direction)
	u.SetFloat(directionalPrefix+"intensity", d.Intensity)
}
