package lighting

import "github.com/go-gl/mathgl/mgl32"

// Rig holds the scene lights by role. Shader uniforms expect exactly one
// directional and one point light, uploaded in that order.
type Rig struct {
	Directional *Directional
	Point       *Point
}

// All returns the lights in upload order.
func (r *Rig) All() []Light {
	if r.Directional == nil || r.Point == nil {
		panic("lighting: rig needs both a directional and a point light")
	}
	return []Light{r.Directional, r.Point}
}

// Viewer is the reference position for specular terms: the point light,
// which follows the first-person viewpoint.
func (r *Rig) Viewer() mgl32.Vec3 {
	return r.Point.Position
}

// Apply uploads every light's shared fields, then every light's variant
// fields, in upload order.
func (r *Rig) Apply(u Uniforms) {
	lights := r.All()
	viewer := r.Viewer()
	for _, l := range lights {
		l.ApplyShared(viewer, u)
	}
	for _, l := range lights {
		l.ApplyVariant(u)
	}
}
