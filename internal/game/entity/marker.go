package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/subdive/internal/engine/camera"
	"github.com/Faultbox/subdive/internal/engine/transform"
)

// Marker defaults. An orbit of 90 degrees sits ahead of a heading of +Z.
const (
	DefaultMarkerOrbit = 90.0
	DefaultNearRadius  = 0.5
	DefaultFarRadius   = 2.5
)

// Marker is the small viewpoint overlay attached to the first-person camera.
// Its forward point also anchors the point light.
type Marker struct {
	*Entity
	Orbit      float32 // degrees
	NearRadius float32
	FarRadius  float32
}

// NewMarker wraps e as a marker at the default orbit.
func NewMarker(e *Entity, nearRadius, farRadius float32) *Marker {
	return &Marker{
		Entity:     e,
		Orbit:      DefaultMarkerOrbit,
		NearRadius: nearRadius,
		FarRadius:  farRadius,
	}
}

// SyncTo places the marker at the near radius around the camera, at the
// camera's depth, facing along the orbit.
func (m *Marker) SyncTo(cam camera.Camera) {
	m.Transform.Position = m.orbitPoint(cam.Position(), m.NearRadius)
	m.Transform.Rotation[1] = DefaultMarkerOrbit - m.Orbit
}

// OnCameraYaw turns the orbit by the camera's yaw change.
func (m *Marker) OnCameraYaw(delta float32) {
	m.Orbit += delta
}

// ForwardPoint returns the point at the far radius along the orbit. The
// marker itself is not moved.
func (m *Marker) ForwardPoint(cam camera.Camera) mgl32.Vec3 {
	return m.orbitPoint(cam.Position(), m.FarRadius)
}

func (m *Marker) orbitPoint(center mgl32.Vec3, radius float32) mgl32.Vec3 {
	x, z := transform.PolarOffset(radius, m.Orbit, center.X(), center.Z())
	return mgl32.Vec3{x, center.Y(), z}
}
