// Package camera provides the scene cameras: a top-down orthographic view and
// two perspective views (first-person and third-person).
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/subdive/internal/engine/input"
)

// Kind identifies a camera variant.
type Kind uint8

const (
	KindFirstPerson Kind = iota
	KindThirdPerson
	KindOrthographic
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindFirstPerson:
		return "first-person"
	case KindThirdPerson:
		return "third-person"
	case KindOrthographic:
		return "orthographic"
	default:
		return "unknown"
	}
}

// Camera is the contract every camera variant implements.
type Camera interface {
	Kind() Kind
	Position() mgl32.Vec3
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
	// HandleControlInput reacts to one frame of held controls.
	HandleControlInput(s input.State)
}

// Base holds the placement shared by all cameras.
type Base struct {
	Pos     mgl32.Vec3
	Target  mgl32.Vec3
	Pitch   float32 // degrees about X, applied after the look-at
	Yaw     float32 // degrees about Y, applied after the look-at
	WorldUp mgl32.Vec3
}

// Position returns the eye position.
func (b *Base) Position() mgl32.Vec3 {
	return b.Pos
}

// Basis returns the camera's orthonormal right, up and forward axes derived
// from the eye, the target and the world-up vector.
func (b *Base) Basis() (right, up, forward mgl32.Vec3) {
	forward = b.Target.Sub(b.Pos).Normalize()
	right = forward.Cross(b.WorldUp).Normalize()
	up = right.Cross(forward)
	return right, up, forward
}

// ViewMatrix builds the look-at matrix from Basis and premultiplies the
// pitch and yaw rotations.
func (b *Base) ViewMatrix() mgl32.Mat4 {
	r, u, f := b.Basis()
	look := mgl32.Mat4{
		r.X(), u.X(), -f.X(), 0,
		r.Y(), u.Y(), -f.Y(), 0,
		r.Z(), u.Z(), -f.Z(), 0,
		-r.Dot(b.Pos), -u.Dot(b.Pos), f.Dot(b.Pos), 1,
	}
	rot := mgl32.HomogRotate3DX(mgl32.DegToRad(b.Pitch)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(b.Yaw)))
	return rot.Mul4(look)
}

// Perspective holds a field-of-view projection.
type Perspective struct {
	FOV    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32
}

// DefaultPerspective returns a 60 degree projection for the given aspect.
func DefaultPerspective(aspect float32) Perspective {
	return Perspective{FOV: 60, Aspect: aspect, Near: 0.1, Far: 1000}
}

// ProjectionMatrix returns the perspective projection.
func (p *Perspective) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(p.FOV), p.Aspect, p.Near, p.Far)
}

// SetAspect updates the aspect ratio from a framebuffer size. A zero height
// (minimized window) leaves the ratio unchanged.
func (p *Perspective) SetAspect(width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	p.Aspect = float32(width) / float32(height)
}
