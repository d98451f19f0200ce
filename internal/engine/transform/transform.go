// Package transform provides positional math shared by cameras and entities.
package transform

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform holds position, rotation (degrees) and scale of an object.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // thetaX, thetaY, thetaZ in degrees
	Scale    mgl32.Vec3
}

// New returns a transform at pos with no rotation and unit scale.
func New(pos mgl32.Vec3) Transform {
	return Transform{
		Position: pos,
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// PolarOffset places a point on a circle of the given radius around
// (originX, originZ). The angle is in degrees; cos maps to X and sin to Z.
func PolarOffset(radius, angleDegrees, originX, originZ float32) (x, z float32) {
	rad := float64(mgl32.DegToRad(angleDegrees))
	x = originX + radius*float32(gomath.Cos(rad))
	z = originZ + radius*float32(gomath.Sin(rad))
	return x, z
}

// ComposeModelMatrix builds the model matrix as
// translate * scale * rotX * rotY * rotZ.
// The order is fixed; entities and the skybox rely on it.
func ComposeModelMatrix(t Transform) mgl32.Mat4 {
	m := mgl32.Ident4()
	m = m.Mul4(mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()))
	m = m.Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(t.Rotation.X())))
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(t.Rotation.Y())))
	m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(t.Rotation.Z())))
	return m
}

// Matrix is shorthand for ComposeModelMatrix(t).
func (t Transform) Matrix() mgl32.Mat4 {
	return ComposeModelMatrix(t)
}
