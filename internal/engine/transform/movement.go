package transform

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/subdive/internal/engine/input"
)

// Movement is the keyboard movement policy shared by the submarine and the
// first-person camera. Steps are applied once per polled frame and are not
// scaled by elapsed time.
type Movement struct {
	Step     float32 // forward/back distance per frame
	TurnStep float32 // yaw change per frame, degrees
	DiveStep float32 // vertical distance per frame
	Ceiling  float32 // highest allowed Y; there is no floor
}

// DefaultMovement returns the stock step sizes.
func DefaultMovement() Movement {
	return Movement{
		Step:     0.05,
		TurnStep: 1.0,
		DiveStep: 0.05,
		Ceiling:  0,
	}
}

// yawed applies the yaw-only rotation to v.
func yawed(yawDegrees float32, v mgl32.Vec3) mgl32.Vec3 {
	rot := mgl32.HomogRotate3DY(mgl32.DegToRad(yawDegrees)).Transpose()
	return rot.Mul4x1(v.Vec4(0)).Vec3()
}

// Heading returns the unit vector "forward" travels along for the given yaw.
// Forward backs away from the yaw-rotated -Z, so a zero yaw heads down +Z.
func Heading(yawDegrees float32) mgl32.Vec3 {
	return yawed(yawDegrees, mgl32.Vec3{0, 0, -1}).Mul(-1)
}

// Apply advances pos and yaw by one frame of held controls.
// Forward subtracts the yaw-rotated (0, 0, -Step); back adds it.
func (m Movement) Apply(pos mgl32.Vec3, yaw float32, s input.State) (mgl32.Vec3, float32) {
	offset := yawed(yaw, mgl32.Vec3{0, 0, -m.Step})
	if s.Held(input.ActionForward) {
		pos = pos.Sub(offset)
	}
	if s.Held(input.ActionBack) {
		pos = pos.Add(offset)
	}

	if s.Held(input.ActionLeft) {
		yaw -= m.TurnStep
	}
	if s.Held(input.ActionRight) {
		yaw += m.TurnStep
	}

	if s.Held(input.ActionAscend) {
		pos[1] += m.DiveStep
	}
	if s.Held(input.ActionDescend) {
		pos[1] -= m.DiveStep
	}
	if pos[1] > m.Ceiling {
		pos[1] = m.Ceiling
	}

	return pos, yaw
}
