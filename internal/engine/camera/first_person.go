package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/subdive/internal/engine/input"
	"github.com/Faultbox/subdive/internal/engine/transform"
)

// FirstPerson is driven directly by the keyboard movement policy.
// The target keeps a fixed unit offset from the eye; yaw turns the view.
type FirstPerson struct {
	Base
	Perspective
	Movement transform.Movement

	yawDelta float32
}

// NewFirstPerson creates a first-person camera at pos looking down +Z,
// the direction forward travels at zero yaw.
func NewFirstPerson(pos mgl32.Vec3, proj Perspective, move transform.Movement) *FirstPerson {
	return &FirstPerson{
		Base: Base{
			Pos:     pos,
			Target:  pos.Add(transform.Heading(0)),
			WorldUp: mgl32.Vec3{0, 1, 0},
		},
		Perspective: proj,
		Movement:    move,
	}
}

func (c *FirstPerson) Kind() Kind { return KindFirstPerson }

// HandleControlInput moves eye and target together and records the signed
// yaw change of this frame.
func (c *FirstPerson) HandleControlInput(s input.State) {
	pos, yaw := c.Movement.Apply(c.Pos, c.Yaw, s)

	c.Target = c.Target.Add(pos.Sub(c.Pos))
	c.yawDelta = yaw - c.Yaw
	c.Pos = pos
	c.Yaw = yaw
}

// YawDelta returns the yaw change applied by the last HandleControlInput.
// Attached markers rotate by the same amount.
func (c *FirstPerson) YawDelta() float32 {
	return c.yawDelta
}

// Heading returns the horizontal view direction, which is also the
// direction forward moves the camera.
func (c *FirstPerson) Heading() mgl32.Vec3 {
	return transform.Heading(c.Yaw)
}
