package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/subdive/internal/engine/input"
	"github.com/Faultbox/subdive/internal/engine/transform"
)

// Third-person defaults. An orbit of 270 degrees sits behind a heading of +Z.
const (
	DefaultOrbit      = 270.0
	DefaultRadius     = 6.0
	DefaultHeight     = 2.0
	DefaultDragFactor = 0.1
)

// ThirdPerson orbits a tracked position at a fixed radius and height.
// The orbit angle is changed by dragging the mouse horizontally.
type ThirdPerson struct {
	Base
	Perspective
	Orbit      float32 // degrees
	Radius     float32
	Height     float32
	DragFactor float32 // degrees per pixel

	dragging bool
	lastX    float64
}

// NewThirdPerson creates a third-person camera with the given orbit shape.
func NewThirdPerson(proj Perspective, radius, height, dragFactor float32) *ThirdPerson {
	return &ThirdPerson{
		Base:        Base{WorldUp: mgl32.Vec3{0, 1, 0}},
		Perspective: proj,
		Orbit:       DefaultOrbit,
		Radius:      radius,
		Height:      height,
		DragFactor:  dragFactor,
	}
}

func (c *ThirdPerson) Kind() Kind { return KindThirdPerson }

// HandleControlInput is a no-op: the tracked entity receives the keys.
func (c *ThirdPerson) HandleControlInput(input.State) {}

// UpdateOrbit retargets the tracked position and places the eye on the
// orbit circle around it.
func (c *ThirdPerson) UpdateOrbit(tracked mgl32.Vec3) {
	x, z := transform.PolarOffset(c.Radius, c.Orbit, tracked.X(), tracked.Z())
	c.Target = tracked
	c.Pos = mgl32.Vec3{x, tracked.Y() + c.Height, z}
}

// OnMouseDrag feeds a cursor sample while the drag button is held. The
// first sample after ResetDrag only records the baseline.
func (c *ThirdPerson) OnMouseDrag(cursorX float64) {
	if !c.dragging {
		c.dragging = true
		c.lastX = cursorX
		return
	}
	c.Orbit += float32(cursorX-c.lastX) * c.DragFactor
	c.lastX = cursorX
}

// ResetDrag forgets the drag baseline. Call it when the button is released.
func (c *ThirdPerson) ResetDrag() {
	c.dragging = false
}
