package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/subdive/internal/engine/input"
)

// Bounds is an orthographic view box.
type Bounds struct {
	Left, Right float32
	Bottom, Top float32
	Near, Far   float32
}

// DefaultBounds returns the stock top-down box.
func DefaultBounds() Bounds {
	return Bounds{Left: -20, Right: 20, Bottom: -20, Top: 20, Near: 0.1, Far: 500}
}

// Orthographic looks straight down at the scene from a fixed height.
// World-up is -Z so the look-at basis stays defined while looking along -Y.
type Orthographic struct {
	Base
	Bounds  Bounds
	Height  float32 // eye height above the recentred target
	PanStep float32 // arrow-key pan distance per frame
}

// NewOrthographic creates a top-down camera above the origin.
func NewOrthographic(bounds Bounds, height, panStep float32) *Orthographic {
	c := &Orthographic{
		Base:    Base{WorldUp: mgl32.Vec3{0, 0, -1}},
		Bounds:  bounds,
		Height:  height,
		PanStep: panStep,
	}
	c.ResetAbove(mgl32.Vec3{})
	return c
}

func (c *Orthographic) Kind() Kind { return KindOrthographic }

// ProjectionMatrix returns the box projection for the stored bounds.
func (c *Orthographic) ProjectionMatrix() mgl32.Mat4 {
	b := c.Bounds
	return mgl32.Ortho(b.Left, b.Right, b.Bottom, b.Top, b.Near, b.Far)
}

// ResetAbove snaps the camera above target and looks at it.
func (c *Orthographic) ResetAbove(target mgl32.Vec3) {
	c.Target = target
	c.Pos = target.Add(mgl32.Vec3{0, c.Height, 0})
}

// HandleControlInput pans eye and target together in the screen plane. The
// forward axis points straight down, so up/down use the basis up axis in
// its place; a pan never changes the eye height.
func (c *Orthographic) HandleControlInput(s input.State) {
	right, up, _ := c.Basis()

	var pan mgl32.Vec3
	if s.Held(input.ActionPanUp) {
		pan = pan.Add(up)
	}
	if s.Held(input.ActionPanDown) {
		pan = pan.Sub(up)
	}
	if s.Held(input.ActionPanRight) {
		pan = pan.Add(right)
	}
	if s.Held(input.ActionPanLeft) {
		pan = pan.Sub(right)
	}
	if pan == (mgl32.Vec3{}) {
		return
	}

	pan = pan.Mul(c.PanStep)
	c.Pos = c.Pos.Add(pan)
	c.Target = c.Target.Add(pan)
}
