package entity

import (
	"github.com/Faultbox/subdive/internal/engine/input"
	"github.com/Faultbox/subdive/internal/engine/transform"
)

// Submarine is the player-controlled entity.
type Submarine struct {
	*Entity
	Yaw      float32 // heading, degrees; positive turns right
	Movement transform.Movement
	// MeshYaw corrects for the model's authored facing so that a zero
	// heading points the hull down +Z.
	MeshYaw float32
}

// NewSubmarine wraps e with the movement policy.
func NewSubmarine(e *Entity, move transform.Movement, meshYaw float32) *Submarine {
	s := &Submarine{Entity: e, Movement: move, MeshYaw: meshYaw}
	s.syncRotation()
	return s
}

// HandleControlInput applies one frame of held controls. Depth is clamped
// at the movement ceiling.
func (s *Submarine) HandleControlInput(st input.State) {
	s.Transform.Position, s.Yaw = s.Movement.Apply(s.Transform.Position, s.Yaw, st)
	s.syncRotation()
}

// A positive model rotation about Y turns left, so the mesh turns by -Yaw.
func (s *Submarine) syncRotation() {
	s.Transform.Rotation[1] = s.MeshYaw - s.Yaw
}
