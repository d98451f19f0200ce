package world

import (
	"fmt"

	"github.com/Faultbox/subdive/internal/engine/input"
)

// Mode is a camera and control configuration.
type Mode int

const (
	ModeFirstPerson Mode = iota
	ModeThirdPerson
	ModeOrthographic
	ModeCount // Sentinel value for array sizing
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeFirstPerson:
		return "first-person"
	case ModeThirdPerson:
		return "third-person"
	case ModeOrthographic:
		return "orthographic"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps a configuration name to a Mode.
func ParseMode(s string) (Mode, bool) {
	for m := Mode(0); m < ModeCount; m++ {
		if m.String() == s {
			return m, true
		}
	}
	return 0, false
}

// ModeSwitch is the mode state machine. The toggle key swaps first- and
// third-person on its rising edge; leaving orthographic through the toggle
// returns to the last perspective mode. The ortho key selects orthographic
// whenever it is held, and orthographic persists after release.
type ModeSwitch struct {
	mode            Mode
	lastPerspective Mode
	toggle          input.Latch
}

// NewModeSwitch starts in the given mode.
func NewModeSwitch(initial Mode) *ModeSwitch {
	s := &ModeSwitch{mode: initial, lastPerspective: ModeFirstPerson}
	if initial != ModeOrthographic {
		s.lastPerspective = initial
	}
	return s
}

// Mode returns the active mode.
func (s *ModeSwitch) Mode() Mode {
	return s.mode
}

// Update resolves one frame of mode keys and reports whether the mode changed.
func (s *ModeSwitch) Update(toggle, orthoSelect bool) bool {
	prev := s.mode

	if s.toggle.Rising(toggle) {
		switch s.mode {
		case ModeFirstPerson:
			s.mode = ModeThirdPerson
		case ModeThirdPerson:
			s.mode = ModeFirstPerson
		case ModeOrthographic:
			s.mode = s.lastPerspective
		}
	}
	if orthoSelect {
		s.mode = ModeOrthographic
	}
	if s.mode != ModeOrthographic {
		s.lastPerspective = s.mode
	}

	return s.mode != prev
}
