// Package input describes the per-frame control state consumed by the scene.
// Polling lives in the window package; nothing here touches SDL.
package input

// Action is a logical control, bound to a physical key by configuration.
type Action int

const (
	ActionForward Action = iota
	ActionBack
	ActionLeft
	ActionRight
	ActionAscend
	ActionDescend
	ActionPanUp
	ActionPanDown
	ActionPanLeft
	ActionPanRight
	ActionModeToggle
	ActionOrthoSelect
	ActionCycleLight
	ActionScreenshot
	ActionMute
	ActionVolumeUp
	ActionVolumeDown
	ActionQuit
	ActionCount // Sentinel value for array sizing
)

var actionNames = [ActionCount]string{
	"forward", "back", "left", "right", "ascend", "descend",
	"pan_up", "pan_down", "pan_left", "pan_right",
	"mode_toggle", "ortho_select", "cycle_light", "screenshot",
	"mute", "volume_up", "volume_down", "quit",
}

// String returns the configuration name of the action.
func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction maps a configuration name back to its Action.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return 0, false
}

// State is a snapshot of held controls and the cursor for one frame.
type State struct {
	held [ActionCount]bool

	CursorX float64
	CursorY float64
	// Drag is true while the orbit-drag mouse button is held.
	Drag bool
}

// Set marks an action as held or released.
func (s *State) Set(a Action, held bool) {
	if a < 0 || a >= ActionCount {
		return
	}
	s.held[a] = held
}

// Held reports whether the action is held this frame.
func (s State) Held(a Action) bool {
	if a < 0 || a >= ActionCount {
		return false
	}
	return s.held[a]
}

// Press returns a state with the given actions held.
func Press(actions ...Action) State {
	var s State
	for _, a := range actions {
		s.Set(a, true)
	}
	return s
}

// Latch turns a held key into a single rising-edge event.
// It fires once per press and re-arms only after the key is released.
// The zero value is armed.
type Latch struct {
	locked bool // set on press, cleared on release
}

// Rising reports true on the first frame pressed is seen after a release.
func (l *Latch) Rising(pressed bool) bool {
	if !pressed {
		l.locked = false
		return false
	}
	if l.locked {
		return false
	}
	l.locked = true
	return true
}
