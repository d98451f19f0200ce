package window

import (
	"fmt"
	"sort"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/multierr"

	"github.com/Faultbox/subdive/internal/engine/input"
)

// Keymap maps every action to a physical key.
type Keymap [input.ActionCount]sdl.Scancode

// NewKeymap resolves binding names ("W", "Left", "F12") to scancodes.
// Actions without a binding stay unbound.
func NewKeymap(bindings map[string]string) (Keymap, error) {
	return resolveKeymap(bindings, func(name string) sdl.Scancode {
		return sdl.GetScancodeFromName(name)
	})
}

func resolveKeymap(bindings map[string]string, lookup func(string) sdl.Scancode) (Keymap, error) {
	var km Keymap

	// Sorted so the aggregated error is stable.
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs error
	for _, name := range names {
		action, ok := input.ParseAction(name)
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("unknown action %q", name))
			continue
		}
		key := bindings[name]
		code := lookup(key)
		if code == sdl.SCANCODE_UNKNOWN {
			errs = multierr.Append(errs, fmt.Errorf("action %s: unknown key %q", name, key))
			continue
		}
		km[action] = code
	}
	return km, errs
}

// State fills held actions from a keyboard state indexed by scancode.
func (km Keymap) State(keys []uint8) input.State {
	var s input.State
	for a := input.Action(0); a < input.ActionCount; a++ {
		code := int(km[a])
		if code == int(sdl.SCANCODE_UNKNOWN) || code >= len(keys) {
			continue
		}
		s.Set(a, keys[code] != 0)
	}
	return s
}

// DragMask returns the mouse button mask for a configured button name.
func DragMask(button string) (uint32, error) {
	switch button {
	case "left":
		return sdl.Button(sdl.BUTTON_LEFT), nil
	case "middle":
		return sdl.Button(sdl.BUTTON_MIDDLE), nil
	case "right", "":
		return sdl.Button(sdl.BUTTON_RIGHT), nil
	default:
		return 0, fmt.Errorf("unknown mouse button %q", button)
	}
}
