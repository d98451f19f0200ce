package game

import (
	"github.com/Faultbox/subdive/internal/config"
	"github.com/Faultbox/subdive/internal/engine/audio"
	"github.com/Faultbox/subdive/internal/engine/input"
)

// VolumeStep is the master volume change per key press.
const VolumeStep = 0.1

// configureAudio applies the configured levels.
func configureAudio(m *audio.Manager, ac config.AudioConfig) {
	m.SetMasterVolume(float64(ac.MasterVolume))
	m.SetAmbientVolume(float64(ac.AmbientVolume))
	m.SetSFXVolume(float64(ac.SFXVolume))
	m.SetMuted(ac.Muted)
}

// audioKeys turns the mute and volume keys into one change per press.
type audioKeys struct {
	mute, up, down input.Latch
}

// apply reacts to one frame of held keys and reports whether a level changed.
func (k *audioKeys) apply(m *audio.Manager, s input.State) bool {
	changed := false
	if k.mute.Rising(s.Held(input.ActionMute)) {
		m.SetMuted(!m.Volumes().Muted)
		changed = true
	}
	if k.up.Rising(s.Held(input.ActionVolumeUp)) {
		m.SetMasterVolume(m.Volumes().Master + VolumeStep)
		changed = true
	}
	if k.down.Rising(s.Held(input.ActionVolumeDown)) {
		m.SetMasterVolume(m.Volumes().Master - VolumeStep)
		changed = true
	}
	return changed
}
