// Package audio plays the looping ambient track and the sonar ping.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/subdive/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

var (
	// ErrNotInitialized is returned when playing before Init.
	ErrNotInitialized = errors.New("audio not initialized")
	// ErrNoPing is returned by Ping when no ping sound was loaded.
	ErrNoPing = errors.New("no ping sound loaded")
)

// Settings are the volume levels, each 0.0 to 1.0.
type Settings struct {
	Master  float64
	Ambient float64
	SFX     float64
	Muted   bool
}

// DefaultSettings returns full master volume with a quieter ambient bed.
func DefaultSettings() Settings {
	return Settings{Master: 1.0, Ambient: 0.6, SFX: 0.8}
}

// Manager owns the speaker. The speaker streams from its own goroutine,
// so state shared with it is guarded by mu and speaker.Lock.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	mixer       *beep.Mixer

	ambientSource beep.StreamSeekCloser
	ambientVolume *effects.Volume

	ping *beep.Buffer

	master       float64
	ambientLevel float64
	sfxLevel     float64
	muted        bool

	log *zap.Logger
}

// New creates a new audio manager at the default levels. Nothing is played
// until Init.
func New() *Manager {
	s := DefaultSettings()
	return &Manager{
		sampleRate:   DefaultSampleRate,
		mixer:        &beep.Mixer{},
		master:       clamp(s.Master, 0, 1),
		ambientLevel: clamp(s.Ambient, 0, 1),
		sfxLevel:     clamp(s.SFX, 0, 1),
		muted:        s.Muted,
		log:          logger.Named("audio"),
	}
}

// Init opens the output device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	m.log.Info("audio initialized", zap.Int("sample_rate", int(m.sampleRate)))
	return nil
}

// Close stops playback and releases the device.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Clear()
		speaker.Close()
	}
	if m.ambientSource != nil {
		m.ambientSource.Close()
		m.ambientSource = nil
	}
	m.ambientVolume = nil
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// PlayAmbient starts looping WAV data, replacing any ambient track.
func (m *Manager) PlayAmbient(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}

	source, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode ambient: %w", err)
	}

	vol := &effects.Volume{Streamer: m.resample(format, &loopStreamer{source: source}), Base: 10}

	speaker.Lock()
	if m.ambientVolume != nil {
		m.ambientVolume.Silent = true
		m.ambientVolume.Streamer = beep.Silence(0)
	}
	m.ambientVolume = vol
	m.applyAmbientVolume()
	m.mixer.Add(vol)
	speaker.Unlock()

	if m.ambientSource != nil {
		m.ambientSource.Close()
	}
	m.ambientSource = source
	return nil
}

// LoadPing decodes the ping effect into memory so it can be replayed.
func (m *Manager) LoadPing(data []byte) error {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode ping: %w", err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(m.resample(format, streamer))

	m.mu.Lock()
	m.ping = buf
	m.mu.Unlock()
	return nil
}

// Ping plays the loaded ping once. Overlapping pings mix.
func (m *Manager) Ping() error {
	m.mu.RLock()
	initialized, buf := m.initialized, m.ping
	gain := m.effective(m.sfxLevel)
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}
	if buf == nil {
		return ErrNoPing
	}

	vol := &effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     10,
		Volume:   volumeToDb(gain) / 20,
		Silent:   gain <= 0,
	}

	speaker.Lock()
	m.mixer.Add(vol)
	speaker.Unlock()
	return nil
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.master = clamp(vol, 0, 1)
	m.updateAmbient()
}

// SetAmbientVolume sets the ambient track volume (0.0 to 1.0).
func (m *Manager) SetAmbientVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ambientLevel = clamp(vol, 0, 1)
	m.updateAmbient()
}

// SetSFXVolume sets the effect volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxLevel = clamp(vol, 0, 1)
}

// SetMuted silences all output without losing the volume levels.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
	m.updateAmbient()
}

// Volumes returns the current settings.
func (m *Manager) Volumes() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Settings{Master: m.master, Ambient: m.ambientLevel, SFX: m.sfxLevel, Muted: m.muted}
}

// PingLoaded reports the loaded ping length in samples, or 0.
func (m *Manager) PingLoaded() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ping == nil {
		return 0
	}
	return m.ping.Len()
}

// effective is the linear gain for a channel level after master and mute.
func (m *Manager) effective(level float64) float64 {
	if m.muted {
		return 0
	}
	return m.master * level
}

func (m *Manager) updateAmbient() {
	if m.ambientVolume == nil {
		return
	}
	speaker.Lock()
	m.applyAmbientVolume()
	speaker.Unlock()
}

// applyAmbientVolume must run under speaker.Lock.
func (m *Manager) applyAmbientVolume() {
	gain := m.effective(m.ambientLevel)
	m.ambientVolume.Silent = gain <= 0
	m.ambientVolume.Volume = volumeToDb(gain) / 20
}

func (m *Manager) resample(format beep.Format, s beep.Streamer) beep.Streamer {
	if format.SampleRate == m.sampleRate {
		return s
	}
	return beep.Resample(4, format.SampleRate, m.sampleRate, s)
}

// volumeToDb converts a 0-1 linear volume to decibels.
// vol=1 -> 0dB, vol=0.5 -> -6dB, vol=0.25 -> -12dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * math.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// loopStreamer rewinds its source whenever it runs dry.
type loopStreamer struct {
	source beep.StreamSeeker
}

func (l *loopStreamer) Stream(samples [][2]float64) (int, bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.source.Stream(samples[filled:])
		filled += n
		if ok && n > 0 {
			continue
		}
		if l.source.Len() == 0 {
			return filled, filled > 0
		}
		if err := l.source.Seek(0); err != nil {
			return filled, filled > 0
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.source.Err()
}
