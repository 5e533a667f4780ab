// Package audio plays the game's synthesized sound effects through beep.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

const sampleRate = beep.SampleRate(48000)

// SoundManager implements game.SoundPlayer on top of the beep speaker.
// Until Initialize succeeds every call is a no-op.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	active      []*beep.Ctrl
	volume      float64
	initialized bool
	device      bool // speaker goroutine is reading the mixer
	logger      zerolog.Logger
}

// NewSoundManager creates a manager with a master volume in [0,1].
func NewSoundManager(volume float64, logger zerolog.Logger) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger,
	}
}

// Initialize opens the audio device and starts the mixer.
func (sm *SoundManager) Initialize() error {
	return sm.start(true, func(m beep.Streamer) error {
		if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
			return err
		}
		speaker.Play(m)
		return nil
	})
}

func (sm *SoundManager) start(device bool, open func(beep.Streamer) error) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := open(sm.mixer); err != nil {
		return err
	}
	sm.initialized = true
	sm.device = device
	sm.logger.Debug().Int("sample_rate", int(sampleRate)).Msg("audio initialized")
	return nil
}

// Cleanup stops all sounds and releases the device.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.stopLocked()
	if sm.device {
		speaker.Close()
	}
	sm.initialized = false
	sm.device = false
}

// Play starts the named effect. A looping effect repeats until StopAll.
func (sm *SoundManager) Play(name string, loop bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := Effect(name, sampleRate)
	if s == nil {
		sm.logger.Warn().Str("sound", name).Msg("unknown sound")
		return
	}
	if loop {
		s = &repeat{name: name, cur: s}
	}

	ctrl := &beep.Ctrl{Streamer: atVolume(s, sm.volume)}
	sm.prune()
	sm.active = append(sm.active, ctrl)
	sm.lockedMix(func() { sm.mixer.Add(ctrl) })
}

// StopAll silences every playing effect.
func (sm *SoundManager) StopAll() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.stopLocked()
}

// Playing reports how many effects have been started and not stopped.
// Finished one-shots are counted until the next Play prunes them.
func (sm *SoundManager) Playing() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return len(sm.active)
}

func (sm *SoundManager) stopLocked() {
	sm.lockedMix(func() {
		for _, c := range sm.active {
			c.Paused = true
		}
		sm.mixer.Clear()
	})
	sm.active = sm.active[:0]
}

// prune drops controls the mixer has already finished with.
func (sm *SoundManager) prune() {
	sm.lockedMix(func() {
		if sm.mixer.Len() == 0 {
			sm.active = sm.active[:0]
		}
	})
}

// lockedMix guards mixer mutation against the speaker goroutine when the
// real device is running.
func (sm *SoundManager) lockedMix(fn func()) {
	if sm.device {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

// repeat regenerates a named effect every time it runs out.
type repeat struct {
	name string
	cur  beep.Streamer
}

func (r *repeat) Stream(samples [][2]float64) (n int, ok bool) {
	fresh := false
	for n < len(samples) {
		if r.cur == nil {
			r.cur = Effect(r.name, sampleRate)
			if r.cur == nil {
				return n, n > 0
			}
			fresh = true
		}
		k, more := r.cur.Stream(samples[n:])
		n += k
		if k > 0 {
			fresh = false
		}
		if !more {
			if k == 0 && fresh {
				// a brand-new effect produced nothing
				return n, n > 0
			}
			r.cur = nil
		}
	}
	return n, true
}

func (r *repeat) Err() error { return nil }
