package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/gopxl/beep"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Gorillas-3D/internal/game"
)

var allSounds = []string{
	game.SoundRising,
	game.SoundTransitionShort,
	game.SoundTransitionLong,
	game.SoundBeep,
	game.SoundThrow,
	game.SoundExplosion,
	game.SoundCollapse,
	game.SoundClick,
}

// drain streams s to completion and returns the sample count and peak.
func drain(t *testing.T, s beep.Streamer, limit int) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	return total, peak
}

func attached(t *testing.T) *SoundManager {
	t.Helper()
	sm := NewSoundManager(1, zerolog.Nop())
	if err := sm.start(false, func(beep.Streamer) error { return nil }); err != nil {
		t.Fatalf("start: %v", err)
	}
	return sm
}

func TestEffect_AllNamesFinite(t *testing.T) {
	for _, name := range allSounds {
		s := Effect(name, sampleRate)
		if s == nil {
			t.Fatalf("no effect for %q", name)
		}
		n, peak := drain(t, s, sampleRate.N(5e9))
		if n == 0 || n >= sampleRate.N(5e9) {
			t.Fatalf("%s: unexpected length %d samples", name, n)
		}
		if peak == 0 || peak > 2 {
			t.Fatalf("%s: peak %f out of range", name, peak)
		}
		t.Logf("%-16s %6d samples peak %.2f", name, n, peak)
	}
	if Effect("Kazoo", sampleRate) != nil {
		t.Fatal("unknown sound should have no effect")
	}
}

func TestRender_SquareLevels(t *testing.T) {
	p := patch{Gain: 1, Layers: []layer{{Wave: Square, From: 220, To: 220, For: 50 * ms, Gain: 1}}}
	buf := p.render(beep.SampleRate(44100), 1)
	if len(buf) != beep.SampleRate(44100).N(50*ms) {
		t.Fatalf("unexpected length %d", len(buf))
	}
	for i, v := range buf {
		if v != 1 && v != -1 {
			t.Fatalf("square sample %d = %f", i, v)
		}
	}
}

func TestRender_LayersStartLate(t *testing.T) {
	rate := beep.SampleRate(1000)
	p := patch{Gain: 1, Layers: []layer{
		{Wave: Square, From: 10, To: 10, For: 100 * ms, Gain: 1},
		{Wave: Square, From: 10, To: 10, At: 200 * ms, For: 100 * ms, Gain: 0.5},
	}}
	buf := p.render(rate, 1)
	if len(buf) != 300 {
		t.Fatalf("expected 300 samples, got %d", len(buf))
	}
	if buf[150] != 0 {
		t.Fatalf("gap between layers should be silent, got %f", buf[150])
	}
	if math.Abs(buf[250]) != 0.5 {
		t.Fatalf("second layer should play at half gain, got %f", buf[250])
	}
}

func TestRamp_StartsAndEndsSilent(t *testing.T) {
	const n, attack, release = 1000, 100, 100
	if g := ramp(0, n, attack, release); g != 0 {
		t.Fatalf("attack should start at zero, got %f", g)
	}
	if g := ramp(500, n, attack, release); g != 1 {
		t.Fatalf("sustain should be full scale, got %f", g)
	}
	if g := ramp(n-1, n, attack, release); g > 0.02 {
		t.Fatalf("release should end near zero, got %f", g)
	}
}

func TestEffect_Deterministic(t *testing.T) {
	a, _ := drain(t, Effect(game.SoundExplosion, sampleRate), sampleRate.N(1e9))
	b, _ := drain(t, Effect(game.SoundExplosion, sampleRate), sampleRate.N(1e9))
	if a != b {
		t.Fatalf("lengths differ: %d vs %d", a, b)
	}
	x := patches[game.SoundExplosion].render(sampleRate, seedFor(game.SoundExplosion))
	y := patches[game.SoundExplosion].render(sampleRate, seedFor(game.SoundExplosion))
	for i := range x {
		if x[i] != y[i] {
			t.Fatalf("sample %d differs", i)
		}
	}
}

func TestSoundManager_NoopUntilInitialized(t *testing.T) {
	sm := NewSoundManager(1, zerolog.Nop())
	sm.Play(game.SoundBeep, false)
	sm.StopAll()
	sm.Cleanup()
	if sm.Playing() != 0 {
		t.Fatal("uninitialized manager queued a sound")
	}
}

func TestSoundManager_PlayAndStop(t *testing.T) {
	sm := attached(t)

	sm.Play(game.SoundExplosion, false)
	sm.Play("Kazoo", false)
	if sm.Playing() != 1 {
		t.Fatalf("expected 1 active sound, got %d", sm.Playing())
	}

	_, peak := drain(t, sm.mixer, 2048)
	if peak == 0 {
		t.Fatal("mixer produced silence while an explosion played")
	}

	sm.StopAll()
	if sm.Playing() != 0 {
		t.Fatal("StopAll left sounds active")
	}
	_, peak = drain(t, sm.mixer, 2048)
	if peak != 0 {
		t.Fatalf("mixer not silent after StopAll: peak %f", peak)
	}
}

func TestSoundManager_LoopOutlastsEffect(t *testing.T) {
	sm := attached(t)
	sm.Play(game.SoundBeep, true)

	one, _ := drain(t, Effect(game.SoundBeep, sampleRate), sampleRate.N(1e9))
	n, _ := drain(t, sm.active[0], one*3)
	if n < one*3 {
		t.Fatalf("looping beep stopped after %d samples, single beep is %d", n, one)
	}
	sm.Cleanup()
}

func TestSoundManager_StartError(t *testing.T) {
	sm := NewSoundManager(1, zerolog.Nop())
	want := errors.New("no device")
	if err := sm.start(false, func(beep.Streamer) error { return want }); !errors.Is(err, want) {
		t.Fatalf("start error = %v", err)
	}
	sm.Play(game.SoundBeep, false)
	if sm.Playing() != 0 {
		t.Fatal("failed start should leave the manager silent")
	}
}

var _ game.SoundPlayer = (*SoundManager)(nil)
