package audio

import (
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/Garsondee/Gorillas-3D/internal/game"
)

// Wave is the shape of one layer of a sound.
type Wave uint8

const (
	Sine Wave = iota
	Square
	Saw
	Noise
)

// layer is one voice of a patch: a wave gliding from From to To Hz,
// starting At into the sound and lasting For, with linear fades.
type layer struct {
	Wave     Wave
	From, To float64
	At, For  time.Duration
	Attack   time.Duration
	Release  time.Duration
	Gain     float64
}

// patch is a game sound: layers summed, then scaled by Gain.
type patch struct {
	Layers []layer
	Gain   float64
}

const ms = time.Millisecond

var patches = map[string]patch{
	// the city grows out of the ground
	game.SoundRising: {Gain: 0.35, Layers: []layer{
		{Wave: Saw, From: 110, To: 660, For: 1500 * ms, Attack: 50 * ms, Release: 300 * ms, Gain: 1},
	}},
	game.SoundTransitionShort: {Gain: 0.5, Layers: []layer{
		{Wave: Sine, From: 220, To: 440, For: 400 * ms, Attack: 20 * ms, Release: 150 * ms, Gain: 1},
	}},
	// down then up, as the camera swings over the skyline
	game.SoundTransitionLong: {Gain: 0.5, Layers: []layer{
		{Wave: Sine, From: 330, To: 220, For: 500 * ms, Attack: 20 * ms, Release: 100 * ms, Gain: 1},
		{Wave: Sine, From: 220, To: 440, At: 500 * ms, For: 500 * ms, Attack: 20 * ms, Release: 200 * ms, Gain: 1},
	}},
	game.SoundBeep: {Gain: 0.25, Layers: []layer{
		{Wave: Square, From: 880, To: 880, For: 80 * ms, Attack: 5 * ms, Release: 30 * ms, Gain: 1},
	}},
	game.SoundThrow: {Gain: 0.5, Layers: []layer{
		{Wave: Sine, From: 600, To: 200, For: 300 * ms, Attack: 5 * ms, Release: 150 * ms, Gain: 1},
		{Wave: Noise, For: 300 * ms, Attack: 5 * ms, Release: 250 * ms, Gain: 0.3},
	}},
	game.SoundExplosion: {Gain: 0.6, Layers: []layer{
		{Wave: Noise, For: 700 * ms, Attack: 2 * ms, Release: 600 * ms, Gain: 1},
		{Wave: Sine, From: 80, To: 30, For: 700 * ms, Attack: 2 * ms, Release: 600 * ms, Gain: 1},
	}},
	// rumble of floors sliding down
	game.SoundCollapse: {Gain: 0.4, Layers: []layer{
		{Wave: Noise, For: 400 * ms, Attack: 10 * ms, Release: 300 * ms, Gain: 1},
		{Wave: Saw, From: 60, To: 40, For: 400 * ms, Attack: 10 * ms, Release: 300 * ms, Gain: 1},
		{Wave: Noise, At: 150 * ms, For: 250 * ms, Attack: 5 * ms, Release: 200 * ms, Gain: 0.5},
	}},
	game.SoundClick: {Gain: 0.2, Layers: []layer{
		{Wave: Square, From: 1200, To: 1200, For: 30 * ms, Attack: 1 * ms, Release: 20 * ms, Gain: 1},
	}},
}

// Effect synthesizes one of the named game sounds. Unknown names return nil.
func Effect(name string, rate beep.SampleRate) beep.Streamer {
	p, ok := patches[name]
	if !ok {
		return nil
	}
	return play(p.render(rate, seedFor(name)))
}

func seedFor(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(h.Sum64() >> 1)
}

// render mixes every layer into one mono buffer.
func (p patch) render(rate beep.SampleRate, seed int64) []float64 {
	total := 0
	for _, l := range p.Layers {
		total = max(total, rate.N(l.At+l.For))
	}
	buf := make([]float64, total)
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- noise timbre
	for _, l := range p.Layers {
		start, n := rate.N(l.At), rate.N(l.For)
		attack, release := rate.N(l.Attack), rate.N(l.Release)
		phase := 0.0
		for i := 0; i < n; i++ {
			u := float64(i) / float64(n)
			buf[start+i] += p.Gain * l.Gain * ramp(i, n, attack, release) * sample(l.Wave, phase, rng)
			phase += (l.From + (l.To-l.From)*u) / float64(rate)
			phase -= math.Floor(phase)
		}
	}
	return buf
}

// sample evaluates a wave at phase in [0,1).
func sample(w Wave, phase float64, rng *rand.Rand) float64 {
	switch w {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Saw:
		return 2*phase - 1
	case Noise:
		return 2*rng.Float64() - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// ramp is the fade gain of sample i out of n.
func ramp(i, n, attack, release int) float64 {
	g := 1.0
	if attack > 0 && i < attack {
		g = float64(i) / float64(attack)
	}
	if release > 0 && i >= n-release {
		g = math.Min(g, float64(n-i)/float64(release))
	}
	return g
}

// play streams a rendered buffer to both channels once.
func play(buf []float64) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= len(buf) {
			return 0, false
		}
		n := copy2(samples, buf[pos:])
		pos += n
		return n, true
	})
}

func copy2(dst [][2]float64, src []float64) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = [2]float64{src[i], src[i]}
	}
	return n
}

// atVolume scales s by vol in [0,1]; zero is silent.
func atVolume(s beep.Streamer, vol float64) beep.Streamer {
	return &effects.Gain{Streamer: s, Gain: math.Max(vol, 0) - 1}
}
