// Package audio synthesizes the game's sound cues and plays them through the
// system speaker. Every cue is generated on the fly; there are no assets.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/side-effects/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// Note is one synthesized tone: a frequency sweep from Freq to EndFreq over
// Duration with a linear attack and release.
type Note struct {
	Wave     Wave
	Freq     float64
	EndFreq  float64 // Equal to Freq for a steady tone
	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
}

// recipes maps every cue to the notes played in sequence.
var recipes = [core.CueCount][]Note{
	core.CueHit: {
		{Wave: WaveTriangle, Freq: 180, EndFreq: 140, Duration: 40 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 30 * time.Millisecond},
	},
	core.CueLaunch: {
		{Wave: WaveSine, Freq: 220, EndFreq: 440, Duration: 120 * time.Millisecond, Attack: 10 * time.Millisecond, Release: 60 * time.Millisecond},
	},
	core.CueGood: {
		{Wave: WaveSquare, Freq: 659.25, EndFreq: 659.25, Duration: 70 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 30 * time.Millisecond},
		{Wave: WaveSquare, Freq: 987.77, EndFreq: 987.77, Duration: 140 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 100 * time.Millisecond},
	},
	core.CueBad: {
		{Wave: WaveSquare, Freq: 160, EndFreq: 90, Duration: 220 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 120 * time.Millisecond},
	},
	core.CueUp: {
		{Wave: WaveSine, Freq: 440, EndFreq: 1320, Duration: 110 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 40 * time.Millisecond},
	},
	core.CueFreeze: {
		{Wave: WaveSine, Freq: 1760, EndFreq: 1760, Duration: 60 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 40 * time.Millisecond},
		{Wave: WaveSine, Freq: 2093, EndFreq: 2093, Duration: 160 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 140 * time.Millisecond},
	},
	core.CueBounceBackwards: {
		{Wave: WaveTriangle, Freq: 880, EndFreq: 220, Duration: 150 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 60 * time.Millisecond},
	},
	core.CueDestroy: {
		{Wave: WaveNoise, Duration: 250 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 220 * time.Millisecond},
	},
	core.CueDuplicate: {
		{Wave: WaveSine, Freq: 523.25, EndFreq: 523.25, Duration: 60 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 30 * time.Millisecond},
		{Wave: WaveSine, Freq: 523.25, EndFreq: 523.25, Duration: 60 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 30 * time.Millisecond},
	},
	core.CueResize: {
		{Wave: WaveTriangle, Freq: 200, EndFreq: 600, Duration: 300 * time.Millisecond, Attack: 20 * time.Millisecond, Release: 100 * time.Millisecond},
	},
	core.CueExtremeBounce: {
		{Wave: WaveSquare, Freq: 300, EndFreq: 1500, Duration: 90 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 30 * time.Millisecond},
	},
	core.CueExtraPoints: {
		{Wave: WaveSquare, Freq: 1046.5, EndFreq: 1046.5, Duration: 50 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 20 * time.Millisecond},
		{Wave: WaveSquare, Freq: 1318.51, EndFreq: 1318.51, Duration: 50 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 20 * time.Millisecond},
		{Wave: WaveSquare, Freq: 1567.98, EndFreq: 1567.98, Duration: 120 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 90 * time.Millisecond},
	},
}

// Recipe returns the notes of a cue, or nil for an unknown cue.
func Recipe(cue core.Cue) []Note {
	if cue < 0 || cue >= core.CueCount {
		return nil
	}
	return recipes[cue]
}

// Streamer builds the finite stream for cue at the given volume (0..1).
// Returns nil for unknown cues.
func Streamer(cue core.Cue, volume float64) beep.Streamer {
	notes := Recipe(cue)
	if len(notes) == 0 {
		return nil
	}

	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = newNote(n, sampleRate, uint32(cue)+1) //#nosec G115 -- cue is a small enum
	}
	return newVolume(beep.Seq(parts...), volume)
}

// note streams one Note and then ends.
type note struct {
	Note
	rate     beep.SampleRate
	total    int
	attack   int
	release  int
	position int
	phase    float64
	noise    uint32
}

func newNote(n Note, rate beep.SampleRate, seed uint32) *note {
	return &note{
		Note:    n,
		rate:    rate,
		total:   rate.N(n.Duration),
		attack:  rate.N(n.Attack),
		release: rate.N(n.Release),
		noise:   seed,
	}
}

func (n *note) Stream(samples [][2]float64) (int, bool) {
	if n.position >= n.total {
		return 0, false
	}
	for i := range samples {
		if n.position >= n.total {
			return i, true
		}
		val := n.next()
		samples[i][0] = val
		samples[i][1] = val
	}
	return len(samples), true
}

func (n *note) done() bool {
	return n.position >= n.total
}

// next returns the current sample and advances by one.
func (n *note) next() float64 {
	val := n.wave() * n.envelope()

	progress := float64(n.position) / float64(n.total)
	freq := n.Freq + (n.EndFreq-n.Freq)*progress
	n.phase += freq / float64(n.rate)
	n.phase -= math.Floor(n.phase)
	n.position++
	return val
}

func (n *note) Err() error { return nil }

func (n *note) wave() float64 {
	switch n.Wave {
	case WaveSquare:
		if n.phase < 0.5 {
			return 0.6
		}
		return -0.6
	case WaveTriangle:
		return 1 - 4*math.Abs(n.phase-0.5)
	case WaveNoise:
		// xorshift keeps cues reproducible.
		n.noise ^= n.noise << 13
		n.noise ^= n.noise >> 17
		n.noise ^= n.noise << 5
		return float64(n.noise)/float64(math.MaxUint32)*2 - 1
	default:
		return math.Sin(2 * math.Pi * n.phase)
	}
}

func (n *note) envelope() float64 {
	if n.attack > 0 && n.position < n.attack {
		return float64(n.position) / float64(n.attack)
	}
	if remaining := n.total - n.position; n.release > 0 && remaining < n.release {
		return float64(remaining) / float64(n.release)
	}
	return 1
}

// newVolume scales a stream linearly; 0 or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
