package audio

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
)

// MenuMusicVolume is the volume of the between-levels loop.
const MenuMusicVolume = 0.25

// NoteTrigger starts a MIDI note on a sequencer step.
type NoteTrigger struct {
	Step     int
	Note     int     // MIDI note number, 69 is A4
	Velocity float64 // 0..1
	Length   int     // Steps
}

// Pattern is a looping sequence of notes on a grid of sixteenth steps.
type Pattern struct {
	BPM   int
	Steps int
	Wave  Wave
	Notes []NoteTrigger
}

// MenuTheme is the loop played while the player configures the sides.
var MenuTheme = Pattern{
	BPM:   96,
	Steps: 32,
	Wave:  WaveTriangle,
	Notes: []NoteTrigger{
		// Am
		{Step: 0, Note: 45, Velocity: 0.9, Length: 6},
		{Step: 0, Note: 69, Velocity: 0.6, Length: 2},
		{Step: 2, Note: 72, Velocity: 0.5, Length: 2},
		{Step: 4, Note: 76, Velocity: 0.5, Length: 2},
		{Step: 6, Note: 72, Velocity: 0.4, Length: 2},
		// F
		{Step: 8, Note: 41, Velocity: 0.9, Length: 6},
		{Step: 8, Note: 69, Velocity: 0.6, Length: 2},
		{Step: 10, Note: 72, Velocity: 0.5, Length: 2},
		{Step: 12, Note: 77, Velocity: 0.5, Length: 2},
		{Step: 14, Note: 72, Velocity: 0.4, Length: 2},
		// C
		{Step: 16, Note: 48, Velocity: 0.9, Length: 6},
		{Step: 16, Note: 67, Velocity: 0.6, Length: 2},
		{Step: 18, Note: 72, Velocity: 0.5, Length: 2},
		{Step: 20, Note: 76, Velocity: 0.5, Length: 2},
		{Step: 22, Note: 72, Velocity: 0.4, Length: 2},
		// G
		{Step: 24, Note: 43, Velocity: 0.9, Length: 6},
		{Step: 24, Note: 67, Velocity: 0.6, Length: 2},
		{Step: 26, Note: 71, Velocity: 0.5, Length: 2},
		{Step: 28, Note: 74, Velocity: 0.5, Length: 4},
	},
}

// NoteFreq returns the equal-tempered frequency of a MIDI note.
func NoteFreq(midi int) float64 {
	if midi < 0 || midi > 127 {
		return 0
	}
	return 440 * math.Pow(2, float64(midi-69)/12)
}

// StepDuration returns the length of one sixteenth step at bpm.
func StepDuration(bpm int) time.Duration {
	if bpm <= 0 {
		bpm = 120
	}
	return time.Minute / time.Duration(bpm*4)
}

type voice struct {
	n    *note
	gain float64
}

// Sequencer loops a Pattern until Stop is called. It is a beep.Streamer that
// never drains on its own; once stopped it ends and the mixer drops it.
type Sequencer struct {
	pattern Pattern
	rate    beep.SampleRate
	stepLen int

	step   int
	pos    int // Sample position within the current step
	loops  int
	voices []voice

	stopped atomic.Bool
}

// NewSequencer prepares p for streaming at rate.
func NewSequencer(p Pattern, rate beep.SampleRate) *Sequencer {
	if p.Steps <= 0 {
		p.Steps = 16
	}
	return &Sequencer{
		pattern: p,
		rate:    rate,
		stepLen: max(rate.N(StepDuration(p.BPM)), 1),
	}
}

// Stop ends the stream. It is safe to call from any goroutine.
func (s *Sequencer) Stop() {
	s.stopped.Store(true)
}

// Stopped reports whether Stop was called.
func (s *Sequencer) Stopped() bool {
	return s.stopped.Load()
}

// Loops returns how many times the pattern has wrapped around.
func (s *Sequencer) Loops() int {
	return s.loops
}

func (s *Sequencer) trigger(step int) {
	stepDur := StepDuration(s.pattern.BPM)
	for _, t := range s.pattern.Notes {
		if t.Step != step {
			continue
		}
		length := stepDur * time.Duration(max(t.Length, 1))
		freq := NoteFreq(t.Note)
		n := newNote(Note{
			Wave:     s.pattern.Wave,
			Freq:     freq,
			EndFreq:  freq,
			Duration: length,
			Attack:   5 * time.Millisecond,
			Release:  length / 2,
		}, s.rate, uint32(t.Note)+1) //#nosec G115 -- MIDI note range
		s.voices = append(s.voices, voice{n: n, gain: t.Velocity * 0.5})
	}
}

func (s *Sequencer) Stream(samples [][2]float64) (int, bool) {
	if s.stopped.Load() {
		return 0, false
	}
	for i := range samples {
		if s.pos == 0 {
			s.trigger(s.step)
		}

		var val float64
		live := s.voices[:0]
		for _, v := range s.voices {
			if v.n.done() {
				continue
			}
			val += v.n.next() * v.gain
			live = append(live, v)
		}
		s.voices = live
		samples[i][0] = val
		samples[i][1] = val

		s.pos++
		if s.pos >= s.stepLen {
			s.pos = 0
			s.step++
			if s.step >= s.pattern.Steps {
				s.step = 0
				s.loops++
			}
		}
	}
	return len(samples), true
}

func (s *Sequencer) Err() error { return nil }
