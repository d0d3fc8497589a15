package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestNoteFreq(t *testing.T) {
	tests := []struct {
		midi int
		want float64
	}{
		{69, 440},
		{57, 220},
		{81, 880},
		{-1, 0},
		{128, 0},
	}
	for _, tt := range tests {
		if got := NoteFreq(tt.midi); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NoteFreq(%d) = %f, want %f", tt.midi, got, tt.want)
		}
	}
}

func TestMenuThemeFitsItsGrid(t *testing.T) {
	for i, n := range MenuTheme.Notes {
		if n.Step < 0 || n.Step >= MenuTheme.Steps {
			t.Errorf("note %d on step %d outside %d steps", i, n.Step, MenuTheme.Steps)
		}
		if n.Velocity <= 0 || n.Velocity > 1 {
			t.Errorf("note %d velocity %f", i, n.Velocity)
		}
	}
}

func TestSequencerLoopsUntilStopped(t *testing.T) {
	const rate = beep.SampleRate(8000)
	s := NewSequencer(MenuTheme, rate)
	loop := rate.N(StepDuration(MenuTheme.BPM)) * MenuTheme.Steps

	buf := make([][2]float64, 512)
	streamed := 0
	var loud bool
	for streamed < 2*loop+len(buf) {
		n, ok := s.Stream(buf)
		if !ok || n != len(buf) {
			t.Fatalf("sequencer drained after %d samples", streamed)
		}
		for i := range n {
			if buf[i][0] != 0 {
				loud = true
			}
			if math.Abs(buf[i][0]) > 2 {
				t.Fatalf("sample out of range: %f", buf[i][0])
			}
		}
		streamed += n
	}
	if !loud {
		t.Error("sequencer streamed only silence")
	}
	if s.Loops() < 2 {
		t.Errorf("Loops() = %d after %d samples, want at least 2", s.Loops(), streamed)
	}

	s.Stop()
	if n, ok := s.Stream(buf); ok || n != 0 {
		t.Errorf("Stream after Stop = %d, %v", n, ok)
	}
	if !s.Stopped() || s.Err() != nil {
		t.Error("stopped sequencer should report Stopped without error")
	}
}

func TestStepDuration(t *testing.T) {
	if got := StepDuration(120); got != 125*time.Millisecond {
		t.Errorf("StepDuration(120) = %v", got)
	}
	if StepDuration(0) != StepDuration(120) {
		t.Error("zero bpm should fall back to 120")
	}
}

func TestMusicNeedsASpeaker(t *testing.T) {
	p := NewPlayer(nil)
	p.StartMusic(MenuMusicVolume)
	if p.MusicPlaying() {
		t.Error("music started without an initialized speaker")
	}
	p.StopMusic()
	p.Close()
}

func TestMutingStopsMusic(t *testing.T) {
	p := NewPlayer(nil)
	// Pretend the speaker is open without touching the device.
	p.initialized = true
	p.music = NewSequencer(MenuTheme, sampleRate)
	seq := p.music

	p.SetMuted(true)
	if p.MusicPlaying() || !seq.Stopped() {
		t.Error("muting should stop the music")
	}
	p.StartMusic(MenuMusicVolume)
	if p.MusicPlaying() {
		t.Error("muted player started music")
	}
}
