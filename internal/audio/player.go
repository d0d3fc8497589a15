package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/side-effects/internal/core"
)

// Player plays cues through the speaker. Play never blocks on the sound
// finishing; cues are mixed in the speaker goroutine.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *Sequencer
	initialized bool
	muted       bool
	logger      *log.Logger
}

// NewPlayer creates a player. It stays silent until Initialize succeeds.
func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Initialize opens the speaker. Calling it again is a no-op.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// SetMuted silences or restores every future cue. Muting also stops the
// music.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	if muted {
		p.stopMusic()
	}
}

// Muted reports whether the player is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Play starts cue at volume (0..1).
func (p *Player) Play(cue core.Cue, volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted || volume <= 0 {
		return
	}
	s := Streamer(cue, volume)
	if s == nil {
		p.logger.Warn("unknown cue", "cue", cue)
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// StartMusic loops the menu theme at volume until StopMusic. It does nothing
// while muted, without a speaker or when the music already plays.
func (p *Player) StartMusic(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted || volume <= 0 || p.music != nil {
		return
	}
	p.music = NewSequencer(MenuTheme, sampleRate)

	speaker.Lock()
	p.mixer.Add(newVolume(p.music, volume))
	speaker.Unlock()
}

// StopMusic ends the loop started by StartMusic.
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopMusic()
}

func (p *Player) stopMusic() {
	if p.music == nil {
		return
	}
	p.music.Stop()
	p.music = nil
}

// MusicPlaying reports whether the menu theme is looping.
func (p *Player) MusicPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.music != nil
}

// Close stops every playing cue and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopMusic()
	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.mixer.Clear()
	p.initialized = false
}

// Open initializes a player unless muted. Audio failures are not fatal: the
// returned player stays silent and the error is logged.
func Open(muted bool, logger *log.Logger) *Player {
	p := NewPlayer(logger)
	p.SetMuted(muted)
	if muted {
		return p
	}
	if err := p.Initialize(); err != nil {
		p.logger.Warn("audio disabled", "err", err)
	}
	return p
}
