package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/side-effects/internal/core"
)

// holdTicks is how long a key press keeps its action held. Terminals only
// report key repeats, never releases, so a held key shows up as a stream of
// presses with gaps between them.
const holdTicks = 9

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w":
		return core.ActionUp, false
	case "s":
		return core.ActionDown, false
	case "a":
		return core.ActionLeft, false
	case "d":
		return core.ActionRight, false
	case "left", "j":
		return core.ActionRotateCCW, false
	case "right", "l":
		return core.ActionRotateCW, false
	case "enter", " ":
		return core.ActionConfirm, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// isHeld reports whether a is a continuous action that stays held between
// key repeats.
func isHeld(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight,
		core.ActionRotateCW, core.ActionRotateCCW:
		return true
	}
	return false
}

// heldInput turns key presses into per-tick input frames.
type heldInput struct {
	until map[core.Action]int // Tick until which a continuous action is held
	once  core.InputFrame     // One-shot actions for the next tick
	tick  int
}

func newHeldInput() *heldInput {
	return &heldInput{
		until: make(map[core.Action]int),
		once:  core.NewInputFrame(),
	}
}

// Press records an action.
func (h *heldInput) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if isHeld(a) {
		h.until[a] = h.tick + holdTicks
		return
	}
	h.once.Set(a)
}

// Frame returns the input for the next tick and advances the tick counter.
func (h *heldInput) Frame() core.InputFrame {
	frame := h.once
	h.once = core.NewInputFrame()
	for a, until := range h.until {
		if until > h.tick {
			frame.Set(a)
		} else {
			delete(h.until, a)
		}
	}
	h.tick++
	return frame
}

// Reset drops every held and pending action.
func (h *heldInput) Reset() {
	clear(h.until)
	h.once = core.NewInputFrame()
}
