package core

// EntityID identifies a body in the physics world. Zero is never issued.
type EntityID uint64

// Collision reports that two bodies started touching during a physics step.
// The pair is unordered.
type Collision struct {
	A, B EntityID
}

// Cue is a one-shot sound the rules engine asks the audio layer to play.
type Cue int

const (
	CueHit Cue = iota // Generic bounce
	CueLaunch
	CueGood
	CueBad
	CueUp
	CueFreeze
	CueBounceBackwards
	CueDestroy
	CueDuplicate
	CueResize
	CueExtremeBounce
	CueExtraPoints
	CueCount // Sentinel for counting cues
)

// String returns the name of the cue.
func (c Cue) String() string {
	switch c {
	case CueHit:
		return "hit"
	case CueLaunch:
		return "launch"
	case CueGood:
		return "good"
	case CueBad:
		return "bad"
	case CueUp:
		return "up"
	case CueFreeze:
		return "freeze"
	case CueBounceBackwards:
		return "bounce-backwards"
	case CueDestroy:
		return "destroy"
	case CueDuplicate:
		return "duplicate"
	case CueResize:
		return "resize"
	case CueExtremeBounce:
		return "extreme-bounce"
	case CueExtraPoints:
		return "extra-points"
	default:
		return "unknown"
	}
}
