// Package sides defines the effect types a player-shape side can carry, the
// per-side configuration with its exclusivity rule, and the set of side
// types the player has unlocked so far.
package sides

import (
	"fmt"
	"strings"
)

// Count is the number of sides of the player shape.
const Count = 4

// ID identifies one side of the player shape, in [0, Count).
type ID int

// Opposite returns the side geometrically across from id.
func (id ID) Opposite() ID {
	return (id + Count/2) % Count
}

// Type is the gameplay effect carried by a side.
type Type int

const (
	NothingSpecial Type = iota
	SpeedUp
	FreezeOthers
	BounceBackwards
	Destroy
	Duplicate
	ResizeScoreAreas
	ExtremeBounce
	ExtraPoints
	typeCount // Sentinel for counting types
)

// All returns every side type in declaration order.
func All() []Type {
	all := make([]Type, 0, typeCount)
	for t := NothingSpecial; t < typeCount; t++ {
		all = append(all, t)
	}
	return all
}

// Name returns the display name of the side type.
func (t Type) Name() string {
	switch t {
	case NothingSpecial:
		return "Nothing Special"
	case SpeedUp:
		return "Speed Up"
	case FreezeOthers:
		return "Freeze Others"
	case BounceBackwards:
		return "Bounce Backwards"
	case Destroy:
		return "Destroy"
	case Duplicate:
		return "Duplicate"
	case ResizeScoreAreas:
		return "Resize Score Areas"
	case ExtremeBounce:
		return "Extreme Bounce"
	case ExtraPoints:
		return "Extra Points"
	default:
		return "Unknown"
	}
}

// String implements fmt.Stringer.
func (t Type) String() string {
	return t.Name()
}

// Description explains what the side does to a ball that hits it.
func (t Type) Description() string {
	switch t {
	case NothingSpecial:
		return "Balls bounce off this side normally."
	case SpeedUp:
		return "Balls bounce off this side faster than they hit it."
	case FreezeOthers:
		return "Freezes every other ball in place for a few seconds."
	case BounceBackwards:
		return "Sends the ball flying out of the opposite side."
	case Destroy:
		return "Destroys the ball."
	case Duplicate:
		return "Splits the ball into two."
	case ResizeScoreAreas:
		return "Grows the matching score area and shrinks the others for a while. Wrong hits are not penalized meanwhile."
	case ExtremeBounce:
		return "Balls bounce off this side much, much faster."
	case ExtraPoints:
		return "Makes the ball worth an extra point."
	default:
		return ""
	}
}

// MultipleAllowed reports whether more than one side may carry this type.
func (t Type) MultipleAllowed() bool {
	return t == NothingSpecial
}

// Restitution is the bounciness coefficient the physics world uses for a
// side of this type.
func (t Type) Restitution() float64 {
	switch t {
	case SpeedUp:
		return 1.5
	case ExtremeBounce:
		return 3.0
	case FreezeOthers, Destroy, Duplicate, ResizeScoreAreas, ExtraPoints:
		return 0.9
	case BounceBackwards:
		return 0.0
	default:
		return 0.8
	}
}

// ParseType converts a name (case and separator insensitive, e.g.
// "freeze-others" or "FreezeOthers") to a Type.
func ParseType(s string) (Type, error) {
	norm := normalizeName(s)
	for _, t := range All() {
		if normalizeName(t.Name()) == norm {
			return t, nil
		}
	}
	return NothingSpecial, fmt.Errorf("sides: unknown side type %q", s)
}

func normalizeName(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// MarshalText encodes the type by name so saved progress stays readable.
func (t Type) MarshalText() ([]byte, error) {
	if t < NothingSpecial || t >= typeCount {
		return nil, fmt.Errorf("sides: invalid side type %d", int(t))
	}
	return []byte(t.Name()), nil
}

// UnmarshalText decodes a type from its name.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
