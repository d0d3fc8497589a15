package sides

// Unlocked is the ordered, monotonically growing set of side types the
// player may configure.
type Unlocked struct {
	types []Type
}

// DefaultUnlocked returns the side types available from the start.
func DefaultUnlocked() *Unlocked {
	return NewUnlocked(NothingSpecial, SpeedUp)
}

// NewUnlocked creates a set holding the given types.
func NewUnlocked(types ...Type) *Unlocked {
	u := &Unlocked{}
	u.Unlock(types...)
	return u
}

// Unlock adds types to the set. Types already present are skipped.
// Returns the types that were newly added.
func (u *Unlocked) Unlock(types ...Type) []Type {
	var added []Type
	for _, t := range types {
		if u.Contains(t) {
			continue
		}
		u.types = append(u.types, t)
		added = append(added, t)
	}
	return added
}

// Contains reports whether t has been unlocked.
func (u *Unlocked) Contains(t Type) bool {
	for _, have := range u.types {
		if have == t {
			return true
		}
	}
	return false
}

// List returns the unlocked types in unlock order.
func (u *Unlocked) List() []Type {
	out := make([]Type, len(u.types))
	copy(out, u.types)
	return out
}

// Len returns the number of unlocked types.
func (u *Unlocked) Len() int {
	return len(u.types)
}
