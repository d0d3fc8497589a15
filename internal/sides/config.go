package sides

import "fmt"

// Config is the total mapping from every side ID to its side type.
type Config struct {
	types [Count]Type
}

// DefaultConfig returns the configuration a new campaign starts with:
// side 0 speeds balls up, the others do nothing special.
func DefaultConfig() *Config {
	return NewConfig([Count]Type{SpeedUp, NothingSpecial, NothingSpecial, NothingSpecial})
}

// NewConfig creates a configuration from an explicit assignment.
// Panics if the assignment breaks the exclusivity rule.
func NewConfig(types [Count]Type) *Config {
	c := &Config{types: types}
	for i, t := range types {
		if !IsSelectable(t, ID(i), c) {
			panic(fmt.Sprintf("sides: %s assigned to more than one side", t.Name()))
		}
	}
	return c
}

// Get returns the side type configured for id.
// Panics on an id outside [0, Count): the configuration is always total.
func (c *Config) Get(id ID) Type {
	if id < 0 || id >= Count {
		panic(fmt.Sprintf("sides: no configuration for side %d", id))
	}
	return c.types[id]
}

// Configure assigns t to id. It is rejected (returns false, no change) when t
// is exclusive and already held by a different side.
func (c *Config) Configure(id ID, t Type) bool {
	if !IsSelectable(t, id, c) {
		return false
	}
	c.types[id] = t
	return true
}

// Types returns a copy of the full assignment, indexed by side ID.
func (c *Config) Types() [Count]Type {
	return c.types
}

// Clone returns an independent copy of the configuration.
func (c *Config) Clone() *Config {
	return &Config{types: c.types}
}

// IsSelectable reports whether t may be chosen for side id given the current
// configuration: true if t allows multiples or no other side holds it.
func IsSelectable(t Type, id ID, cfg *Config) bool {
	if t.MultipleAllowed() {
		return true
	}
	for i, other := range cfg.types {
		if ID(i) == id {
			continue
		}
		if other == t {
			return false
		}
	}
	return true
}
