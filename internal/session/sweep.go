package session

// sweep reverts every timed state whose deadline has passed.
func (s *Session) sweep() {
	for _, b := range s.balls {
		if b.Frozen != nil && b.Frozen.Until <= s.now {
			s.world.SetFixed(b.Entity, false)
			s.world.SetVelocity(b.Entity, b.Frozen.OriginalVelocity)
			b.Frozen = nil
		}
		if b.Cooldown != nil && b.Cooldown.Until <= s.now {
			b.Cooldown = nil
		}
	}

	for _, a := range s.areas {
		if a.Resize != nil && a.Resize.Until <= s.now {
			a.Radius = a.Resize.OriginalRadius
			s.world.SetAreaRadius(a.Entity, a.Radius)
			a.Resize = nil
		}
		if a.Flash != nil && a.Flash.Until <= s.now {
			a.Flash = nil
		}
	}
}
