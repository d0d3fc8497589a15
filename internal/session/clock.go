package session

import (
	"fmt"
	"time"
)

// finalCountdown is the remaining time below which FormatRemaining shows
// tenths of a second.
const finalCountdown = 5 * time.Second

// Clock tracks the level deadline in simulated time.
type Clock struct {
	deadline time.Duration
	armed    bool
}

// Arm sets the deadline to now + d.
func (c *Clock) Arm(now, d time.Duration) {
	c.deadline = now + d
	c.armed = true
}

// Remaining returns the time left until the deadline, never negative.
func (c *Clock) Remaining(now time.Duration) time.Duration {
	if !c.armed || now >= c.deadline {
		return 0
	}
	return c.deadline - now
}

// Expired reports whether the deadline has been reached.
func (c *Clock) Expired(now time.Duration) bool {
	return c.armed && now >= c.deadline
}

// FormatRemaining renders the countdown: whole seconds (rounded up), or
// tenths of a second during the final five seconds.
func (c *Clock) FormatRemaining(now time.Duration) string {
	r := c.Remaining(now)
	if r < finalCountdown {
		return fmt.Sprintf("%.1f", r.Seconds())
	}
	secs := (r + time.Second - 1) / time.Second
	return fmt.Sprintf("%d", int64(secs))
}
