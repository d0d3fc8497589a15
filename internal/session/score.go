package session

// Ledger is the running score of one level attempt. It is not clamped and
// may go negative.
type Ledger struct {
	value int
}

// Add changes the score by delta.
func (l *Ledger) Add(delta int) {
	l.value += delta
}

// Value returns the current score.
func (l *Ledger) Value() int {
	return l.value
}

// Reset sets the score back to zero.
func (l *Ledger) Reset() {
	l.value = 0
}

// Meets reports whether the score qualifies for a level's minimum.
func (l *Ledger) Meets(minScore int) bool {
	return l.value >= minScore
}
