package ledger

// Ledger owns the running score of exactly one active session.
// It is never persisted directly and accepts negative totals.
type Ledger struct {
	score int
}

// New creates a ledger at zero
func New() *Ledger {
	return &Ledger{}
}

// Apply adds delta to the score and returns the new value
func (l *Ledger) Apply(delta int) int {
	l.score += delta
	return l.score
}

// Current returns the score
func (l *Ledger) Current() int {
	return l.score
}

// Reset sets the score back to zero
func (l *Ledger) Reset() {
	l.score = 0
}
