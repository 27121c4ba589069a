package game

// PlayerScore is one row of a score snapshot.
type PlayerScore struct {
	Player int
	Score  int
	Active bool
}

// Ledger tracks each player's cumulative score and whether they are
// eligible to buzz. Scores are unbounded signed integers; a wrong answer
// can push a score negative and nothing clamps it.
//
// The ledger has no locking: it is owned by the Machine and mutated only
// on the scan-loop goroutine.
type Ledger struct {
	active []bool
	scores []int
}

// NewLedger creates a ledger for n players, all active with score zero.
func NewLedger(n int) *Ledger {
	l := &Ledger{
		active: make([]bool, n),
		scores: make([]int, n),
	}
	l.ReactivateAll()
	return l
}

// Len returns the player count.
func (l *Ledger) Len() int { return len(l.active) }

// Active reports whether player i may buzz.
func (l *Ledger) Active(i int) bool { return l.active[i] }

// Score returns player i's cumulative score.
func (l *Ledger) Score(i int) int { return l.scores[i] }

// Reactivate makes player i eligible to buzz again.
func (l *Ledger) Reactivate(i int) { l.active[i] = true }

// Deactivate locks player i out until the next reactivation.
func (l *Ledger) Deactivate(i int) { l.active[i] = false }

// AdjustScore adds delta to player i's score.
func (l *Ledger) AdjustScore(i, delta int) { l.scores[i] += delta }

// ReactivateAll makes every player eligible to buzz.
func (l *Ledger) ReactivateAll() {
	for i := range l.active {
		l.active[i] = true
	}
}

// Snapshot returns every player's score and eligibility, ordered by
// player index. The result shares no memory with the ledger.
func (l *Ledger) Snapshot() []PlayerScore {
	out := make([]PlayerScore, len(l.active))
	for i := range out {
		out[i] = PlayerScore{Player: i, Score: l.scores[i], Active: l.active[i]}
	}
	return out
}
