package game

// Event is a notification emitted by the Machine for presentation sinks
// (console, sound, journal, log). Events carry value snapshots only;
// sinks never receive references into live machine state.
type Event interface {
	event()
}

// BuzzedEvent fires when a player wins the buzz for the current round.
type BuzzedEvent struct {
	Player int
}

// JudgedEvent fires when the host resolves the buzzed player's answer.
type JudgedEvent struct {
	Player  int
	Verdict Verdict
}

// ResetEvent fires on a global reset: every player reactivated, no
// round in progress. Scores are untouched.
type ResetEvent struct{}

// RoundAbortedEvent fires when a reset cancels a round that was still
// awaiting judgment (only possible with Rules.ResetAbortsRound). The
// buzzed player's score is untouched.
type RoundAbortedEvent struct {
	Player int
}

// ScoreReportEvent carries an ordered snapshot of every player's score
// after a judgment has been applied.
type ScoreReportEvent struct {
	Scores []PlayerScore
}

func (BuzzedEvent) event()       {}
func (JudgedEvent) event()       {}
func (ResetEvent) event()        {}
func (RoundAbortedEvent) event() {}
func (ScoreReportEvent) event()  {}
