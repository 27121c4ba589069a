// Package history defines the match journal domain: an append-only
// record of matches and the judgments made in them. The journal is
// write-only from the game's point of view — a new match always starts
// from zero, and nothing here feeds back into round state.
package history

import (
	"fmt"
	"time"
)

// Match is one sitting of the console, from launch to quit.
type Match struct {
	ID        string // uuid
	StartedAt time.Time
	Players   int
}

// Judgment is one resolved round within a match. ScoreAfter is the
// buzzed player's cumulative score once the verdict was applied, so a
// match's final tallies can be rebuilt from its last judgment per seat.
type Judgment struct {
	MatchID    string
	Seq        int
	Player     int
	Verdict    string // "correct" or "wrong"
	JudgedAt   time.Time
	ScoreAfter int
}

// Repository persists the journal.
type Repository interface {
	// StartMatch records a new match and returns it with its ID set.
	StartMatch(players int) (Match, error)
	// RecordJudgment appends one resolved round.
	RecordJudgment(j Judgment) error
	// RecentMatches returns up to limit matches, newest first.
	RecentMatches(limit int) ([]Match, error)
	// Judgments returns a match's judgments in sequence order.
	Judgments(matchID string) ([]Judgment, error)
}

// MatchNotFoundError indicates the requested match does not exist.
type MatchNotFoundError struct {
	ID string
}

func (e *MatchNotFoundError) Error() string {
	return fmt.Sprintf("match %s not found", e.ID)
}

// FinalScores rebuilds a match's closing tally from its judgment rows.
// Seats that never faced a verdict stay at zero.
func FinalScores(players int, judgments []Judgment) []int {
	scores := make([]int, players)
	for _, j := range judgments {
		if j.Player >= 0 && j.Player < players {
			scores[j.Player] = j.ScoreAfter
		}
	}
	return scores
}
