package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalScores_LastJudgmentPerSeatWins(t *testing.T) {
	judgments := []Judgment{
		{Seq: 1, Player: 2, Verdict: "wrong", ScoreAfter: -1},
		{Seq: 2, Player: 1, Verdict: "correct", ScoreAfter: 1},
		{Seq: 3, Player: 2, Verdict: "correct", ScoreAfter: 0},
	}

	assert.Equal(t, []int{0, 1, 0, 0}, FinalScores(4, judgments))
}

func TestFinalScores_EmptyMatch(t *testing.T) {
	assert.Equal(t, []int{0, 0, 0}, FinalScores(3, nil))
}

func TestFinalScores_IgnoresOutOfRangeSeats(t *testing.T) {
	// A journal written by a larger roster must not panic a smaller read.
	judgments := []Judgment{{Seq: 1, Player: 6, Verdict: "correct", ScoreAfter: 1}}

	assert.Equal(t, []int{0, 0}, FinalScores(2, judgments))
}
