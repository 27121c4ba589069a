package game

import (
	"testing"

	"pgregory.net/rapid"
)

// randomScan draws a random (possibly empty) set of pressed buttons and
// returns them in scan-priority order, the way a Sampler would.
func randomScan(t *rapid.T, players int) []Button {
	var edges []Button
	for _, b := range ScanOrder(players) {
		if rapid.Bool().Draw(t, "press-"+b.String()) {
			edges = append(edges, b)
		}
	}
	return edges
}

// TestProperty_AtMostOneBuzzed drives the machine with arbitrary scans
// and checks that the buzz is held by at most one player, and only ever
// while judging.
func TestProperty_AtMostOneBuzzed(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		players := rapid.IntRange(1, 8).Draw(t, "players")
		m := NewMachine(players, Rules{})

		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for range steps {
			m.HandleScan(randomScan(t, players))

			p, held := m.Buzzed()
			switch m.Phase() {
			case PhaseIdle:
				if held {
					t.Fatalf("idle machine reports a buzzed player")
				}
			case PhaseJudging:
				if !held {
					t.Fatalf("judging machine reports no buzzed player")
				}
				if p < 0 || p >= players {
					t.Fatalf("buzzed player %d out of range", p)
				}
			}
		}
	})
}

// TestProperty_OnlyActivePlayersBuzz checks that every BuzzedEvent names
// a player who was eligible at the moment of detection.
func TestProperty_OnlyActivePlayersBuzz(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		players := rapid.IntRange(2, 6).Draw(t, "players")
		m := NewMachine(players, Rules{})

		steps := rapid.IntRange(1, 80).Draw(t, "steps")
		for range steps {
			activeBefore := make([]bool, players)
			for _, ps := range m.Snapshot() {
				activeBefore[ps.Player] = ps.Active
			}

			for _, ev := range m.HandleScan(randomScan(t, players)) {
				if buzz, ok := ev.(BuzzedEvent); ok && !activeBefore[buzz.Player] {
					t.Fatalf("locked-out player %d took the buzz", buzz.Player)
				}
			}
		}
	})
}

// TestProperty_ScoreAccounting checks that every player's score equals
// their correct verdicts minus their wrong verdicts, for any sequence of
// scans, and that a judgment never touches another player's score.
func TestProperty_ScoreAccounting(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		players := rapid.IntRange(1, 6).Draw(t, "players")
		abortRule := rapid.Bool().Draw(t, "resetAbortsRound")
		m := NewMachine(players, Rules{ResetAbortsRound: abortRule})

		correct := make([]int, players)
		wrong := make([]int, players)

		steps := rapid.IntRange(1, 100).Draw(t, "steps")
		for range steps {
			for _, ev := range m.HandleScan(randomScan(t, players)) {
				j, ok := ev.(JudgedEvent)
				if !ok {
					continue
				}
				switch j.Verdict {
				case VerdictCorrect:
					correct[j.Player]++
				case VerdictWrong:
					wrong[j.Player]++
				}
			}

			for _, ps := range m.Snapshot() {
				want := correct[ps.Player] - wrong[ps.Player]
				if ps.Score != want {
					t.Fatalf("player %d score = %d, want %d (correct=%d wrong=%d)",
						ps.Player, ps.Score, want, correct[ps.Player], wrong[ps.Player])
				}
			}
		}
	})
}

// TestProperty_LockoutLaw checks that a player judged wrong stays
// ineligible until some player is judged correct or a reset lands.
func TestProperty_LockoutLaw(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		players := rapid.IntRange(2, 6).Draw(t, "players")
		m := NewMachine(players, Rules{})

		lockedOut := make([]bool, players)

		steps := rapid.IntRange(1, 100).Draw(t, "steps")
		for range steps {
			for _, ev := range m.HandleScan(randomScan(t, players)) {
				switch ev := ev.(type) {
				case JudgedEvent:
					if ev.Verdict == VerdictWrong {
						lockedOut[ev.Player] = true
					} else {
						// A correct verdict for anyone frees everyone.
						for i := range lockedOut {
							lockedOut[i] = false
						}
					}
				case ResetEvent:
					for i := range lockedOut {
						lockedOut[i] = false
					}
				}
			}

			for _, ps := range m.Snapshot() {
				if lockedOut[ps.Player] && ps.Active {
					t.Fatalf("player %d should still be locked out", ps.Player)
				}
				if m.Phase() == PhaseIdle && !lockedOut[ps.Player] && !ps.Active {
					t.Fatalf("player %d locked out without a wrong verdict", ps.Player)
				}
			}
		}
	})
}

// TestProperty_ScanResolvesAtMostOneAction checks that one scan never
// produces two decisive actions (two buzzes, a buzz plus a judgment,
// and so on).
func TestProperty_ScanResolvesAtMostOneAction(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		players := rapid.IntRange(1, 6).Draw(t, "players")
		m := NewMachine(players, Rules{ResetAbortsRound: rapid.Bool().Draw(t, "abort")})

		steps := rapid.IntRange(1, 100).Draw(t, "steps")
		for range steps {
			decisive := 0
			for _, ev := range m.HandleScan(randomScan(t, players)) {
				switch ev.(type) {
				case BuzzedEvent, JudgedEvent, ResetEvent:
					decisive++
				}
			}
			if decisive > 1 {
				t.Fatalf("one scan resolved %d actions", decisive)
			}
		}
	})
}
