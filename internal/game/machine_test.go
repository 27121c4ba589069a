package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scores(m *Machine) []int {
	out := make([]int, m.Players())
	for _, ps := range m.Snapshot() {
		out[ps.Player] = ps.Score
	}
	return out
}

func actives(m *Machine) []bool {
	out := make([]bool, m.Players())
	for _, ps := range m.Snapshot() {
		out[ps.Player] = ps.Active
	}
	return out
}

func TestMachine_StartsIdleAllActive(t *testing.T) {
	m := NewMachine(4, Rules{})

	assert.Equal(t, PhaseIdle, m.Phase())
	_, buzzed := m.Buzzed()
	assert.False(t, buzzed)
	assert.Equal(t, []bool{true, true, true, true}, actives(m))
}

func TestMachine_FirstActivePlayerTakesBuzz(t *testing.T) {
	m := NewMachine(4, Rules{})

	evs := m.HandleScan([]Button{PlayerButton(2)})

	require.Equal(t, []Event{BuzzedEvent{Player: 2}}, evs)
	assert.Equal(t, PhaseJudging, m.Phase())
	p, ok := m.Buzzed()
	require.True(t, ok)
	assert.Equal(t, 2, p)
}

func TestMachine_TieBreak_LowestIndexWins(t *testing.T) {
	// Players 0 and 2 edge in the same scan; scan order hands the
	// machine player 0 first, so player 0 takes the buzz.
	m := NewMachine(4, Rules{})

	evs := m.HandleScan([]Button{PlayerButton(0), PlayerButton(2)})

	require.Equal(t, []Event{BuzzedEvent{Player: 0}}, evs)
	p, _ := m.Buzzed()
	assert.Equal(t, 0, p)
}

func TestMachine_InactivePlayerSkipped_ScanContinues(t *testing.T) {
	m := NewMachine(4, Rules{})
	m.HandleScan([]Button{PlayerButton(0)})
	m.HandleScan([]Button{ButtonWrong}) // locks out player 0

	evs := m.HandleScan([]Button{PlayerButton(0), PlayerButton(3)})

	require.Equal(t, []Event{BuzzedEvent{Player: 3}}, evs,
		"a locked-out player's edge must not consume the scan")
}

func TestMachine_LockoutDuringJudgment(t *testing.T) {
	m := NewMachine(4, Rules{})
	m.HandleScan([]Button{PlayerButton(1)})

	evs := m.HandleScan([]Button{PlayerButton(2)})

	assert.Nil(t, evs, "buzzing is locked for everyone while judging")
	p, _ := m.Buzzed()
	assert.Equal(t, 1, p)
}

func TestMachine_WrongVerdict(t *testing.T) {
	m := NewMachine(4, Rules{})
	m.HandleScan([]Button{PlayerButton(2)})

	evs := m.HandleScan([]Button{ButtonWrong})

	require.Len(t, evs, 2)
	assert.Equal(t, JudgedEvent{Player: 2, Verdict: VerdictWrong}, evs[0])
	report, ok := evs[1].(ScoreReportEvent)
	require.True(t, ok)
	assert.Equal(t, -1, report.Scores[2].Score)

	assert.Equal(t, PhaseIdle, m.Phase())
	assert.Equal(t, []int{0, 0, -1, 0}, scores(m))
	assert.Equal(t, []bool{true, true, false, true}, actives(m))
}

func TestMachine_CorrectVerdictReactivatesAll(t *testing.T) {
	// Continues the scenario above: player 2 answered wrong, then
	// player 1 buzzes and answers right — everyone comes back.
	m := NewMachine(4, Rules{})
	m.HandleScan([]Button{PlayerButton(2)})
	m.HandleScan([]Button{ButtonWrong})

	m.HandleScan([]Button{PlayerButton(1)})
	evs := m.HandleScan([]Button{ButtonCorrect})

	require.Len(t, evs, 2)
	assert.Equal(t, JudgedEvent{Player: 1, Verdict: VerdictCorrect}, evs[0])

	assert.Equal(t, PhaseIdle, m.Phase())
	assert.Equal(t, []int{0, 1, -1, 0}, scores(m))
	assert.Equal(t, []bool{true, true, true, true}, actives(m))
}

func TestMachine_CorrectAndWrongSameScan_CorrectWins(t *testing.T) {
	// Both judgment buttons in one scan resolve by scan priority:
	// correct outranks wrong. A documented tie-break, not an accident.
	m := NewMachine(4, Rules{})
	m.HandleScan([]Button{PlayerButton(0)})

	evs := m.HandleScan([]Button{ButtonCorrect, ButtonWrong})

	require.NotEmpty(t, evs)
	assert.Equal(t, JudgedEvent{Player: 0, Verdict: VerdictCorrect}, evs[0])
	assert.Equal(t, []int{1, 0, 0, 0}, scores(m))
}

func TestMachine_ResetWhileIdle_Idempotent(t *testing.T) {
	m := NewMachine(4, Rules{})
	m.HandleScan([]Button{PlayerButton(3)})
	m.HandleScan([]Button{ButtonWrong}) // player 3 locked out, score -1

	for range 3 {
		evs := m.HandleScan([]Button{ButtonReset})
		require.Equal(t, []Event{ResetEvent{}}, evs)
		assert.Equal(t, PhaseIdle, m.Phase())
		assert.Equal(t, []bool{true, true, true, true}, actives(m))
		assert.Equal(t, []int{0, 0, 0, -1}, scores(m), "reset never touches scores")
	}
}

func TestMachine_CorrectButtonResetsWhileIdle(t *testing.T) {
	m := NewMachine(4, Rules{})
	m.HandleScan([]Button{PlayerButton(1)})
	m.HandleScan([]Button{ButtonWrong})

	evs := m.HandleScan([]Button{ButtonCorrect})

	require.Equal(t, []Event{ResetEvent{}}, evs,
		"correct doubles as reset when no buzz is pending")
	assert.Equal(t, []bool{true, true, true, true}, actives(m))
	assert.Equal(t, []int{0, -1, 0, 0}, scores(m))
}

func TestMachine_WrongButtonIgnoredWhileIdle(t *testing.T) {
	m := NewMachine(4, Rules{})

	evs := m.HandleScan([]Button{ButtonWrong})

	assert.Nil(t, evs)
	assert.Equal(t, PhaseIdle, m.Phase())
}

func TestMachine_ResetIgnoredDuringJudgment_ByDefault(t *testing.T) {
	m := NewMachine(4, Rules{})
	m.HandleScan([]Button{PlayerButton(3)})

	evs := m.HandleScan([]Button{ButtonReset})

	assert.Nil(t, evs, "reset is dead while a buzz awaits judgment")
	assert.Equal(t, PhaseJudging, m.Phase())
	p, _ := m.Buzzed()
	assert.Equal(t, 3, p)
}

func TestMachine_ResetAbortsRound_WhenRuleEnabled(t *testing.T) {
	m := NewMachine(4, Rules{ResetAbortsRound: true})
	m.HandleScan([]Button{PlayerButton(2)})
	m.HandleScan([]Button{ButtonWrong}) // lock someone out first
	m.HandleScan([]Button{PlayerButton(1)})

	evs := m.HandleScan([]Button{ButtonReset})

	require.Equal(t, []Event{RoundAbortedEvent{Player: 1}, ResetEvent{}}, evs)
	assert.Equal(t, PhaseIdle, m.Phase())
	assert.Equal(t, []int{0, 0, -1, 0}, scores(m), "an abort never scores")
	assert.Equal(t, []bool{true, true, true, true}, actives(m))
}

func TestMachine_AllLockedOut_NoBuzzPossible(t *testing.T) {
	m := NewMachine(2, Rules{})
	for i := range 2 {
		m.HandleScan([]Button{PlayerButton(i)})
		m.HandleScan([]Button{ButtonWrong})
	}

	evs := m.HandleScan([]Button{PlayerButton(0), PlayerButton(1)})

	assert.Nil(t, evs, "a fully locked-out roster stays idle until reset")
	assert.Equal(t, PhaseIdle, m.Phase())

	m.HandleScan([]Button{ButtonReset})
	evs = m.HandleScan([]Button{PlayerButton(1)})
	require.Equal(t, []Event{BuzzedEvent{Player: 1}}, evs)
}

func TestMachine_Indicators(t *testing.T) {
	m := NewMachine(3, Rules{})
	m.HandleScan([]Button{PlayerButton(0)})
	m.HandleScan([]Button{ButtonWrong})

	assert.Equal(t, []bool{false, true, true}, m.Indicators(),
		"idle shows the active roster")

	m.HandleScan([]Button{PlayerButton(2)})
	assert.Equal(t, []bool{false, false, true}, m.Indicators(),
		"judging spotlights only the buzzed player")
}
