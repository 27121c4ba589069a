package game

import "fmt"

// Phase is the round state. The host's wait for a verdict is modeled as
// an explicit phase rather than a blocking call, so the console (and any
// future timeout) can observe it.
type Phase int

const (
	// PhaseIdle means no one holds the buzz; active players may buzz in.
	PhaseIdle Phase = iota
	// PhaseJudging means one player holds the buzz and every buzz button
	// is locked out until the host rules on the answer.
	PhaseJudging
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseJudging:
		return "judging"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Verdict is the host's ruling on a buzzed player's answer.
type Verdict int

const (
	VerdictCorrect Verdict = iota
	VerdictWrong
)

func (v Verdict) String() string {
	switch v {
	case VerdictCorrect:
		return "correct"
	case VerdictWrong:
		return "wrong"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Rules holds the host-configurable behavior switches.
type Rules struct {
	// ResetAbortsRound lets a reset cancel a round that is awaiting
	// judgment (no score change, everyone reactivated). Off by default:
	// historically the reset button is dead while a buzz is pending and
	// the host must rule first.
	ResetAbortsRound bool
}

// Machine is the round state machine. It arbitrates the first buzz,
// enforces the lockout while a round is being judged, applies verdicts
// to the ledger, and handles global resets.
//
// Invariants it maintains:
//   - at most one player holds the buzz at any time;
//   - only an active player can take the buzz;
//   - a scan resolves at most one action, decided by scan order.
type Machine struct {
	phase  Phase
	buzzed int
	ledger *Ledger
	rules  Rules
}

// NewMachine creates an idle machine for n players, all active with
// score zero.
func NewMachine(n int, rules Rules) *Machine {
	return &Machine{
		phase:  PhaseIdle,
		buzzed: -1,
		ledger: NewLedger(n),
		rules:  rules,
	}
}

// Phase returns the current round phase.
func (m *Machine) Phase() Phase { return m.phase }

// Buzzed returns the player holding the buzz, or false when idle.
func (m *Machine) Buzzed() (int, bool) {
	if m.phase != PhaseJudging {
		return 0, false
	}
	return m.buzzed, true
}

// Players returns the player count.
func (m *Machine) Players() int { return m.ledger.Len() }

// Snapshot returns the current scores and eligibility, ordered by index.
func (m *Machine) Snapshot() []PlayerScore { return m.ledger.Snapshot() }

// Indicators returns the lamp state for every player: the active roster
// while idle, and only the buzzed player while judging.
func (m *Machine) Indicators() []bool {
	lit := make([]bool, m.ledger.Len())
	for i := range lit {
		if m.phase == PhaseJudging {
			lit[i] = i == m.buzzed
		} else {
			lit[i] = m.ledger.Active(i)
		}
	}
	return lit
}

// HandleScan feeds one scan's press edges to the machine. Edges must be
// in scan-priority order (see ScanOrder); the first edge that resolves
// to an action wins and the rest of the scan is discarded. Edges that
// are no-ops in the current phase (a locked-out player buzzing, the
// wrong button while idle) are skipped and the scan continues.
//
// The returned events describe what happened; nil means the scan changed
// nothing.
func (m *Machine) HandleScan(edges []Button) []Event {
	for _, b := range edges {
		if evs := m.handleEdge(b); evs != nil {
			return evs
		}
	}
	return nil
}

func (m *Machine) handleEdge(b Button) []Event {
	switch m.phase {
	case PhaseIdle:
		return m.handleIdleEdge(b)
	case PhaseJudging:
		return m.handleJudgingEdge(b)
	}
	return nil
}

func (m *Machine) handleIdleEdge(b Button) []Event {
	// The correct button doubles as a reset while no round is pending.
	if b == ButtonReset || b == ButtonCorrect {
		m.ledger.ReactivateAll()
		return []Event{ResetEvent{}}
	}
	if p, ok := b.Player(); ok && m.ledger.Active(p) {
		m.phase = PhaseJudging
		m.buzzed = p
		return []Event{BuzzedEvent{Player: p}}
	}
	return nil
}

func (m *Machine) handleJudgingEdge(b Button) []Event {
	switch b {
	case ButtonCorrect:
		return m.judge(VerdictCorrect)
	case ButtonWrong:
		return m.judge(VerdictWrong)
	case ButtonReset:
		if !m.rules.ResetAbortsRound {
			return nil
		}
		p := m.buzzed
		m.phase = PhaseIdle
		m.buzzed = -1
		m.ledger.ReactivateAll()
		return []Event{RoundAbortedEvent{Player: p}, ResetEvent{}}
	}
	// Player buttons are locked out until the verdict lands.
	return nil
}

func (m *Machine) judge(v Verdict) []Event {
	p := m.buzzed
	switch v {
	case VerdictCorrect:
		m.ledger.AdjustScore(p, 1)
		m.ledger.ReactivateAll()
	case VerdictWrong:
		m.ledger.AdjustScore(p, -1)
		m.ledger.Deactivate(p)
	}
	m.phase = PhaseIdle
	m.buzzed = -1
	return []Event{
		JudgedEvent{Player: p, Verdict: v},
		ScoreReportEvent{Scores: m.ledger.Snapshot()},
	}
}
