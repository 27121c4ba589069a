// Package game contains the buzzer round logic: the score ledger, the
// round state machine, and the input edge detector. It is pure — no
// terminal, sound, or database code lives here. All mutation happens on
// the single goroutine that drives the scan loop.
package game

import "fmt"

// Button identifies one physical input on the console.
//
// The zero-and-up layout keeps the arbitration priority order (reset,
// correct, wrong, players ascending) identical to the numeric order, so
// ScanOrder is just a counted sequence.
type Button int

const (
	// ButtonReset is the dedicated global-reset button.
	ButtonReset Button = iota
	// ButtonCorrect is the host's "answer was right" button. While no
	// round is in progress it doubles as a global reset.
	ButtonCorrect
	// ButtonWrong is the host's "answer was wrong" button.
	ButtonWrong

	buttonPlayerBase
)

// PlayerButton returns the buzz button for the player at index i.
func PlayerButton(i int) Button {
	return buttonPlayerBase + Button(i)
}

// Player reports the player index for a buzz button, or false for the
// reset/judgment buttons.
func (b Button) Player() (int, bool) {
	if b < buttonPlayerBase {
		return 0, false
	}
	return int(b - buttonPlayerBase), true
}

func (b Button) String() string {
	switch b {
	case ButtonReset:
		return "reset"
	case ButtonCorrect:
		return "correct"
	case ButtonWrong:
		return "wrong"
	default:
		return fmt.Sprintf("player-%d", int(b-buttonPlayerBase))
	}
}

// ScanOrder returns every button of an n-player console in arbitration
// priority order. The order is the tie-break rule: when several buttons
// edge in the same scan, the earliest entry wins. Host buttons outrank
// players; players tie-break by ascending index.
func ScanOrder(n int) []Button {
	order := make([]Button, 0, n+3)
	for b := ButtonReset; b < buttonPlayerBase; b++ {
		order = append(order, b)
	}
	for i := range n {
		order = append(order, PlayerButton(i))
	}
	return order
}
