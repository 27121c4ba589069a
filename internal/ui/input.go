package ui

import "github.com/quizhost/buzzkit/internal/game"

// keySource adapts terminal key presses to the sampler's level
// interface. A key press has no release event, so each press latches
// until the sampler finishes its next scan.
//
// No locking: presses land in Update and scans run on the tick, both on
// the bubbletea event loop.
type keySource struct {
	down map[game.Button]bool
}

func newKeySource() *keySource {
	return &keySource{down: make(map[game.Button]bool)}
}

// Press latches a button for the next scan.
func (s *keySource) Press(b game.Button) { s.down[b] = true }

// Pressed implements game.Source.
func (s *keySource) Pressed(b game.Button) bool { return s.down[b] }

// EndScan implements game.ScanEnder, dropping all latches.
func (s *keySource) EndScan() { clear(s.down) }
