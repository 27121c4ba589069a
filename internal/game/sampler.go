package game

// Source exposes the instantaneous level of every button. Active-low
// wiring, key latching, and any other physical quirks are resolved
// behind this interface: true always means "held down right now".
type Source interface {
	Pressed(Button) bool
}

// ScanEnder is implemented by sources that latch momentary inputs (a
// terminal key press has no release event). The sampler calls EndScan
// after reading every level so the source can drop its latches.
type ScanEnder interface {
	EndScan()
}

// Sampler turns button levels into press edges. It remembers the level
// seen on the previous scan and reports a button only on its rising
// edge, so a held button debounces to exactly one press. Edges come
// back in scan-priority order, which is what makes simultaneous presses
// resolve deterministically.
type Sampler struct {
	src   Source
	order []Button
	prev  map[Button]bool
}

// NewSampler creates a sampler for an n-player console.
func NewSampler(src Source, n int) *Sampler {
	return &Sampler{
		src:   src,
		order: ScanOrder(n),
		prev:  make(map[Button]bool, n+3),
	}
}

// Scan samples every button once and returns the press edges since the
// previous scan, in priority order.
func (s *Sampler) Scan() []Button {
	var edges []Button
	for _, b := range s.order {
		level := s.src.Pressed(b)
		if level && !s.prev[b] {
			edges = append(edges, b)
		}
		s.prev[b] = level
	}
	if ender, ok := s.src.(ScanEnder); ok {
		ender.EndScan()
	}
	return edges
}
