package engine

import "sync/atomic"

// Sequencer issues strictly increasing order ids, never reused, with no
// ordering relationship to ticker or side. It is the only fully shared
// resource in the engine.
type Sequencer struct {
	next atomic.Uint64
}

// Next returns the next id. The first id issued is 1.
func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last issued id.
func (s *Sequencer) Current() uint64 {
	return s.next.Load()
}
