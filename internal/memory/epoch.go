package memory

import "sync/atomic"

const inactive = ^uint64(0)

// Epoch is a monotonically increasing counter owned by whoever coordinates
// reclamation. It is deliberately not process-global.
type Epoch struct {
	n atomic.Uint64
}

func (e *Epoch) Current() uint64 { return e.n.Load() }
func (e *Epoch) Advance() uint64 { return e.n.Add(1) }

// ReaderEpoch marks when a reader entered a read-side section. A reader
// holding snapshot references must stay inside Enter/Exit for as long as
// it dereferences them.
type ReaderEpoch struct {
	epoch atomic.Uint64
}

func (r *ReaderEpoch) Enter(e *Epoch) {
	r.epoch.Store(e.Current())
}

func (r *ReaderEpoch) Exit() {
	r.epoch.Store(inactive)
}

func (r *ReaderEpoch) Value() uint64 {
	return r.epoch.Load()
}

// Reclaimable is implemented by objects that can be parked in a RetireRing
// and later recycled.
type Reclaimable interface {
	RetireEpoch() uint64
	SetRetireEpoch(v uint64)
}

// ReclaimablePool is the only requirement reclamation places on a pool.
type ReclaimablePool interface {
	PutAny(any)
}

// Retire stamps the object with the current epoch and parks it on the ring.
// Returns false when the ring is full; the caller then simply drops the
// object and lets the garbage collector take it.
func Retire(ring *RetireRing, e *Epoch, obj Reclaimable) bool {
	obj.SetRetireEpoch(e.Current())
	return ring.Enqueue(obj)
}

// AdvanceEpochAndReclaim advances the epoch and recycles every retired
// object no active reader can still observe. Retire epochs are
// nondecreasing along the ring, so the scan stops at the first entry that
// is not yet safe.
func AdvanceEpochAndReclaim(
	e *Epoch,
	ring *RetireRing,
	pool ReclaimablePool,
	readers ...*ReaderEpoch,
) int {
	e.Advance()
	min := minReaderEpoch(readers...)

	reclaimed := 0
	for {
		obj := ring.Dequeue()
		if obj == nil {
			return reclaimed
		}

		r := obj.(Reclaimable)
		if min == inactive || r.RetireEpoch() < min {
			pool.PutAny(obj)
			reclaimed++
			continue
		}

		// Not safe yet; neither is anything behind it.
		_ = ring.Enqueue(obj)
		return reclaimed
	}
}

func minReaderEpoch(rs ...*ReaderEpoch) uint64 {
	min := inactive
	for _, r := range rs {
		if r == nil {
			continue
		}
		if v := r.Value(); v < min {
			min = v
		}
	}
	return min
}
