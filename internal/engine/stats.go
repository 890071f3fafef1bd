package engine

import "sync/atomic"

// Stats carries the engine's accounting counters. QuantityAccepted and
// QuantityMatched make the conservation property checkable from outside:
// accepted == 2*matched + resting at any quiescent point, with nothing
// lost.
type Stats struct {
	OrdersAccepted   atomic.Uint64
	QuantityAccepted atomic.Int64
	TradesExecuted   atomic.Uint64
	QuantityMatched  atomic.Int64
	MatchPasses      atomic.Uint64
	SealRetries      atomic.Uint64
	OrdersReclaimed  atomic.Uint64
}

// StatsSnapshot is a plain copy of the counters at one point in time.
type StatsSnapshot struct {
	OrdersAccepted   uint64
	QuantityAccepted int64
	TradesExecuted   uint64
	QuantityMatched  int64
	MatchPasses      uint64
	SealRetries      uint64
	OrdersReclaimed  uint64
}

func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		OrdersAccepted:   s.OrdersAccepted.Load(),
		QuantityAccepted: s.QuantityAccepted.Load(),
		TradesExecuted:   s.TradesExecuted.Load(),
		QuantityMatched:  s.QuantityMatched.Load(),
		MatchPasses:      s.MatchPasses.Load(),
		SealRetries:      s.SealRetries.Load(),
		OrdersReclaimed:  s.OrdersReclaimed.Load(),
	}
}
