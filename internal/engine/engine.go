package engine

import (
	"sync"

	"github.com/rs/zerolog/log"

	"gungnir/internal/common"
	"gungnir/internal/memory"
)

const defaultRetireRingSize = 1 << 16

// Engine is the matching core: one order book plus the reclamation
// machinery around it. Construct it with New and share the one instance
// by reference; there is no package-level engine.
//
// AddOrder is lock-free and may be called from any number of goroutines.
// Matching passes on the same ticker serialise on a per-ticker mutex;
// passes on different tickers run fully in parallel.
type Engine struct {
	Book *OrderBook

	pool  *memory.Pool[Order]
	ring  *memory.RetireRing
	epoch memory.Epoch

	matchMu [common.MaxTickers]sync.Mutex
	readers [common.MaxTickers]memory.ReaderEpoch
	readerL []*memory.ReaderEpoch

	// retireMu serialises access to the SPSC retire ring: matching passes
	// on distinct tickers retire concurrently, and Reclaim drains.
	retireMu sync.Mutex

	reporter common.Reporter
	stats    Stats
}

func New() *Engine {
	e := &Engine{
		pool: memory.NewPool(func() *Order { return &Order{} }),
		ring: memory.NewRetireRing(defaultRetireRingSize),
	}
	e.Book = NewOrderBook(e.pool, &e.stats)
	e.readerL = make([]*memory.ReaderEpoch, common.MaxTickers)
	for t := range e.readers {
		e.readers[t].Exit()
		e.readerL[t] = &e.readers[t]
	}
	return e
}

// SetReporter installs the trade sink. Must be called before matching
// starts; a nil reporter discards trades.
func (e *Engine) SetReporter(r common.Reporter) {
	e.reporter = r
}

// AddOrder resolves the symbol and admits the order into the book,
// returning its id.
func (e *Engine) AddOrder(side common.Side, symbol string, quantity int64, price float64) (uint64, error) {
	return e.Book.AddOrder(side, ResolveTicker(symbol), quantity, price)
}

// Stats returns a copy of the accounting counters.
func (e *Engine) Stats() StatsSnapshot {
	return e.stats.Snapshot()
}

// Reclaim advances the reclamation epoch and recycles every retired order
// no in-flight snapshot can still reference. Intended to be called
// periodically by the owner; it is cheap when there is nothing to do.
func (e *Engine) Reclaim() int {
	e.retireMu.Lock()
	defer e.retireMu.Unlock()

	n := memory.AdvanceEpochAndReclaim(&e.epoch, e.ring, e.pool, e.readerL...)
	if n > 0 {
		e.stats.OrdersReclaimed.Add(uint64(n))
	}
	return n
}

// Close releases what can be released. Matching passes still in flight
// must have finished; afterwards the pool and ring are left to the
// garbage collector.
func (e *Engine) Close() {
	n := e.Reclaim()
	log.Debug().Int("reclaimed", n).Msg("engine closed")
}

// retire parks a fully matched order for recycling. When the ring is full
// the order is simply dropped and collected normally.
func (e *Engine) retire(o *Order) {
	e.retireMu.Lock()
	defer e.retireMu.Unlock()
	_ = memory.Retire(e.ring, &e.epoch, o)
}
