package engine

import (
	"errors"
	"math"
	"sync/atomic"

	"gungnir/internal/common"
	"gungnir/internal/memory"
)

var (
	// ErrInvalidTicker is returned when a ticker id falls outside
	// [0, MaxTickers). Only reachable if the registry is bypassed.
	ErrInvalidTicker = errors.New("ticker id out of range")
	// ErrInvalidQuantity and ErrInvalidPrice are fail-fast hardening
	// checks; the quantities and prices they reject were silently
	// accepted by earlier revisions of this engine.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidPrice    = errors.New("price must be in [0, MaxPrice)")
)

// MaxPrice bounds admissible prices. The matching sort allocates one
// counting bucket per whole-price unit seen in a batch, so the price
// domain must stay small and must survive float-to-int conversion.
const MaxPrice = 1 << 20

// OrderBook owns one queue pair per ticker and the global id source.
// Admission never blocks beyond bounded CAS retries. Each live order is
// reachable from exactly one queue: its own (ticker, side).
type OrderBook struct {
	buys  [common.MaxTickers]atomic.Pointer[OrderQueue]
	sells [common.MaxTickers]atomic.Pointer[OrderQueue]

	seq   Sequencer
	pool  *memory.Pool[Order]
	stats *Stats
}

func NewOrderBook(pool *memory.Pool[Order], stats *Stats) *OrderBook {
	b := &OrderBook{pool: pool, stats: stats}
	for t := 0; t < common.MaxTickers; t++ {
		b.buys[t].Store(NewOrderQueue())
		b.sells[t].Store(NewOrderQueue())
	}
	return b
}

// AddOrder admits a new order: it allocates the next id, constructs the
// order from the pool and pushes it into the (ticker, side) queue. On
// return the order is visible to subsequent snapshots. A push that loses
// against a concurrent seal reloads the replacement queue and retries, so
// admission during an in-flight matching pass is never dropped.
func (b *OrderBook) AddOrder(side common.Side, ticker common.TickerID, quantity int64, price float64) (uint64, error) {
	if ticker < 0 || ticker >= common.MaxTickers {
		return 0, ErrInvalidTicker
	}
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	if price < 0 || price >= MaxPrice || math.IsNaN(price) {
		return 0, ErrInvalidPrice
	}

	id := b.seq.Next()
	o := b.pool.Get()
	o.init(id, side, ticker, quantity, price)

	for !b.queue(ticker, side).Push(o) {
		b.stats.SealRetries.Add(1)
	}

	b.stats.OrdersAccepted.Add(1)
	b.stats.QuantityAccepted.Add(quantity)
	return id, nil
}

// queue returns the live queue for (ticker, side).
func (b *OrderBook) queue(ticker common.TickerID, side common.Side) *OrderQueue {
	if side == common.Buy {
		return b.buys[ticker].Load()
	}
	return b.sells[ticker].Load()
}

// replaceQueue installs a fresh queue for (ticker, side) and returns the
// one it displaced. The old queue must still be sealed by the caller:
// a producer that loaded it before the swap can otherwise keep pushing
// into it.
func (b *OrderBook) replaceQueue(ticker common.TickerID, side common.Side, fresh *OrderQueue) *OrderQueue {
	if side == common.Buy {
		return b.buys[ticker].Swap(fresh)
	}
	return b.sells[ticker].Swap(fresh)
}
