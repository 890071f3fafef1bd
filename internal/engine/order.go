package engine

import (
	"fmt"
	"sync/atomic"

	"gungnir/internal/common"
)

// Order is one unit of resting liquidity. ID, Side, Ticker, Price and
// Total never change after admission; the remaining quantity only ever
// decreases and once the matched flag is set the order never reappears in
// a live queue.
//
// Orders are pool-recycled, so holding a reference past the end of a
// read-side epoch section is not allowed.
type Order struct {
	ID     uint64
	Side   common.Side
	Ticker common.TickerID
	Price  float64
	Total  int64

	quantity atomic.Int64
	matched  atomic.Bool

	retireEpoch uint64
	next        atomic.Pointer[Order]
}

func (o *Order) init(id uint64, side common.Side, ticker common.TickerID, qty int64, price float64) {
	o.ID = id
	o.Side = side
	o.Ticker = ticker
	o.Price = price
	o.Total = qty
	o.quantity.Store(qty)
	o.matched.Store(false)
	o.retireEpoch = 0
	o.next.Store(nil)
}

// Remaining reports the unfilled quantity.
func (o *Order) Remaining() int64 {
	return o.quantity.Load()
}

// IsMatched reports whether the order has been fully filled.
func (o *Order) IsMatched() bool {
	return o.matched.Load()
}

// fill consumes qty from the remaining quantity and marks the order
// matched when it reaches zero. Only the matching pass holding the
// ticker's match lock may call this.
func (o *Order) fill(qty int64) {
	if rem := o.quantity.Add(-qty); rem == 0 {
		o.matched.Store(true)
	}
}

// RetireEpoch and SetRetireEpoch implement memory.Reclaimable.
func (o *Order) RetireEpoch() uint64     { return o.retireEpoch }
func (o *Order) SetRetireEpoch(v uint64) { o.retireEpoch = v }

func (o *Order) String() string {
	return fmt.Sprintf(
		"Order{id=%d %v ticker=%d qty=%d/%d price=%.2f matched=%v}",
		o.ID,
		o.Side,
		o.Ticker,
		o.Remaining(),
		o.Total,
		o.Price,
		o.IsMatched(),
	)
}
