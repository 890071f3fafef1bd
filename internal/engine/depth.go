package engine

import (
	"github.com/tidwall/btree"

	"gungnir/internal/common"
)

// FlatPriceLevel aggregates the resting liquidity at one exact price.
type FlatPriceLevel struct {
	Price    float64
	Quantity int64
	Orders   int
}

// Depth aggregates a point-in-time view of one ticker's book into price
// levels: bids best (highest) first, asks best (lowest) first. Levels use
// the exact resting price, not the truncated matching bucket. The read
// serialises with matching passes on the same ticker.
func (e *Engine) Depth(ticker common.TickerID) (bids, asks []FlatPriceLevel, err error) {
	if ticker < 0 || ticker >= common.MaxTickers {
		return nil, nil, ErrInvalidTicker
	}

	e.matchMu[ticker].Lock()
	defer e.matchMu[ticker].Unlock()

	e.readers[ticker].Enter(&e.epoch)
	defer e.readers[ticker].Exit()

	bids = flattenLevels(e.Book.queue(ticker, common.Buy).Snapshot(), true)
	asks = flattenLevels(e.Book.queue(ticker, common.Sell).Snapshot(), false)
	return bids, asks, nil
}

// flattenLevels folds a snapshot into btree-ordered price levels.
func flattenLevels(orders []*Order, descending bool) []FlatPriceLevel {
	if len(orders) == 0 {
		return nil
	}

	less := func(a, b *FlatPriceLevel) bool { return a.Price < b.Price }
	if descending {
		less = func(a, b *FlatPriceLevel) bool { return a.Price > b.Price }
	}
	levels := btree.NewBTreeG(less)

	for _, o := range orders {
		if o.IsMatched() || o.Remaining() == 0 {
			continue
		}
		if lvl, ok := levels.GetMut(&FlatPriceLevel{Price: o.Price}); ok {
			lvl.Quantity += o.Remaining()
			lvl.Orders++
			continue
		}
		levels.Set(&FlatPriceLevel{
			Price:    o.Price,
			Quantity: o.Remaining(),
			Orders:   1,
		})
	}

	flat := make([]FlatPriceLevel, 0, levels.Len())
	levels.Scan(func(lvl *FlatPriceLevel) bool {
		flat = append(flat, *lvl)
		return true
	})
	return flat
}
