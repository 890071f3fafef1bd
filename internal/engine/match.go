package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"gungnir/internal/common"
)

// MatchOrders runs one matching pass over every ticker. Tickers are fully
// independent: there is no cross-ticker ordering guarantee and no joint
// atomicity across them.
func (e *Engine) MatchOrders() {
	for t := common.TickerID(0); t < common.MaxTickers; t++ {
		e.matchTicker(t)
	}
}

// matchTicker is the algorithmic core: take both sides out of service,
// sort the definitive snapshot by price priority, greedily merge-match,
// then re-rest the survivors.
//
// The pass first installs fresh queues and then seals the displaced ones.
// An AddOrder racing the pass either wins its CAS before the seal (and is
// part of this pass's snapshot) or observes the seal, reloads the live
// queue and lands in the fresh one. Either way it stays in the book: the
// snapshot/replace window cannot drop orders.
func (e *Engine) matchTicker(t common.TickerID) {
	// Cheap skip before touching any queue: with either side empty there
	// is nothing a pass could do.
	if e.Book.queue(t, common.Buy).head.Load() == nil ||
		e.Book.queue(t, common.Sell).head.Load() == nil {
		return
	}

	e.matchMu[t].Lock()
	defer e.matchMu[t].Unlock()

	e.readers[t].Enter(&e.epoch)
	defer e.readers[t].Exit()

	freshBuys := NewOrderQueue()
	freshSells := NewOrderQueue()
	buys := e.Book.replaceQueue(t, common.Buy, freshBuys).Seal()
	sells := e.Book.replaceQueue(t, common.Sell, freshSells).Seal()

	e.stats.MatchPasses.Add(1)

	sortBuysDescending(buys)
	sortSellsAscending(sells)

	buyIdx, sellIdx := 0, 0
	for buyIdx < len(buys) && sellIdx < len(sells) {
		buy := buys[buyIdx]
		sell := sells[sellIdx]

		if buy.IsMatched() {
			buyIdx++
			continue
		}
		if sell.IsMatched() {
			sellIdx++
			continue
		}

		// Both arrays are price-sorted, so the first failing pair ends
		// the pass: no later pair can cross.
		if buy.Price < sell.Price {
			break
		}

		qty := min(buy.Remaining(), sell.Remaining())
		buy.fill(qty)
		sell.fill(qty)

		e.emit(common.Trade{
			EventID:     uuid.New().String(),
			Ticker:      t,
			BuyOrderID:  buy.ID,
			SellOrderID: sell.ID,
			Quantity:    qty,
			Price:       sell.Price, // resting-sell pricing convention
			Timestamp:   time.Now(),
		})

		if buy.Remaining() == 0 {
			buyIdx++
		}
		if sell.Remaining() == 0 {
			sellIdx++
		}
	}

	e.rebuild(freshBuys, buys)
	e.rebuild(freshSells, sells)
}

// rebuild re-rests unmatched survivors into the live queue and retires
// everything the pass consumed. The fresh queue may already hold orders
// admitted while the pass ran; the queue is an unordered multiset, so they
// simply coexist with the survivors.
func (e *Engine) rebuild(fresh *OrderQueue, snapshot []*Order) {
	for _, o := range snapshot {
		if !o.IsMatched() && o.Remaining() > 0 {
			// Cannot fail: only a matching pass seals, and this ticker's
			// pass is us.
			fresh.Push(o)
			continue
		}
		e.retire(o)
	}
}

func (e *Engine) emit(trade common.Trade) {
	e.stats.TradesExecuted.Add(1)
	e.stats.QuantityMatched.Add(trade.Quantity)

	if e.reporter == nil {
		return
	}
	if err := e.reporter.ReportTrade(trade); err != nil {
		log.Error().Err(err).Str("event", trade.EventID).Msg("trade report failed")
	}
}
