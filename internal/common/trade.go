package common

import (
	"fmt"
	"time"
)

// Trade records one execution between a resting buy and a resting sell on
// the same ticker. Quantity is the amount lifted from both orders and Price
// is the execution price, which follows the resting-sell convention.
type Trade struct {
	EventID     string
	Ticker      TickerID
	BuyOrderID  uint64
	SellOrderID uint64
	Quantity    int64
	Price       float64
	Timestamp   time.Time
}

func (t Trade) String() string {
	return fmt.Sprintf(
		"Trade{ticker=%d buy=%d sell=%d qty=%d price=%.2f at=%s}",
		t.Ticker,
		t.BuyOrderID,
		t.SellOrderID,
		t.Quantity,
		t.Price,
		t.Timestamp.Format(time.RFC3339Nano),
	)
}

// Reporter receives executed trades, once per trade, in the order they
// occur within a matching pass on a given ticker. No ordering is promised
// across tickers.
type Reporter interface {
	ReportTrade(trade Trade) error
}
