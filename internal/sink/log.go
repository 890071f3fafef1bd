// Package sink provides trade reporters: destinations for the execution
// events the matching engine emits.
package sink

import (
	"github.com/rs/zerolog"

	"gungnir/internal/common"
)

// LogReporter writes each trade as one structured log line.
type LogReporter struct {
	log zerolog.Logger
}

func NewLogReporter(log zerolog.Logger) *LogReporter {
	return &LogReporter{log: log}
}

func (r *LogReporter) ReportTrade(trade common.Trade) error {
	r.log.Info().
		Str("event", trade.EventID).
		Int32("ticker", int32(trade.Ticker)).
		Uint64("buy", trade.BuyOrderID).
		Uint64("sell", trade.SellOrderID).
		Int64("qty", trade.Quantity).
		Float64("price", trade.Price).
		Msg("trade executed")
	return nil
}
