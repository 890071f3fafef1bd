package engine

import (
	"github.com/cespare/xxhash/v2"

	"gungnir/internal/common"
)

// ResolveTicker deterministically maps a symbol to a ticker id in
// [0, MaxTickers). It never fails. Distinct symbols may collide and then
// share a book; the registry makes no uniqueness guarantee.
func ResolveTicker(symbol string) common.TickerID {
	return common.TickerID(xxhash.Sum64String(symbol) % common.MaxTickers)
}
