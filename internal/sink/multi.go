package sink

import "gungnir/internal/common"

// Multi fans one trade out to several reporters. Every reporter sees the
// trade; the first error is returned after all have been attempted.
type Multi []common.Reporter

func (m Multi) ReportTrade(trade common.Trade) error {
	var first error
	for _, r := range m {
		if err := r.ReportTrade(trade); err != nil && first == nil {
			first = err
		}
	}
	return first
}
