package sink

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gungnir/internal/common"
)

func sampleTrade(i int) common.Trade {
	return common.Trade{
		Ticker:      common.TickerID(100 + i),
		BuyOrderID:  uint64(1000 + i),
		SellOrderID: uint64(2000 + i),
		Quantity:    int64(10 * (i + 1)),
		Price:       119.5 + float64(i),
		Timestamp:   time.Unix(0, int64(1700000000000000000+i)),
	}
}

func TestJournalWriteAndScan(t *testing.T) {
	journal, err := OpenJournal(t.TempDir())
	require.NoError(t, err)
	defer journal.Close()

	for i := 0; i < 3; i++ {
		require.NoError(t, journal.ReportTrade(sampleTrade(i)))
	}

	var seqs []uint64
	var trades []common.Trade
	require.NoError(t, journal.Scan(func(seq uint64, trade common.Trade) error {
		seqs = append(seqs, seq)
		trades = append(trades, trade)
		return nil
	}))

	assert.Equal(t, []uint64{1, 2, 3}, seqs, "scan follows write order")
	require.Len(t, trades, 3)
	for i, trade := range trades {
		want := sampleTrade(i)
		assert.Equal(t, want.Ticker, trade.Ticker)
		assert.Equal(t, want.BuyOrderID, trade.BuyOrderID)
		assert.Equal(t, want.SellOrderID, trade.SellOrderID)
		assert.Equal(t, want.Quantity, trade.Quantity)
		assert.Equal(t, want.Price, trade.Price)
		assert.Equal(t, want.Timestamp.UnixNano(), trade.Timestamp.UnixNano())
	}
}

func TestJournalReopenAppends(t *testing.T) {
	dir := t.TempDir()

	journal, err := OpenJournal(dir)
	require.NoError(t, err)
	require.NoError(t, journal.ReportTrade(sampleTrade(0)))
	require.NoError(t, journal.ReportTrade(sampleTrade(1)))
	require.NoError(t, journal.Close())

	// Reopening must continue the key sequence, not restart it.
	journal, err = OpenJournal(dir)
	require.NoError(t, err)
	defer journal.Close()
	require.NoError(t, journal.ReportTrade(sampleTrade(2)))

	var seqs []uint64
	var buyIDs []uint64
	require.NoError(t, journal.Scan(func(seq uint64, trade common.Trade) error {
		seqs = append(seqs, seq)
		buyIDs = append(buyIDs, trade.BuyOrderID)
		return nil
	}))

	assert.Equal(t, []uint64{1, 2, 3}, seqs)
	assert.Equal(t, []uint64{1000, 1001, 1002}, buyIDs,
		"records written before the reopen survive it")
}

func TestTradeRecordRoundTrip(t *testing.T) {
	want := sampleTrade(7)
	got, err := decodeTradeRecord(encodeTradeRecord(want))
	require.NoError(t, err)
	assert.Equal(t, want.Price, got.Price)
	assert.Equal(t, want.Quantity, got.Quantity)

	_, err = decodeTradeRecord([]byte("short"))
	assert.Error(t, err)
}
