package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gungnir/internal/common"
)

func TestDepthAggregatesLevels(t *testing.T) {
	eng, _ := newTestEngine(t)
	const ticker = common.TickerID(21)

	for _, qty := range []int64{100, 90, 80} {
		_, err := eng.Book.AddOrder(common.Buy, ticker, qty, 99)
		require.NoError(t, err)
	}
	_, err := eng.Book.AddOrder(common.Buy, ticker, 50, 98)
	require.NoError(t, err)
	_, err = eng.Book.AddOrder(common.Sell, ticker, 60, 100)
	require.NoError(t, err)
	_, err = eng.Book.AddOrder(common.Sell, ticker, 20, 101)
	require.NoError(t, err)

	bids, asks, err := eng.Depth(ticker)
	require.NoError(t, err)

	assert.Equal(t, []FlatPriceLevel{
		{Price: 99, Quantity: 270, Orders: 3},
		{Price: 98, Quantity: 50, Orders: 1},
	}, bids, "bids sorted high -> low")
	assert.Equal(t, []FlatPriceLevel{
		{Price: 100, Quantity: 60, Orders: 1},
		{Price: 101, Quantity: 20, Orders: 1},
	}, asks, "asks sorted low -> high")
}

func TestDepthValidatesTicker(t *testing.T) {
	eng, _ := newTestEngine(t)

	_, _, err := eng.Depth(common.MaxTickers)
	assert.ErrorIs(t, err, ErrInvalidTicker)
	_, _, err = eng.Depth(-1)
	assert.ErrorIs(t, err, ErrInvalidTicker)
}

func TestDepthEmptyTicker(t *testing.T) {
	eng, _ := newTestEngine(t)

	bids, asks, err := eng.Depth(common.TickerID(900))
	require.NoError(t, err)
	assert.Empty(t, bids)
	assert.Empty(t, asks)
}
