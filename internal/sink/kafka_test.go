package sink

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gungnir/internal/common"
)

func TestEncodeTrade(t *testing.T) {
	payload, err := EncodeTrade(common.Trade{
		EventID:     "evt-1",
		Ticker:      42,
		BuyOrderID:  7,
		SellOrderID: 9,
		Quantity:    250,
		Price:       119.5,
		Timestamp:   time.Unix(0, 1700000000000000000),
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, float64(1), decoded["v"])
	assert.Equal(t, "evt-1", decoded["event_id"])
	assert.Equal(t, float64(42), decoded["ticker"])
	assert.Equal(t, float64(7), decoded["buy_order_id"])
	assert.Equal(t, float64(9), decoded["sell_order_id"])
	assert.Equal(t, float64(250), decoded["quantity"])
	assert.Equal(t, 119.5, decoded["price"])
	assert.Equal(t, float64(1700000000000000000), decoded["ts"])
}
