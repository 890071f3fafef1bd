package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gungnir/internal/common"
)

func prices(orders []*Order) []float64 {
	out := make([]float64, len(orders))
	for i, o := range orders {
		out[i] = o.Price
	}
	return out
}

func TestSortBuysDescending(t *testing.T) {
	orders := []*Order{
		newTestOrder(1, common.Buy, 10, 10),
		newTestOrder(2, common.Buy, 10, 15),
		newTestOrder(3, common.Buy, 10, 12),
		newTestOrder(4, common.Buy, 10, 0),
	}
	sortBuysDescending(orders)
	assert.Equal(t, []float64{15, 12, 10, 0}, prices(orders))
}

func TestSortSellsAscending(t *testing.T) {
	orders := []*Order{
		newTestOrder(1, common.Sell, 10, 13),
		newTestOrder(2, common.Sell, 10, 11),
		newTestOrder(3, common.Sell, 10, 118),
	}
	sortSellsAscending(orders)
	assert.Equal(t, []float64{11, 13, 118}, prices(orders))
}

func TestSortTruncatedBucketTies(t *testing.T) {
	// 10.9 and 10.1 share bucket 10: equal priority, snapshot order kept.
	orders := []*Order{
		newTestOrder(1, common.Sell, 10, 10.9),
		newTestOrder(2, common.Sell, 10, 11.5),
		newTestOrder(3, common.Sell, 10, 10.1),
	}
	sortSellsAscending(orders)
	assert.Equal(t, []float64{10.9, 10.1, 11.5}, prices(orders))
	assert.Equal(t, uint64(1), orders[0].ID, "stable within a bucket")
}

func TestSortSingleAndEmpty(t *testing.T) {
	sortBuysDescending(nil)
	one := []*Order{newTestOrder(1, common.Buy, 1, 42)}
	sortBuysDescending(one)
	assert.Equal(t, uint64(1), one[0].ID)
}
