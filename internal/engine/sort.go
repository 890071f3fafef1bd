package engine

// Price priority is established with a bounded counting sort over the
// integer-truncated price domain observed in the batch (bucket count =
// floor(maxPrice)+1), which keeps the per-ticker pass linear in the number
// of resting orders.
//
// Truncation means two orders whose prices fall in the same whole-dollar
// bucket carry equal priority. The distribution below is stable, so equal
// buckets keep snapshot order; that makes tie-breaking deterministic but
// it is NOT time priority. This is an intentional simplification of the
// price model.

// Admission bounds prices to [0, MaxPrice), so the conversion cannot
// produce a negative or oversized bucket.
func priceBucket(price float64) int {
	return int(price)
}

// sortBuysDescending orders buys highest bucket first.
func sortBuysDescending(orders []*Order) {
	countingSortByBucket(orders, true)
}

// sortSellsAscending orders sells lowest bucket first.
func sortSellsAscending(orders []*Order) {
	countingSortByBucket(orders, false)
}

func countingSortByBucket(orders []*Order, descending bool) {
	if len(orders) <= 1 {
		return
	}

	max := 0
	for _, o := range orders {
		if b := priceBucket(o.Price); b > max {
			max = b
		}
	}

	counts := make([]int, max+1)
	for _, o := range orders {
		counts[priceBucket(o.Price)]++
	}

	// Turn counts into placement offsets for the chosen direction.
	sum := 0
	if descending {
		for b := max; b >= 0; b-- {
			c := counts[b]
			counts[b] = sum
			sum += c
		}
	} else {
		for b := 0; b <= max; b++ {
			c := counts[b]
			counts[b] = sum
			sum += c
		}
	}

	sorted := make([]*Order, len(orders))
	for _, o := range orders {
		b := priceBucket(o.Price)
		sorted[counts[b]] = o
		counts[b]++
	}
	copy(orders, sorted)
}
