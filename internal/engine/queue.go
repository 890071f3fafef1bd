package engine

import "sync/atomic"

// sealedMark is installed as the head of a queue that has been taken out
// of service by a matching pass. A push that observes it must reload the
// live queue from the book and retry there.
var sealedMark = new(Order)

// OrderQueue is a lock-free multiset of live orders for one (ticker, side).
// Insertion order carries no priority meaning; priority is established at
// match time by sorting a snapshot. The structure is a singly linked list
// mutated only through compare-and-swap.
type OrderQueue struct {
	head atomic.Pointer[Order]
}

func NewOrderQueue() *OrderQueue {
	return &OrderQueue{}
}

// Push prepends the order. It retries until its CAS wins and reports false
// only if the queue has been sealed, in which case the order was not
// inserted and the caller must push into the queue's replacement.
func (q *OrderQueue) Push(o *Order) bool {
	for {
		head := q.head.Load()
		if head == sealedMark {
			return false
		}
		o.next.Store(head)
		if q.head.CompareAndSwap(head, o) {
			return true
		}
	}
}

// Snapshot walks the list once and returns the orders it saw. The read is
// weakly consistent: concurrent pushes may or may not be included and the
// returned orders are shared references, not exclusive copies. It never
// blocks writers.
func (q *OrderQueue) Snapshot() []*Order {
	var orders []*Order
	for o := q.head.Load(); o != nil && o != sealedMark; o = o.next.Load() {
		orders = append(orders, o)
	}
	return orders
}

// Seal permanently closes the queue and returns its final contents. Every
// push that won its CAS before the seal is included; every push that loses
// against it observes the sealed mark and retries elsewhere. Nothing is
// ever lost between a snapshot and a queue replacement.
func (q *OrderQueue) Seal() []*Order {
	head := q.head.Swap(sealedMark)
	var orders []*Order
	for o := head; o != nil && o != sealedMark; o = o.next.Load() {
		orders = append(orders, o)
	}
	return orders
}

// Remove unlinks the first order with the given id via a scan-and-CAS,
// restarting from the head whenever a CAS observes that the structure
// changed underneath it. Under sustained contention the restart loop has
// no fairness bound (a livelock risk, tolerated for this best-effort
// operation).
//
// Removals must be serialised by the caller: two concurrent Removes may
// unlink through a node the other is removing and resurrect it. Remove is
// safe to run concurrently with Push and Snapshot; a racing Snapshot may
// or may not observe the removed order.
func (q *OrderQueue) Remove(id uint64) bool {
restart:
	head := q.head.Load()
	if head == sealedMark {
		return false
	}

	var prev *Order
	for cur := head; cur != nil && cur != sealedMark; {
		next := cur.next.Load()
		if cur.ID == id {
			if prev == nil {
				if q.head.CompareAndSwap(cur, next) {
					return true
				}
				goto restart
			}
			if prev.next.CompareAndSwap(cur, next) {
				return true
			}
			goto restart
		}
		prev, cur = cur, next
	}
	return false
}

// Len counts the current contents. Weakly consistent, like Snapshot.
func (q *OrderQueue) Len() int {
	n := 0
	for o := q.head.Load(); o != nil && o != sealedMark; o = o.next.Load() {
		n++
	}
	return n
}
