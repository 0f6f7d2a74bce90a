package ledger

import (
	"container/heap"

	"agora/internal/core"
)

// residueHeap orders resting orders for reporting: best price first, ties
// broken by earliest timestamp, then lowest id. It implements container/heap.Interface the
// way the exchange's older, per-side priority queues did before they were
// generalized into the book's btree queues; it survives here as the sort
// used to present a step's leftover orders in priority order rather than
// insertion order.
type residueHeap struct {
	orders []*core.Order
	better func(a, b *core.Order) bool
}

func (h residueHeap) Len() int { return len(h.orders) }

func (h residueHeap) Less(i, j int) bool { return h.better(h.orders[i], h.orders[j]) }

func (h residueHeap) Swap(i, j int) { h.orders[i], h.orders[j] = h.orders[j], h.orders[i] }

func (h *residueHeap) Push(x any) {
	h.orders = append(h.orders, x.(*core.Order))
}

func (h *residueHeap) Pop() any {
	old := h.orders
	n := len(old)
	o := old[n-1]
	old[n-1] = nil
	h.orders = old[:n-1]
	return o
}

func bidBetter(a, b *core.Order) bool {
	if *a.Price != *b.Price {
		return *a.Price > *b.Price
	}
	if a.Timestamp != b.Timestamp {
		return a.Timestamp < b.Timestamp
	}
	return a.ID < b.ID
}

func askBetter(a, b *core.Order) bool {
	if *a.Price != *b.Price {
		return *a.Price < *b.Price
	}
	if a.Timestamp != b.Timestamp {
		return a.Timestamp < b.Timestamp
	}
	return a.ID < b.ID
}

// SortResidue orders a step's leftover resting orders best-priority-first,
// bids and asks each ranked by their own book's tie-break rule. Market
// orders, having no price, are appended last in timestamp order.
func SortResidue(orders []*core.Order) []*core.Order {
	var bids, asks, marketBids, marketAsks []*core.Order
	for _, o := range orders {
		switch {
		case o.Side == core.Bid && o.IsLimit():
			bids = append(bids, o)
		case o.Side == core.Ask && o.IsLimit():
			asks = append(asks, o)
		case o.Side == core.Bid:
			marketBids = append(marketBids, o)
		default:
			marketAsks = append(marketAsks, o)
		}
	}

	sortedBids := heapSort(bids, bidBetter)
	sortedAsks := heapSort(asks, askBetter)
	sortedMarketBids := heapSort(marketBids, timestampBetter)
	sortedMarketAsks := heapSort(marketAsks, timestampBetter)

	out := make([]*core.Order, 0, len(orders))
	out = append(out, sortedBids...)
	out = append(out, sortedAsks...)
	out = append(out, sortedMarketBids...)
	out = append(out, sortedMarketAsks...)
	return out
}

func timestampBetter(a, b *core.Order) bool {
	if a.Timestamp != b.Timestamp {
		return a.Timestamp < b.Timestamp
	}
	return a.ID < b.ID
}

func heapSort(orders []*core.Order, better func(a, b *core.Order) bool) []*core.Order {
	if len(orders) == 0 {
		return nil
	}

	h := &residueHeap{orders: append([]*core.Order(nil), orders...), better: better}
	heap.Init(h)

	out := make([]*core.Order, 0, len(orders))
	for h.Len() > 0 {
		out = append(out, heap.Pop(h).(*core.Order))
	}
	return out
}
