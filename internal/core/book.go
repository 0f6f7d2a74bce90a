package core

import (
	"fmt"

	"agora/internal/money"

	"github.com/tidwall/btree"
)

// Transaction is the result of a single match between a bid and an ask.
type Transaction struct {
	BidID   uint64
	AskID   uint64
	Size    int64
	BidLoss money.Amount
	AskGain money.Amount
	Diff    money.Amount
}

func (t Transaction) String() string {
	return fmt.Sprintf(
		"bid=%d ask=%d size=%d bidLoss=%d askGain=%d diff=%d",
		t.BidID, t.AskID, t.Size, t.BidLoss, t.AskGain, t.Diff,
	)
}

// OrderBook holds the four priority queues (bid/ask x limit/market) and the
// monotonic id/timestamp counters used to admit new orders. Each queue is a
// github.com/tidwall/btree.BTreeG keyed by the order's full priority tuple,
// generalizing the teacher's one-btree-per-side-of-a-single-price-level
// design to a single btree per queue: since (price, timestamp, id) already
// totally orders every order in a queue, a price-level indirection layer
// would be redundant on top of it.
type OrderBook struct {
	limitBids  *btree.BTreeG[*Order]
	limitAsks  *btree.BTreeG[*Order]
	marketBids *btree.BTreeG[*Order]
	marketAsks *btree.BTreeG[*Order]

	nextID    uint64
	timestamp int64
}

func limitBidLess(a, b *Order) bool {
	if *a.Price != *b.Price {
		return *a.Price > *b.Price
	}
	if a.Timestamp != b.Timestamp {
		return a.Timestamp < b.Timestamp
	}
	return a.ID < b.ID
}

func limitAskLess(a, b *Order) bool {
	if *a.Price != *b.Price {
		return *a.Price < *b.Price
	}
	if a.Timestamp != b.Timestamp {
		return a.Timestamp < b.Timestamp
	}
	return a.ID < b.ID
}

func marketLess(a, b *Order) bool {
	if a.Timestamp != b.Timestamp {
		return a.Timestamp < b.Timestamp
	}
	return a.ID < b.ID
}

// NewOrderBook constructs an empty order book with fresh id/timestamp
// counters.
func NewOrderBook() *OrderBook {
	return &OrderBook{
		limitBids:  btree.NewBTreeG(limitBidLess),
		limitAsks:  btree.NewBTreeG(limitAskLess),
		marketBids: btree.NewBTreeG(marketLess),
		marketAsks: btree.NewBTreeG(marketLess),
	}
}

// Admit validates an intent and, if it is well-formed, assigns it a fresh
// id and the book's current timestamp. A present price that is <= 0, or a
// size <= 0, is rejected and never becomes an Order.
func (book *OrderBook) Admit(intent OrderIntent) (*Order, error) {
	if intent.Price != nil && *intent.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if intent.Size <= 0 {
		return nil, ErrInvalidSize
	}

	order := &Order{
		ID:        book.nextID,
		Timestamp: book.timestamp,
		Side:      intent.Side,
		Price:     intent.Price,
		Size:      intent.Size,
	}
	book.nextID++

	return order, nil
}

// Tick advances the book's timestamp counter, used by a caller that wants
// strict per-order FIFO rather than a shared timestamp per submission batch.
func (book *OrderBook) Tick() {
	book.timestamp++
}

// Insert places an admitted order into the queue selected by its
// (has-price, side) pair.
func (book *OrderBook) Insert(order *Order) {
	switch {
	case order.IsLimit() && order.Side == Bid:
		book.limitBids.Set(order)
	case order.IsLimit() && order.Side == Ask:
		book.limitAsks.Set(order)
	case !order.IsLimit() && order.Side == Bid:
		book.marketBids.Set(order)
	case !order.IsLimit() && order.Side == Ask:
		book.marketAsks.Set(order)
	}
}

// Clear empties all four queues, used by a coordinator configured to expire
// unfulfilled orders at the end of every step. The id/timestamp counters are
// untouched so ids stay unique across the book's lifetime.
func (book *OrderBook) Clear() {
	book.limitBids = btree.NewBTreeG(limitBidLess)
	book.limitAsks = btree.NewBTreeG(limitAskLess)
	book.marketBids = btree.NewBTreeG(marketLess)
	book.marketAsks = btree.NewBTreeG(marketLess)
}

// Snapshot returns every order still resting in any of the four queues.
func (book *OrderBook) Snapshot() []*Order {
	var out []*Order
	book.limitBids.Scan(func(o *Order) bool { out = append(out, o); return true })
	book.limitAsks.Scan(func(o *Order) bool { out = append(out, o); return true })
	book.marketBids.Scan(func(o *Order) bool { out = append(out, o); return true })
	book.marketAsks.Scan(func(o *Order) bool { out = append(out, o); return true })
	return out
}

// MatchMarketAgainstLimit runs Phase A: it drains every market ask against
// the best limit bid, then every market bid against the best limit ask,
// always pricing the trade at the limit side's price (diff = 0).
func (book *OrderBook) MatchMarketAgainstLimit() []Transaction {
	var txs []Transaction

	for {
		ask, okAsk := book.marketAsks.Min()
		bid, okBid := book.limitBids.Min()
		if !okAsk || !okBid {
			break
		}
		txs = append(txs, book.settleAt(bid, ask, *bid.Price, book.limitBids, book.marketAsks))
	}

	for {
		bid, okBid := book.marketBids.Min()
		ask, okAsk := book.limitAsks.Min()
		if !okBid || !okAsk {
			break
		}
		txs = append(txs, book.settleAt(bid, ask, *ask.Price, book.marketBids, book.limitAsks))
	}

	return txs
}

// MatchMarketAgainstMarket runs Phase B: while both a market bid and a
// market ask exist, it matches them at fallback, if one was supplied.
// hasFallback distinguishes "no trades happened yet and there is no prior
// price either" from a genuine fallback of zero.
func (book *OrderBook) MatchMarketAgainstMarket(fallback money.Amount, hasFallback bool) []Transaction {
	if !hasFallback {
		return nil
	}

	var txs []Transaction
	for {
		bid, okBid := book.marketBids.Min()
		ask, okAsk := book.marketAsks.Min()
		if !okBid || !okAsk {
			break
		}
		txs = append(txs, book.settleAt(bid, ask, fallback, book.marketBids, book.marketAsks))
	}
	return txs
}

// MatchLimitAgainstLimit runs Phase C: while the best limit bid's price is
// at least the best limit ask's price, it matches them, the bid paying its
// own price and the ask receiving its own, with the spread accruing as
// diff. Calling this a second time on an already-settled book produces no
// further transactions.
func (book *OrderBook) MatchLimitAgainstLimit() []Transaction {
	var txs []Transaction

	for {
		bid, okBid := book.limitBids.Min()
		ask, okAsk := book.limitAsks.Min()
		if !okBid || !okAsk || *bid.Price < *ask.Price {
			break
		}

		size := min(bid.Size, ask.Size)
		bidLoss := bid.Price.Mul(size)
		askGain := ask.Price.Mul(size)
		diff := bidLoss.Sub(askGain)

		if diff < 0 {
			panic(fmt.Sprintf("negative diff on match bid=%d ask=%d: %d", bid.ID, ask.ID, diff))
		}

		tx := Transaction{BidID: bid.ID, AskID: ask.ID, Size: size, BidLoss: bidLoss, AskGain: askGain, Diff: diff}
		txs = append(txs, tx)

		bid.Size -= size
		ask.Size -= size
		if bid.Size == 0 {
			book.limitBids.Delete(bid)
		}
		if ask.Size == 0 {
			book.limitAsks.Delete(ask)
		}
	}

	return txs
}

// settleAt matches bid against ask at the given price, removing either
// order from its queue once its size reaches zero. bidLoss and askGain are
// always equal at this price, so diff is always zero — the caller passes
// the two queues the matched orders live in purely so the zero-sized
// removal can address the right tree.
func (book *OrderBook) settleAt(bid, ask *Order, price money.Amount, bidQueue, askQueue *btree.BTreeG[*Order]) Transaction {
	size := min(bid.Size, ask.Size)
	amount := price.Mul(size)

	tx := Transaction{BidID: bid.ID, AskID: ask.ID, Size: size, BidLoss: amount, AskGain: amount, Diff: 0}

	bid.Size -= size
	ask.Size -= size
	if bid.Size == 0 {
		bidQueue.Delete(bid)
	}
	if ask.Size == 0 {
		askQueue.Delete(ask)
	}

	return tx
}
