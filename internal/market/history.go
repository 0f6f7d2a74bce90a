// Package market wires the order book and ledger together behind a step
// loop: each step solicits order intents from registered agents, admits
// and reserves them, runs the three-phase match, settles the resulting
// transactions, and publishes a History for the next step's agents to
// read.
package market

import (
	"agora/internal/core"
	"agora/internal/money"
)

// History is everything that happened during one step, published for the
// agents of the following step to read.
type History struct {
	Step              uint64
	Transactions      []core.Transaction
	RejectedOrders    []*core.Order
	UnfulfilledOrders []*core.Order
	// UnfulfilledByAgent indexes UnfulfilledOrders by the agent that
	// submitted each one, letting an agent like the incremental-price
	// buyer/seller check whether its own previous order was filled
	// without scanning every resting order.
	UnfulfilledByAgent map[AgentID][]*core.Order
}

// OwnUnfulfilled returns the orders still resting that id submitted.
func (h History) OwnUnfulfilled(id AgentID) []*core.Order {
	return h.UnfulfilledByAgent[id]
}

// MarketPrice is the mean of each transaction's midpoint
// ((AskGain+BidLoss)/2), using integer division at both steps to match
// the reference implementation's rounding. It reports false if the step
// produced no transactions.
func (h History) MarketPrice() (money.Amount, bool) {
	if len(h.Transactions) == 0 {
		return 0, false
	}

	var sum money.Amount
	for _, tx := range h.Transactions {
		sum += (tx.AskGain + tx.BidLoss) / 2
	}

	return sum / money.Amount(len(h.Transactions)), true
}
