// Package ledger holds agent balances and the reservation protocol that
// gates order admission: an agent may not submit an order it cannot cover,
// and a submitted order's cover is held out of the agent's spendable balance
// until the step settles.
package ledger

import (
	"agora/internal/core"
	"agora/internal/money"
)

// Account is one agent's balance sheet. ReservedMoney and ReservedCommodity
// track cover committed to orders still resting in the book; they are
// released wholesale at the start of each step, before that step's intents
// are admitted.
type Account struct {
	Commodity         int64
	Money             money.Amount
	ReservedCommodity int64
	ReservedMoney     money.Amount
	Debt              money.Amount
}

// NewAccount returns an account funded with the given opening balances.
func NewAccount(money_ money.Amount, commodity int64) *Account {
	return &Account{Money: money_, Commodity: commodity}
}

// AvailableMoney is the balance not already committed to a resting order.
func (a *Account) AvailableMoney() money.Amount {
	return a.Money - a.ReservedMoney
}

// AvailableCommodity is the balance not already committed to a resting order.
func (a *Account) AvailableCommodity() int64 {
	return a.Commodity - a.ReservedCommodity
}

// CanReserve reports whether the account can cover intent without going
// negative on the relevant balance, following the <= admission rule: a
// reservation exactly equal to the remaining balance is admissible. A
// market bid is always admissible, since its cost is unknown until it
// matches and is settled directly against Money at that time.
func (a *Account) CanReserve(intent core.OrderIntent) bool {
	switch {
	case intent.Side == core.Bid && intent.IsLimit():
		cost := intent.Price.Mul(intent.Size)
		return cost <= a.AvailableMoney()
	case intent.Side == core.Bid && !intent.IsLimit():
		return true
	case intent.Side == core.Ask:
		return intent.Size <= a.AvailableCommodity()
	default:
		return false
	}
}

// Reserve commits cover for intent. The caller must have already confirmed
// CanReserve; Reserve does not re-check it.
func (a *Account) Reserve(intent core.OrderIntent) {
	switch {
	case intent.Side == core.Bid && intent.IsLimit():
		a.ReservedMoney += intent.Price.Mul(intent.Size)
	case intent.Side == core.Ask:
		a.ReservedCommodity += intent.Size
	}
}

// ClearReservations releases every reservation held by the account. A
// coordinator calls this on every account at the start of a step, before
// that step's orders are admitted, since reservations are recomputed from
// scratch each step rather than tracked order-by-order.
func (a *Account) ClearReservations() {
	a.ReservedMoney = 0
	a.ReservedCommodity = 0
}
