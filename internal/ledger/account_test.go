package ledger_test

import (
	"testing"

	"agora/internal/core"
	"agora/internal/ledger"
	"agora/internal/money"

	"github.com/stretchr/testify/assert"
)

func TestCanReserveLimitBidExactBalance(t *testing.T) {
	acc := ledger.NewAccount(10, 0)
	price := money.Amount(5)
	intent := core.OrderIntent{Side: core.Bid, Price: &price, Size: 2}

	assert.True(t, acc.CanReserve(intent))
	acc.Reserve(intent)
	assert.Equal(t, money.Amount(10), acc.ReservedMoney)
	assert.Equal(t, money.Amount(0), acc.AvailableMoney())
}

func TestCanReserveLimitBidInsufficientBalance(t *testing.T) {
	acc := ledger.NewAccount(9, 0)
	price := money.Amount(5)
	intent := core.OrderIntent{Side: core.Bid, Price: &price, Size: 2}

	assert.False(t, acc.CanReserve(intent))
}

func TestCanReserveAskExactBalance(t *testing.T) {
	acc := ledger.NewAccount(0, 3)
	price := money.Amount(1)
	intent := core.OrderIntent{Side: core.Ask, Price: &price, Size: 3}

	assert.True(t, acc.CanReserve(intent))
	acc.Reserve(intent)
	assert.Equal(t, int64(0), acc.AvailableCommodity())
}

func TestMarketBidAlwaysReservable(t *testing.T) {
	acc := ledger.NewAccount(0, 0)
	intent := core.OrderIntent{Side: core.Bid, Size: 100}

	assert.True(t, acc.CanReserve(intent))
}

func TestClearReservationsResetsBothBalances(t *testing.T) {
	acc := ledger.NewAccount(10, 10)
	price := money.Amount(2)
	acc.Reserve(core.OrderIntent{Side: core.Bid, Price: &price, Size: 3})
	acc.Reserve(core.OrderIntent{Side: core.Ask, Price: &price, Size: 4})

	acc.ClearReservations()

	assert.Equal(t, money.Amount(0), acc.ReservedMoney)
	assert.Equal(t, int64(0), acc.ReservedCommodity)
	assert.Equal(t, acc.Money, acc.AvailableMoney())
	assert.Equal(t, acc.Commodity, acc.AvailableCommodity())
}

func TestSortResidueOrdersBidsHighestFirst(t *testing.T) {
	p10 := money.Amount(10)
	p20 := money.Amount(20)
	orders := []*core.Order{
		{ID: 0, Timestamp: 0, Side: core.Bid, Price: &p10, Size: 1},
		{ID: 1, Timestamp: 1, Side: core.Bid, Price: &p20, Size: 1},
	}

	sorted := ledger.SortResidue(orders)

	assert.Equal(t, uint64(1), sorted[0].ID)
	assert.Equal(t, uint64(0), sorted[1].ID)
}

func TestSortResidueOrdersAsksLowestFirst(t *testing.T) {
	p10 := money.Amount(10)
	p20 := money.Amount(20)
	orders := []*core.Order{
		{ID: 0, Timestamp: 0, Side: core.Ask, Price: &p20, Size: 1},
		{ID: 1, Timestamp: 1, Side: core.Ask, Price: &p10, Size: 1},
	}

	sorted := ledger.SortResidue(orders)

	assert.Equal(t, uint64(1), sorted[0].ID)
	assert.Equal(t, uint64(0), sorted[1].ID)
}
