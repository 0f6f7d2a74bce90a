package agents_test

import (
	"testing"

	"agora/internal/agents"
	"agora/internal/core"
	"agora/internal/ledger"
	"agora/internal/market"
	"agora/internal/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdleProducesNothing(t *testing.T) {
	var a agents.Idle
	intents := a.ProduceOrders(*ledger.NewAccount(10, 10), market.Info{}, market.History{})
	assert.Empty(t, intents)
}

func TestFixedSellerSkipsOffPeriodSteps(t *testing.T) {
	s := agents.FixedSeller{AskSize: 5, AskAmount: 2, Period: 3, InnatePrice: 10}
	account := *ledger.NewAccount(0, 50)

	intents := s.ProduceOrders(account, market.Info{}, market.History{Step: 1})
	assert.Empty(t, intents)
}

func TestFixedSellerUsesMarketPriceOverInnate(t *testing.T) {
	s := agents.FixedSeller{AskSize: 5, AskAmount: 2, Period: 1, InnatePrice: 10}
	account := *ledger.NewAccount(0, 50)
	history := market.History{Step: 1, Transactions: []core.Transaction{{AskGain: 20, BidLoss: 20}}}

	intents := s.ProduceOrders(account, market.Info{}, history)

	require.Len(t, intents, 2)
	for _, intent := range intents {
		require.NotNil(t, intent.Price)
		assert.Equal(t, money.Amount(20), *intent.Price)
		assert.Equal(t, int64(5), intent.Size)
		assert.Equal(t, core.Ask, intent.Side)
	}
}

func TestFixedSellerCapsSizeAtAvailableCommodity(t *testing.T) {
	s := agents.FixedSeller{AskSize: 5, AskAmount: 1, Period: 1, InnatePrice: 10}
	account := *ledger.NewAccount(0, 2)

	intents := s.ProduceOrders(account, market.Info{}, market.History{Step: 1})

	require.Len(t, intents, 1)
	assert.Equal(t, int64(2), intents[0].Size)
}

func TestFixedBuyerSkipsWhenOutOfMoney(t *testing.T) {
	b := agents.FixedBuyer{BidSize: 1, BidAmount: 1, Period: 1, InnatePrice: 10}
	account := *ledger.NewAccount(0, 0)

	intents := b.ProduceOrders(account, market.Info{}, market.History{Step: 1})
	assert.Empty(t, intents)
}

func TestIncrementalBuyerRaisesPriceWhenFullyFilled(t *testing.T) {
	b := &agents.IncrementalBuyer{BidSize: 1, BidAmount: 5, Period: 1, Increment: 2}
	id := market.NewAgentID()
	b.Setup(id, market.Info{})

	account := *ledger.NewAccount(100, 0)
	history := market.History{Step: 1}

	intents := b.ProduceOrders(account, market.Info{}, history)

	require.NotEmpty(t, intents)
	assert.Equal(t, money.Amount(2), *intents[0].Price)
}

func TestIncrementalBuyerLowersPriceWhenOrdersUnfulfilled(t *testing.T) {
	b := &agents.IncrementalBuyer{BidSize: 1, BidAmount: 5, Period: 1, Increment: 2, Price: 10}
	id := market.NewAgentID()
	b.Setup(id, market.Info{})

	account := *ledger.NewAccount(1000, 0)
	stuck := &core.Order{ID: 1, Side: core.Bid}
	history := market.History{
		Step:               1,
		UnfulfilledByAgent: map[market.AgentID][]*core.Order{id: {stuck}},
	}

	intents := b.ProduceOrders(account, market.Info{}, history)

	require.NotEmpty(t, intents)
	assert.Equal(t, money.Amount(8), *intents[0].Price)
}

func TestIncrementalBuyerFallsBackToMarketOrdersAtZeroPrice(t *testing.T) {
	b := &agents.IncrementalBuyer{BidSize: 3, BidAmount: 2, Period: 1, Increment: 5, Price: 3}
	id := market.NewAgentID()
	b.Setup(id, market.Info{})

	account := *ledger.NewAccount(1000, 0)
	stuck := &core.Order{ID: 1, Side: core.Bid}
	history := market.History{
		Step:               1,
		UnfulfilledByAgent: map[market.AgentID][]*core.Order{id: {stuck}},
	}

	intents := b.ProduceOrders(account, market.Info{}, history)

	require.Len(t, intents, 2)
	for _, intent := range intents {
		assert.Nil(t, intent.Price)
		assert.Equal(t, int64(3), intent.Size)
	}
}

func TestIncrementalSellerMirrorsBuyer(t *testing.T) {
	s := &agents.IncrementalSeller{AskSize: 2, AskAmount: 3, Period: 1, Increment: 1}
	id := market.NewAgentID()
	s.Setup(id, market.Info{})

	account := *ledger.NewAccount(0, 10)
	history := market.History{Step: 1}

	intents := s.ProduceOrders(account, market.Info{}, history)

	require.NotEmpty(t, intents)
	for _, intent := range intents {
		assert.Equal(t, core.Ask, intent.Side)
	}
}
