// Package agents provides reference trading strategies that exercise the
// agent contract: an idle agent, fixed-size buyer/seller agents, and
// incremental-price buyer/seller agents that walk their price toward
// whatever level keeps their orders filled.
package agents

import (
	"agora/internal/core"
	"agora/internal/ledger"
	"agora/internal/market"
	"agora/internal/money"
)

// Idle produces no orders. It is useful as a placeholder seat in a
// simulation that only needs some of its participants to trade.
type Idle struct{}

func (Idle) Setup(market.AgentID, market.Info) {}

func (Idle) ProduceOrders(ledger.Account, market.Info, market.History) []core.OrderIntent {
	return nil
}

// FixedSeller posts AskAmount identical asks of AskSize (capped at its
// current commodity) every Period steps, priced at the previous step's market price if one exists, else
// InnatePrice. It produces nothing once its commodity is exhausted.
type FixedSeller struct {
	AskSize     int64
	AskAmount   int64
	Period      uint64
	InnatePrice money.Amount
}

func (FixedSeller) Setup(market.AgentID, market.Info) {}

func (s FixedSeller) ProduceOrders(account ledger.Account, _ market.Info, history market.History) []core.OrderIntent {
	if account.Commodity == 0 || history.Step%s.Period != 0 {
		return nil
	}

	price := s.InnatePrice
	if p, ok := history.MarketPrice(); ok {
		price = p
	}

	size := min(account.Commodity, s.AskSize)
	intents := make([]core.OrderIntent, s.AskAmount)
	for i := range intents {
		intents[i] = core.OrderIntent{Side: core.Ask, Price: &price, Size: size}
	}
	return intents
}

// FixedBuyer posts BidAmount identical bids of BidSize every Period
// steps, priced at the previous step's market price if one exists, else
// InnatePrice. It produces nothing once its money is exhausted.
type FixedBuyer struct {
	BidSize     int64
	BidAmount   int64
	Period      uint64
	InnatePrice money.Amount
}

func (FixedBuyer) Setup(market.AgentID, market.Info) {}

func (b FixedBuyer) ProduceOrders(account ledger.Account, _ market.Info, history market.History) []core.OrderIntent {
	if account.Money == 0 || history.Step%b.Period != 0 {
		return nil
	}

	price := b.InnatePrice
	if p, ok := history.MarketPrice(); ok {
		price = p
	}

	intents := make([]core.OrderIntent, b.BidAmount)
	for i := range intents {
		intents[i] = core.OrderIntent{Side: core.Bid, Price: &price, Size: b.BidSize}
	}
	return intents
}

// IncrementalBuyer walks Price up by Increment whenever its previous bids
// were all filled, and down (floored at zero) whenever any were left
// resting. At a zero price it switches to market bids instead of giving
// up. The count of priced bids is capped by both available funds and
// BidAmount; the zero-price market bids always number BidAmount.
type IncrementalBuyer struct {
	BidSize   int64
	BidAmount int64
	Period    uint64
	Increment money.Amount

	id    market.AgentID
	Price money.Amount
}

func (b *IncrementalBuyer) Setup(id market.AgentID, _ market.Info) {
	b.id = id
}

func (b *IncrementalBuyer) ProduceOrders(account ledger.Account, _ market.Info, history market.History) []core.OrderIntent {
	if history.Step%b.Period != 0 || account.Money == 0 {
		return nil
	}

	if len(history.OwnUnfulfilled(b.id)) > 0 {
		b.Price -= b.Increment
		if b.Price < 0 {
			b.Price = 0
		}
	} else {
		b.Price += b.Increment
	}

	if b.Price <= 0 {
		intents := make([]core.OrderIntent, b.BidAmount)
		for i := range intents {
			intents[i] = core.OrderIntent{Side: core.Bid, Size: b.BidSize}
		}
		return intents
	}

	units := int64(account.Money) / int64(b.Price)
	if units <= 0 {
		return nil
	}

	orderCount := min(units/b.BidSize, b.BidAmount)
	if orderCount <= 0 {
		return nil
	}

	price := b.Price
	intents := make([]core.OrderIntent, orderCount)
	for i := range intents {
		intents[i] = core.OrderIntent{Side: core.Bid, Price: &price, Size: b.BidSize}
	}
	return intents
}

// IncrementalSeller is IncrementalBuyer's mirror image on the ask side:
// it walks Price up when its previous asks all filled, down when any were
// left resting, and switches to market asks at a zero price. The count of
// priced asks is capped by both available commodity and AskAmount; the
// zero-price market asks always number AskAmount.
type IncrementalSeller struct {
	AskSize   int64
	AskAmount int64
	Period    uint64
	Increment money.Amount

	id    market.AgentID
	Price money.Amount
}

func (s *IncrementalSeller) Setup(id market.AgentID, _ market.Info) {
	s.id = id
}

func (s *IncrementalSeller) ProduceOrders(account ledger.Account, _ market.Info, history market.History) []core.OrderIntent {
	if history.Step%s.Period != 0 || account.Commodity == 0 {
		return nil
	}

	if len(history.OwnUnfulfilled(s.id)) > 0 {
		s.Price -= s.Increment
		if s.Price < 0 {
			s.Price = 0
		}
	} else {
		s.Price += s.Increment
	}

	if s.Price <= 0 {
		intents := make([]core.OrderIntent, s.AskAmount)
		for i := range intents {
			intents[i] = core.OrderIntent{Side: core.Ask, Size: s.AskSize}
		}
		return intents
	}

	orderCount := min(account.Commodity/s.AskSize, s.AskAmount)
	if orderCount <= 0 {
		return nil
	}

	price := s.Price
	intents := make([]core.OrderIntent, orderCount)
	for i := range intents {
		intents[i] = core.OrderIntent{Side: core.Ask, Price: &price, Size: s.AskSize}
	}
	return intents
}
