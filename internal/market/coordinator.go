package market

import (
	"fmt"

	"agora/internal/core"
	"agora/internal/ledger"
	"agora/internal/money"

	"github.com/rs/zerolog"
)

type registration struct {
	id    AgentID
	agent Agent
}

// Market is the coordinator: it owns the order book, every account, the
// map from a resting order back to the account that submitted it, and the
// published history of the most recently completed step.
type Market struct {
	info Info
	book *core.OrderBook

	accounts map[AgentID]*ledger.Account
	house    *ledger.Account
	ownerOf  map[uint64]AgentID

	agents []registration

	step    uint64
	history History

	clearBookEachStep bool
	log               zerolog.Logger
}

// Option configures a Market at construction time.
type Option func(*Market)

// WithClearBookEachStep controls whether unfulfilled orders are expired at
// the end of every step (true) or left resting for future steps to match
// against (false, the default).
func WithClearBookEachStep(clear bool) Option {
	return func(m *Market) { m.clearBookEachStep = clear }
}

// WithLogger overrides the coordinator's logger, which otherwise discards
// everything.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Market) { m.log = log }
}

// New constructs an empty Market trading the given commodity.
func New(info Info, opts ...Option) *Market {
	m := &Market{
		info:     info,
		book:     core.NewOrderBook(),
		accounts: make(map[AgentID]*ledger.Account),
		house:    ledger.NewAccount(0, 0),
		ownerOf:  make(map[uint64]AgentID),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegisterAgent mints a fresh AgentID, opens account for it, and adds it
// to the roster solicited every step.
func (m *Market) RegisterAgent(agent Agent, account *ledger.Account) AgentID {
	id := NewAgentID()
	m.accounts[id] = account
	agent.Setup(id, m.info)
	m.agents = append(m.agents, registration{id: id, agent: agent})
	return id
}

// Accounts returns the live account table. Callers must not retain
// pointers into it across a Step call that may clear reservations.
func (m *Market) Accounts() map[AgentID]*ledger.Account {
	return m.accounts
}

// House returns the house account, which accrues the diff of every
// limit-against-limit match.
func (m *Market) House() *ledger.Account {
	return m.house
}

// History returns the most recently published step history.
func (m *Market) History() History {
	return m.history
}

// Step runs one full cycle: solicit order intents from every registered
// agent, admit and reserve the ones each agent can afford, run the
// three-phase match, settle the resulting transactions, and publish a new
// History for the next step.
func (m *Market) Step() History {
	if m.clearBookEachStep {
		m.book.Clear()
	}

	m.ownerOf = make(map[uint64]AgentID)
	for _, acc := range m.accounts {
		acc.ClearReservations()
	}

	var rejected []*core.Order

	for _, reg := range m.agents {
		account, ok := m.accounts[reg.id]
		if !ok {
			continue
		}

		intents := reg.agent.ProduceOrders(*account, m.info, m.history)
		for _, intent := range intents {
			order, err := m.book.Admit(intent)
			if err != nil {
				m.log.Debug().Str("agent", string(reg.id)).Err(err).Msg("order rejected at admission")
				continue
			}

			if !account.CanReserve(intent) {
				m.log.Debug().Str("agent", string(reg.id)).Uint64("order", order.ID).Msg("order rejected: insufficient reservation")
				rejected = append(rejected, order)
				continue
			}

			account.Reserve(intent)
			m.ownerOf[order.ID] = reg.id
			m.book.Insert(order)
		}
	}

	prevPrice, havePrevPrice := m.history.MarketPrice()

	primary := m.book.MatchMarketAgainstLimit()
	m.settleAll(primary)

	fallback, haveFallback := marketPriceOf(primary)
	if !haveFallback {
		fallback, haveFallback = prevPrice, havePrevPrice
	}
	secondary := m.book.MatchMarketAgainstMarket(fallback, haveFallback)
	m.settleAll(secondary)

	limitTxs := m.book.MatchLimitAgainstLimit()
	m.settleAll(limitTxs)

	transactions := make([]core.Transaction, 0, len(primary)+len(secondary)+len(limitTxs))
	transactions = append(transactions, primary...)
	transactions = append(transactions, secondary...)
	transactions = append(transactions, limitTxs...)

	unfulfilled := ledger.SortResidue(m.book.Snapshot())
	byAgent := make(map[AgentID][]*core.Order)
	for _, o := range unfulfilled {
		owner, ok := m.ownerOf[o.ID]
		if !ok {
			continue
		}
		byAgent[owner] = append(byAgent[owner], o)
	}

	m.step++
	m.history = History{
		Step:               m.step,
		Transactions:       transactions,
		RejectedOrders:     rejected,
		UnfulfilledOrders:  unfulfilled,
		UnfulfilledByAgent: byAgent,
	}

	return m.history
}

// marketPriceOf mirrors History.MarketPrice for a bare transaction slice,
// used to derive phase B's fallback price directly from phase A's output
// before that output has been wrapped into a History.
func marketPriceOf(txs []core.Transaction) (money.Amount, bool) {
	if len(txs) == 0 {
		return 0, false
	}
	var sum money.Amount
	for _, tx := range txs {
		sum += (tx.AskGain + tx.BidLoss) / 2
	}
	return sum / money.Amount(len(txs)), true
}

// settleAll applies settle to every transaction in order.
func (m *Market) settleAll(txs []core.Transaction) {
	for _, tx := range txs {
		m.settle(tx)
	}
}

// settle moves funds and commodity between the bidder, the asker, and the
// house account. It panics if either side's owner is unknown: every order
// resting in the book was admitted through Step, which always records an
// owner, so a missing owner means the book and ownerOf map have
// desynchronized.
func (m *Market) settle(tx core.Transaction) {
	bidderID, ok := m.ownerOf[tx.BidID]
	if !ok {
		panic(fmt.Sprintf("transaction %s has no bidder", tx))
	}
	askerID, ok := m.ownerOf[tx.AskID]
	if !ok {
		panic(fmt.Sprintf("transaction %s has no asker", tx))
	}

	bidder, ok := m.accounts[bidderID]
	if !ok {
		panic(fmt.Sprintf("bidder of %s has no account", tx))
	}
	asker, ok := m.accounts[askerID]
	if !ok {
		panic(fmt.Sprintf("asker of %s has no account", tx))
	}

	m.house.Money += tx.Diff

	bidder.Commodity += tx.Size
	bidder.Money -= tx.BidLoss

	asker.Commodity -= tx.Size
	asker.Money += tx.AskGain
}
