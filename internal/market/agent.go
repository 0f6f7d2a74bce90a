package market

import (
	"agora/internal/core"
	"agora/internal/ledger"

	"github.com/google/uuid"
)

// AgentID identifies a registered agent. Ids are minted with
// github.com/google/uuid at registration time, rather than assigned a
// sequential counter: nothing in the matching or settlement path compares
// or orders agent ids, so there is no reason to prefer a dense counter
// over an opaque identifier.
type AgentID string

// NewAgentID mints a fresh, unique agent identifier.
func NewAgentID() AgentID {
	return AgentID(uuid.New().String())
}

// Info describes the market an agent is trading in: its display name and
// the label of the single commodity being traded.
type Info struct {
	Name      string
	Commodity string
}

// Agent is the callback contract a trading strategy implements. Setup is
// called once at registration; ProduceOrders is called once per step with
// a read-only snapshot of the agent's own account and the previous step's
// History.
type Agent interface {
	Setup(id AgentID, info Info)
	ProduceOrders(account ledger.Account, info Info, previous History) []core.OrderIntent
}
