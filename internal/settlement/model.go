package settlement

import (
	"time"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/balance"
	"github.com/fkhayef/splitledger/internal/expense"
	"github.com/fkhayef/splitledger/pkg/money"
)

// Settlement is a recorded payment from one member to another. It is stored
// as an expense paid by the payer with a single split for the receiver.
type Settlement struct {
	ID         uuid.UUID
	GroupID    uuid.UUID
	PayerID    uuid.UUID
	ReceiverID uuid.UUID
	Amount     money.Amount
	CreatedAt  time.Time

	// Populated via JOIN
	PayerName    string
	ReceiverName string
}

// Report holds every member's net balance and the transfers that would
// settle the group
type Report struct {
	Balances    []balance.Entry
	Settlements []balance.Transfer
}

// Result is the outcome of a settle up
type Result struct {
	Expense      *expense.Expense
	GroupSettled bool
}
