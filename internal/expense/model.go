package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/pkg/money"
)

// SettlementDescription marks an expense that records a payment between members
const SettlementDescription = "Settlement"

// Expense represents an expense in a group. The split amounts always add up
// to Amount.
type Expense struct {
	ID          uuid.UUID
	GroupID     uuid.UUID
	Description string
	Amount      money.Amount
	PaidBy      uuid.UUID
	SplitType   split.SplitType
	Splits      []Split
	CreatedAt   time.Time
}

// Split is one member's portion of an expense
type Split struct {
	UserID uuid.UUID
	Amount money.Amount
}

// IsSettlement reports whether the expense records a settle up payment
func (e *Expense) IsSettlement() bool {
	return e.Description == SettlementDescription && len(e.Splits) == 1
}

// SplitTotal adds up the split amounts
func (e *Expense) SplitTotal() money.Amount {
	var total money.Amount
	for _, s := range e.Splits {
		total += s.Amount
	}
	return total
}

// Stamp identifies the state of a group's expense history. It changes
// whenever an expense is added.
type Stamp struct {
	Count         int
	LastCreatedAt int64 // unix milliseconds, 0 when there are no expenses
}
