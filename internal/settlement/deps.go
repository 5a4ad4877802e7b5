package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/balance"
	"github.com/fkhayef/splitledger/internal/expense"
	"github.com/fkhayef/splitledger/internal/group"
	"github.com/fkhayef/splitledger/pkg/money"
)

//go:generate mockgen -source=deps.go -destination=deps_mock.go -package=settlement

// GroupStore loads groups and records when they become fully settled
type GroupStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*group.Group, error)
	SetSettledAt(ctx context.Context, id uuid.UUID, settledAt *time.Time) error
}

// ExpenseStore reads a group's expense history and records settlements
type ExpenseStore interface {
	Create(ctx context.Context, e *expense.Expense) error
	ListAllByGroupID(ctx context.Context, groupID uuid.UUID) ([]*expense.Expense, error)
	Stamp(ctx context.Context, groupID uuid.UUID) (expense.Stamp, error)
}

// BalanceCache stores computed balances under a key that changes with every
// new expense
type BalanceCache interface {
	Get(ctx context.Context, key string) (balance.Balances, bool, error)
	Set(ctx context.Context, key string, b balance.Balances) error
}

// Notifier tells members about settlements
type Notifier interface {
	NotifySettlementRecorded(ctx context.Context, recipientID uuid.UUID, amount money.Amount, groupName string, expenseID uuid.UUID) error
	NotifyGroupSettled(ctx context.Context, recipientID uuid.UUID, groupName string, groupID uuid.UUID) error
}
