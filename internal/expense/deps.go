package expense

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/group"
	"github.com/fkhayef/splitledger/pkg/money"
)

//go:generate mockgen -source=deps.go -destination=deps_mock.go -package=expense

// GroupReader loads groups and tracks when they were last fully settled
type GroupReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*group.Group, error)
	SetSettledAt(ctx context.Context, id uuid.UUID, settledAt *time.Time) error
}

// Notifier tells members about expenses that involve them
type Notifier interface {
	NotifyExpenseAdded(ctx context.Context, recipientID uuid.UUID, description string, share money.Amount, expenseID uuid.UUID) error
}
