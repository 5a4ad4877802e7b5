package group

import (
	"context"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/user"
	"github.com/fkhayef/splitledger/pkg/money"
)

//go:generate mockgen -source=deps.go -destination=deps_mock.go -package=group

// BalanceSource computes every member's net balance in a group
type BalanceSource interface {
	MemberBalances(ctx context.Context, g *Group) (map[uuid.UUID]money.Amount, error)
}

// UserFinder looks up users by email
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// Notifier tells users about changes to their groups
type Notifier interface {
	NotifyMemberAdded(ctx context.Context, recipientID uuid.UUID, groupName string, groupID uuid.UUID) error
	NotifyMemberRemoved(ctx context.Context, recipientID uuid.UUID, groupName string, groupID uuid.UUID) error
}
