package settlement_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/splitledger/internal/database/databasetest"
	"github.com/fkhayef/splitledger/internal/expense"
	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/internal/group"
	"github.com/fkhayef/splitledger/internal/settlement"
	"github.com/fkhayef/splitledger/internal/user"
)

func TestRepository_ListByGroupID(t *testing.T) {
	ctx := context.Background()
	db := databasetest.Open(t)
	now := time.Now().UTC()

	users := user.NewRepository(db)
	ana := &user.User{ID: uuid.New(), Name: "Ana", Email: "ana@example.com", PasswordHash: "x", CreatedAt: now}
	ben := &user.User{ID: uuid.New(), Name: "Ben", Email: "ben@example.com", PasswordHash: "x", CreatedAt: now}
	require.NoError(t, users.Create(ctx, ana))
	require.NoError(t, users.Create(ctx, ben))

	g := &group.Group{ID: uuid.New(), Name: "Flat", CreatedBy: ana.ID, Members: []uuid.UUID{ana.ID, ben.ID}, CreatedAt: now}
	require.NoError(t, group.NewRepository(db).Create(ctx, g))

	expenses := expense.NewRepository(db)
	require.NoError(t, expenses.Create(ctx, &expense.Expense{
		ID: uuid.New(), GroupID: g.ID, Description: "Groceries", Amount: 5000, PaidBy: ana.ID,
		SplitType: split.SplitTypeEqual, CreatedAt: now,
		Splits: []expense.Split{{UserID: ana.ID, Amount: 2500}, {UserID: ben.ID, Amount: 2500}},
	}))
	settled := &expense.Expense{
		ID: uuid.New(), GroupID: g.ID, Description: expense.SettlementDescription, Amount: 2500, PaidBy: ben.ID,
		SplitType: split.SplitTypeExact, CreatedAt: now.Add(time.Second),
		Splits: []expense.Split{{UserID: ana.ID, Amount: 2500}},
	}
	require.NoError(t, expenses.Create(ctx, settled))

	got, total, err := settlement.NewRepository(db).ListByGroupID(ctx, g.ID, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, settled.ID, s.ID)
	assert.Equal(t, ben.ID, s.PayerID)
	assert.Equal(t, "Ben", s.PayerName)
	assert.Equal(t, ana.ID, s.ReceiverID)
	assert.Equal(t, "Ana", s.ReceiverName)
	assert.EqualValues(t, 2500, s.Amount)
}
