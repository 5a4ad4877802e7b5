package expense_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fkhayef/splitledger/internal/database/databasetest"
	"github.com/fkhayef/splitledger/internal/expense"
	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/internal/group"
	"github.com/fkhayef/splitledger/internal/grouplock"
	"github.com/fkhayef/splitledger/internal/user"
	"github.com/fkhayef/splitledger/pkg/apperr"
	"github.com/fkhayef/splitledger/pkg/money"
)

type fixture struct {
	svc      *expense.Service
	repo     *expense.Repository
	groups   *group.Repository
	notifier *expense.MockNotifier
	group    *group.Group
	alice    uuid.UUID
	bob      uuid.UUID
	carol    uuid.UUID
	outsider uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := databasetest.Open(t)

	users := user.NewRepository(db)
	ids := make([]uuid.UUID, 4)
	for i, name := range []string{"alice", "bob", "carol", "dave"} {
		u := &user.User{ID: uuid.New(), Name: name, Email: name + "@example.com", PasswordHash: "x", CreatedAt: time.Now().UTC()}
		require.NoError(t, users.Create(ctx, u))
		ids[i] = u.ID
	}

	groups := group.NewRepository(db)
	g := &group.Group{ID: uuid.New(), Name: "Trip", CreatedBy: ids[0], Members: ids[:3], CreatedAt: time.Now().UTC()}
	require.NoError(t, groups.Create(ctx, g))

	ctrl := gomock.NewController(t)
	notifier := expense.NewMockNotifier(ctrl)
	repo := expense.NewRepository(db)

	return &fixture{
		svc:      expense.NewService(repo, groups, split.NewSplitStrategyFactory(), notifier, grouplock.New()),
		repo:     repo,
		groups:   groups,
		notifier: notifier,
		group:    g,
		alice:    ids[0],
		bob:      ids[1],
		carol:    ids[2],
		outsider: ids[3],
	}
}

func TestService_CreateEqual(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.notifier.EXPECT().NotifyExpenseAdded(gomock.Any(), f.bob, "Dinner", money.Amount(3333), gomock.Any()).Return(nil)
	f.notifier.EXPECT().NotifyExpenseAdded(gomock.Any(), f.carol, "Dinner", money.Amount(3333), gomock.Any()).Return(nil)

	e, err := f.svc.Create(ctx, f.group.ID, f.alice, &expense.CreateExpenseRequest{
		Description: " Dinner ",
		Amount:      money.MustParse("100"),
		SplitType:   split.SplitTypeEqual,
		Splits:      []split.SplitInput{{UserID: f.alice}, {UserID: f.bob}, {UserID: f.carol}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Dinner", e.Description)
	assert.Equal(t, f.alice, e.PaidBy)
	assert.Equal(t, e.Amount, e.SplitTotal())
	assert.Equal(t, []expense.Split{
		{UserID: f.alice, Amount: 3334},
		{UserID: f.bob, Amount: 3333},
		{UserID: f.carol, Amount: 3333},
	}, e.Splits)

	stored, err := f.repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, e.Splits, stored.Splits)
	assert.Equal(t, split.SplitTypeEqual, stored.SplitType)
}

func TestService_CreateWithExplicitPayer(t *testing.T) {
	f := newFixture(t)

	f.notifier.EXPECT().NotifyExpenseAdded(gomock.Any(), f.alice, "Taxi", money.Amount(1250), gomock.Any()).Return(nil)

	e, err := f.svc.Create(context.Background(), f.group.ID, f.alice, &expense.CreateExpenseRequest{
		Description: "Taxi",
		Amount:      money.MustParse("20"),
		PaidBy:      &f.bob,
		SplitType:   split.SplitTypeExact,
		Splits:      []split.SplitInput{{UserID: f.alice, Amount: amt("12.50")}, {UserID: f.bob, Amount: amt("7.50")}},
	})
	require.NoError(t, err)
	assert.Equal(t, f.bob, e.PaidBy)
}

func TestService_CreateErrors(t *testing.T) {
	type testCase struct {
		name     string
		groupID  func(f *fixture) uuid.UUID
		caller   func(f *fixture) uuid.UUID
		req      func(f *fixture) *expense.CreateExpenseRequest
		wantErr  error
		wantKind apperr.Kind
	}

	valid := func(f *fixture) *expense.CreateExpenseRequest {
		return &expense.CreateExpenseRequest{
			Description: "Dinner", Amount: money.MustParse("10"), SplitType: split.SplitTypeEqual,
			Splits: []split.SplitInput{{UserID: f.alice}, {UserID: f.bob}},
		}
	}
	groupID := func(f *fixture) uuid.UUID { return f.group.ID }
	alice := func(f *fixture) uuid.UUID { return f.alice }

	tests := []testCase{
		{
			name:     "UnknownGroup",
			groupID:  func(*fixture) uuid.UUID { return uuid.New() },
			caller:   alice,
			req:      valid,
			wantErr:  group.ErrGroupNotFound,
			wantKind: apperr.KindNotFound,
		},
		{
			name:     "CallerNotMember",
			groupID:  groupID,
			caller:   func(f *fixture) uuid.UUID { return f.outsider },
			req:      valid,
			wantErr:  group.ErrNotMember,
			wantKind: apperr.KindAuthorization,
		},
		{
			name:    "SplitUserNotMember",
			groupID: groupID,
			caller:  alice,
			req: func(f *fixture) *expense.CreateExpenseRequest {
				r := valid(f)
				r.Splits = append(r.Splits, split.SplitInput{UserID: f.outsider})
				return r
			},
			wantErr:  expense.ErrSplitUserNotMember,
			wantKind: apperr.KindValidation,
		},
		{
			name:    "ExactMismatch",
			groupID: groupID,
			caller:  alice,
			req: func(f *fixture) *expense.CreateExpenseRequest {
				return &expense.CreateExpenseRequest{
					Description: "Taxi", Amount: money.MustParse("20"), SplitType: split.SplitTypeExact,
					Splits: []split.SplitInput{{UserID: f.alice, Amount: amt("10")}, {UserID: f.bob, Amount: amt("9.99")}},
				}
			},
			wantErr:  split.ErrSplitTotalMismatch,
			wantKind: apperr.KindValidation,
		},
		{
			name:    "SettlementLookalike",
			groupID: groupID,
			caller:  alice,
			req: func(f *fixture) *expense.CreateExpenseRequest {
				return &expense.CreateExpenseRequest{
					Description: "Settlement", Amount: money.MustParse("5"), SplitType: split.SplitTypeExact,
					Splits: []split.SplitInput{{UserID: f.bob, Amount: amt("5")}},
				}
			},
			wantErr:  expense.ErrReservedDescription,
			wantKind: apperr.KindValidation,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.Create(context.Background(), tc.groupID(f), tc.caller(f), tc.req(f))
			require.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.wantKind, apperr.KindOf(err))

			stamp, err := f.repo.Stamp(context.Background(), f.group.ID)
			require.NoError(t, err)
			assert.Zero(t, stamp.Count)
		})
	}
}

func TestService_CreateReopensSettledGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	settledAt := time.Now().UTC()
	require.NoError(t, f.groups.SetSettledAt(ctx, f.group.ID, &settledAt))

	f.notifier.EXPECT().NotifyExpenseAdded(gomock.Any(), f.bob, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.svc.Create(ctx, f.group.ID, f.alice, &expense.CreateExpenseRequest{
		Description: "Coffee", Amount: money.MustParse("5"), SplitType: split.SplitTypeEqual,
		Splits: []split.SplitInput{{UserID: f.alice}, {UserID: f.bob}},
	})
	require.NoError(t, err)

	g, err := f.groups.GetByID(ctx, f.group.ID)
	require.NoError(t, err)
	assert.Nil(t, g.SettledAt)
}

func TestService_ListAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.notifier.EXPECT().NotifyExpenseAdded(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	var created []*expense.Expense
	for _, desc := range []string{"One", "Two", "Three"} {
		e, err := f.svc.Create(ctx, f.group.ID, f.alice, &expense.CreateExpenseRequest{
			Description: desc, Amount: money.MustParse("9"), SplitType: split.SplitTypeEqual,
			Splits: []split.SplitInput{{UserID: f.alice}, {UserID: f.bob}, {UserID: f.carol}},
		})
		require.NoError(t, err)
		created = append(created, e)
	}

	page, total, err := f.svc.ListByGroupID(ctx, f.group.ID, f.bob, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 2)
	for _, e := range page {
		assert.Len(t, e.Splits, 3)
	}

	rest, _, err := f.svc.ListByGroupID(ctx, f.group.ID, f.bob, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	_, _, err = f.svc.ListByGroupID(ctx, f.group.ID, f.outsider, 1, 20)
	assert.ErrorIs(t, err, group.ErrNotMember)

	got, err := f.svc.GetByID(ctx, f.group.ID, created[1].ID, f.carol)
	require.NoError(t, err)
	assert.Equal(t, "Two", got.Description)

	_, err = f.svc.GetByID(ctx, f.group.ID, uuid.New(), f.carol)
	assert.ErrorIs(t, err, expense.ErrExpenseNotFound)

	stamp, err := f.repo.Stamp(ctx, f.group.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stamp.Count)
	assert.Positive(t, stamp.LastCreatedAt)

	all, err := f.repo.ListAllByGroupID(ctx, f.group.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.notifier.EXPECT().NotifyExpenseAdded(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	e, err := f.svc.Create(ctx, f.group.ID, f.alice, &expense.CreateExpenseRequest{
		Description: "Groceries", Amount: money.MustParse("30"), SplitType: split.SplitTypeEqual,
		Splits: []split.SplitInput{{UserID: f.alice}, {UserID: f.bob}, {UserID: f.carol}},
	})
	require.NoError(t, err)

	settlement := &expense.Expense{
		ID:          uuid.New(),
		GroupID:     f.group.ID,
		Description: expense.SettlementDescription,
		Amount:      1000,
		PaidBy:      f.bob,
		SplitType:   split.SplitTypeExact,
		Splits:      []expense.Split{{UserID: f.alice, Amount: 1000}},
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, f.repo.Create(ctx, settlement))

	settledAt := time.Now().UTC()
	require.NoError(t, f.groups.SetSettledAt(ctx, f.group.ID, &settledAt))

	before, err := f.repo.Stamp(ctx, f.group.ID)
	require.NoError(t, err)

	err = f.svc.Delete(ctx, f.group.ID, e.ID, f.bob)
	require.ErrorIs(t, err, expense.ErrNotPayer)
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))

	err = f.svc.Delete(ctx, f.group.ID, settlement.ID, f.bob)
	require.ErrorIs(t, err, expense.ErrCannotDeleteSettlement)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	err = f.svc.Delete(ctx, f.group.ID, e.ID, f.outsider)
	assert.ErrorIs(t, err, group.ErrNotMember)

	err = f.svc.Delete(ctx, f.group.ID, uuid.New(), f.alice)
	assert.ErrorIs(t, err, expense.ErrExpenseNotFound)

	require.NoError(t, f.svc.Delete(ctx, f.group.ID, e.ID, f.alice))

	_, err = f.svc.GetByID(ctx, f.group.ID, e.ID, f.alice)
	assert.ErrorIs(t, err, expense.ErrExpenseNotFound)

	after, err := f.repo.Stamp(ctx, f.group.ID)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
	assert.Equal(t, 1, after.Count)

	g, err := f.groups.GetByID(ctx, f.group.ID)
	require.NoError(t, err)
	assert.Nil(t, g.SettledAt)
}
