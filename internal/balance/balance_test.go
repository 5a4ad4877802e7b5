package balance_test

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/splitledger/internal/balance"
	"github.com/fkhayef/splitledger/internal/expense"
	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/pkg/money"
)

var (
	userA = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	userB = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	userC = uuid.MustParse("00000000-0000-0000-0000-00000000000c")
	userD = uuid.MustParse("00000000-0000-0000-0000-00000000000d")
)

func equalExpense(t *testing.T, paidBy uuid.UUID, total string, members ...uuid.UUID) *expense.Expense {
	t.Helper()

	inputs := make([]split.SplitInput, len(members))
	for i, m := range members {
		inputs[i] = split.SplitInput{UserID: m}
	}
	shares, err := (&split.EqualStrategy{}).Calculate(money.MustParse(total), inputs)
	require.NoError(t, err)

	e := &expense.Expense{ID: uuid.New(), PaidBy: paidBy, Amount: money.MustParse(total), SplitType: split.SplitTypeEqual}
	for _, s := range shares {
		e.Splits = append(e.Splits, expense.Split{UserID: s.UserID, Amount: s.Amount})
	}
	return e
}

func TestCompute(t *testing.T) {
	dinner := equalExpense(t, userA, "30", userA, userB, userC)

	got := balance.Compute([]uuid.UUID{userA, userB, userC, userD}, []*expense.Expense{dinner})

	assert.Equal(t, balance.Balances{userA: 2000, userB: -1000, userC: -1000, userD: 0}, got)
	assert.Zero(t, got.Total())
	assert.False(t, got.AllZero())
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	e := equalExpense(t, userA, "10.01", userA, userB, userC)
	before := append([]expense.Split(nil), e.Splits...)

	balance.Compute([]uuid.UUID{userA, userB, userC}, []*expense.Expense{e})

	assert.Equal(t, before, e.Splits)
	assert.Equal(t, money.Amount(1001), e.Amount)
}

func TestComputeWithSettlement(t *testing.T) {
	dinner := equalExpense(t, userA, "30", userA, userB, userC)
	settleB := &expense.Expense{
		PaidBy:      userB,
		Amount:      1000,
		Description: expense.SettlementDescription,
		Splits:      []expense.Split{{UserID: userA, Amount: 1000}},
	}

	got := balance.Compute([]uuid.UUID{userA, userB, userC}, []*expense.Expense{dinner, settleB})

	assert.Equal(t, balance.Balances{userA: 1000, userB: 0, userC: -1000}, got)
}

func TestComputeOrderIndependent(t *testing.T) {
	members := []uuid.UUID{userA, userB, userC}
	history := []*expense.Expense{
		equalExpense(t, userA, "30", userA, userB, userC),
		equalExpense(t, userB, "10.01", userA, userB, userC),
		equalExpense(t, userC, "7", userA, userC),
	}
	reversed := []*expense.Expense{history[2], history[1], history[0]}

	assert.Equal(t, balance.Compute(members, history), balance.Compute(members, reversed))
}

func TestComputeSumsToZero(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	members := []uuid.UUID{userA, userB, userC, userD}

	for run := 0; run < 200; run++ {
		var history []*expense.Expense
		count := rng.Intn(20)
		for i := 0; i < count; i++ {
			n := 1 + rng.Intn(len(members))
			perm := rng.Perm(len(members))[:n]
			participants := make([]uuid.UUID, n)
			for k, idx := range perm {
				participants[k] = members[idx]
			}
			total := money.Amount(1 + rng.Int63n(100000))
			history = append(history, equalExpense(t, members[rng.Intn(len(members))], total.String(), participants...))
		}

		b := balance.Compute(members, history)
		require.Zero(t, b.Total(), "run %d", run)
	}
}

func TestSorted(t *testing.T) {
	b := balance.Balances{userC: -5, userA: 10, userB: -5}

	assert.Equal(t, []balance.Entry{
		{UserID: userA, Net: 10},
		{UserID: userB, Net: -5},
		{UserID: userC, Net: -5},
	}, b.Sorted())
}

func TestAllZero(t *testing.T) {
	assert.True(t, balance.Balances{}.AllZero())
	assert.True(t, balance.Balances{userA: 0, userB: 0}.AllZero())
	assert.False(t, balance.Balances{userA: 1, userB: -1}.AllZero())
}
