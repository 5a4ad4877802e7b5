package balance_test

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/splitledger/internal/balance"
	"github.com/fkhayef/splitledger/pkg/money"
)

func TestSimplify(t *testing.T) {
	type testCase struct {
		name     string
		balances balance.Balances
		want     []balance.Transfer
	}

	tests := []testCase{
		{
			name:     "OneCreditorTwoDebtors",
			balances: balance.Balances{userA: 2000, userB: -1000, userC: -1000},
			want: []balance.Transfer{
				{From: userB, To: userA, Amount: 1000},
				{From: userC, To: userA, Amount: 1000},
			},
		},
		{
			name:     "DebtorSpansCreditors",
			balances: balance.Balances{userA: 700, userB: -1000, userC: 300},
			want: []balance.Transfer{
				{From: userB, To: userA, Amount: 700},
				{From: userB, To: userC, Amount: 300},
			},
		},
		{
			name:     "ExactPairsAdvanceBothCursors",
			balances: balance.Balances{userA: -500, userB: 500, userC: -250, userD: 250},
			want: []balance.Transfer{
				{From: userA, To: userB, Amount: 500},
				{From: userC, To: userD, Amount: 250},
			},
		},
		{
			name:     "AllSettled",
			balances: balance.Balances{userA: 0, userB: 0},
		},
		{
			name:     "Empty",
			balances: balance.Balances{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, balance.Simplify(tc.balances))
		})
	}
}

func TestSimplifyIsDeterministic(t *testing.T) {
	b := balance.Balances{userA: 1234, userB: -999, userC: -235, userD: 0}

	first := balance.Simplify(b)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, balance.Simplify(b))
	}
}

func TestSimplifySettlesEveryone(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 500; run++ {
		n := 2 + rng.Intn(8)
		b := make(balance.Balances, n)
		var sum money.Amount
		ids := make([]uuid.UUID, n)
		for i := range ids {
			ids[i] = uuid.New()
		}
		for _, id := range ids[:n-1] {
			v := money.Amount(rng.Int63n(20001) - 10000)
			b[id] = v
			sum += v
		}
		b[ids[n-1]] = -sum

		transfers := balance.Simplify(b)

		remaining := make(balance.Balances, n)
		nonZero := 0
		for id, v := range b {
			remaining[id] = v
			if v != 0 {
				nonZero++
			}
		}
		for _, tr := range transfers {
			require.Positive(t, int64(tr.Amount))
			remaining[tr.From] += tr.Amount
			remaining[tr.To] -= tr.Amount
		}

		require.True(t, remaining.AllZero(), "run %d: %v", run, remaining)
		if nonZero > 0 {
			require.LessOrEqual(t, len(transfers), nonZero-1, "run %d", run)
		}
	}
}
