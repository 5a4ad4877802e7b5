// Package balance folds a group's expense history into net balances and
// turns those balances into a short list of transfers that settles them.
//
// Everything here is pure: inputs are never mutated and all arithmetic is in
// integer cents.
package balance

import (
	"bytes"
	"sort"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/expense"
	"github.com/fkhayef/splitledger/pkg/money"
)

// Balances maps a member to their net balance. Positive means the member is
// owed money, negative means they owe.
type Balances map[uuid.UUID]money.Amount

// Entry is one member's net balance
type Entry struct {
	UserID uuid.UUID
	Net    money.Amount
}

// Compute returns the net balance of every member. Each expense credits its
// payer with the full amount and debits every split member with their share.
// Members without any expense activity are present with zero.
func Compute(members []uuid.UUID, expenses []*expense.Expense) Balances {
	b := make(Balances, len(members))
	for _, m := range members {
		b[m] = 0
	}

	for _, e := range expenses {
		b[e.PaidBy] += e.Amount
		for _, s := range e.Splits {
			b[s.UserID] -= s.Amount
		}
	}
	return b
}

// Total adds up every balance. It is zero for any history built from
// expenses whose splits add up to their amount.
func (b Balances) Total() money.Amount {
	var total money.Amount
	for _, v := range b {
		total += v
	}
	return total
}

// AllZero reports whether every balance is exactly zero cents
func (b Balances) AllZero() bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// Sorted returns the balances ordered by member ID
func (b Balances) Sorted() []Entry {
	entries := make([]Entry, 0, len(b))
	for id, net := range b {
		entries = append(entries, Entry{UserID: id, Net: net})
	}
	sort.Slice(entries, func(i, j int) bool {
		return less(entries[i].UserID, entries[j].UserID)
	})
	return entries
}

func less(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}
