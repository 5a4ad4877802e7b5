package balance

import (
	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/pkg/money"
)

// Transfer is a suggested payment from a debtor to a creditor
type Transfer struct {
	From   uuid.UUID
	To     uuid.UUID
	Amount money.Amount
}

type position struct {
	userID    uuid.UUID
	remaining money.Amount
}

// Simplify suggests transfers that bring every balance to zero. Debtors and
// creditors are each taken in member ID order and matched greedily, so the
// result is deterministic and has fewer transfers than there are non-zero
// balances.
//
// The balances must add up to zero; any leftover is not transferred.
func Simplify(b Balances) []Transfer {
	var debtors, creditors []position
	for _, e := range b.Sorted() {
		switch {
		case e.Net < 0:
			debtors = append(debtors, position{userID: e.UserID, remaining: -e.Net})
		case e.Net > 0:
			creditors = append(creditors, position{userID: e.UserID, remaining: e.Net})
		}
	}

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		d, c := &debtors[i], &creditors[j]

		amount := min(d.remaining, c.remaining)
		transfers = append(transfers, Transfer{From: d.userID, To: c.userID, Amount: amount})

		d.remaining -= amount
		c.remaining -= amount
		if d.remaining == 0 {
			i++
		}
		if c.remaining == 0 {
			j++
		}
	}
	return transfers
}
