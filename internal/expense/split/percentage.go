package split

import (
	"github.com/shopspring/decimal"

	"github.com/fkhayef/splitledger/pkg/money"
)

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Floors every participant's percentage of the total, then tops up in input order
// =============================================================================

// PercentageStrategy implements the Strategy interface for percentage-based splits
type PercentageStrategy struct{}

// Type returns the split type identifier
func (s *PercentageStrategy) Type() SplitType {
	return SplitTypePercentage
}

// Validate checks if the inputs are valid for a percentage split
func (s *PercentageStrategy) Validate(total money.Amount, participants []SplitInput) error {
	if err := validateCommon(total, participants); err != nil {
		return err
	}
	for _, p := range participants {
		if p.Percentage == nil {
			return ErrMissingPercentage
		}
		if !p.Percentage.IsPositive() {
			return ErrNonPositivePercentage
		}
	}
	return nil
}

// Calculate assigns floor(total * pct / 100) to every participant and then
// distributes the leftover cents one at a time in input order. No share is
// ever negative.
func (s *PercentageStrategy) Calculate(total money.Amount, participants []SplitInput) ([]Share, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	totalCents := decimal.NewFromInt(total.Cents())
	shares := make([]Share, len(participants))
	var allocated money.Amount

	for i, p := range participants {
		amount := money.Amount(totalCents.Mul(*p.Percentage).Shift(-2).Floor().IntPart())
		shares[i] = Share{UserID: p.UserID, Amount: amount}
		allocated += amount
	}

	remainder := total - allocated
	for i := 0; remainder > 0; i++ {
		shares[i%len(shares)].Amount++
		remainder--
	}

	// Percentages are accepted within a small tolerance of 100, so the floors
	// can overshoot on large totals. The excess comes off the largest share.
	for remainder < 0 {
		idx := largestShare(shares)
		take := min(-remainder, shares[idx].Amount)
		shares[idx].Amount -= take
		remainder += take
	}

	return shares, nil
}

// largestShare returns the index of the largest share, the last one on ties.
func largestShare(shares []Share) int {
	idx := 0
	for i, s := range shares {
		if s.Amount >= shares[idx].Amount {
			idx = i
		}
	}
	return idx
}
