package split

import (
	"github.com/shopspring/decimal"

	"github.com/fkhayef/splitledger/pkg/money"
)

// =============================================================================
// EXACT SPLIT STRATEGY
// Each participant's amount is given; the amounts must add up to the total
// =============================================================================

// ExactStrategy implements the Strategy interface for exact amount splits
type ExactStrategy struct{}

// Type returns the split type identifier
func (s *ExactStrategy) Type() SplitType {
	return SplitTypeExact
}

// Validate checks if the inputs are valid for an exact split
func (s *ExactStrategy) Validate(total money.Amount, participants []SplitInput) error {
	if err := validateCommon(total, participants); err != nil {
		return err
	}
	for _, p := range participants {
		if p.Amount == nil {
			return ErrMissingExactAmount
		}
		if *p.Amount < 0 {
			return ErrNegativeExactAmount
		}
	}
	return nil
}

// Calculate returns the given amounts after checking that they sum to the total
func (s *ExactStrategy) Calculate(total money.Amount, participants []SplitInput) ([]Share, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	shares := make([]Share, len(participants))
	sum := decimal.Zero
	for i, p := range participants {
		shares[i] = Share{UserID: p.UserID, Amount: *p.Amount}
		sum = sum.Add(p.Amount.Decimal())
	}

	if !sum.Equal(total.Decimal()) {
		details := map[string]any{"total": total}
		if splitTotal, err := money.FromDecimal(sum); err == nil {
			details["splitTotal"] = splitTotal
		}
		return nil, ErrSplitTotalMismatch.
			WithMessage("Split amounts (%s) do not equal total (%s)", sum.String(), total.Short()).
			WithDetails(details)
	}

	return shares, nil
}
