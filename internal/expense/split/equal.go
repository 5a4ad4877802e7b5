package split

import "github.com/fkhayef/splitledger/pkg/money"

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the expense equally; leftover cents go to the first participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Type returns the split type identifier
func (s *EqualStrategy) Type() SplitType {
	return SplitTypeEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(total money.Amount, participants []SplitInput) error {
	return validateCommon(total, participants)
}

// Calculate gives every participant total/n cents and hands out the
// remainder one cent at a time in input order.
func (s *EqualStrategy) Calculate(total money.Amount, participants []SplitInput) ([]Share, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	n := money.Amount(len(participants))
	base := total / n
	remainder := total % n

	shares := make([]Share, len(participants))
	for i, p := range participants {
		amount := base
		if money.Amount(i) < remainder {
			amount++
		}
		shares[i] = Share{UserID: p.UserID, Amount: amount}
	}

	return shares, nil
}
