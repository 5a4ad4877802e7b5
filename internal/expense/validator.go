package expense

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/internal/group"
	"github.com/fkhayef/splitledger/pkg/apperr"
)

// Validation errors. Each check fails fast on the first violated rule.
var (
	ErrDescriptionRequired    = apperr.Validation("Description is required")
	ErrReservedDescription    = apperr.Validation(`"Settlement" is reserved for recorded settlements`)
	ErrAmountNotPositive      = apperr.Validation("Amount must be greater than 0")
	ErrPayerNotMember         = apperr.Validation("Payer must be a member of the group")
	ErrSplitUserNotMember     = apperr.Validation("All split users must be members of the group")
	ErrDuplicateSplitUser     = apperr.Validation("Duplicate users in splits are not allowed")
	ErrPercentageNotPositive  = split.ErrNonPositivePercentage
	ErrPercentageTotal        = apperr.Validation("Percentages must add up to 100")
	ErrExactAmountNotPositive = apperr.Validation("Each split amount must be greater than 0")
)

var (
	hundred             = decimal.NewFromInt(100)
	percentageTolerance = decimal.RequireFromString("0.001")
)

// Validate runs every expense rule in order: request shape, group
// membership, then the rules specific to the split type.
func Validate(g *group.Group, paidBy uuid.UUID, req *CreateExpenseRequest) error {
	if err := ValidateShape(req); err != nil {
		return err
	}
	if err := ValidateMembership(g, paidBy, req.Splits); err != nil {
		return err
	}

	switch req.SplitType {
	case split.SplitTypePercentage:
		return ValidatePercentages(req.Splits)
	case split.SplitTypeExact:
		return ValidateExactAmounts(req.Splits)
	}
	return nil
}

// ValidateShape checks the fields every expense needs
func ValidateShape(req *CreateExpenseRequest) error {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return ErrDescriptionRequired
	}
	if strings.EqualFold(description, SettlementDescription) {
		return ErrReservedDescription
	}
	if req.Amount <= 0 {
		return ErrAmountNotPositive
	}
	if !req.SplitType.Valid() {
		return split.ErrUnknownSplitType
	}
	if len(req.Splits) == 0 {
		return split.ErrNoParticipants
	}
	return nil
}

// ValidateMembership checks that the payer and every split user belong to the
// group and that no user appears twice
func ValidateMembership(g *group.Group, paidBy uuid.UUID, splits []split.SplitInput) error {
	if !g.HasMember(paidBy) {
		return ErrPayerNotMember
	}

	seen := make(map[uuid.UUID]struct{}, len(splits))
	for _, s := range splits {
		if !g.HasMember(s.UserID) {
			return ErrSplitUserNotMember
		}
		if _, dup := seen[s.UserID]; dup {
			return ErrDuplicateSplitUser
		}
		seen[s.UserID] = struct{}{}
	}
	return nil
}

// ValidatePercentages checks that every percentage is positive and that they
// total 100 within 0.001
func ValidatePercentages(splits []split.SplitInput) error {
	total := decimal.Zero
	for _, s := range splits {
		if s.Percentage == nil {
			return split.ErrMissingPercentage
		}
		if !s.Percentage.IsPositive() {
			return ErrPercentageNotPositive
		}
		total = total.Add(*s.Percentage)
	}

	if total.Sub(hundred).Abs().GreaterThan(percentageTolerance) {
		return ErrPercentageTotal.WithDetails(map[string]any{"total": total.String()})
	}
	return nil
}

// ValidateExactAmounts checks that every exact amount is positive. Whether
// they add up to the total is checked by the exact split calculator.
func ValidateExactAmounts(splits []split.SplitInput) error {
	for _, s := range splits {
		if s.Amount == nil {
			return split.ErrMissingExactAmount
		}
		if *s.Amount <= 0 {
			return ErrExactAmountNotPositive
		}
	}
	return nil
}
