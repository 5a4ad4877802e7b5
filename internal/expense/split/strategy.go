package split

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fkhayef/splitledger/pkg/apperr"
	"github.com/fkhayef/splitledger/pkg/money"
)

// SplitType defines the type of split strategy
type SplitType string

const (
	SplitTypeEqual      SplitType = "equal"
	SplitTypePercentage SplitType = "percentage"
	SplitTypeExact      SplitType = "exact"
)

// Valid reports whether t is one of the supported split types
func (t SplitType) Valid() bool {
	switch t {
	case SplitTypeEqual, SplitTypePercentage, SplitTypeExact:
		return true
	}
	return false
}

// SplitInput represents a participant in a split with optional values
type SplitInput struct {
	UserID     uuid.UUID        `json:"user"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"` // percentage splits
	Amount     *money.Amount    `json:"amount,omitempty"`     // exact splits
}

// Share is the calculated portion of an expense owed by one participant
type Share struct {
	UserID uuid.UUID    `json:"user"`
	Amount money.Amount `json:"amount"`
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Calculate computes the share of every participant, in input order.
	// The shares always sum to total.
	Calculate(total money.Amount, participants []SplitInput) ([]Share, error)

	// Type returns the type identifier for this strategy
	Type() SplitType

	// Validate checks that the inputs carry what this strategy needs
	Validate(total money.Amount, participants []SplitInput) error
}

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewSplitStrategyFactory creates a new factory instance
func NewSplitStrategyFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the type
func (f *Factory) Create(splitType SplitType) (Strategy, error) {
	switch splitType {
	case SplitTypeEqual:
		return &EqualStrategy{}, nil
	case SplitTypePercentage:
		return &PercentageStrategy{}, nil
	case SplitTypeExact:
		return &ExactStrategy{}, nil
	default:
		return nil, ErrUnknownSplitType.WithMessage("Unknown split type: %s", splitType)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests)
func (f *Factory) CreateFromString(splitType string) (Strategy, error) {
	return f.Create(SplitType(splitType))
}

var (
	ErrUnknownSplitType      = apperr.Validation("Split type must be equal, percentage or exact")
	ErrNoParticipants        = apperr.Validation("At least one split is required")
	ErrNonPositiveTotal      = apperr.Validation("Amount must be greater than 0")
	ErrMissingPercentage     = apperr.Validation("Percentage is required for every split")
	ErrNonPositivePercentage = apperr.Validation("Each percentage must be greater than 0")
	ErrMissingExactAmount    = apperr.Validation("Amount is required for every split")
	ErrSplitTotalMismatch    = apperr.Validation("Split amounts do not equal total")
	ErrNegativeExactAmount   = apperr.Validation("Split amounts cannot be negative")
)

func validateCommon(total money.Amount, participants []SplitInput) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if total <= 0 {
		return ErrNonPositiveTotal
	}
	return nil
}
