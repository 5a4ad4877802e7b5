// Package money holds currency amounts as integer cents.
//
// Decimal major-unit values only appear at the boundary: they are converted to
// cents on input (multiplied by 100 and rounded to the nearest cent) and back to
// a two-digit decimal on output.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/splitledger/pkg/apperr"
)

// Amount is a signed amount of money in cents.
type Amount int64

const (
	// Zero is the zero amount.
	Zero Amount = 0

	// MaxAmount bounds the magnitude of any amount read from input, keeping
	// sums over a group's history far from int64 overflow.
	MaxAmount Amount = 1_000_000_000_000_00
)

// ErrOutOfRange is returned for amounts whose magnitude exceeds MaxAmount.
var ErrOutOfRange = apperr.Validation("Amount is out of range")

// FromDecimal converts a major-unit decimal into cents, rounding half away
// from zero. Magnitudes above MaxAmount are rejected.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	cents := d.Shift(2).Round(0)
	if cents.Abs().GreaterThan(decimal.NewFromInt(int64(MaxAmount))) {
		return 0, ErrOutOfRange.WithMessage("Amount must not exceed %s", MaxAmount.Short())
	}
	return Amount(cents.IntPart()), nil
}

// Parse converts a major-unit string such as "10.01" into cents.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return FromDecimal(d)
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Cents returns the raw number of cents.
func (a Amount) Cents() int64 {
	return int64(a)
}

// Decimal returns the amount in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// String formats the amount with exactly two fraction digits, e.g. "-5.00".
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// Short formats the amount without trailing zeros, e.g. "20" or "12.5".
func (a Amount) Short() string {
	return a.Decimal().String()
}

// Abs returns the magnitude of the amount.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}
	return a
}

// MarshalJSON encodes the amount as a JSON number with two fraction digits.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string in major units.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Sum adds up amounts.
func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total += a
	}
	return total
}
