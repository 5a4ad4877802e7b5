package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fkhayef/splitledger/pkg/apperr"
)

var errSentinel = apperr.Conflict("You cannot settle with yourself")

func TestKindOf(t *testing.T) {
	type testCase struct {
		name string
		err  error
		want apperr.Kind
	}

	tests := []testCase{
		{name: "validation", err: apperr.Validation("bad"), want: apperr.KindValidation},
		{name: "not found", err: apperr.NotFound("missing"), want: apperr.KindNotFound},
		{name: "authorization", err: apperr.Authorization("nope"), want: apperr.KindAuthorization},
		{name: "conflict", err: errSentinel, want: apperr.KindConflict},
		{name: "wrapped", err: fmt.Errorf("settle: %w", errSentinel), want: apperr.KindConflict},
		{name: "plain", err: errors.New("boom"), want: apperr.KindInternal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, apperr.KindOf(tc.err))
		})
	}
}

func TestDerivedErrorsMatchSentinel(t *testing.T) {
	derived := errSentinel.
		WithMessage("Settlement amount exceeds outstanding balance (%s)", "20").
		WithDetails(map[string]any{"debt": "20.00"})

	assert.ErrorIs(t, derived, errSentinel)
	assert.Equal(t, "Settlement amount exceeds outstanding balance (20)", derived.Error())
	assert.Equal(t, map[string]any{"debt": "20.00"}, apperr.DetailsOf(derived))
	assert.Nil(t, apperr.DetailsOf(errSentinel))
	assert.Equal(t, "You cannot settle with yourself", errSentinel.Error())

	other := apperr.Conflict("You cannot settle with yourself")
	assert.NotErrorIs(t, derived, other)
}

func TestIsKind(t *testing.T) {
	assert.True(t, apperr.IsKind(apperr.Validationf("amount %d", 3), apperr.KindValidation))
	assert.False(t, apperr.IsKind(nil, apperr.KindInternal))
}
