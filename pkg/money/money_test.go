package money_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/splitledger/pkg/money"
)

func TestParse(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    money.Amount
		wantErr bool
	}

	tests := []testCase{
		{name: "whole", input: "30", want: 3000},
		{name: "two digits", input: "10.01", want: 1001},
		{name: "one digit", input: "12.5", want: 1250},
		{name: "rounds half up", input: "0.005", want: 1},
		{name: "rounds down", input: "3.334", want: 333},
		{name: "negative", input: "-5.00", want: -500},
		{name: "padded", input: "  7.10 ", want: 710},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := money.Parse(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "10.01", money.Amount(1001).String())
	assert.Equal(t, "-5.00", money.Amount(-500).String())
	assert.Equal(t, "0.00", money.Zero.String())
	assert.Equal(t, "20", money.Amount(2000).Short())
	assert.Equal(t, "12.5", money.Amount(1250).Short())
	assert.True(t, decimal.RequireFromString("10.01").Equal(money.Amount(1001).Decimal()))
}

func TestJSON(t *testing.T) {
	type payload struct {
		Amount money.Amount `json:"amount"`
	}

	out, err := json.Marshal(payload{Amount: 3000})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":30.00}`, string(out))
	assert.Contains(t, string(out), "30.00")

	var in payload
	require.NoError(t, json.Unmarshal([]byte(`{"amount":10.5}`), &in))
	assert.Equal(t, money.Amount(1050), in.Amount)

	require.NoError(t, json.Unmarshal([]byte(`{"amount":"3.333"}`), &in))
	assert.Equal(t, money.Amount(333), in.Amount)

	assert.Error(t, json.Unmarshal([]byte(`{"amount":"ten"}`), &in))
}

func TestRoundTrip(t *testing.T) {
	for cents := int64(-1000); cents <= 1000; cents += 7 {
		a := money.Amount(cents)
		back, err := money.Parse(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, back)
	}
}

func TestAbsAndSum(t *testing.T) {
	assert.Equal(t, money.Amount(500), money.Amount(-500).Abs())
	assert.Equal(t, money.Amount(500), money.Amount(500).Abs())
	assert.Equal(t, money.Amount(600), money.Sum(100, 200, 300))
	assert.Equal(t, money.Zero, money.Sum())
}

func TestParseRejectsOutOfRange(t *testing.T) {
	got, err := money.Parse("1000000000000.00")
	require.NoError(t, err)
	assert.Equal(t, money.MaxAmount, got)

	for _, input := range []string{"1000000000000.01", "-1000000000000.01", "184467440737095516.17", "1e30"} {
		_, err := money.Parse(input)
		assert.ErrorIs(t, err, money.ErrOutOfRange, input)
	}

	type payload struct {
		Amount money.Amount `json:"amount"`
	}
	var in payload
	err = json.Unmarshal([]byte(`{"amount":184467440737095516.17}`), &in)
	require.ErrorIs(t, err, money.ErrOutOfRange)
	assert.Equal(t, money.Zero, in.Amount)
}
