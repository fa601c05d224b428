package model

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSumAmounts(t *testing.T) {
	bills := []Bill{
		{Amount: "10"},
		{Amount: "0.1"},
		{Amount: "0.2"},
		{Amount: "garbage"},
	}
	assert.Equal(t, "10.3", SumAmounts(bills).String())
	assert.True(t, SumAmounts(nil).IsZero())
}

func TestBill_GroupName(t *testing.T) {
	assert.Equal(t, "", Bill{}.GroupName())
	assert.Equal(t, "G1", Bill{Group: &Group{Name: "G1"}}.GroupName())
}

func TestAmountInRange(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   bool
	}{
		{"whole", decimal.NewFromInt(10), true},
		{"cents", decimal.RequireFromString("10.25"), true},
		{"trailing zeros", decimal.RequireFromString("10.500000"), true},
		{"maximum", MaxAmount, true},
		{"above maximum", MaxAmount.Add(decimal.NewFromInt(1)), false},
		{"too many places", decimal.RequireFromString("1.005"), false},
		{"huge positive exponent", decimal.New(1, 50000000), false},
		{"huge negative exponent", decimal.New(1, -2000000000), false},
		{"huge coefficient", decimal.RequireFromString(strings.Repeat("9", 60)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AmountInRange(tt.amount))
		})
	}
}
