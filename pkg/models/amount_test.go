package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountToMoney(t *testing.T) {
	testCases := []struct {
		name           string
		amount         Amount
		expectedAmount int64
		expectedCurr   string
	}{
		{
			name:           "Whole number",
			amount:         Amount{Value: decimal.RequireFromString("100"), Currency: "USD"},
			expectedAmount: 10000,
			expectedCurr:   "USD",
		},
		{
			name:           "Decimal number",
			amount:         Amount{Value: decimal.RequireFromString("25.99"), Currency: "USD"},
			expectedAmount: 2599,
			expectedCurr:   "USD",
		},
		{
			name:           "Single decimal place",
			amount:         Amount{Value: decimal.RequireFromString("10.5"), Currency: "USD"},
			expectedAmount: 1050,
			expectedCurr:   "USD",
		},
		{
			name:           "Extra precision is rounded",
			amount:         Amount{Value: decimal.RequireFromString("591.905"), Currency: "USD"},
			expectedAmount: 59191,
			expectedCurr:   "USD",
		},
		{
			name:           "Different currency",
			amount:         Amount{Value: decimal.RequireFromString("50.75"), Currency: "EUR"},
			expectedAmount: 5075,
			expectedCurr:   "EUR",
		},
		{
			name:           "Zero fraction currency",
			amount:         Amount{Value: decimal.RequireFromString("1234"), Currency: "JPY"},
			expectedAmount: 1234,
			expectedCurr:   "JPY",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.amount.ToMoney()

			if result.Amount() != tc.expectedAmount {
				t.Errorf("Expected amount %d, got %d", tc.expectedAmount, result.Amount())
			}

			if result.Currency().Code != tc.expectedCurr {
				t.Errorf("Expected currency %s, got %s", tc.expectedCurr, result.Currency().Code)
			}
		})
	}
}

func TestNewAmountDefaultsCurrency(t *testing.T) {
	a := NewAmount(decimal.NewFromInt(5), "")
	if a.Currency != DefaultCurrency {
		t.Errorf("Expected currency %s, got %s", DefaultCurrency, a.Currency)
	}
}

func TestAmountDisplay(t *testing.T) {
	a := Amount{Value: decimal.RequireFromString("25.99"), Currency: "USD"}
	if got := a.Display(); got != "$25.99" {
		t.Errorf("Expected $25.99, got %s", got)
	}
}
