package models

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency is configured
const DefaultCurrency = "TWD"

// Amount represents a monetary amount in a given currency
type Amount struct {
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
}

func NewAmount(value decimal.Decimal, currency string) Amount {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Amount{Value: value, Currency: currency}
}

// ToMoney converts the amount into minor units of its currency, rounding half away from zero
func (a Amount) ToMoney() *money.Money {
	fraction := 2
	if currency := money.GetCurrency(a.Currency); currency != nil {
		fraction = currency.Fraction
	}
	minor := a.Value.Shift(int32(fraction)).Round(0).IntPart()
	return money.New(minor, a.Currency)
}

// Display formats the amount with the currency's symbol and separators
func (a Amount) Display() string {
	return a.ToMoney().Display()
}
