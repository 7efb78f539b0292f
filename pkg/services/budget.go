package services

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// BudgetInput holds the user's monthly figures
type BudgetInput struct {
	Income        decimal.Decimal
	FixedCosts    decimal.Decimal
	SavingsTarget decimal.Decimal
	PersonalSpent decimal.Decimal
	Today         time.Time
}

// Projection is what is left to spend for the rest of the month
type Projection struct {
	// Liquidity goes negative when the month is over budget
	Liquidity     decimal.Decimal
	DaysRemaining int
	// DailyAllowance is exact: DailyAllowance * DaysRemaining == Liquidity
	DailyAllowance *big.Rat
}

// RoundedAllowance returns the daily allowance rounded half away from zero to places
func (p Projection) RoundedAllowance(places int32) decimal.Decimal {
	num := decimal.NewFromBigInt(p.DailyAllowance.Num(), 0)
	den := decimal.NewFromBigInt(p.DailyAllowance.Denom(), 0)
	return num.DivRound(den, places)
}

// DaysInMonth returns the number of days in t's month
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysRemaining counts the days left in t's month, today included. Never less than 1.
func DaysRemaining(t time.Time) int {
	return max(DaysInMonth(t)-t.Day()+1, 1)
}

// Project computes liquidity and the daily allowance for the rest of the month
func Project(in BudgetInput) Projection {
	liquidity := in.Income.Sub(in.FixedCosts).Sub(in.SavingsTarget).Sub(in.PersonalSpent)
	days := DaysRemaining(in.Today)

	return Projection{
		Liquidity:      liquidity,
		DaysRemaining:  days,
		DailyAllowance: new(big.Rat).Quo(liquidity.Rat(), big.NewRat(int64(days), 1)),
	}
}
