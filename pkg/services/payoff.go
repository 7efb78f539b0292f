package services

import (
	"slices"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/vpnda/pocket-ledger/pkg/ledger"
	"github.com/vpnda/pocket-ledger/pkg/models"
)

// Allocation is the cash assigned to one debt
type Allocation struct {
	Account      string
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
	// Balance is the account balance before the allocation
	Balance decimal.Decimal
}

// PaysOff reports whether the allocation clears the whole balance
func (a Allocation) PaysOff() bool {
	return a.Amount.GreaterThanOrEqual(a.Balance)
}

// Remaining is the balance left after the allocation
func (a Allocation) Remaining() decimal.Decimal {
	return a.Balance.Sub(a.Amount)
}

// PayoffPlan is the outcome of an avalanche allocation
type PayoffPlan struct {
	AvailableCash decimal.Decimal
	// TotalDebt sums every positive balance that was considered
	TotalDebt   decimal.Decimal
	Allocations []Allocation
	// Surplus is the cash left once every debt is paid, recommended for savings
	Surplus decimal.Decimal
}

// Allocated sums the cash handed to debts
func (p PayoffPlan) Allocated() decimal.Decimal {
	return lo.Reduce(p.Allocations, func(sum decimal.Decimal, a Allocation, _ int) decimal.Decimal {
		return sum.Add(a.Amount)
	}, decimal.Zero)
}

// Shortfall is the debt left unpaid by the plan
func (p PayoffPlan) Shortfall() decimal.Decimal {
	return p.TotalDebt.Sub(p.Allocated())
}

// PlanPayoff allocates availableCash to debts with a positive balance, highest
// interest rate first. Equal rates keep the order the accounts were given in.
// The plan is computed from the balances passed in and holds no state, so
// sum(allocations) + surplus always equals availableCash.
func PlanPayoff(availableCash decimal.Decimal, accounts []models.DebtAccount) PayoffPlan {
	debts := lo.Filter(accounts, func(a models.DebtAccount, _ int) bool {
		return a.Balance.IsPositive()
	})
	slices.SortStableFunc(debts, func(a, b models.DebtAccount) int {
		return b.InterestRate.Cmp(a.InterestRate)
	})

	plan := PayoffPlan{
		AvailableCash: availableCash,
		TotalDebt:     decimal.Zero,
		Allocations:   make([]Allocation, 0, len(debts)),
	}

	remaining := availableCash
	for _, debt := range debts {
		plan.TotalDebt = plan.TotalDebt.Add(debt.Balance)
		if !remaining.IsPositive() {
			continue
		}

		amount := decimal.Min(remaining, debt.Balance)
		plan.Allocations = append(plan.Allocations, Allocation{
			Account:      debt.Name,
			Amount:       amount,
			InterestRate: debt.InterestRate,
			Balance:      debt.Balance,
		})
		remaining = remaining.Sub(amount)
	}

	plan.Surplus = remaining
	return plan
}

// PayoffCash is the cash a user can expect to put towards debts: everything still
// owed back to them plus what came in during the previous period.
func PayoffCash(l *ledger.Ledger, priorInflow decimal.Decimal) decimal.Decimal {
	return l.OutstandingReimbursableTotal().Add(priorInflow)
}
