package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/vpnda/pocket-ledger/pkg/models"
)

// ExcludeCash is a GroupedByAccount predicate that skips the cash sentinel
func ExcludeCash(e models.Expense) bool {
	return !e.IsCash()
}

// PersonalTotal sums non-reimbursable expenses. A nil period means all time.
func (l *Ledger) PersonalTotal(period *models.Period) decimal.Decimal {
	return l.sum(func(e models.Expense) bool {
		if e.IsReimbursable {
			return false
		}
		return period == nil || period.Contains(e.Date)
	})
}

// ReimbursableTotal sums every reimbursable expense, settled or not
func (l *Ledger) ReimbursableTotal() decimal.Decimal {
	return l.sum(func(e models.Expense) bool {
		return e.IsReimbursable
	})
}

// OutstandingReimbursableTotal sums reimbursable expenses that are not settled yet.
// It is never scoped to a period: unpaid amounts carry forward until settled.
func (l *Ledger) OutstandingReimbursableTotal() decimal.Decimal {
	return l.sum(models.Expense.IsOutstanding)
}

// GroupedByAccount sums expenses per account name. A nil predicate keeps every expense.
func (l *Ledger) GroupedByAccount(pred func(models.Expense) bool) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range l.expenses {
		if pred != nil && !pred(e) {
			continue
		}
		totals[e.Account] = totals[e.Account].Add(e.Amount)
	}
	return totals
}

func (l *Ledger) sum(pred func(models.Expense) bool) decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.expenses {
		if pred(e) {
			total = total.Add(e.Amount)
		}
	}
	return total
}
