package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpnda/pocket-ledger/db"
	"github.com/vpnda/pocket-ledger/pkg/models"
)

var (
	march = models.Period{Year: 2025, Month: time.March}
	april = models.Period{Year: 2025, Month: time.April}
)

func day(p models.Period, d int) time.Time {
	return time.Date(p.Year, p.Month, d, 0, 0, 0, 0, time.Local)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func setupLedger(t *testing.T) (*Ledger, *db.MockDB) {
	mockDB := db.NewMockDB()
	l, err := Load(mockDB)
	require.NoError(t, err)
	return l, mockDB
}

func mustAdd(t *testing.T, l *Ledger, e models.Expense) models.Expense {
	stored, err := l.AddExpense(e)
	require.NoError(t, err)
	return stored
}

// seed adds a mix of personal and reimbursable spending across two months
func seed(t *testing.T, l *Ledger) {
	mustAdd(t, l, models.Expense{Date: day(march, 3), Account: "Visa", Description: "Groceries", Amount: dec("1200")})
	mustAdd(t, l, models.Expense{Date: day(march, 20), Account: "cash", Description: "Client dinner", Amount: dec("800"), IsReimbursable: true})
	mustAdd(t, l, models.Expense{Date: day(april, 1), Account: "cash", Description: "Coffee", Amount: dec("65")})
	mustAdd(t, l, models.Expense{Date: day(april, 2), Account: "Visa", Description: "Train tickets", Amount: dec("1490"), IsReimbursable: true})
	mustAdd(t, l, models.Expense{Date: day(april, 5), Account: "Master", Description: "Books", Amount: dec("330.5")})
}

func TestAddExpense(t *testing.T) {
	l, mockDB := setupLedger(t)

	stored, err := l.AddExpense(models.Expense{
		Date:        time.Date(2025, time.April, 3, 18, 30, 0, 0, time.Local),
		Description: "  Lunch ",
		Amount:      dec("120"),
		IsSettled:   true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, "Lunch", stored.Description)
	assert.Equal(t, models.CashAccount, stored.Account, "empty account defaults to cash")
	assert.False(t, stored.IsSettled, "new expenses are never settled")
	assert.Equal(t, 0, stored.Date.Hour())

	assert.Equal(t, 1, mockDB.ExpenseSaves)
	require.Len(t, mockDB.Expenses, 1)
	assert.Equal(t, stored, mockDB.Expenses[0])
}

func TestAddExpenseValidation(t *testing.T) {
	testCases := []struct {
		name    string
		expense models.Expense
		field   string
	}{
		{
			name:    "Empty description",
			expense: models.Expense{Date: day(april, 1), Description: "", Amount: dec("10")},
			field:   "description",
		},
		{
			name:    "Blank description",
			expense: models.Expense{Date: day(april, 1), Description: "   ", Amount: dec("10")},
			field:   "description",
		},
		{
			name:    "Negative amount",
			expense: models.Expense{Date: day(april, 1), Description: "Refund", Amount: dec("-10")},
			field:   "amount",
		},
		{
			name:    "Missing date",
			expense: models.Expense{Description: "Lunch", Amount: dec("10")},
			field:   "date",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, mockDB := setupLedger(t)

			_, err := l.AddExpense(tc.expense)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, 0, mockDB.ExpenseSaves, "rejected input must not be persisted")
			assert.Empty(t, l.Expenses())
		})
	}
}

func TestAddExpenseZeroAmountAllowed(t *testing.T) {
	l, _ := setupLedger(t)

	_, err := l.AddExpense(models.Expense{Date: day(april, 1), Description: "Free sample", Amount: decimal.Zero})
	assert.NoError(t, err)
}

func TestAddExpenseDuplicateID(t *testing.T) {
	l, _ := setupLedger(t)
	mustAdd(t, l, models.Expense{ID: "fixed", Date: day(april, 1), Description: "Lunch", Amount: dec("1")})

	_, err := l.AddExpense(models.Expense{ID: "fixed", Date: day(april, 2), Description: "Dinner", Amount: dec("2")})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, l.Expenses(), 1)
}

func TestDeleteExpense(t *testing.T) {
	l, mockDB := setupLedger(t)
	seed(t, l)
	victim := l.Expenses()[0]

	require.NoError(t, l.DeleteExpense(victim.ID))

	_, ok := l.Expense(victim.ID)
	assert.False(t, ok)
	assert.Len(t, l.Expenses(), 4)
	assert.Len(t, mockDB.Expenses, 4)
}

func TestDeleteMissingExpenseLeavesTotals(t *testing.T) {
	l, mockDB := setupLedger(t)
	seed(t, l)
	saves := mockDB.ExpenseSaves
	personal := l.PersonalTotal(nil)
	reimbursable := l.ReimbursableTotal()

	err := l.DeleteExpense("does-not-exist")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, personal.Equal(l.PersonalTotal(nil)))
	assert.True(t, reimbursable.Equal(l.ReimbursableTotal()))
	assert.Equal(t, saves, mockDB.ExpenseSaves)
}

func TestTotals(t *testing.T) {
	l, _ := setupLedger(t)
	seed(t, l)

	assert.True(t, dec("1595.5").Equal(l.PersonalTotal(nil)), "got %s", l.PersonalTotal(nil))
	assert.True(t, dec("1200").Equal(l.PersonalTotal(&march)))
	assert.True(t, dec("395.5").Equal(l.PersonalTotal(&april)))
	assert.True(t, dec("2290").Equal(l.ReimbursableTotal()))
	assert.True(t, dec("2290").Equal(l.OutstandingReimbursableTotal()))

	all := decimal.Zero
	for _, e := range l.Expenses() {
		all = all.Add(e.Amount)
	}
	assert.True(t, all.Equal(l.PersonalTotal(nil).Add(l.ReimbursableTotal())),
		"personal + reimbursable must equal the sum of all records")
}

func TestTotalsOfEmptyLedgerAreZero(t *testing.T) {
	l, _ := setupLedger(t)

	assert.True(t, l.PersonalTotal(nil).IsZero())
	assert.True(t, l.PersonalTotal(&april).IsZero())
	assert.True(t, l.ReimbursableTotal().IsZero())
	assert.True(t, l.OutstandingReimbursableTotal().IsZero())
	assert.Empty(t, l.GroupedByAccount(nil))
}

func TestSettleAllReimbursable(t *testing.T) {
	l, mockDB := setupLedger(t)
	seed(t, l)
	before := l.OutstandingReimbursableTotal()

	settled, err := l.SettleAllReimbursable()
	require.NoError(t, err)

	assert.Equal(t, 2, settled)
	assert.True(t, l.OutstandingReimbursableTotal().IsZero(), "settling clears every month, not just the current one")
	assert.True(t, l.OutstandingReimbursableTotal().LessThanOrEqual(before))
	assert.True(t, dec("2290").Equal(l.ReimbursableTotal()), "settled records still count as reimbursable")
	for _, e := range mockDB.Expenses {
		assert.Equal(t, e.IsReimbursable, e.IsSettled)
	}

	saves := mockDB.ExpenseSaves
	settled, err = l.SettleAllReimbursable()
	require.NoError(t, err)
	assert.Equal(t, 0, settled)
	assert.Equal(t, saves, mockDB.ExpenseSaves, "nothing to settle means nothing to persist")
}

func TestOutstandingCarriesForward(t *testing.T) {
	l, _ := setupLedger(t)
	hotel := mustAdd(t, l, models.Expense{Date: day(march, 20), Description: "Hotel", Amount: dec("3000"), IsReimbursable: true})
	mustAdd(t, l, models.Expense{Date: day(april, 2), Description: "Taxi", Amount: dec("250"), IsReimbursable: true})

	assert.True(t, dec("3250").Equal(l.OutstandingReimbursableTotal()))

	require.NoError(t, l.SettleExpense(hotel.ID))
	assert.True(t, dec("250").Equal(l.OutstandingReimbursableTotal()))
}

func TestSettleExpenseErrors(t *testing.T) {
	l, _ := setupLedger(t)
	personal := mustAdd(t, l, models.Expense{Date: day(april, 1), Description: "Lunch", Amount: dec("100")})

	assert.ErrorIs(t, l.SettleExpense("missing"), ErrNotFound)
	assert.ErrorIs(t, l.SettleExpense(personal.ID), ErrValidation)
}

func TestGroupedByAccount(t *testing.T) {
	l, _ := setupLedger(t)
	seed(t, l)

	all := l.GroupedByAccount(nil)
	assert.Len(t, all, 3)
	assert.True(t, dec("865").Equal(all["cash"]))
	assert.True(t, dec("2690").Equal(all["Visa"]))

	cards := l.GroupedByAccount(ExcludeCash)
	assert.NotContains(t, cards, "cash")
	assert.True(t, dec("330.5").Equal(cards["Master"]))
}

func TestExpensesNewestFirst(t *testing.T) {
	l, _ := setupLedger(t)
	first := mustAdd(t, l, models.Expense{Date: day(april, 5), Description: "First", Amount: dec("1")})
	mustAdd(t, l, models.Expense{Date: day(march, 1), Description: "Oldest", Amount: dec("1")})
	second := mustAdd(t, l, models.Expense{Date: day(april, 5), Description: "Second", Amount: dec("1")})

	got := l.Expenses()
	require.Len(t, got, 3)
	assert.Equal(t, second.ID, got[0].ID, "same date keeps the latest entry on top")
	assert.Equal(t, first.ID, got[1].ID)
	assert.Equal(t, "Oldest", got[2].Description)

	assert.Len(t, l.ExpensesIn(april), 2)
}

func TestStorageFailureKeepsLastKnownGood(t *testing.T) {
	l, mockDB := setupLedger(t)
	seed(t, l)
	personal := l.PersonalTotal(nil)
	count := len(l.Expenses())

	mockDB.SaveExpensesErr = errors.New("disk full")

	_, err := l.AddExpense(models.Expense{Date: day(april, 9), Description: "Shoes", Amount: dec("2000")})
	var sErr *StorageError
	require.ErrorAs(t, err, &sErr)
	assert.ErrorIs(t, err, mockDB.SaveExpensesErr)

	_, err = l.SettleAllReimbursable()
	assert.ErrorAs(t, err, &sErr)
	assert.Error(t, l.DeleteExpense(l.Expenses()[0].ID))

	assert.Len(t, l.Expenses(), count)
	assert.True(t, personal.Equal(l.PersonalTotal(nil)))
	assert.True(t, dec("2290").Equal(l.OutstandingReimbursableTotal()))
}

func TestLoadStorageError(t *testing.T) {
	mockDB := db.NewMockDB()
	mockDB.LoadAccountsErr = errors.New("locked")

	_, err := Load(mockDB)

	var sErr *StorageError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, "load accounts", sErr.Op)
}

func TestLoadAndSaveRoundTrip(t *testing.T) {
	mockDB := db.NewMockDB()
	mockDB.Expenses = []models.Expense{{ID: "a", Date: day(april, 1), Account: "cash", Description: "Tea", Amount: dec("40")}}
	mockDB.Accounts = []models.DebtAccount{{Name: "Visa", DueDay: 10, InterestRate: dec("15"), Balance: dec("100")}}

	l, err := Load(mockDB)
	require.NoError(t, err)
	assert.Len(t, l.Expenses(), 1)
	assert.Len(t, l.Accounts(), 1)

	require.NoError(t, l.Save())
	assert.Equal(t, 1, mockDB.ExpenseSaves)
	assert.Equal(t, 1, mockDB.AccountSaves)
}
