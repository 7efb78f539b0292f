package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vpnda/pocket-ledger/pkg/models"
)

func sampleExpenses() []models.Expense {
	return []models.Expense{
		{
			ID:          "e1",
			Date:        time.Date(2025, time.April, 29, 0, 0, 0, 0, time.Local),
			Account:     "Visa",
			Description: "Lunch",
			Amount:      decimal.RequireFromString("250.5"),
		},
		{
			ID:             "e2",
			Date:           time.Date(2025, time.April, 2, 0, 0, 0, 0, time.Local),
			Account:        models.CashAccount,
			Description:    "Taxi to client",
			Amount:         decimal.RequireFromString("480"),
			IsReimbursable: true,
			IsSettled:      true,
		},
	}
}

func sampleAccounts() []models.DebtAccount {
	return []models.DebtAccount{
		{Name: "Visa", DueDay: 15, InterestRate: decimal.RequireFromString("15"), Balance: decimal.RequireFromString("3359")},
		{Name: "Loan", DueDay: 0, InterestRate: decimal.RequireFromString("7.7"), Balance: decimal.RequireFromString("26735")},
		{Name: "Amex", DueDay: 31, InterestRate: decimal.RequireFromString("15"), Balance: decimal.RequireFromString("-12.40")},
	}
}

// StoreTestSuite runs the same round-trip checks against every Store implementation
type StoreTestSuite struct {
	suite.Suite
	open  func(t *testing.T) Store
	store Store
}

func (s *StoreTestSuite) SetupTest() {
	s.store = s.open(s.T())
}

func (s *StoreTestSuite) TearDownTest() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *StoreTestSuite) TestEmptyStoreLoadsEmptyCollections() {
	expenses, err := s.store.LoadExpenses()
	require.NoError(s.T(), err)
	assert.Empty(s.T(), expenses)

	accounts, err := s.store.LoadAccounts()
	require.NoError(s.T(), err)
	assert.Empty(s.T(), accounts)
}

func (s *StoreTestSuite) TestExpensesRoundTrip() {
	want := sampleExpenses()
	require.NoError(s.T(), s.store.SaveExpenses(want))

	got, err := s.store.LoadExpenses()
	require.NoError(s.T(), err)
	require.Len(s.T(), got, len(want))

	for i := range want {
		assert.Equal(s.T(), want[i].ID, got[i].ID)
		assert.True(s.T(), want[i].Date.Equal(got[i].Date), "date mismatch for %s", want[i].ID)
		assert.Equal(s.T(), want[i].Account, got[i].Account)
		assert.Equal(s.T(), want[i].Description, got[i].Description)
		assert.True(s.T(), want[i].Amount.Equal(got[i].Amount), "amount mismatch for %s", want[i].ID)
		assert.Equal(s.T(), want[i].IsReimbursable, got[i].IsReimbursable)
		assert.Equal(s.T(), want[i].IsSettled, got[i].IsSettled)
	}
}

func (s *StoreTestSuite) TestAccountsRoundTripKeepsOrder() {
	want := sampleAccounts()
	require.NoError(s.T(), s.store.SaveAccounts(want))

	got, err := s.store.LoadAccounts()
	require.NoError(s.T(), err)
	require.Len(s.T(), got, len(want))

	for i := range want {
		assert.Equal(s.T(), want[i].Name, got[i].Name)
		assert.Equal(s.T(), want[i].DueDay, got[i].DueDay)
		assert.True(s.T(), want[i].InterestRate.Equal(got[i].InterestRate))
		assert.True(s.T(), want[i].Balance.Equal(got[i].Balance))
	}
}

func (s *StoreTestSuite) TestSaveReplacesWholeCollection() {
	require.NoError(s.T(), s.store.SaveAccounts(sampleAccounts()))
	require.NoError(s.T(), s.store.SaveAccounts(sampleAccounts()[1:2]))

	got, err := s.store.LoadAccounts()
	require.NoError(s.T(), err)
	require.Len(s.T(), got, 1)
	assert.Equal(s.T(), "Loan", got[0].Name)

	require.NoError(s.T(), s.store.SaveExpenses(nil))
	expenses, err := s.store.LoadExpenses()
	require.NoError(s.T(), err)
	assert.Empty(s.T(), expenses)
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, &StoreTestSuite{open: func(t *testing.T) Store {
		return setupTestDB(t)
	}})
}

func TestFileStoreSuite(t *testing.T) {
	suite.Run(t, &StoreTestSuite{open: func(t *testing.T) Store {
		store, err := Open(DriverYAML, filepath.Join(t.TempDir(), "ledger"))
		require.NoError(t, err)
		return store
	}})
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("csv", t.TempDir())
	assert.Error(t, err)
}

func TestOpenSQLite(t *testing.T) {
	store, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "nested", "ledger.db"))
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*DB)
	assert.True(t, ok)
}
