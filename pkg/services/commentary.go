package services

import (
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/vpnda/pocket-ledger/pkg/models"
)

// CardSpend joins the spending on a card with what the account list knows about it
type CardSpend struct {
	Account string
	Spent   decimal.Decimal
	// Known is false for accounts typed on an expense but never added to the account list
	Known        bool
	DueDay       int
	InterestRate decimal.Decimal
	Balance      decimal.Decimal
}

// CardActivity builds per-card commentary rows from GroupedByAccount output,
// largest spend first. Names that differ only in case are one card, shown under
// the account list's spelling when the card is listed.
func CardActivity(spent map[string]decimal.Decimal, accounts []models.DebtAccount) []CardSpend {
	byName := lo.SliceToMap(accounts, func(a models.DebtAccount) (string, models.DebtAccount) {
		return strings.ToLower(a.Name), a
	})

	names := lo.Keys(spent)
	slices.Sort(names)

	rows := make([]CardSpend, 0, len(spent))
	index := make(map[string]int, len(spent))
	for _, name := range names {
		key := strings.ToLower(name)
		if i, ok := index[key]; ok {
			rows[i].Spent = rows[i].Spent.Add(spent[name])
			continue
		}

		row := CardSpend{Account: name, Spent: spent[name]}
		if a, ok := byName[key]; ok {
			row.Account = a.Name
			row.Known = true
			row.DueDay = a.DueDay
			row.InterestRate = a.InterestRate
			row.Balance = a.Balance
		}
		index[key] = len(rows)
		rows = append(rows, row)
	}

	slices.SortFunc(rows, func(a, b CardSpend) int {
		if c := b.Spent.Cmp(a.Spent); c != 0 {
			return c
		}
		return strings.Compare(a.Account, b.Account)
	})
	return rows
}
