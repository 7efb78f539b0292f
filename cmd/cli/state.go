package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vpnda/pocket-ledger/db"
	"github.com/vpnda/pocket-ledger/pkg/ledger"
	"github.com/vpnda/pocket-ledger/pkg/models"
	"github.com/vpnda/pocket-ledger/pkg/utils"
)

const shortIDLength = 8

type appState struct {
	store    db.Store
	ledger   *ledger.Ledger
	out      io.Writer
	now      func() time.Time
	currency string
}

func newAppState(store db.Store, out io.Writer, currency string) (*appState, error) {
	l, err := ledger.Load(store)
	if err != nil {
		return nil, err
	}

	return &appState{
		store:    store,
		ledger:   l,
		out:      out,
		now:      time.Now,
		currency: currency,
	}, nil
}

func (s *appState) Close() error {
	return s.store.Close()
}

func (s *appState) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

func (s *appState) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *appState) money(d decimal.Decimal) string {
	return models.NewAmount(d, s.currency).Display()
}

func parseAmount(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(value), ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return d, nil
}

func parseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return t, nil
}

func displayAccount(name string) string {
	return utils.Capitalize(name)
}

func shortID(id string) string {
	return utils.Truncate(id, shortIDLength)
}
