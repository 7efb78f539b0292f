package services

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vpnda/pocket-ledger/pkg/models"
)

// Reminder flags a card payment coming due
type Reminder struct {
	Account   string
	DueDate   time.Time
	DaysUntil int
	Balance   decimal.Decimal
}

// NextDueDate returns the next date on or after today that falls on dueDay.
// Due days past the end of a month fall on that month's last day.
func NextDueDate(dueDay int, today time.Time) time.Time {
	today = models.DateOnly(today)

	due := dueDateIn(today, dueDay)
	if due.Before(today) {
		due = dueDateIn(today.AddDate(0, 0, -today.Day()+1).AddDate(0, 1, 0), dueDay)
	}
	return due
}

func dueDateIn(month time.Time, dueDay int) time.Time {
	return time.Date(month.Year(), month.Month(), min(dueDay, DaysInMonth(month)), 0, 0, 0, 0, month.Location())
}

// daysBetween counts calendar days from a to b, ignoring DST shifts
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// DueReminders lists accounts due within window days of today, soonest first.
// Accounts without a due day are skipped.
func DueReminders(accounts []models.DebtAccount, today time.Time, window int) []Reminder {
	reminders := make([]Reminder, 0)
	for _, a := range accounts {
		if !a.HasDueDate() {
			continue
		}

		due := NextDueDate(a.DueDay, today)
		days := daysBetween(today, due)
		if days > window {
			continue
		}

		reminders = append(reminders, Reminder{
			Account:   a.Name,
			DueDate:   due,
			DaysUntil: days,
			Balance:   a.Balance,
		})
	}

	slices.SortFunc(reminders, func(a, b Reminder) int {
		if a.DaysUntil != b.DaysUntil {
			return a.DaysUntil - b.DaysUntil
		}
		return strings.Compare(a.Account, b.Account)
	})
	return reminders
}
