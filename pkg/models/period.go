package models

import (
	"fmt"
	"time"
)

const periodLayout = "2006-01"

// Period is a calendar month
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the period t falls in
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses a period in YYYY-MM form
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(periodLayout, s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q, expected YYYY-MM: %w", s, err)
	}
	return PeriodOf(t), nil
}

func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

func (p Period) Start(loc *time.Location) time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, loc)
}

func (p Period) Prev() Period {
	return PeriodOf(p.Start(time.UTC).AddDate(0, -1, 0))
}

func (p Period) Next() Period {
	return PeriodOf(p.Start(time.UTC).AddDate(0, 1, 0))
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
