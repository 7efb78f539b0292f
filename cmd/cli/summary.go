package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/vpnda/pocket-ledger/pkg/config"
	"github.com/vpnda/pocket-ledger/pkg/ledger"
	"github.com/vpnda/pocket-ledger/pkg/models"
	"github.com/vpnda/pocket-ledger/pkg/services"
	"github.com/vpnda/pocket-ledger/pkg/utils"
)

type budgetStatus string

const (
	statusOnTrack    budgetStatus = "on track"
	statusLow        budgetStatus = "low remaining"
	statusOverBudget budgetStatus = "over budget"
)

// classify flags a month whose liquidity has gone negative, or has fallen below
// the configured share of the disposable budget
func classify(p services.Projection, budget config.BudgetSettings) budgetStatus {
	if p.Liquidity.IsNegative() {
		return statusOverBudget
	}

	threshold := budget.Disposable().Mul(decimal.NewFromFloat(budget.LowRemainingRatio))
	if p.Liquidity.LessThan(threshold) {
		return statusLow
	}
	return statusOnTrack
}

func newSummaryCmd(open stateOpener) *cobra.Command {
	var period string
	summaryCmd := &cobra.Command{
		Use:     "summary",
		Aliases: []string{"s"},
		Short:   "Show totals, per-card spending and the daily allowance",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			return s.summary(period)
		},
	}
	summaryCmd.Flags().StringVarP(&period, "period", "p", "", "Month to summarize (YYYY-MM), the current month when omitted")

	return summaryCmd
}

func (s *appState) summary(periodArg string) error {
	today := s.now()
	current := models.PeriodOf(today)
	period := current
	if periodArg != "" {
		p, err := models.ParsePeriod(periodArg)
		if err != nil {
			return err
		}
		period = p
	}

	personal := s.ledger.PersonalTotal(&period)

	s.printf("Summary for %s\n\n", period)
	s.printf("%-30s %15s\n", "Personal spending", s.money(personal))
	s.printf("%-30s %15s\n", "Reimbursable (all time)", s.money(s.ledger.ReimbursableTotal()))
	s.printf("%-30s %15s\n", "Outstanding reimbursements", s.money(s.ledger.OutstandingReimbursableTotal()))

	s.printCardActivity(period)

	if period != current {
		return nil
	}

	budget, err := config.GetBudgetSettings()
	if errors.Is(err, config.ErrIncomeNotSet) {
		log.Debug().Err(err).Msg("Skipping budget projection")
		s.println("\nSet budget.income in the configuration to see the daily allowance.")
		return nil
	} else if err != nil {
		return err
	}

	projection := services.Project(services.BudgetInput{
		Income:        budget.Income,
		FixedCosts:    budget.FixedCosts,
		SavingsTarget: budget.SavingsTarget,
		PersonalSpent: personal,
		Today:         today,
	})

	s.println()
	s.printf("%-30s %15s\n", "Liquidity", s.money(projection.Liquidity))
	s.printf("%-30s %15d\n", "Days remaining", projection.DaysRemaining)
	s.printf("%-30s %15s\n", "Daily allowance", s.money(projection.RoundedAllowance(int32(decimal.DivisionPrecision))))
	s.printf("%-30s %15s\n", "Status", classify(projection, budget))
	return nil
}

func (s *appState) printCardActivity(period models.Period) {
	spent := s.ledger.GroupedByAccount(func(e models.Expense) bool {
		return ledger.ExcludeCash(e) && period.Contains(e.Date)
	})
	rows := services.CardActivity(spent, s.ledger.Accounts())
	if len(rows) == 0 {
		return
	}

	s.printf("\n%-20s %15s %-8s %10s %15s\n", "Card", "Spent", "Due Day", "Rate", "Balance")
	s.println(strings.Repeat("-", 72))
	for _, row := range rows {
		if !row.Known {
			s.printf("%-20s %15s %s\n", utils.Truncate(displayAccount(row.Account), 20), s.money(row.Spent), "(not in account list)")
			continue
		}

		dueDay := "-"
		if row.DueDay > 0 {
			dueDay = strconv.Itoa(row.DueDay)
		}
		s.printf("%-20s %15s %-8s %10s %15s\n",
			utils.Truncate(displayAccount(row.Account), 20),
			s.money(row.Spent),
			dueDay,
			row.InterestRate.String()+"%",
			s.money(row.Balance))
	}
}
