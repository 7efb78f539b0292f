package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vpnda/pocket-ledger/pkg/ledger"
	"github.com/vpnda/pocket-ledger/pkg/models"
	"github.com/vpnda/pocket-ledger/pkg/utils"
)

func newExpenseCmd(open stateOpener) *cobra.Command {
	expenseCmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"e"},
		Short:   "Record and manage expenses",
	}

	var (
		account      string
		date         string
		reimbursable bool
	)
	addCmd := &cobra.Command{
		Use:     "add <amount> <description>",
		Short:   "Record an expense",
		Example: `  pocket-ledger expense add 120 "Lunch with team" --account visa --reimbursable`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			return s.addExpense(args[0], strings.Join(args[1:], " "), account, date, reimbursable)
		},
	}
	addCmd.Flags().StringVarP(&account, "account", "a", models.CashAccount, "Account the expense was paid with")
	addCmd.Flags().StringVarP(&date, "date", "d", "", "Expense date as YYYY-MM-DD, today when omitted")
	addCmd.Flags().BoolVarP(&reimbursable, "reimbursable", "r", false, "Paid on behalf of the company and owed back")

	var period string
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"l"},
		Short:   "List expenses, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			return s.listExpenses(period)
		},
	}
	listCmd.Flags().StringVarP(&period, "period", "p", "", "Only list expenses in the given month (YYYY-MM)")

	deleteCmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"remove", "rm"},
		Short:   "Delete an expense by id or id prefix",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			return s.deleteExpense(args[0])
		},
	}

	var all bool
	settleCmd := &cobra.Command{
		Use:   "settle [<id>]",
		Short: "Mark reimbursable expenses as paid back",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return errors.New("pass either an expense id or --all")
			}
			s, err := open()
			if err != nil {
				return err
			}
			if all {
				return s.settleAll()
			}
			return s.settleExpense(args[0])
		},
	}
	settleCmd.Flags().BoolVar(&all, "all", false, "Settle every outstanding reimbursable expense")

	expenseCmd.AddCommand(addCmd, listCmd, deleteCmd, settleCmd)
	return expenseCmd
}

func (s *appState) addExpense(amountArg, description, account, dateArg string, reimbursable bool) error {
	amount, err := parseAmount("amount", amountArg)
	if err != nil {
		return err
	}

	date := s.now()
	if dateArg != "" {
		if date, err = parseDate(dateArg); err != nil {
			return err
		}
	}

	e, err := s.ledger.AddExpense(models.Expense{
		Date:           date,
		Account:        account,
		Description:    description,
		Amount:         amount,
		IsReimbursable: reimbursable,
	})
	if err != nil {
		return err
	}

	log.Info().Str("expense", shortID(e.ID)).Msg("Expense added successfully")
	s.printf("Added %s: %s %s on %s (%s)\n",
		shortID(e.ID), e.Description, s.money(e.Amount), e.Date.Format(time.DateOnly), displayAccount(e.Account))
	return nil
}

func (s *appState) listExpenses(periodArg string) error {
	expenses := s.ledger.Expenses()
	if periodArg != "" {
		period, err := models.ParsePeriod(periodArg)
		if err != nil {
			return err
		}
		expenses = s.ledger.ExpensesIn(period)
	}

	if len(expenses) == 0 {
		s.println("No expenses found")
		return nil
	}

	s.printf("Found %d expenses:\n\n", len(expenses))
	s.printf("%-8s %-10s %-15s %-30s %15s %-12s\n", "ID", "Date", "Account", "Description", "Amount", "Status")
	s.println(strings.Repeat("-", 95))
	for _, e := range expenses {
		s.printf("%-8s %-10s %-15s %-30s %15s %-12s\n",
			shortID(e.ID),
			e.Date.Format(time.DateOnly),
			utils.Truncate(displayAccount(e.Account), 15),
			utils.Truncate(e.Description, 30),
			s.money(e.Amount),
			expenseStatus(e))
	}
	return nil
}

func expenseStatus(e models.Expense) string {
	switch {
	case !e.IsReimbursable:
		return "personal"
	case e.IsSettled:
		return "settled"
	default:
		return "outstanding"
	}
}

// resolveExpenseID expands a unique id prefix, as shown by list, into a full id
func (s *appState) resolveExpenseID(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", errors.New("expense id must not be empty")
	}
	if _, ok := s.ledger.Expense(prefix); ok {
		return prefix, nil
	}

	matches := lo.Filter(s.ledger.Expenses(), func(e models.Expense, _ int) bool {
		return strings.HasPrefix(e.ID, prefix)
	})
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("expense %s: %w", prefix, ledger.ErrNotFound)
	case 1:
		return matches[0].ID, nil
	default:
		return "", fmt.Errorf("expense id %q is ambiguous, %d expenses match", prefix, len(matches))
	}
}

func (s *appState) deleteExpense(idArg string) error {
	id, err := s.resolveExpenseID(idArg)
	if err != nil {
		return err
	}
	if err := s.ledger.DeleteExpense(id); err != nil {
		return err
	}

	log.Info().Str("expense", shortID(id)).Msg("Expense removed successfully")
	s.printf("Deleted %s\n", shortID(id))
	return nil
}

func (s *appState) settleExpense(idArg string) error {
	id, err := s.resolveExpenseID(idArg)
	if err != nil {
		return err
	}
	if err := s.ledger.SettleExpense(id); err != nil {
		return err
	}

	s.printf("Settled %s, outstanding reimbursements: %s\n", shortID(id), s.money(s.ledger.OutstandingReimbursableTotal()))
	return nil
}

func (s *appState) settleAll() error {
	settled, err := s.ledger.SettleAllReimbursable()
	if err != nil {
		return err
	}

	log.Info().Int("settled", settled).Msg("Reimbursable expenses settled")
	s.printf("Settled %d reimbursable expenses\n", settled)
	return nil
}
