package cli

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/vpnda/pocket-ledger/pkg/models"
	"github.com/vpnda/pocket-ledger/pkg/utils"
)

func newAccountCmd(open stateOpener) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:     "account",
		Aliases: []string{"a"},
		Short:   "Manage credit cards and other debt accounts",
	}

	var (
		dueDay  int
		rate    string
		balance string
	)
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a debt account, or update the account with the same name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			return s.addAccount(args[0], dueDay, rate, balance)
		},
	}
	addCmd.Flags().IntVar(&dueDay, "due-day", 0, "Day of the month the payment is due, 0 for none")
	addCmd.Flags().StringVar(&rate, "rate", "0", "Annual interest rate in percent")
	addCmd.Flags().StringVar(&balance, "balance", "0", "Amount currently owed")

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"l"},
		Short:   "List debt accounts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			s.listAccounts()
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"remove", "rm"},
		Short:   "Delete a debt account",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			if err := s.ledger.DeleteAccount(args[0]); err != nil {
				return err
			}
			log.Info().Str("account", args[0]).Msg("Account removed successfully")
			return nil
		},
	}

	balanceCmd := &cobra.Command{
		Use:   "balance <name> <amount>",
		Short: "Set the amount currently owed on an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			return s.updateBalance(args[0], args[1])
		},
	}

	accountCmd.AddCommand(addCmd, listCmd, deleteCmd, balanceCmd)
	return accountCmd
}

func (s *appState) addAccount(name string, dueDay int, rateArg, balanceArg string) error {
	rate, err := parseAmount("rate", rateArg)
	if err != nil {
		return err
	}
	balance, err := parseAmount("balance", balanceArg)
	if err != nil {
		return err
	}

	replaced, err := s.ledger.AddAccount(models.DebtAccount{
		Name:         name,
		DueDay:       dueDay,
		InterestRate: rate,
		Balance:      balance,
	})
	if err != nil {
		return err
	}

	if replaced {
		log.Info().Str("account", name).Msg("Account updated successfully")
		s.printf("Updated %s\n", displayAccount(name))
	} else {
		log.Info().Str("account", name).Msg("Account added successfully")
		s.printf("Added %s\n", displayAccount(name))
	}
	return nil
}

func (s *appState) updateBalance(name, amountArg string) error {
	balance, err := parseAmount("balance", amountArg)
	if err != nil {
		return err
	}
	if err := s.ledger.UpdateBalance(name, balance); err != nil {
		return err
	}

	log.Info().Str("account", name).Msg("Account balance updated successfully")
	s.printf("%s balance is now %s\n", displayAccount(name), s.money(balance))
	return nil
}

func (s *appState) listAccounts() {
	accounts := s.ledger.Accounts()
	if len(accounts) == 0 {
		s.println("No accounts found")
		return
	}

	s.printf("Found %d accounts:\n\n", len(accounts))
	s.printf("%-20s %-8s %10s %15s\n", "Account Name", "Due Day", "Rate", "Balance")
	s.println(strings.Repeat("-", 56))
	for _, a := range accounts {
		s.printf("%-20s %-8s %10s %15s\n",
			utils.Truncate(displayAccount(a.Name), 20),
			dueDayLabel(a),
			a.InterestRate.String()+"%",
			s.money(a.Balance))
	}

	total := lo.Reduce(accounts, func(sum decimal.Decimal, a models.DebtAccount, _ int) decimal.Decimal {
		return sum.Add(a.Balance)
	}, decimal.Zero)
	s.printf("\n%-40s %15s\n", "Total owed", s.money(total))
}

func dueDayLabel(a models.DebtAccount) string {
	if !a.HasDueDate() {
		return "-"
	}
	return strconv.Itoa(a.DueDay)
}
