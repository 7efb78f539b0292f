package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/vpnda/pocket-ledger/pkg/config"
)

func newConfigCmd(out io.Writer) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show the current configuration",
		Long:  `Show the current configuration loaded from config.yaml.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(out)
		},
	}

	var (
		income, fixedCosts, savings string
		ratio                       float64
	)
	budgetCmd := &cobra.Command{
		Use:   "budget",
		Short: "Update the monthly budget figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.GetConfig()
			if err != nil {
				return err
			}

			budget := cfg.Budget
			if budget.Income, err = amountFlag(cmd, "income", income, budget.Income); err != nil {
				return err
			}
			if budget.FixedCosts, err = amountFlag(cmd, "fixed", fixedCosts, budget.FixedCosts); err != nil {
				return err
			}
			if budget.SavingsTarget, err = amountFlag(cmd, "savings", savings, budget.SavingsTarget); err != nil {
				return err
			}
			if cmd.Flags().Changed("low-ratio") {
				if ratio < 0 || ratio > 1 {
					return fmt.Errorf("low-ratio must be between 0 and 1, got %v", ratio)
				}
				budget.LowRemainingRatio = ratio
			}

			if err := config.SetBudgetSettings(budget); err != nil {
				return err
			}
			log.Info().Msg("Budget updated successfully")
			return showConfig(out)
		},
	}
	budgetCmd.Flags().StringVar(&income, "income", "", "Monthly income")
	budgetCmd.Flags().StringVar(&fixedCosts, "fixed", "", "Monthly fixed costs")
	budgetCmd.Flags().StringVar(&savings, "savings", "", "Monthly savings target")
	budgetCmd.Flags().Float64Var(&ratio, "low-ratio", 0, "Share of the disposable budget below which the month is flagged as low")

	configCmd.AddCommand(budgetCmd)
	return configCmd
}

// amountFlag parses flag when it was passed and keeps current otherwise
func amountFlag(cmd *cobra.Command, flag, value string, current decimal.Decimal) (decimal.Decimal, error) {
	if !cmd.Flags().Changed(flag) {
		return current, nil
	}
	return parseAmount(flag, value)
}

// showConfig displays the current configuration
func showConfig(out io.Writer) error {
	cfg, err := config.GetConfig()
	if err != nil {
		log.Error().Err(err).Msg("Error loading configuration")
		return err
	}

	amount := func(v fmt.Stringer) string {
		return v.String() + " " + cfg.Currency
	}

	fmt.Fprintln(out, "Current Configuration:")
	fmt.Fprintln(out, "----------------------")
	fmt.Fprintf(out, "Currency:            %s\n", cfg.Currency)
	fmt.Fprintf(out, "Income:              %s\n", amount(cfg.Budget.Income))
	fmt.Fprintf(out, "Fixed costs:         %s\n", amount(cfg.Budget.FixedCosts))
	fmt.Fprintf(out, "Savings target:      %s\n", amount(cfg.Budget.SavingsTarget))
	fmt.Fprintf(out, "Low remaining ratio: %v\n", cfg.Budget.LowRemainingRatio)
	fmt.Fprintf(out, "Storage driver:      %s\n", cfg.Storage.Driver)
	if cfg.Storage.Path != "" {
		fmt.Fprintf(out, "Storage path:        %s\n", cfg.Storage.Path)
	}
	fmt.Fprintf(out, "Reminder window:     %d days\n", cfg.Reminders.WindowDays)

	if cfg.Budget.Income.IsZero() {
		fmt.Fprintln(out, "\nPlease set your monthly income with `config budget --income <amount>`")
		fmt.Fprintln(out, "to see the daily allowance.")
	}
	return nil
}
