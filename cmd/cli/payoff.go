package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/vpnda/pocket-ledger/pkg/services"
	"github.com/vpnda/pocket-ledger/pkg/utils"
)

func newPayoffCmd(open stateOpener) *cobra.Command {
	var (
		cash       string
		fromLedger bool
		inflow     string
	)
	payoffCmd := &cobra.Command{
		Use:   "payoff",
		Short: "Split available cash across debts, highest interest first",
		Long: `Split available cash across debts with a positive balance, highest interest
rate first. Cash left once every debt is paid is reported as surplus.

With --from-ledger the available cash is the outstanding reimbursements plus the
previous period's inflow given by --inflow.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromLedger == (cash != "") {
				return errors.New("pass either --cash or --from-ledger")
			}
			s, err := open()
			if err != nil {
				return err
			}
			return s.payoff(cash, fromLedger, inflow)
		},
	}
	payoffCmd.Flags().StringVar(&cash, "cash", "", "Cash available for debt payments")
	payoffCmd.Flags().BoolVar(&fromLedger, "from-ledger", false, "Derive available cash from outstanding reimbursements")
	payoffCmd.Flags().StringVar(&inflow, "inflow", "0", "Previous period's inflow, used with --from-ledger")

	return payoffCmd
}

func (s *appState) payoff(cashArg string, fromLedger bool, inflowArg string) error {
	var cash decimal.Decimal
	if fromLedger {
		inflow, err := parseAmount("inflow", inflowArg)
		if err != nil {
			return err
		}
		if inflow.IsNegative() {
			return fmt.Errorf("inflow must not be negative, got %s", inflow)
		}
		cash = services.PayoffCash(s.ledger, inflow)
	} else {
		var err error
		if cash, err = parseAmount("cash", cashArg); err != nil {
			return err
		}
	}
	if cash.IsNegative() {
		return fmt.Errorf("available cash must not be negative, got %s", cash)
	}

	plan := services.PlanPayoff(cash, s.ledger.Accounts())

	s.printf("Available cash: %s\n", s.money(plan.AvailableCash))
	if len(plan.Allocations) > 0 {
		s.printf("\n%-3s %-20s %8s %15s %15s %15s\n", "#", "Account", "Rate", "Balance", "Pay", "Remaining")
		s.println(strings.Repeat("-", 82))
		for i, a := range plan.Allocations {
			s.printf("%-3d %-20s %8s %15s %15s %15s",
				i+1,
				utils.Truncate(displayAccount(a.Account), 20),
				a.InterestRate.String()+"%",
				s.money(a.Balance),
				s.money(a.Amount),
				s.money(a.Remaining()))
			if a.PaysOff() {
				s.printf("  paid off")
			}
			s.println()
		}
	} else if plan.TotalDebt.IsZero() {
		s.println("No outstanding debt")
	}

	s.println()
	s.printf("%-20s %15s\n", "Total debt", s.money(plan.TotalDebt))
	s.printf("%-20s %15s\n", "Unpaid after plan", s.money(plan.Shortfall()))
	s.printf("%-20s %15s\n", "Surplus to savings", s.money(plan.Surplus))
	return nil
}
