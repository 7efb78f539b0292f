package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vpnda/pocket-ledger/pkg/config"
	"github.com/vpnda/pocket-ledger/pkg/services"
	"github.com/vpnda/pocket-ledger/pkg/utils"
)

func newRemindCmd(open stateOpener) *cobra.Command {
	var window int
	remindCmd := &cobra.Command{
		Use:   "remind",
		Short: "List card payments coming due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("window") {
				cfg, err := config.GetConfig()
				if err != nil {
					return err
				}
				window = cfg.Reminders.WindowDays
			}
			s.remind(window)
			return nil
		},
	}
	remindCmd.Flags().IntVarP(&window, "window", "w", 0, "Days ahead to look, the configured window when omitted")

	return remindCmd
}

func (s *appState) remind(window int) {
	reminders := services.DueReminders(s.ledger.Accounts(), s.now(), window)
	if len(reminders) == 0 {
		s.printf("No payments due in the next %d days\n", window)
		return
	}

	s.printf("%-20s %-10s %-10s %15s\n", "Account", "Due", "In", "Balance")
	s.println(strings.Repeat("-", 58))
	for _, r := range reminders {
		s.printf("%-20s %-10s %-10s %15s\n",
			utils.Truncate(displayAccount(r.Account), 20),
			r.DueDate.Format(time.DateOnly),
			dueIn(r.DaysUntil),
			s.money(r.Balance))
	}
}

func dueIn(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	default:
		return strconv.Itoa(days) + " days"
	}
}
