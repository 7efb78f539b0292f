package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vpnda/pocket-ledger/db"
	"github.com/vpnda/pocket-ledger/pkg/config"
)

// stateOpener hands commands the ledger they operate on
type stateOpener func() (*appState, error)

type rootOptions struct {
	storePath  string
	driver     string
	configPath string
	verbose    bool
	homeDir    string

	out   io.Writer
	state *appState
}

// Execute executes the root command
func Execute() error {
	opts := defaultRootOptions(os.Stdout)
	defer opts.close()

	return newRootCmd(opts, opts.openState).Execute()
}

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func defaultRootOptions(out io.Writer) *rootOptions {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warn().Err(err).Msg("Error getting home directory, using the current directory")
		homeDir = "."
	}

	return &rootOptions{
		configPath: config.DefaultConfigPath,
		homeDir:    homeDir,
		out:        out,
	}
}

func newRootCmd(opts *rootOptions, open stateOpener) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pocket-ledger",
		Short: "A CLI tool for tracking expenses and paying down debt",
		Long: `A CLI tool that records personal and reimbursable expenses, tracks credit card
balances and due dates, and suggests how to split spare cash across debts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zerolog.SetGlobalLevel(lo.Ternary(opts.verbose, zerolog.DebugLevel, zerolog.InfoLevel))

			// Initialize configuration
			if err := config.InitGlobalConfig(opts.configPath); err != nil {
				// Only print a warning if the file doesn't exist, as GetConfig will create it later
				if !errors.Is(err, fs.ErrNotExist) {
					log.Warn().Err(err).Str("path", opts.configPath).Msg("Failed to load configuration")
					log.Warn().Msg("Commands that read the configuration will fail until the file is fixed")
				}
			}
			return nil
		},
	}

	rootCmd.SetOut(opts.out)
	rootCmd.PersistentFlags().StringVar(&opts.storePath, "store", opts.storePath, "Path to the ledger store, a database file for sqlite or a directory for yaml")
	rootCmd.PersistentFlags().StringVar(&opts.driver, "driver", opts.driver, "Storage driver, sqlite or yaml (defaults to the configured driver)")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", opts.configPath, "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", opts.verbose, "Enable debug logging")

	rootCmd.AddCommand(
		newExpenseCmd(open),
		newAccountCmd(open),
		newSummaryCmd(open),
		newPayoffCmd(open),
		newRemindCmd(open),
		newConfigCmd(opts.out),
		newReplCmd(opts, open),
	)

	return rootCmd
}

// openState opens the configured store once per process
func (o *rootOptions) openState() (*appState, error) {
	if o.state != nil {
		return o.state, nil
	}

	storage, err := config.GetStorageSettings("")
	if err != nil {
		return nil, err
	}
	driver := lo.CoalesceOrEmpty(o.driver, storage.Driver, db.DriverSQLite)
	path := lo.CoalesceOrEmpty(o.storePath, storage.Path, o.defaultStorePath(driver))

	store, err := db.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s store at %s: %w", driver, path, err)
	}
	log.Debug().Str("driver", driver).Str("path", path).Msg("store opened")

	state, err := newAppState(store, o.out, config.GetCurrency())
	if err != nil {
		store.Close()
		return nil, err
	}

	o.state = state
	return state, nil
}

func (o *rootOptions) defaultStorePath(driver string) string {
	dir := filepath.Join(o.homeDir, ".pocket-ledger")
	if driver == db.DriverYAML {
		return dir
	}
	return filepath.Join(dir, "ledger.db")
}

func (o *rootOptions) close() {
	if o.state == nil {
		return
	}
	if err := o.state.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing store")
	}
	o.state = nil
}
