package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newReplCmd(opts *rootOptions, open stateOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive REPL",
		Long:  `Start an interactive REPL for executing commands.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			return runREPL(opts, s, cmd.InOrStdin())
		},
	}
}

// runREPL reads one command per line and runs it against the already opened ledger
func runREPL(opts *rootOptions, s *appState, in io.Reader) error {
	s.println("Welcome to the pocket-ledger REPL!")
	s.println("Type 'exit' or 'quit' to exit, 'help' for the list of commands.")
	s.println()

	// Every line runs on a fresh command tree so flags never leak between lines
	reuse := func() (*appState, error) { return s, nil }

	// Start REPL
	scanner := bufio.NewScanner(in)

	for {
		s.printf("> ")

		if !scanner.Scan() {
			break
		}

		trimmedLine := strings.TrimSpace(scanner.Text())

		if trimmedLine == "" {
			continue
		}

		if trimmedLine == "exit" || trimmedLine == "quit" {
			break
		}

		args, err := splitArgs(trimmedLine)
		if err != nil {
			log.Error().Err(err).Msg("Invalid command")
			continue
		}

		if args[0] == "repl" {
			s.println("Already in the REPL")
			continue
		}

		lineOpts := *opts
		cmd := newRootCmd(&lineOpts, reuse)
		if args[0] == "help" {
			args[0] = "--help"
		}
		cmd.SetArgs(args)
		cmd.SetOut(s.out)
		cmd.SetErr(s.out)

		if err := cmd.Execute(); err != nil {
			log.Error().Err(err).Msg("Command failed")
		}
	}

	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("Error reading input")
		return err
	}
	return nil
}

// splitArgs splits a line on whitespace, keeping double-quoted text together
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quoted  bool
		inArg   bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			inArg = true
		case !quoted && (r == ' ' || r == '\t'):
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if quoted {
		return nil, fmt.Errorf("unterminated quote in %q", line)
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}
