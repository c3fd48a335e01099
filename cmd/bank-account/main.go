package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"bank_account/internal/config"

	"github.com/spf13/cobra"
)

const (
	appName = "bank-account"
)

type app struct {
	cnf    *config.Configuration
	logger *slog.Logger
}

func newRootCommand(stderr io.Writer) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Run credit, debit, transfer and interest operations against accounts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cnf, err := config.Load()
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}
			a.cnf = cnf
			a.logger = setupLogger(cnf, stderr)
			return nil
		},
	}

	rootCmd.AddCommand(runCommand(a))
	rootCmd.AddCommand(interestCommand(a))
	return rootCmd
}

func setupLogger(cnf *config.Configuration, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cnf.Level(),
	}

	var handler slog.Handler
	if cnf.LogFormat == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With(slog.String("app", appName))
}

func main() {
	if err := newRootCommand(os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
