package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bank_account/internal/processor"
	"bank_account/internal/script"
	"bank_account/pkg/metrics"

	"github.com/spf13/cobra"
)

func runCommand(a *app) *cobra.Command {
	var (
		failFast    bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "run <scenario.json>",
		Short: "Open the scenario's accounts, apply its steps and print a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sc, err := script.LoadFile(args[0])
			if err != nil {
				return err
			}

			if metricsAddr == "" {
				metricsAddr = a.cnf.MetricsAddr
			}
			collector := metrics.NewMetricsCollector(a.logger)

			var opts []script.Option
			if failFast {
				opts = append(opts, script.WithFailFast())
			}
			runner := script.NewRunner(processor.NewAccountProcessor(collector, a.logger), a.logger, opts...)

			report, runErr := runner.Run(ctx, sc)
			if report != nil {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			}
			if runErr != nil {
				return runErr
			}

			if metricsAddr != "" {
				server := collector.StartMetricsServer(metricsAddr)
				waitForShutdown(ctx, a.logger, server)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop at the first rejected step")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve /metrics on this address after the run until interrupted")
	return cmd
}

func waitForShutdown(ctx context.Context, logger *slog.Logger, metricsServer *http.Server) {
	<-ctx.Done()
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Metrics server shutdown failed", slog.String("error", err.Error()))
	}
}
