package main

import (
	"fmt"
	"math"
	"time"

	"bank_account/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func interestCommand(a *app) *cobra.Command {
	var (
		balance string
		rate    float64
	)

	cmd := &cobra.Command{
		Use:   "interest",
		Short: "Print the simple interest a balance earns at a rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(balance)
			if err != nil {
				return fmt.Errorf("invalid balance %q: %w", balance, err)
			}
			if !cmd.Flags().Changed("rate") {
				rate = a.cnf.Rate()
			}
			if math.IsNaN(rate) || math.IsInf(rate, 0) {
				return fmt.Errorf("invalid rate %v", rate)
			}

			acc := domain.NewAccount("", amount, "", "", time.Now())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), acc.CalculateInterest(rate).String())
			return err
		},
	}

	cmd.Flags().StringVar(&balance, "balance", "0", "account balance")
	cmd.Flags().Float64Var(&rate, "rate", 0, "interest rate as a fraction, e.g. 0.05 (defaults to BANK_ACCOUNT_INTEREST_RATE)")
	return cmd
}
