// Package script runs a scenario of account operations from a JSON document.
// Accounts exist only for the duration of a run.
package script

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"bank_account/internal/domain"
	"bank_account/internal/processor"

	"github.com/shopspring/decimal"
)

type AccountBalance struct {
	Number  string          `json:"number"`
	Owner   string          `json:"owner"`
	Type    string          `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

type Report struct {
	Results  []*processor.OperationResult `json:"results"`
	Balances []AccountBalance             `json:"balances"`
	Rejected int                          `json:"rejected"`
}

type Runner struct {
	processor *processor.AccountProcessor
	logger    *slog.Logger
	failFast  bool
	now       func() time.Time
}

type Option func(*Runner)

// WithFailFast stops the run at the first rejected step.
func WithFailFast() Option {
	return func(r *Runner) { r.failFast = true }
}

func NewRunner(proc *processor.AccountProcessor, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{
		processor: proc,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load decodes and validates a scenario.
func Load(r io.Reader) (*Scenario, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &sc, nil
}

func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Run opens the scenario's accounts and applies its steps in order. Rejected
// steps are recorded in the report; with fail-fast the first one also ends
// the run and is returned as the error alongside the partial report.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Report, error) {
	accounts := make(map[string]*domain.Account, len(sc.Accounts))
	order := make([]*domain.Account, 0, len(sc.Accounts))
	for _, spec := range sc.Accounts {
		created := spec.CreatedAt
		if created.IsZero() {
			created = r.now()
		}
		acc := domain.NewAccount(spec.Number, spec.InitialBalance, spec.Owner, spec.Type, created)
		accounts[spec.Number] = acc
		order = append(order, acc)
	}

	report := &Report{Results: make([]*processor.OperationResult, 0, len(sc.Steps))}
	var runErr error
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		res, err := r.processor.ProcessOperation(ctx, buildOperation(step, accounts))
		if res != nil {
			report.Results = append(report.Results, res)
		}
		if err == nil {
			continue
		}
		if !isRejection(err) {
			runErr = fmt.Errorf("step %d: %w", i, err)
			break
		}
		report.Rejected++
		if r.failFast {
			runErr = fmt.Errorf("step %d: %w", i, err)
			break
		}
	}

	for _, acc := range order {
		report.Balances = append(report.Balances, AccountBalance{
			Number:  acc.AccountNumber(),
			Owner:   acc.Owner(),
			Type:    acc.AccountType(),
			Balance: acc.GetBalance(),
		})
	}

	r.logger.InfoContext(ctx, "Scenario finished",
		slog.Int("steps", len(report.Results)),
		slog.Int("rejected", report.Rejected))
	return report, runErr
}

func buildOperation(step StepSpec, accounts map[string]*domain.Account) *domain.Operation {
	var op *domain.Operation
	if step.Type == domain.OpInterest {
		op = domain.NewInterestOperation(step.Rate)
	} else {
		op = domain.NewOperation(step.Type, step.Amount)
	}
	op.On(accounts[step.Account]).WithDescription(step.Description)
	if step.To != "" {
		op.To(accounts[step.To])
	}
	return op
}

// isRejection reports whether err is a business-rule refusal rather than a
// problem with the run itself.
func isRejection(err error) bool {
	return errors.Is(err, domain.ErrInsufficientFunds) ||
		errors.Is(err, domain.ErrTransferLimitExceeded) ||
		errors.Is(err, domain.ErrSameAccount)
}
