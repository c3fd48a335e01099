package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bank_account/internal/domain"

	"github.com/shopspring/decimal"
)

var ErrUnknownOperation = errors.New("unknown operation type")

// Recorder receives per-operation measurements. *metrics.MetricsCollector
// satisfies it.
type Recorder interface {
	RecordOperation(opType string, duration time.Duration, success bool)
	UpdateAccountBalance(accountNumber string, balance float64)
}

type OperationResult struct {
	OperationID         string                 `json:"operation_id"`
	Type                domain.OperationType   `json:"type"`
	Status              domain.OperationStatus `json:"status"`
	AccountNumber       string                 `json:"account_number"`
	Counterparty        string                 `json:"counterparty,omitempty"`
	Amount              decimal.Decimal        `json:"amount"`
	Balance             decimal.Decimal        `json:"balance"`
	CounterpartyBalance *decimal.Decimal       `json:"counterparty_balance,omitempty"`
	Interest            *decimal.Decimal       `json:"interest,omitempty"`
	Description         string                 `json:"description,omitempty"`
	Error               string                 `json:"error,omitempty"`
}

type AccountProcessor struct {
	metrics Recorder
	logger  *slog.Logger
}

func NewAccountProcessor(metrics Recorder, logger *slog.Logger) *AccountProcessor {
	if metrics == nil {
		metrics = noopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountProcessor{
		metrics: metrics,
		logger:  logger,
	}
}

// ProcessOperation applies op and reports the outcome. A rejected operation
// returns both a result with StatusRejected and the wrapped domain error.
func (p *AccountProcessor) ProcessOperation(ctx context.Context, op *domain.Operation) (*OperationResult, error) {
	if op == nil || op.Account == nil {
		return nil, domain.ErrAccountRequired
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &OperationResult{
		OperationID:   op.ID,
		Type:          op.Type,
		AccountNumber: op.Account.AccountNumber(),
		Amount:        op.Amount,
		Description:   op.Description,
	}
	if op.Counterparty != nil {
		result.Counterparty = op.Counterparty.AccountNumber()
	}

	err := p.execute(ctx, op, result)
	p.metrics.RecordOperation(string(op.Type), time.Since(start), err == nil)

	if err != nil {
		result.Status = domain.StatusRejected
		result.Error = err.Error()
		result.Balance = op.Account.GetBalance()
		p.logger.WarnContext(ctx, "Operation rejected",
			slog.String("operation_id", op.ID),
			slog.String("type", string(op.Type)),
			slog.String("account", result.AccountNumber),
			slog.String("amount", op.Amount.String()),
			slog.String("error", err.Error()))
		return result, fmt.Errorf("%s %s: %w", op.Type, op.ID, err)
	}

	result.Status = domain.StatusCompleted
	if op.Type != domain.OpInterest && !op.Moves() {
		result.Status = domain.StatusIgnored
	}
	result.Balance = p.observeBalance(op.Account)
	if op.Type == domain.OpTransfer {
		b := p.observeBalance(op.Counterparty)
		result.CounterpartyBalance = &b
	}

	p.logger.DebugContext(ctx, "Operation processed",
		slog.String("operation_id", op.ID),
		slog.String("type", string(op.Type)),
		slog.String("status", string(result.Status)),
		slog.String("account", result.AccountNumber))
	return result, nil
}

func (p *AccountProcessor) execute(ctx context.Context, op *domain.Operation, result *OperationResult) error {
	switch op.Type {
	case domain.OpCredit:
		op.Account.Credit(op.Amount)
		return nil
	case domain.OpDebit:
		return op.Account.Debit(op.Amount)
	case domain.OpTransfer:
		return p.processTransfer(ctx, op)
	case domain.OpInterest:
		interest := op.Account.CalculateInterest(op.Rate)
		result.Interest = &interest
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOperation, op.Type)
	}
}

func (p *AccountProcessor) processTransfer(ctx context.Context, op *domain.Operation) error {
	if op.Counterparty == nil {
		return fmt.Errorf("transfer target: %w", domain.ErrAccountRequired)
	}

	p.logger.InfoContext(ctx, "Processing transfer",
		slog.String("operation_id", op.ID),
		slog.String("from_account", op.Account.AccountNumber()),
		slog.String("to_account", op.Counterparty.AccountNumber()),
		slog.String("amount", op.Amount.String()))

	return op.Account.Transfer(op.Counterparty, op.Amount)
}

func (p *AccountProcessor) observeBalance(a *domain.Account) decimal.Decimal {
	balance := a.GetBalance()
	p.metrics.UpdateAccountBalance(a.AccountNumber(), balance.InexactFloat64())
	return balance
}

type noopRecorder struct{}

func (noopRecorder) RecordOperation(string, time.Duration, bool) {}
func (noopRecorder) UpdateAccountBalance(string, float64)       {}
