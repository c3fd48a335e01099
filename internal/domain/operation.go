package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OperationType string
type OperationStatus string

const (
	OpCredit   OperationType = "credit"
	OpDebit    OperationType = "debit"
	OpTransfer OperationType = "transfer"
	OpInterest OperationType = "interest"

	StatusCompleted OperationStatus = "completed"
	StatusRejected  OperationStatus = "rejected"
	StatusIgnored   OperationStatus = "ignored"
)

// Operation is one request against an account. Counterparty is only used by
// transfers and Rate only by interest calculations.
type Operation struct {
	ID           string
	Type         OperationType
	Amount       decimal.Decimal
	Rate         float64
	Account      *Account
	Counterparty *Account
	Description  string
	CreatedAt    time.Time
}

func NewOperation(t OperationType, amount decimal.Decimal) *Operation {
	return &Operation{
		ID:        uuid.NewString(),
		Type:      t,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
}

func NewInterestOperation(rate float64) *Operation {
	op := NewOperation(OpInterest, decimal.Zero)
	op.Rate = rate
	return op
}

func (op *Operation) On(account *Account) *Operation {
	op.Account = account
	return op
}

func (op *Operation) To(counterparty *Account) *Operation {
	op.Counterparty = counterparty
	return op
}

func (op *Operation) WithDescription(desc string) *Operation {
	op.Description = desc
	return op
}

// Moves reports whether the operation can change a balance at all. Credits,
// debits and transfers of zero or negative amounts are no-ops.
func (op *Operation) Moves() bool {
	switch op.Type {
	case OpCredit, OpDebit, OpTransfer:
		return op.Amount.IsPositive()
	default:
		return false
	}
}
