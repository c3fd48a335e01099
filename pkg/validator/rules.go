// Package validator holds ozzo-validation rules shared by the scenario
// loader. Amount rules never reject zero or negative operation amounts:
// those are accepted by the account and treated as no-ops.
package validator

import (
	"errors"

	"bank_account/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

var (
	ErrNotDecimal      = errors.New("must be a decimal amount")
	ErrNegativeBalance = errors.New("must not be negative")
	ErrUnknownAccount  = errors.New("references an undeclared account")
	ErrDuplicateNumber = errors.New("account numbers must be unique")
)

// NonNegative rejects decimal values below zero.
func NonNegative() validation.Rule {
	return validation.By(func(value interface{}) error {
		d, ok := value.(decimal.Decimal)
		if !ok {
			return ErrNotDecimal
		}
		if d.IsNegative() {
			return ErrNegativeBalance
		}
		return nil
	})
}

// OperationType accepts the operation types an account can process.
func OperationType() validation.Rule {
	return validation.In(domain.OpCredit, domain.OpDebit, domain.OpTransfer, domain.OpInterest).
		Error("must be one of credit, debit, transfer, interest")
}

// DeclaredAccount accepts empty values and account numbers present in declared.
func DeclaredAccount(declared map[string]struct{}) validation.Rule {
	return validation.By(func(value interface{}) error {
		number, _ := value.(string)
		if number == "" {
			return nil
		}
		if _, ok := declared[number]; !ok {
			return ErrUnknownAccount
		}
		return nil
	})
}

// UniqueNumbers rejects a list of account numbers containing duplicates.
func UniqueNumbers(numbers []string) error {
	seen := make(map[string]struct{}, len(numbers))
	for _, n := range numbers {
		if _, ok := seen[n]; ok {
			return ErrDuplicateNumber
		}
		seen[n] = struct{}{}
	}
	return nil
}
