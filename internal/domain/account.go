package domain

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// TransferLimit is the largest amount a single transfer may move between
// accounts held by different owners. Same-owner transfers are not capped.
const TransferLimit = 500

var (
	transferLimit = decimal.NewFromInt(TransferLimit)

	// lockOrder hands out the sequence used to order lock acquisition in Transfer.
	lockOrder atomic.Uint64
)

// Account is a single balance-holding account. The balance is only changed
// through Credit, Debit and Transfer and is never driven below zero by them.
//
// All methods are safe for concurrent use. Accounts must be created with
// NewAccount.
type Account struct {
	mu  sync.Mutex
	seq uint64

	accountNumber string
	balance       decimal.Decimal
	owner         string
	accountType   string
	createdDate   time.Time
}

func NewAccount(accountNumber string, initialBalance decimal.Decimal, owner, accountType string, createdDate time.Time) *Account {
	return &Account{
		seq:           lockOrder.Add(1),
		accountNumber: accountNumber,
		balance:       initialBalance,
		owner:         owner,
		accountType:   accountType,
		createdDate:   createdDate,
	}
}

func (a *Account) AccountNumber() string  { return a.accountNumber }
func (a *Account) Owner() string          { return a.owner }
func (a *Account) AccountType() string    { return a.accountType }
func (a *Account) CreatedDate() time.Time { return a.createdDate }

func (a *Account) GetBalance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Credit adds amount to the balance. Zero and negative amounts are ignored.
func (a *Account) Credit(amount decimal.Decimal) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.credit(amount)
}

// Debit subtracts amount from the balance. Zero and negative amounts are
// ignored; an amount above the balance returns ErrInsufficientFunds.
func (a *Account) Debit(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.debit(amount)
}

// Transfer moves amount from a to the target account. Zero and negative
// amounts are ignored. The checks run in a fixed order: funds first, then the
// cross-owner limit. Both accounts stay locked from the checks until the
// credit lands, so a failed transfer leaves neither account changed.
func (a *Account) Transfer(to *Account, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return nil
	}
	if to == nil {
		return ErrAccountRequired
	}
	if to == a {
		return ErrSameAccount
	}

	unlock := lockPair(a, to)
	defer unlock()

	if a.balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	if a.owner != to.owner && amount.GreaterThan(transferLimit) {
		return ErrTransferLimitExceeded
	}

	// debit must run first: once it succeeds the credit cannot fail.
	if err := a.debit(amount); err != nil {
		return err
	}
	to.credit(amount)
	return nil
}

// CalculateInterest returns balance * rate without rounding. The rate is not
// validated; it must be a finite number.
func (a *Account) CalculateInterest(rate float64) decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance.Mul(decimal.NewFromFloat(rate))
}

func (a *Account) credit(amount decimal.Decimal) {
	if amount.IsPositive() {
		a.balance = a.balance.Add(amount)
	}
}

func (a *Account) debit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return nil
	}
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

// lockPair locks both accounts in creation order and returns the matching unlock.
func lockPair(x, y *Account) func() {
	first, second := x, y
	if y.seq < x.seq {
		first, second = y, x
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}
