package domain

import "errors"

var (
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrTransferLimitExceeded = errors.New("transfer amount exceeds limit for different account owners")
	ErrSameAccount           = errors.New("cannot transfer to the same account")
	ErrAccountRequired       = errors.New("account is required")
)
