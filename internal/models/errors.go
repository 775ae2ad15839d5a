package models

import (
	"errors"
	"fmt"
)

// Transfer-time errors. External layers and tests key off these exact
// messages, so they are fixed sentinel values rather than formatted strings.
var (
	// ErrInvalidAmount is returned when the transfer amount is zero or negative.
	ErrInvalidAmount = errors.New("Transfer amount must be positive")

	// ErrSameAccount is returned when source and destination resolve to the
	// same account.
	ErrSameAccount = errors.New("Transfer can happen between 2 different accounts")

	// ErrAccountNotFound is returned when either side of a transfer does not
	// exist in the ledger.
	ErrAccountNotFound = errors.New("One or both accounts not found")

	// ErrInsufficientFunds is returned when the source balance cannot cover
	// the transfer amount at the moment of mutation.
	ErrInsufficientFunds = errors.New("Insufficient funds in source account")
)

// DuplicateAccountError is returned by account creation when the identifier
// is already taken.
type DuplicateAccountError struct {
	AccountID string
}

func (e *DuplicateAccountError) Error() string {
	return fmt.Sprintf("Account id %s already exists!", e.AccountID)
}
