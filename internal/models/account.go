package models

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Account holds the current balance for a single account identifier.
// The ID is immutable after creation; the balance is only mutated by the
// transfer engine while it holds the account's transfer lock. The internal
// mutex keeps individual reads and writes atomic so accessors never observe
// a torn value.
type Account struct {
	ID string

	mu      sync.RWMutex
	balance decimal.Decimal
}

// NewAccount creates an account with the given identifier and opening balance.
func NewAccount(id string, balance decimal.Decimal) *Account {
	return &Account{
		ID:      id,
		balance: balance,
	}
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.balance
}

// Debit subtracts amount from the balance. Callers must have already
// verified sufficient funds under the account's transfer lock.
func (a *Account) Debit(amount decimal.Decimal) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance = a.balance.Sub(amount)
}

// Credit adds amount to the balance.
func (a *Account) Credit(amount decimal.Decimal) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance = a.balance.Add(amount)
}
