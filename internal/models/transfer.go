package models

import "github.com/shopspring/decimal"

// Transfer represents an intent to move money between two accounts.
// It exists only for the duration of one transfer call and is never stored.
type Transfer struct {
	FromAccountID string          `json:"accountFromId"`
	ToAccountID   string          `json:"accountToId"`
	Amount        decimal.Decimal `json:"amount"`
}
