package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferNotification is the payload published for each account affected by
// a committed transfer, once for the debited side and once for the credited
// side.
type TransferNotification struct {
	EventID    string          `json:"event_id"`
	AccountID  string          `json:"account_id"`
	Balance    decimal.Decimal `json:"balance"`
	Message    string          `json:"message"`
	OccurredAt time.Time       `json:"occurred_at"`
}
