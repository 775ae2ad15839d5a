package interfaces

import (
	"github.com/nimbusbank/account-transfer-service/internal/models"
)

// AccountStore is the authoritative store of accounts. Implementations must
// make Create atomic with respect to concurrent creations of the same
// identifier.
type AccountStore interface {
	// Create stores the account, or returns *models.DuplicateAccountError if
	// the identifier is already taken.
	Create(account *models.Account) error

	// Get returns the account for id, or nil if no such account exists.
	Get(id string) *models.Account

	// Clear atomically empties the store. Reset support for tests only;
	// never call it under concurrent transfer load.
	Clear()
}
