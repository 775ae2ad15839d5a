package memory

import (
	"sync"

	interfaces "github.com/nimbusbank/account-transfer-service/internal/interfaces"
	"github.com/nimbusbank/account-transfer-service/internal/models"
)

// AccountStore is an in-memory implementation of interfaces.AccountStore.
// A single RWMutex guards structural membership of the map; balances of the
// stored accounts are guarded separately by the accounts themselves and the
// transfer engine's per-account locks.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
}

// NewAccountStore creates an empty in-memory account store.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[string]*models.Account),
	}
}

// Create stores the account if its identifier is free. The check-and-insert
// runs under the write lock, so two concurrent creations of the same
// identifier can never both succeed.
func (s *AccountStore) Create(account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.ID]; exists {
		return &models.DuplicateAccountError{AccountID: account.ID}
	}
	s.accounts[account.ID] = account
	return nil
}

// Get returns the account for id, or nil if absent.
func (s *AccountStore) Get(id string) *models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts[id]
}

// Clear empties the store. Intended for resetting state between tests.
func (s *AccountStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = make(map[string]*models.Account)
}

// Compile-time check: ensure AccountStore implements interfaces.AccountStore.
var _ interfaces.AccountStore = (*AccountStore)(nil)
