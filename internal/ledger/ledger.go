package ledger

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	interfaces "github.com/nimbusbank/account-transfer-service/internal/interfaces"
	"github.com/nimbusbank/account-transfer-service/internal/models"
)

// Ledger executes money transfers against the account store.
// It holds one mutex per account in muMap; a transfer locks both involved
// accounts in lexicographic identifier order, never in from/to order, so two
// opposing transfers on the same pair cannot deadlock.
type Ledger struct {
	store    interfaces.AccountStore
	notifier interfaces.Notifier
	logger   *zap.Logger

	muMap map[string]*sync.Mutex // transfer lock per account ID
	mapMu sync.Mutex             // protects the muMap itself
}

// NewLedger creates a ledger backed by the given store. Notifications about
// committed transfers go to notifier; its failures are logged and swallowed.
func NewLedger(store interfaces.AccountStore, notifier interfaces.Notifier, logger *zap.Logger) *Ledger {
	return &Ledger{
		store:    store,
		notifier: notifier,
		logger:   logger,
		muMap:    make(map[string]*sync.Mutex),
	}
}

// CreateAccount registers a new account. Returns *models.DuplicateAccountError
// if the identifier is already taken.
func (l *Ledger) CreateAccount(account *models.Account) error {
	return l.store.Create(account)
}

// GetAccount returns the account for id, or nil if it does not exist.
func (l *Ledger) GetAccount(id string) *models.Account {
	return l.store.Get(id)
}

func (l *Ledger) getAccountLock(accountID string) *sync.Mutex {
	l.mapMu.Lock()
	defer l.mapMu.Unlock()

	if _, exists := l.muMap[accountID]; !exists {
		l.muMap[accountID] = &sync.Mutex{}
	}
	return l.muMap[accountID]
}

// Transfer moves amount from one account to another as a single atomic step.
//
// Validation runs in a fixed order, first failing check wins: the amount must
// be positive, the accounts must be distinct, and both must exist. Funds
// sufficiency is only checked afterwards, with both locks held, because the
// source balance may change between the initial read and lock acquisition.
func (l *Ledger) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) error {
	l.logger.Info("starting transfer",
		zap.String("from", fromID),
		zap.String("to", toID),
		zap.String("amount", amount.String()),
	)

	if amount.Cmp(decimal.Zero) <= 0 {
		return models.ErrInvalidAmount
	}

	if strings.EqualFold(strings.TrimSpace(fromID), strings.TrimSpace(toID)) {
		return models.ErrSameAccount
	}

	fromAccount := l.store.Get(fromID)
	toAccount := l.store.Get(toID)
	if fromAccount == nil || toAccount == nil {
		return models.ErrAccountNotFound
	}

	fromMutex := l.getAccountLock(fromID)
	toMutex := l.getAccountLock(toID)

	// Lock in identifier order to avoid deadlocks between opposing
	// transfers on the same account pair.
	first, second := fromMutex, toMutex
	if fromID > toID {
		first, second = toMutex, fromMutex
	}

	first.Lock()
	second.Lock()

	if fromAccount.Balance().Cmp(amount) < 0 {
		second.Unlock()
		first.Unlock()
		return models.ErrInsufficientFunds
	}
	fromAccount.Debit(amount)
	toAccount.Credit(amount)

	second.Unlock()
	first.Unlock()

	// Post-commit, best-effort. The transfer has already succeeded.
	l.notify(ctx, fromAccount, fmt.Sprintf("Debited %s from account %s", amount, fromID))
	l.notify(ctx, toAccount, fmt.Sprintf("Credited %s to account %s", amount, toID))

	l.logger.Info("transfer complete",
		zap.String("from", fromID),
		zap.String("to", toID),
		zap.String("amount", amount.String()),
	)
	return nil
}

func (l *Ledger) notify(ctx context.Context, account *models.Account, message string) {
	if err := l.notifier.Notify(ctx, account, message); err != nil {
		l.logger.Error("failed to notify about transfer",
			zap.String("account", account.ID),
			zap.Error(err),
		)
	}
}
