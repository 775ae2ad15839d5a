package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nimbusbank/account-transfer-service/internal/models"
	"github.com/nimbusbank/account-transfer-service/internal/storage/memory"
)

// ---- mock notifiers ----

type notification struct {
	accountID string
	message   string
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []notification
}

func (r *recordingNotifier) Notify(_ context.Context, account *models.Account, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, notification{accountID: account.ID, message: message})
	return nil
}

func (r *recordingNotifier) notifications() []notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notification(nil), r.calls...)
}

type failingNotifier struct{}

func (failingNotifier) Notify(context.Context, *models.Account, string) error {
	return errors.New("notification gateway unavailable")
}

// ---- helpers ----

func newTestLedger(t *testing.T) (*Ledger, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	return NewLedger(memory.NewAccountStore(), notifier, zaptest.NewLogger(t)), notifier
}

func mustCreate(t *testing.T, l *Ledger, id string, balance int64) {
	t.Helper()
	require.NoError(t, l.CreateAccount(models.NewAccount(id, decimal.NewFromInt(balance))))
}

func balanceOf(t *testing.T, l *Ledger, id string) decimal.Decimal {
	t.Helper()
	account := l.GetAccount(id)
	require.NotNil(t, account)
	return account.Balance()
}

// ---- tests ----

func TestTransferMovesFunds(t *testing.T) {
	l, notifier := newTestLedger(t)
	mustCreate(t, l, "A", 1000)
	mustCreate(t, l, "B", 1000)

	err := l.Transfer(context.Background(), "A", "B", decimal.NewFromInt(5))
	require.NoError(t, err)

	assert.True(t, balanceOf(t, l, "A").Equal(decimal.NewFromInt(995)))
	assert.True(t, balanceOf(t, l, "B").Equal(decimal.NewFromInt(1005)))

	calls := notifier.notifications()
	require.Len(t, calls, 2)
	assert.Equal(t, notification{accountID: "A", message: "Debited 5 from account A"}, calls[0])
	assert.Equal(t, notification{accountID: "B", message: "Credited 5 to account B"}, calls[1])
}

func TestTransferRejectsNonPositiveAmount(t *testing.T) {
	l, notifier := newTestLedger(t)
	// Zero balances: a negative amount must fail on the amount check,
	// never on the funds check.
	mustCreate(t, l, "A", 0)
	mustCreate(t, l, "B", 0)

	err := l.Transfer(context.Background(), "A", "B", decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	err = l.Transfer(context.Background(), "A", "B", decimal.Zero)
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	assert.True(t, balanceOf(t, l, "A").IsZero())
	assert.True(t, balanceOf(t, l, "B").IsZero())
	assert.Empty(t, notifier.notifications())
}

func TestTransferRejectsSameAccount(t *testing.T) {
	l, _ := newTestLedger(t)
	mustCreate(t, l, "Id-1001", 1000)

	err := l.Transfer(context.Background(), "Id-1001", "Id-1001", decimal.NewFromInt(5))
	assert.ErrorIs(t, err, models.ErrSameAccount)

	// Identifier comparison is case-insensitive and ignores surrounding
	// whitespace.
	err = l.Transfer(context.Background(), "Id-1001", " ID-1001 ", decimal.NewFromInt(5))
	assert.ErrorIs(t, err, models.ErrSameAccount)

	assert.True(t, balanceOf(t, l, "Id-1001").Equal(decimal.NewFromInt(1000)))
}

func TestTransferRejectsMissingAccounts(t *testing.T) {
	l, notifier := newTestLedger(t)
	mustCreate(t, l, "X", 1000)

	err := l.Transfer(context.Background(), "X", "Y", decimal.NewFromInt(5))
	assert.ErrorIs(t, err, models.ErrAccountNotFound)

	err = l.Transfer(context.Background(), "Y", "X", decimal.NewFromInt(5))
	assert.ErrorIs(t, err, models.ErrAccountNotFound)

	err = l.Transfer(context.Background(), "Y", "Z", decimal.NewFromInt(5))
	assert.ErrorIs(t, err, models.ErrAccountNotFound)

	assert.True(t, balanceOf(t, l, "X").Equal(decimal.NewFromInt(1000)))
	assert.Empty(t, notifier.notifications())
}

func TestTransferRejectsInsufficientFunds(t *testing.T) {
	l, notifier := newTestLedger(t)
	mustCreate(t, l, "A", 100)
	mustCreate(t, l, "B", 100)

	err := l.Transfer(context.Background(), "A", "B", decimal.NewFromInt(101))
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)

	assert.True(t, balanceOf(t, l, "A").Equal(decimal.NewFromInt(100)))
	assert.True(t, balanceOf(t, l, "B").Equal(decimal.NewFromInt(100)))
	assert.Empty(t, notifier.notifications())
}

func TestTransferDrainsToInsufficientFunds(t *testing.T) {
	l, _ := newTestLedger(t)
	mustCreate(t, l, "Id-3001", 1000)
	mustCreate(t, l, "Id-3002", 1000)

	// 6 transfers of 300: three succeed, the rest fail once the source
	// drops below the amount.
	var failures int
	for i := 0; i < 6; i++ {
		if err := l.Transfer(context.Background(), "Id-3001", "Id-3002", decimal.NewFromInt(300)); err != nil {
			assert.ErrorIs(t, err, models.ErrInsufficientFunds)
			failures++
		}
	}

	assert.Equal(t, 3, failures)
	assert.True(t, balanceOf(t, l, "Id-3001").Equal(decimal.NewFromInt(100)))
	assert.True(t, balanceOf(t, l, "Id-3002").Equal(decimal.NewFromInt(1900)))
}

func TestTransferNotifierFailureDoesNotAffectTransfer(t *testing.T) {
	l := NewLedger(memory.NewAccountStore(), failingNotifier{}, zaptest.NewLogger(t))
	mustCreate(t, l, "A", 1000)
	mustCreate(t, l, "B", 1000)

	err := l.Transfer(context.Background(), "A", "B", decimal.NewFromInt(5))
	require.NoError(t, err)

	assert.True(t, balanceOf(t, l, "A").Equal(decimal.NewFromInt(995)))
	assert.True(t, balanceOf(t, l, "B").Equal(decimal.NewFromInt(1005)))
}

func TestConcurrentOpposingTransfers(t *testing.T) {
	l, _ := newTestLedger(t)
	mustCreate(t, l, "Id-4001", 1000)
	mustCreate(t, l, "Id-4002", 1000)

	// 20 transfers in each direction with the same amount. If the locks
	// were taken in from/to order this would deadlock; with identifier
	// ordering it completes and the balances net to zero.
	const perDirection = 20
	amount := decimal.NewFromInt(10)

	var wg sync.WaitGroup
	for i := 0; i < perDirection; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = l.Transfer(context.Background(), "Id-4001", "Id-4002", amount)
		}()
		go func() {
			defer wg.Done()
			_ = l.Transfer(context.Background(), "Id-4002", "Id-4001", amount)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("transfers did not complete; likely deadlocked")
	}

	assert.True(t, balanceOf(t, l, "Id-4001").Equal(decimal.NewFromInt(1000)))
	assert.True(t, balanceOf(t, l, "Id-4002").Equal(decimal.NewFromInt(1000)))
}

func TestConcurrentTransfersConserveMoney(t *testing.T) {
	l, _ := newTestLedger(t)
	ids := []string{"acc-a", "acc-b", "acc-c", "acc-d"}
	for _, id := range ids {
		mustCreate(t, l, id, 1000)
	}

	var wg sync.WaitGroup
	for i := 0; i < len(ids); i++ {
		for j := 0; j < len(ids); j++ {
			if i == j {
				continue
			}
			from, to := ids[i], ids[j]
			for k := 0; k < 10; k++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = l.Transfer(context.Background(), from, to, decimal.NewFromInt(7))
				}()
			}
		}
	}
	wg.Wait()

	total := decimal.Zero
	for _, id := range ids {
		balance := balanceOf(t, l, id)
		assert.False(t, balance.IsNegative(), "account %s went negative: %s", id, balance)
		total = total.Add(balance)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(4000)), "total drifted: %s", total)
}
