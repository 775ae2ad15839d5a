package interfaces

import (
	"context"

	"github.com/nimbusbank/account-transfer-service/internal/models"
)

// Notifier delivers a human-readable message to an account holder after a
// committed transfer. Delivery is best-effort: the transfer engine logs a
// returned error and carries on.
type Notifier interface {
	Notify(ctx context.Context, account *models.Account, message string) error
}
