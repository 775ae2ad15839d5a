package logging

import (
	"context"

	"go.uber.org/zap"

	interfaces "github.com/nimbusbank/account-transfer-service/internal/interfaces"
	"github.com/nimbusbank/account-transfer-service/internal/models"
)

// Notifier writes transfer notifications to the service log. Default backend
// for environments without a broker.
type Notifier struct {
	logger *zap.Logger
}

func NewNotifier(logger *zap.Logger) *Notifier {
	return &Notifier{logger: logger}
}

func (n *Notifier) Notify(_ context.Context, account *models.Account, message string) error {
	n.logger.Info("transfer notification",
		zap.String("account", account.ID),
		zap.String("message", message),
	)
	return nil
}

var _ interfaces.Notifier = (*Notifier)(nil)
