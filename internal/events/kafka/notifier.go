package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	interfaces "github.com/nimbusbank/account-transfer-service/internal/interfaces"
	"github.com/nimbusbank/account-transfer-service/internal/models"
	"github.com/nimbusbank/account-transfer-service/internal/models/events"
)

// Notifier publishes transfer notifications to a Kafka topic, keyed by
// account ID so all notifications for one account land on the same partition.
type Notifier struct {
	writer *kafka.Writer
}

func NewNotifier(brokers []string, topic string) *Notifier {
	return &Notifier{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (n *Notifier) Notify(ctx context.Context, account *models.Account, message string) error {
	event := events.TransferNotification{
		EventID:    uuid.New().String(),
		AccountID:  account.ID,
		Balance:    account.Balance(),
		Message:    message,
		OccurredAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(account.ID),
		Value: data,
	})
}

// Close flushes pending messages and releases the writer.
func (n *Notifier) Close() error {
	return n.writer.Close()
}

var _ interfaces.Notifier = (*Notifier)(nil)
