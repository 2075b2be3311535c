package service

import (
	"context"

	"github.com/wanderbook/backend/pkg/kafka"
)

// producerNotifier adapts the Kafka producer to the EventNotifier interface.
type producerNotifier struct {
	producer kafka.Producer
}

func NewProducerNotifier(producer kafka.Producer) EventNotifier {
	return &producerNotifier{producer: producer}
}

func (n *producerNotifier) Notify(ctx context.Context, confirmation *BookingConfirmation) error {
	return n.producer.SendMessage(confirmation.BookingID, confirmation)
}
