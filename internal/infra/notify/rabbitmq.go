package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQNotifier publishes confirmation events to a durable queue. It dials
// per publish: confirmation volume is low and a persistent channel would need
// reconnect plumbing the caller never observes anyway.
type RabbitMQNotifier struct {
	url   string
	queue string
}

func NewRabbitMQNotifier(url, queue string) *RabbitMQNotifier {
	return &RabbitMQNotifier{url: url, queue: queue}
}

// Enabled reports whether a broker URL is configured.
func (n *RabbitMQNotifier) Enabled() bool {
	return n.url != ""
}

func (n *RabbitMQNotifier) ReservationConfirmed(ctx context.Context, event commands.ReservationConfirmedEvent) error {
	if !n.Enabled() {
		slog.Debug("confirmation publishing disabled, skipping",
			"reference", event.Reference)
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "failed to marshal confirmation event")
	}

	conn, err := amqp.Dial(n.url)
	if err != nil {
		return errs.Wrap(err, "failed to connect to RabbitMQ")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return errs.Wrap(err, "failed to open RabbitMQ channel")
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(n.queue, true, false, false, false, nil); err != nil {
		return errs.Wrap(err, "failed to declare confirmation queue")
	}

	err = ch.PublishWithContext(ctx, "", n.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return errs.Wrap(err, "failed to publish confirmation event")
	}

	slog.Debug("published reservation confirmation",
		"queue", n.queue, "reference", event.Reference)
	return nil
}
