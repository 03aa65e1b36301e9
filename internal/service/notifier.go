// Package service publishes domain events to RabbitMQ.  Publishing is
// fire-and-forget: errors are logged and swallowed so a broker outage
// never breaks booking creation.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/clearpane/window-booking/internal/model"
	"github.com/clearpane/window-booking/internal/queue"
)

// Notifier publishes booking.created events for the notification
// consumer.  A zero URL disables publishing entirely.
type Notifier struct {
	URL string
}

// NewNotifier returns a Notifier for the given AMQP endpoint.
func NewNotifier(amqpURL string) *Notifier { return &Notifier{URL: amqpURL} }

// BookingCreated publishes an event for a freshly persisted booking.
// It never returns an error: failures are logged and the booking flow
// continues.
func (n *Notifier) BookingCreated(ctx context.Context, b model.Booking) {
	if n == nil || n.URL == "" {
		return
	}
	if err := n.publish(ctx, queue.NewBookingCreatedEvent(b)); err != nil {
		log.Printf("notify: publish booking.created for booking %d failed: %v", b.ID, err)
	}
}

func (n *Notifier) publish(ctx context.Context, ev queue.BookingCreatedEvent) error {
	conn, err := amqp.Dial(n.URL)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(queue.BookingQueueName, true, false, false, false, nil); err != nil {
		return err
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return ch.PublishWithContext(ctx,
		"",                     // default exchange
		queue.BookingQueueName, // routing key = queue name
		false,                  // mandatory
		false,                  // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
}
