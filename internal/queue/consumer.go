package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartNotificationConsumer connects to RabbitMQ, declares the durable
// booking.created queue and consumes it forever.  Each event is appended
// to logs/notifications.log and, when SMTP credentials are configured,
// a confirmation email is sent to the customer.  Delivery failures are
// logged and the message is not requeued; notification is best-effort
// and must never block or fail booking creation.  The function runs a
// reconnect loop with exponential backoff and does not return.
func StartNotificationConsumer(amqpURL string, smtpCfg SMTPConfig) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(amqpURL)
		if err != nil {
			log.Printf("notify-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, smtpCfg); err != nil {
			log.Printf("notify-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, smtpCfg SMTPConfig) error {
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(BookingQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(BookingQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleEvent(d.Body, smtpCfg); err != nil {
			log.Printf("notify-consumer: handle event failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleEvent(body []byte, smtpCfg SMTPConfig) error {
	var ev BookingCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	if err := appendAuditLine(ev); err != nil {
		return err
	}

	if !smtpCfg.configured() {
		log.Printf("notify-consumer: email credentials missing, skipping email for booking %d", ev.BookingID)
		return nil
	}
	subject := fmt.Sprintf("Booking confirmed for %s", ev.ScheduledDate)
	if err := sendMail(smtpCfg, ev.CustomerEmail, subject, confirmationBody(ev)); err != nil {
		// Logged, acked anyway: email is fire-and-forget.
		log.Printf("notify-consumer: failed to send email to %s: %v", ev.CustomerEmail, err)
		return nil
	}
	log.Printf("notify-consumer: email sent to %s for booking %d", ev.CustomerEmail, ev.BookingID)
	return nil
}

func appendAuditLine(ev BookingCreatedEvent) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "notifications.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	services := "[]"
	if len(ev.Services) > 0 {
		services = "[" + strings.Join(ev.Services, ",") + "]"
	}
	line := fmt.Sprintf("[%s] Booking created | booking_id=%d | customer=%q | date=%s | windows=%d | commercial=%t | total=$%d | services=%s\n",
		ev.CreatedAt, ev.BookingID, ev.CustomerName, ev.ScheduledDate, ev.WindowCount, ev.Commercial, ev.TotalPrice, services)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
