package queue

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPConfig carries the delivery settings for confirmation emails.  An
// empty Host disables delivery entirely; the consumer then only logs.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

func (c SMTPConfig) configured() bool {
	return c.Host != "" && c.User != "" && c.Pass != ""
}

// sendMail delivers a plain-text message over authenticated SMTP.
func sendMail(cfg SMTPConfig, to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")
	addr := cfg.Host + ":" + cfg.Port
	auth := smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	if err := smtp.SendMail(addr, auth, cfg.User, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// confirmationBody renders the customer-facing confirmation text.
func confirmationBody(ev BookingCreatedEvent) string {
	services := "window cleaning"
	if len(ev.Services) > 0 {
		services = strings.Join(ev.Services, ", ")
	}
	return fmt.Sprintf(
		"Hi %s,\n\nYour booking #%d is confirmed for %s.\n\nServices: %s\nWindows: %d\nEstimated total: $%d\n\nWe'll see you there!\n",
		ev.CustomerName, ev.BookingID, ev.ScheduledDate, services, ev.WindowCount, ev.TotalPrice)
}
