// Package queue defines the booking.created message payload and the
// background consumer that turns it into customer notifications.
package queue

import (
	"time"

	"github.com/clearpane/window-booking/internal/model"
)

// BookingQueueName is the durable queue shared by the publisher in
// internal/service and the consumer below.
const BookingQueueName = "booking.created"

// BookingCreatedEvent is published after a booking commits.  It carries
// everything the notification consumer needs so downstream never has to
// query the primary database.
type BookingCreatedEvent struct {
	BookingID     uint64   `json:"booking_id"`
	CustomerName  string   `json:"customer_name"`
	CustomerEmail string   `json:"customer_email"`
	ScheduledDate string   `json:"scheduled_date"`
	Services      []string `json:"services"`
	WindowCount   int      `json:"window_count"`
	Commercial    bool     `json:"commercial"`
	TotalPrice    int64    `json:"total_price"`
	CreatedAt     string   `json:"created_at"`
}

// NewBookingCreatedEvent builds the event from a persisted booking.
func NewBookingCreatedEvent(b model.Booking) BookingCreatedEvent {
	return BookingCreatedEvent{
		BookingID:     b.ID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		ScheduledDate: b.ScheduledDate.UTC().Format("2006-01-02"),
		Services:      b.Services(),
		WindowCount:   b.WindowCount,
		Commercial:    b.IsCommercial,
		TotalPrice:    b.TotalPrice,
		CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
