package model

import "time"

// Booking statuses.  New bookings always start as pending; the insert
// path ignores any caller-supplied status.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Booking records a customer's quote submission for a scheduled calendar
// day.  TotalPrice is the price computed at submission time and is never
// recomputed after creation, so later pricing edits do not affect
// existing bookings.  ScheduledDate carries a calendar day; time-of-day
// is ignored by the availability rules.
type Booking struct {
	ID              uint64    `json:"id"`            // bookings.id
	CustomerName    string    `json:"customerName"`  // bookings.customer_name
	CustomerEmail   string    `json:"customerEmail"` // bookings.customer_email
	CustomerPhone   string    `json:"customerPhone"` // bookings.customer_phone
	WindowCount     int       `json:"windowCount"`   // bookings.window_count
	IsCommercial    bool      `json:"isCommercial"`  // bookings.is_commercial
	Exterior        bool      `json:"exterior"`      // bookings.exterior
	Interior        bool      `json:"interior"`      // bookings.interior
	Screens         bool      `json:"screens"`       // bookings.screens
	Sills           bool      `json:"sills"`         // bookings.sills
	Gutters         bool      `json:"gutters"`       // bookings.gutters
	Solar           bool      `json:"solar"`         // bookings.solar
	SolarPanelCount int       `json:"solarPanelCount"`
	TotalPrice      int64     `json:"totalPrice"`    // snapshot at submission time
	ScheduledDate   time.Time `json:"scheduledDate"` // bookings.scheduled_date (DATE)
	Status          string    `json:"status"`        // bookings.status
	CreatedAt       time.Time `json:"createdAt"`     // bookings.created_at
}

// Services returns the human-readable names of the selected services,
// in a stable order.  Used by the notification consumer when composing
// confirmation messages.
func (b Booking) Services() []string {
	out := make([]string, 0, 6)
	if b.Exterior {
		out = append(out, "exterior windows")
	}
	if b.Interior {
		out = append(out, "interior windows")
	}
	if b.Screens {
		out = append(out, "screens")
	}
	if b.Sills {
		out = append(out, "sills")
	}
	if b.Gutters {
		out = append(out, "gutter cleaning")
	}
	if b.Solar {
		out = append(out, "solar panels")
	}
	return out
}
