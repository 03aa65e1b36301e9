// Package validate holds the field validators applied at every boundary
// (wizard steps client-side, handlers on receipt).  Each validator
// returns nil on success or a FieldError naming the offending field, so
// callers surface the first failure as a 400 {message, field} body.
package validate

import (
	"regexp"
	"strconv"
	"strings"
)

// FieldError is the wire shape of a validation failure.
type FieldError struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// emailPattern is intentionally loose: one @ with a dotted domain.
// Deliverability is confirmed by the notification email, not here.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CustomerName requires at least two characters after trimming.
func CustomerName(v string) *FieldError {
	if len(strings.TrimSpace(v)) < 2 {
		return &FieldError{Message: "Name is required", Field: "customerName"}
	}
	return nil
}

// CustomerEmail requires a plausible email address.
func CustomerEmail(v string) *FieldError {
	if !emailPattern.MatchString(strings.TrimSpace(v)) {
		return &FieldError{Message: "Invalid email", Field: "customerEmail"}
	}
	return nil
}

// CustomerPhone requires at least ten characters.
func CustomerPhone(v string) *FieldError {
	if len(strings.TrimSpace(v)) < 10 {
		return &FieldError{Message: "Valid phone number required", Field: "customerPhone"}
	}
	return nil
}

// WindowCount requires at least one window.
func WindowCount(n int) *FieldError {
	if n < 1 {
		return &FieldError{Message: "At least 1 window required", Field: "windowCount"}
	}
	return nil
}

// SolarPanelCount rejects negative counts; zero is fine since the count
// only matters when the solar service is selected.
func SolarPanelCount(n int) *FieldError {
	if n < 0 {
		return &FieldError{Message: "Panel count cannot be negative", Field: "solarPanelCount"}
	}
	return nil
}

// ScheduledDate requires a non-empty date string; parseability is
// checked by the caller which owns the date formats.
func ScheduledDate(v string) *FieldError {
	if strings.TrimSpace(v) == "" {
		return &FieldError{Message: "Scheduled date is required", Field: "scheduledDate"}
	}
	return nil
}

// UnitPrice rejects negative unit prices on settings updates.  The field
// name is echoed back so the dashboard can highlight the right input.
func UnitPrice(field string, v int64) *FieldError {
	if v < 0 {
		return &FieldError{Message: "Price cannot be negative", Field: field}
	}
	return nil
}

// CommercialMultiplier requires a parseable positive decimal.
func CommercialMultiplier(v string) *FieldError {
	m, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || m <= 0 {
		return &FieldError{Message: "Multiplier must be a positive decimal", Field: "commercialMultiplier"}
	}
	return nil
}
