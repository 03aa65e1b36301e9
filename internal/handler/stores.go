// Package handler implements the HTTP surface of the booking service.
// Handlers depend on narrow store interfaces rather than the concrete
// repositories so tests can drive them with in-memory fakes.
package handler

import (
	"context"
	"time"

	"github.com/clearpane/window-booking/internal/model"
)

// SettingsStore is the persistence surface the settings endpoints need.
type SettingsStore interface {
	GetOrCreate(ctx context.Context) (model.PricingConfig, error)
	Update(ctx context.Context, patch model.PricingConfigPatch) (model.PricingConfig, error)
}

// BookingStore is the persistence surface the booking and availability
// endpoints need.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	List(ctx context.Context) ([]model.Booking, error)
	ListDates(ctx context.Context) ([]time.Time, error)
	ListDatesBetween(ctx context.Context, start, end time.Time) ([]time.Time, error)
}

// Notifier is the fire-and-forget hook invoked after a booking commits.
// Implementations must never fail the request path.
type Notifier interface {
	BookingCreated(ctx context.Context, b model.Booking)
}
