package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/clearpane/window-booking/internal/model"
)

// BookingRepo provides CRUD operations for bookings.  Creation is a
// single transactional write: the insert and the read-back of
// server-assigned fields (id, status, created_at) commit together so a
// concurrent request never observes a partial booking.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, customer_name, customer_email, customer_phone, window_count, is_commercial,
	exterior, interior, screens, sills, gutters, solar, solar_panel_count,
	total_price, scheduled_date, status, created_at`

func scanBooking(row interface {
	Scan(dest ...interface{}) error
}, b *model.Booking) error {
	return row.Scan(
		&b.ID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &b.WindowCount, &b.IsCommercial,
		&b.Exterior, &b.Interior, &b.Screens, &b.Sills, &b.Gutters, &b.Solar, &b.SolarPanelCount,
		&b.TotalPrice, &b.ScheduledDate, &b.Status, &b.CreatedAt,
	)
}

// Create inserts a booking and populates the server-assigned fields on
// the provided record.  The status column is always written as pending;
// any caller-supplied status or id has been stripped by this point.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `INSERT INTO bookings
		(customer_name, customer_email, customer_phone, window_count, is_commercial,
		 exterior, interior, screens, sills, gutters, solar, solar_panel_count,
		 total_price, scheduled_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.WindowCount, b.IsCommercial,
		b.Exterior, b.Interior, b.Screens, b.Sills, b.Gutters, b.Solar, b.SolarPanelCount,
		b.TotalPrice, b.ScheduledDate.UTC().Format("2006-01-02"), model.StatusPending)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	// Read the full row back so defaults and timestamps come from the
	// database, not from this process.
	if err := scanBooking(tx.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id), b); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// List returns every booking ordered by scheduled date ascending.
func (r *BookingRepo) List(ctx context.Context) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings ORDER BY scheduled_date ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListDates returns every booking's scheduled date ascending.  This is
// the simple availability variant: the whole calendar of taken days.
func (r *BookingRepo) ListDates(ctx context.Context) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT scheduled_date FROM bookings ORDER BY scheduled_date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDates(rows)
}

// ListDatesBetween returns scheduled dates within [start, end] inclusive,
// ascending.  Both bounds are calendar days.
func (r *BookingRepo) ListDatesBetween(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT scheduled_date FROM bookings WHERE scheduled_date BETWEEN ? AND ? ORDER BY scheduled_date ASC`,
		start.UTC().Format("2006-01-02"), end.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDates(rows)
}

func collectDates(rows *sql.Rows) ([]time.Time, error) {
	out := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
