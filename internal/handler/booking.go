package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clearpane/window-booking/internal/model"
	"github.com/clearpane/window-booking/internal/schedule"
	"github.com/clearpane/window-booking/internal/validate"
)

// BookingHandler serves booking creation (public), the admin booking
// list and the availability calendar.
type BookingHandler struct {
	Store    BookingStore
	Notifier Notifier // optional; nil disables notifications
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(s BookingStore, n Notifier) *BookingHandler {
	if s == nil {
		panic("nil store passed to NewBookingHandler")
	}
	return &BookingHandler{Store: s, Notifier: n}
}

// BookingInput is the public submission body.  There is deliberately no
// id or status field: both are server-assigned and anything a caller
// smuggles in through the raw JSON is dropped by this shape.
type BookingInput struct {
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	WindowCount     int    `json:"windowCount"`
	IsCommercial    bool   `json:"isCommercial"`
	Exterior        *bool  `json:"exterior"` // defaults to true when omitted
	Interior        bool   `json:"interior"`
	Screens         bool   `json:"screens"`
	Sills           bool   `json:"sills"`
	Gutters         bool   `json:"gutters"`
	Solar           bool   `json:"solar"`
	SolarPanelCount int    `json:"solarPanelCount"`
	TotalPrice      int64  `json:"totalPrice"`
	ScheduledDate   string `json:"scheduledDate"`
}

// firstError runs the field validators in schema order and returns the
// first failure, mirroring how the wizard reports errors inline.
func (in *BookingInput) firstError() *validate.FieldError {
	if ferr := validate.CustomerName(in.CustomerName); ferr != nil {
		return ferr
	}
	if ferr := validate.CustomerEmail(in.CustomerEmail); ferr != nil {
		return ferr
	}
	if ferr := validate.CustomerPhone(in.CustomerPhone); ferr != nil {
		return ferr
	}
	if ferr := validate.WindowCount(in.WindowCount); ferr != nil {
		return ferr
	}
	if ferr := validate.SolarPanelCount(in.SolarPanelCount); ferr != nil {
		return ferr
	}
	if ferr := validate.ScheduledDate(in.ScheduledDate); ferr != nil {
		return ferr
	}
	return nil
}

func (in *BookingInput) toBooking(day time.Time) model.Booking {
	exterior := true
	if in.Exterior != nil {
		exterior = *in.Exterior
	}
	return model.Booking{
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		WindowCount:     in.WindowCount,
		IsCommercial:    in.IsCommercial,
		Exterior:        exterior,
		Interior:        in.Interior,
		Screens:         in.Screens,
		Sills:           in.Sills,
		Gutters:         in.Gutters,
		Solar:           in.Solar,
		SolarPanelCount: in.SolarPanelCount,
		TotalPrice:      in.TotalPrice,
		ScheduledDate:   day,
		Status:          model.StatusPending,
	}
}

// Create handles POST /api/bookings.  No authentication: quote
// submission must work for anonymous visitors.  TotalPrice is stored as
// submitted; it is the wizard's snapshot of the quote at submission
// time and is never recomputed afterwards.
func (h *BookingHandler) Create(c echo.Context) error {
	var in BookingInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, &validate.FieldError{Message: "invalid request body"})
	}
	if ferr := in.firstError(); ferr != nil {
		return c.JSON(http.StatusBadRequest, ferr)
	}
	day, err := schedule.ParseDate(in.ScheduledDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest,
			&validate.FieldError{Message: "Invalid scheduled date", Field: "scheduledDate"})
	}

	b := in.toBooking(day)
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Store.Create(ctx, &b); err != nil {
		log.Printf("bookings: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to create booking"})
	}

	if h.Notifier != nil {
		// Detached from the request context: notification outlives the
		// response and never blocks it.
		go h.Notifier.BookingCreated(context.Background(), b)
	}
	return c.JSON(http.StatusCreated, b)
}

// List handles GET /api/bookings (admin only).  The full set, ordered
// by scheduled date ascending; the dashboard paginates client-side.
func (h *BookingHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Store.List(ctx)
	if err != nil {
		log.Printf("bookings: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, bookings)
}

// Availability handles GET /api/availability.  With both start and end
// query parameters it returns booked dates inside the inclusive range;
// without them it returns every booked date.  Output is ascending
// RFC 3339 strings so the wizard can disable taken days.
func (h *BookingHandler) Availability(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		dates []time.Time
		err   error
	)
	startStr, endStr := c.QueryParam("start"), c.QueryParam("end")
	if startStr != "" && endStr != "" {
		start, perr := schedule.ParseDate(startStr)
		if perr != nil {
			return c.JSON(http.StatusBadRequest,
				&validate.FieldError{Message: "Invalid start date", Field: "start"})
		}
		end, perr := schedule.ParseDate(endStr)
		if perr != nil {
			return c.JSON(http.StatusBadRequest,
				&validate.FieldError{Message: "Invalid end date", Field: "end"})
		}
		dates, err = h.Store.ListDatesBetween(ctx, start, end)
	} else {
		dates, err = h.Store.ListDates(ctx)
	}
	if err != nil {
		log.Printf("bookings: availability failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load availability"})
	}

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.UTC().Format(time.RFC3339))
	}
	return c.JSON(http.StatusOK, out)
}
