// Package wizard drives the multi-step quote flow: contact details,
// service estimate, review, scheduling, then submission.  The state
// machine enforces step order and revalidates everything the moment the
// customer tries to advance, so a submission can only ever carry data
// that passed each gate.
package wizard

import (
	"context"
	"time"

	"github.com/clearpane/window-booking/internal/model"
	"github.com/clearpane/window-booking/internal/pricing"
	"github.com/clearpane/window-booking/internal/schedule"
	"github.com/clearpane/window-booking/internal/validate"
)

// Step identifies a wizard screen.
type Step int

const (
	StepContact Step = iota
	StepEstimate
	StepReview
	StepSchedule
	StepSuccess
)

// String returns the step name used in progress indicators.
func (s Step) String() string {
	switch s {
	case StepContact:
		return "contact"
	case StepEstimate:
		return "estimate"
	case StepReview:
		return "review"
	case StepSchedule:
		return "schedule"
	case StepSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Contact is the customer identity collected on the first step.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// BookingCreator persists a finished submission.  Satisfied by the
// booking repository.
type BookingCreator interface {
	Create(ctx context.Context, b *model.Booking) error
}

// Wizard is a single customer's in-progress quote.  Not safe for
// concurrent use; each session owns its own instance.
type Wizard struct {
	Contact   Contact
	Selection pricing.Selection
	Date      time.Time

	cfg   model.PricingConfig
	store BookingCreator
	step  Step
	now   func() time.Time
}

// New starts a wizard at the contact step with the default selection:
// ten windows, exterior cleaning on.
func New(cfg model.PricingConfig, store BookingCreator) *Wizard {
	return &Wizard{
		Selection: pricing.Selection{WindowCount: 10, Exterior: true},
		cfg:       cfg,
		store:     store,
		step:      StepContact,
		now:       time.Now,
	}
}

// Step reports the current screen.
func (w *Wizard) Step() Step { return w.step }

// Total prices the current selection against the configured rates.  The
// estimate and review screens both render this live.
func (w *Wizard) Total() int64 {
	return pricing.ComputeTotal(w.cfg, w.Selection)
}

// Next validates the current step and advances.  Returns the first
// failing field so the UI can highlight it, or nil when the wizard
// moved forward.  Advancing past the schedule step goes through Submit,
// not Next.
func (w *Wizard) Next() *validate.FieldError {
	switch w.step {
	case StepContact:
		if ferr := validate.CustomerName(w.Contact.Name); ferr != nil {
			return ferr
		}
		if ferr := validate.CustomerEmail(w.Contact.Email); ferr != nil {
			return ferr
		}
		if ferr := validate.CustomerPhone(w.Contact.Phone); ferr != nil {
			return ferr
		}
		w.step = StepEstimate
	case StepEstimate:
		if ferr := validate.WindowCount(w.Selection.WindowCount); ferr != nil {
			return ferr
		}
		if ferr := validate.SolarPanelCount(w.Selection.SolarPanelCount); ferr != nil {
			return ferr
		}
		w.step = StepReview
	case StepReview:
		w.step = StepSchedule
	case StepSchedule:
		return &validate.FieldError{Message: "Pick a date and submit", Field: "scheduledDate"}
	case StepSuccess:
		return &validate.FieldError{Message: "Quote already submitted"}
	}
	return nil
}

// Back returns to the previous screen.  The contact step has nothing
// before it and a finished wizard cannot be reopened; both report false.
func (w *Wizard) Back() bool {
	if w.step == StepContact || w.step == StepSuccess {
		return false
	}
	w.step--
	return true
}

// SelectDate records the requested calendar day after checking it
// against the booked set.  Only valid on the schedule step.
func (w *Wizard) SelectDate(day time.Time, booked []time.Time) *validate.FieldError {
	if w.step != StepSchedule {
		return &validate.FieldError{Message: "Not at the scheduling step", Field: "scheduledDate"}
	}
	if schedule.IsBlocked(day, w.now(), booked) {
		return &validate.FieldError{Message: "Selected date is unavailable", Field: "scheduledDate"}
	}
	w.Date = schedule.Day(day)
	return nil
}

// Submit prices the final selection, persists the booking and advances
// to the success screen.  The stored TotalPrice is the figure computed
// here; later pricing changes never touch it.
func (w *Wizard) Submit(ctx context.Context) (model.Booking, error) {
	if w.step != StepSchedule {
		return model.Booking{}, &validate.FieldError{Message: "Not ready to submit"}
	}
	if w.Date.IsZero() {
		return model.Booking{}, &validate.FieldError{Message: "Scheduled date is required", Field: "scheduledDate"}
	}

	b := model.Booking{
		CustomerName:    w.Contact.Name,
		CustomerEmail:   w.Contact.Email,
		CustomerPhone:   w.Contact.Phone,
		WindowCount:     w.Selection.WindowCount,
		IsCommercial:    w.Selection.Commercial,
		Exterior:        w.Selection.Exterior,
		Interior:        w.Selection.Interior,
		Screens:         w.Selection.Screens,
		Sills:           w.Selection.Sills,
		Gutters:         w.Selection.Gutters,
		Solar:           w.Selection.Solar,
		SolarPanelCount: w.Selection.SolarPanelCount,
		TotalPrice:      w.Total(),
		ScheduledDate:   w.Date,
		Status:          model.StatusPending,
	}
	if err := w.store.Create(ctx, &b); err != nil {
		return model.Booking{}, err
	}
	w.step = StepSuccess
	return b, nil
}

// Reset returns the wizard to a fresh contact step with the default
// selection, keeping the configured rates.
func (w *Wizard) Reset() {
	w.Contact = Contact{}
	w.Selection = pricing.Selection{WindowCount: 10, Exterior: true}
	w.Date = time.Time{}
	w.step = StepContact
}
