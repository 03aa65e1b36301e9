package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clearpane/window-booking/internal/model"
)

type captureStore struct {
	created []model.Booking
	fail    bool
}

func (s *captureStore) Create(ctx context.Context, b *model.Booking) error {
	if s.fail {
		return errors.New("insert failed")
	}
	b.ID = uint64(len(s.created) + 1)
	s.created = append(s.created, *b)
	return nil
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func fillContact(w *Wizard) {
	w.Contact = Contact{Name: "Jane Doe", Email: "jane@example.com", Phone: "8015551234"}
}

// advance moves the wizard to the schedule step with valid data.
func advance(t *testing.T, w *Wizard) {
	t.Helper()
	fillContact(w)
	for _, want := range []Step{StepEstimate, StepReview, StepSchedule} {
		if ferr := w.Next(); ferr != nil {
			t.Fatalf("Next() at %v: %v", w.Step(), ferr)
		}
		if w.Step() != want {
			t.Fatalf("Step() = %v, want %v", w.Step(), want)
		}
	}
}

func TestDefaults(t *testing.T) {
	w := New(model.DefaultPricingConfig(), &captureStore{})
	if w.Step() != StepContact {
		t.Errorf("Step() = %v, want contact", w.Step())
	}
	if w.Selection.WindowCount != 10 || !w.Selection.Exterior {
		t.Errorf("default selection = %+v, want 10 windows exterior-only", w.Selection)
	}
	// 10 windows at the default exterior rate.
	if got := w.Total(); got != 100 {
		t.Errorf("Total() = %d, want 100", got)
	}
}

func TestContactStepGates(t *testing.T) {
	tests := []struct {
		name    string
		contact Contact
		field   string
	}{
		{"empty name", Contact{Email: "a@b.co", Phone: "8015551234"}, "customerName"},
		{"bad email", Contact{Name: "Jane", Email: "nope", Phone: "8015551234"}, "customerEmail"},
		{"short phone", Contact{Name: "Jane", Email: "a@b.co", Phone: "123"}, "customerPhone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(model.DefaultPricingConfig(), &captureStore{})
			w.Contact = tt.contact
			ferr := w.Next()
			if ferr == nil {
				t.Fatal("Next() succeeded with invalid contact")
			}
			if ferr.Field != tt.field {
				t.Errorf("field = %q, want %q", ferr.Field, tt.field)
			}
			if w.Step() != StepContact {
				t.Errorf("wizard advanced despite validation failure")
			}
		})
	}
}

func TestEstimateStepGates(t *testing.T) {
	w := New(model.DefaultPricingConfig(), &captureStore{})
	fillContact(w)
	if ferr := w.Next(); ferr != nil {
		t.Fatalf("contact step: %v", ferr)
	}

	w.Selection.WindowCount = 0
	if ferr := w.Next(); ferr == nil || ferr.Field != "windowCount" {
		t.Fatalf("Next() = %v, want windowCount error", ferr)
	}
	if w.Step() != StepEstimate {
		t.Error("wizard advanced with zero windows")
	}

	w.Selection.WindowCount = 10
	w.Selection.SolarPanelCount = -1
	if ferr := w.Next(); ferr == nil || ferr.Field != "solarPanelCount" {
		t.Fatalf("Next() = %v, want solarPanelCount error", ferr)
	}
}

func TestBack(t *testing.T) {
	w := New(model.DefaultPricingConfig(), &captureStore{})
	if w.Back() {
		t.Error("Back() from contact should report false")
	}
	advance(t, w)
	if !w.Back() || w.Step() != StepReview {
		t.Errorf("Back() from schedule: step = %v, want review", w.Step())
	}
	if !w.Back() || w.Step() != StepEstimate {
		t.Errorf("Back() from review: step = %v, want estimate", w.Step())
	}
}

func TestSelectDate(t *testing.T) {
	w := New(model.DefaultPricingConfig(), &captureStore{})
	w.now = func() time.Time { return day("2026-09-01") }
	advance(t, w)

	booked := []time.Time{day("2026-09-15")}

	if ferr := w.SelectDate(day("2026-08-20"), booked); ferr == nil {
		t.Error("past date accepted")
	}
	if ferr := w.SelectDate(day("2026-09-15"), booked); ferr == nil {
		t.Error("booked date accepted")
	}
	if ferr := w.SelectDate(day("2026-09-16"), booked); ferr != nil {
		t.Errorf("open date rejected: %v", ferr)
	}
	if !w.Date.Equal(day("2026-09-16")) {
		t.Errorf("Date = %v, want 2026-09-16", w.Date)
	}
}

func TestSelectDateWrongStep(t *testing.T) {
	w := New(model.DefaultPricingConfig(), &captureStore{})
	if ferr := w.SelectDate(day("2026-09-16"), nil); ferr == nil {
		t.Error("SelectDate allowed before the schedule step")
	}
}

func TestSubmit(t *testing.T) {
	store := &captureStore{}
	w := New(model.DefaultPricingConfig(), store)
	w.now = func() time.Time { return day("2026-09-01") }
	advance(t, w)

	w.Selection.Interior = true
	if ferr := w.SelectDate(day("2026-09-16"), nil); ferr != nil {
		t.Fatalf("SelectDate: %v", ferr)
	}

	b, err := w.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if w.Step() != StepSuccess {
		t.Errorf("Step() = %v, want success", w.Step())
	}
	// 10 windows, exterior 10 + interior 5 per window.
	if b.TotalPrice != 150 {
		t.Errorf("TotalPrice = %d, want 150", b.TotalPrice)
	}
	if b.Status != model.StatusPending {
		t.Errorf("Status = %q, want pending", b.Status)
	}
	if len(store.created) != 1 {
		t.Fatalf("created = %d bookings, want 1", len(store.created))
	}

	if _, err := w.Submit(context.Background()); err == nil {
		t.Error("second Submit succeeded")
	}
}

func TestSubmitCommercial(t *testing.T) {
	store := &captureStore{}
	w := New(model.DefaultPricingConfig(), store)
	w.now = func() time.Time { return day("2026-09-01") }
	advance(t, w)

	w.Selection.Interior = true
	w.Selection.Commercial = true
	if ferr := w.SelectDate(day("2026-09-16"), nil); ferr != nil {
		t.Fatalf("SelectDate: %v", ferr)
	}

	b, err := w.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	// 150 scaled by the default 1.5 commercial multiplier.
	if b.TotalPrice != 225 {
		t.Errorf("TotalPrice = %d, want 225", b.TotalPrice)
	}
	if !b.IsCommercial {
		t.Error("IsCommercial not carried through")
	}
}

func TestSubmitWithoutDate(t *testing.T) {
	w := New(model.DefaultPricingConfig(), &captureStore{})
	advance(t, w)
	if _, err := w.Submit(context.Background()); err == nil {
		t.Error("Submit succeeded without a date")
	}
	if w.Step() != StepSchedule {
		t.Error("wizard advanced despite missing date")
	}
}

func TestSubmitStoreFailure(t *testing.T) {
	w := New(model.DefaultPricingConfig(), &captureStore{fail: true})
	w.now = func() time.Time { return day("2026-09-01") }
	advance(t, w)
	if ferr := w.SelectDate(day("2026-09-16"), nil); ferr != nil {
		t.Fatalf("SelectDate: %v", ferr)
	}
	if _, err := w.Submit(context.Background()); err == nil {
		t.Fatal("Submit swallowed the store error")
	}
	if w.Step() != StepSchedule {
		t.Error("wizard advanced despite failed persist")
	}
}

func TestReset(t *testing.T) {
	w := New(model.DefaultPricingConfig(), &captureStore{})
	w.now = func() time.Time { return day("2026-09-01") }
	advance(t, w)
	if ferr := w.SelectDate(day("2026-09-16"), nil); ferr != nil {
		t.Fatalf("SelectDate: %v", ferr)
	}
	if _, err := w.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	w.Reset()
	if w.Step() != StepContact {
		t.Errorf("Step() = %v, want contact", w.Step())
	}
	if w.Contact != (Contact{}) {
		t.Errorf("Contact not cleared: %+v", w.Contact)
	}
	if w.Selection.WindowCount != 10 || !w.Selection.Exterior {
		t.Errorf("selection not restored to defaults: %+v", w.Selection)
	}
	if !w.Date.IsZero() {
		t.Error("Date not cleared")
	}
}
