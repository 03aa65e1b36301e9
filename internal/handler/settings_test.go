package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clearpane/window-booking/internal/model"
)

// fakeSettingsStore mimics the repository's get-or-create semantics in
// memory so the handlers can be exercised without MySQL.
type fakeSettingsStore struct {
	mu      sync.Mutex
	cfg     *model.PricingConfig
	creates int
	fail    bool
}

func (f *fakeSettingsStore) GetOrCreate(ctx context.Context) (model.PricingConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return model.PricingConfig{}, context.DeadlineExceeded
	}
	if f.cfg == nil {
		cfg := model.DefaultPricingConfig()
		f.cfg = &cfg
		f.creates++
	}
	return *f.cfg, nil
}

func (f *fakeSettingsStore) Update(ctx context.Context, patch model.PricingConfigPatch) (model.PricingConfig, error) {
	if _, err := f.GetOrCreate(ctx); err != nil {
		return model.PricingConfig{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if patch.ExteriorPrice != nil {
		f.cfg.ExteriorPrice = *patch.ExteriorPrice
	}
	if patch.InteriorAddon != nil {
		f.cfg.InteriorAddon = *patch.InteriorAddon
	}
	if patch.ScreensAddon != nil {
		f.cfg.ScreensAddon = *patch.ScreensAddon
	}
	if patch.SillsAddon != nil {
		f.cfg.SillsAddon = *patch.SillsAddon
	}
	if patch.GuttersFlatFee != nil {
		f.cfg.GuttersFlatFee = *patch.GuttersFlatFee
	}
	if patch.SolarPerPanel != nil {
		f.cfg.SolarPerPanel = *patch.SolarPerPanel
	}
	if patch.CommercialMultiplier != nil {
		f.cfg.CommercialMultiplier = *patch.CommercialMultiplier
	}
	return *f.cfg, nil
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestSettingsGetCreatesDefaults(t *testing.T) {
	store := &fakeSettingsStore{}
	h := NewSettingsHandler(store)

	rec := doJSON(t, h.Get, http.MethodGet, "/api/settings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got model.PricingConfig
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != model.DefaultPricingConfig() {
		t.Errorf("got %+v, want defaults", got)
	}
	if store.creates != 1 {
		t.Errorf("creates = %d, want 1", store.creates)
	}
}

func TestSettingsGetOrCreateConcurrent(t *testing.T) {
	store := &fakeSettingsStore{}
	h := NewSettingsHandler(store)

	e := echo.New()
	const n = 16
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
			rec := httptest.NewRecorder()
			if err := h.Get(e.NewContext(req, rec)); err != nil {
				t.Errorf("handler returned error: %v", err)
				return
			}
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
		}()
	}
	wg.Wait()

	if store.creates != 1 {
		t.Errorf("creates = %d, want exactly 1", store.creates)
	}
}

func TestSettingsUpdatePartial(t *testing.T) {
	store := &fakeSettingsStore{}
	h := NewSettingsHandler(store)

	rec := doJSON(t, h.Update, http.MethodPost, "/api/settings",
		`{"exteriorPrice":12,"commercialMultiplier":"2.0"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var got model.PricingConfig
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ExteriorPrice != 12 {
		t.Errorf("ExteriorPrice = %d, want 12", got.ExteriorPrice)
	}
	if got.CommercialMultiplier != "2.0" {
		t.Errorf("CommercialMultiplier = %q, want 2.0", got.CommercialMultiplier)
	}
	// Untouched fields keep their defaults.
	if got.InteriorAddon != 5 || got.GuttersFlatFee != 50 {
		t.Errorf("unpatched fields changed: %+v", got)
	}
}

func TestSettingsUpdateValidation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"negative price", `{"exteriorPrice":-1}`, "exteriorPrice"},
		{"negative addon", `{"sillsAddon":-5}`, "sillsAddon"},
		{"bad multiplier", `{"commercialMultiplier":"abc"}`, "commercialMultiplier"},
		{"zero multiplier", `{"commercialMultiplier":"0"}`, "commercialMultiplier"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeSettingsStore{}
			h := NewSettingsHandler(store)

			rec := doJSON(t, h.Update, http.MethodPost, "/api/settings", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var resp struct {
				Message string `json:"message"`
				Field   string `json:"field"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if resp.Field != tt.field {
				t.Errorf("field = %q, want %q", resp.Field, tt.field)
			}
			if resp.Message == "" {
				t.Error("message is empty")
			}
		})
	}
}

func TestSettingsGetStoreFailure(t *testing.T) {
	h := NewSettingsHandler(&fakeSettingsStore{fail: true})

	rec := doJSON(t, h.Get, http.MethodGet, "/api/settings", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
