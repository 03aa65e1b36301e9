package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clearpane/window-booking/internal/model"
	"github.com/clearpane/window-booking/internal/validate"
)

// SettingsHandler serves the pricing configuration singleton: a public
// read for the quote wizard and an authenticated partial update for the
// dashboard.
type SettingsHandler struct {
	Store SettingsStore
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(s SettingsStore) *SettingsHandler {
	if s == nil {
		panic("nil store passed to NewSettingsHandler")
	}
	return &SettingsHandler{Store: s}
}

// Get handles GET /api/settings.  The store creates the singleton with
// defaults on first read, so this never 404s.
func (h *SettingsHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cfg, err := h.Store.GetOrCreate(ctx)
	if err != nil {
		log.Printf("settings: get failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load settings"})
	}
	return c.JSON(http.StatusOK, cfg)
}

// Update handles POST /api/settings (admin only).  Only the fields
// present in the body are merged into the singleton; the full updated
// record is returned.
func (h *SettingsHandler) Update(c echo.Context) error {
	var patch model.PricingConfigPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, &validate.FieldError{Message: "invalid request body"})
	}
	if ferr := validatePatch(patch); ferr != nil {
		return c.JSON(http.StatusBadRequest, ferr)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cfg, err := h.Store.Update(ctx, patch)
	if err != nil {
		log.Printf("settings: update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to update settings"})
	}
	return c.JSON(http.StatusOK, cfg)
}

// validatePatch checks the supplied fields in schema order and returns
// the first failure.
func validatePatch(p model.PricingConfigPatch) *validate.FieldError {
	prices := []struct {
		field string
		v     *int64
	}{
		{"exteriorPrice", p.ExteriorPrice},
		{"interiorAddon", p.InteriorAddon},
		{"screensAddon", p.ScreensAddon},
		{"sillsAddon", p.SillsAddon},
		{"guttersFlatFee", p.GuttersFlatFee},
		{"solarPerPanel", p.SolarPerPanel},
	}
	for _, pr := range prices {
		if pr.v == nil {
			continue
		}
		if ferr := validate.UnitPrice(pr.field, *pr.v); ferr != nil {
			return ferr
		}
	}
	if p.CommercialMultiplier != nil {
		if ferr := validate.CommercialMultiplier(*p.CommercialMultiplier); ferr != nil {
			return ferr
		}
	}
	return nil
}
