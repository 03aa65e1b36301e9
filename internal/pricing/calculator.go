// Package pricing implements the quote calculator shared by the estimate
// wizard and the booking flow.  ComputeTotal is deterministic and
// side-effect free; callers format the result as currency themselves.
package pricing

import (
	"math"
	"strconv"

	"github.com/clearpane/window-booking/internal/model"
)

// Selection captures the customer's service choices for a single quote.
// Each boolean toggles one service; SolarPanelCount only matters when
// Solar is set.  A fully empty selection prices at zero.
type Selection struct {
	WindowCount     int
	Exterior        bool
	Interior        bool
	Screens         bool
	Sills           bool
	Gutters         bool
	Solar           bool
	SolarPanelCount int
	Commercial      bool
}

// guttersPackageFactor scales the gutter flat fee.  The factor of 100
// stands in for a fixed "basic package" size until product defines real
// gutter tiers.  Keep it in sync with the estimate shown on the site.
const guttersPackageFactor = 100

// ComputeTotal maps a pricing configuration and a service selection to a
// total price in whole dollars.
//
// Per-window services (exterior, interior, screens, sills) add up to a
// unit price multiplied by the window count.  Gutters add a flat fee
// scaled by guttersPackageFactor; solar adds a per-panel charge.  A
// commercial job multiplies the running total by the configured decimal
// multiplier.  Rounding happens only once, after the multiplier.
func ComputeTotal(cfg model.PricingConfig, sel Selection) int64 {
	var perWindow int64
	if sel.Exterior {
		perWindow += cfg.ExteriorPrice
	}
	if sel.Interior {
		perWindow += cfg.InteriorAddon
	}
	if sel.Screens {
		perWindow += cfg.ScreensAddon
	}
	if sel.Sills {
		perWindow += cfg.SillsAddon
	}

	windows := sel.WindowCount
	if windows < 0 {
		windows = 0
	}
	total := perWindow * int64(windows)

	if sel.Gutters {
		total += cfg.GuttersFlatFee * guttersPackageFactor
	}
	if sel.Solar {
		panels := sel.SolarPanelCount
		if panels < 0 {
			panels = 0
		}
		total += cfg.SolarPerPanel * int64(panels)
	}

	if sel.Commercial {
		return int64(math.Round(float64(total) * Multiplier(cfg)))
	}
	return total
}

// Multiplier parses the configured commercial multiplier.  Rows written
// through the update endpoint always hold a parseable positive decimal;
// anything else falls back to 1 so a bad row never zeroes out a quote.
func Multiplier(cfg model.PricingConfig) float64 {
	m, err := strconv.ParseFloat(cfg.CommercialMultiplier, 64)
	if err != nil || m <= 0 {
		return 1
	}
	return m
}
