package model

// PricingConfig is the singleton pricing configuration used by the quote
// calculator.  Exactly one row exists in the settings table at any time;
// the repository creates it with the defaults below on first read.  All
// unit prices are whole dollars.  The commercial multiplier is stored as
// text so the database never holds a binary float; it is parsed at
// calculation time.
type PricingConfig struct {
	ID                   uint64 `json:"id"`
	ExteriorPrice        int64  `json:"exteriorPrice"`        // per window, base service
	InteriorAddon        int64  `json:"interiorAddon"`        // per window
	ScreensAddon         int64  `json:"screensAddon"`         // per window
	SillsAddon           int64  `json:"sillsAddon"`           // per window
	GuttersFlatFee       int64  `json:"guttersFlatFee"`       // flat, scaled by the package factor
	SolarPerPanel        int64  `json:"solarPerPanel"`        // per panel
	CommercialMultiplier string `json:"commercialMultiplier"` // decimal as text, e.g. "1.5"
}

// PricingConfigPatch carries a partial settings update.  Nil fields are
// left untouched by the repository; only the supplied fields are merged
// into the singleton row.
type PricingConfigPatch struct {
	ExteriorPrice        *int64  `json:"exteriorPrice"`
	InteriorAddon        *int64  `json:"interiorAddon"`
	ScreensAddon         *int64  `json:"screensAddon"`
	SillsAddon           *int64  `json:"sillsAddon"`
	GuttersFlatFee       *int64  `json:"guttersFlatFee"`
	SolarPerPanel        *int64  `json:"solarPerPanel"`
	CommercialMultiplier *string `json:"commercialMultiplier"`
}

// DefaultPricingConfig returns the documented defaults used when the
// settings row is created on first read.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		ID:                   1,
		ExteriorPrice:        10,
		InteriorAddon:        5,
		ScreensAddon:         3,
		SillsAddon:           3,
		GuttersFlatFee:       50,
		SolarPerPanel:        10,
		CommercialMultiplier: "1.5",
	}
}
