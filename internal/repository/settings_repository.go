package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/clearpane/window-booking/internal/model"
)

// SettingsRepo manages the pricing configuration singleton.  Exactly one
// row lives in the settings table; its fixed primary key is the
// uniqueness constraint that keeps concurrent first-time reads from
// creating a second row.
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo returns a SettingsRepo bound to the given database.
func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// settingsRowID is the only id the settings table ever holds.
const settingsRowID = 1

const settingsColumns = `id, exterior_price, interior_addon, screens_addon, sills_addon, gutters_flat_fee, solar_per_panel, commercial_multiplier`

func (r *SettingsRepo) get(ctx context.Context) (model.PricingConfig, error) {
	var cfg model.PricingConfig
	err := r.db.QueryRowContext(ctx,
		`SELECT `+settingsColumns+` FROM settings WHERE id = ?`, settingsRowID).
		Scan(&cfg.ID, &cfg.ExteriorPrice, &cfg.InteriorAddon, &cfg.ScreensAddon,
			&cfg.SillsAddon, &cfg.GuttersFlatFee, &cfg.SolarPerPanel, &cfg.CommercialMultiplier)
	return cfg, err
}

// GetOrCreate returns the pricing singleton, inserting the documented
// defaults when the table is empty.  Two concurrent first reads can both
// observe an empty table; INSERT IGNORE on the fixed primary key makes
// the second insert a no-op and both callers re-read the same row.
func (r *SettingsRepo) GetOrCreate(ctx context.Context) (model.PricingConfig, error) {
	cfg, err := r.get(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.PricingConfig{}, err
	}
	def := model.DefaultPricingConfig()
	if _, err := r.db.ExecContext(ctx,
		`INSERT IGNORE INTO settings (`+settingsColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		settingsRowID, def.ExteriorPrice, def.InteriorAddon, def.ScreensAddon,
		def.SillsAddon, def.GuttersFlatFee, def.SolarPerPanel, def.CommercialMultiplier,
	); err != nil {
		return model.PricingConfig{}, err
	}
	return r.get(ctx)
}

// Update merges the supplied fields into the singleton with a single
// UPDATE statement, then returns the full row.  Nil patch fields are
// left untouched.  An empty patch degenerates to a read.
func (r *SettingsRepo) Update(ctx context.Context, patch model.PricingConfigPatch) (model.PricingConfig, error) {
	sets := make([]string, 0, 7)
	args := make([]interface{}, 0, 8)
	if patch.ExteriorPrice != nil {
		sets = append(sets, "exterior_price = ?")
		args = append(args, *patch.ExteriorPrice)
	}
	if patch.InteriorAddon != nil {
		sets = append(sets, "interior_addon = ?")
		args = append(args, *patch.InteriorAddon)
	}
	if patch.ScreensAddon != nil {
		sets = append(sets, "screens_addon = ?")
		args = append(args, *patch.ScreensAddon)
	}
	if patch.SillsAddon != nil {
		sets = append(sets, "sills_addon = ?")
		args = append(args, *patch.SillsAddon)
	}
	if patch.GuttersFlatFee != nil {
		sets = append(sets, "gutters_flat_fee = ?")
		args = append(args, *patch.GuttersFlatFee)
	}
	if patch.SolarPerPanel != nil {
		sets = append(sets, "solar_per_panel = ?")
		args = append(args, *patch.SolarPerPanel)
	}
	if patch.CommercialMultiplier != nil {
		sets = append(sets, "commercial_multiplier = ?")
		args = append(args, *patch.CommercialMultiplier)
	}
	// Make sure the row exists before updating it; first write on a fresh
	// database would otherwise update zero rows.
	if _, err := r.GetOrCreate(ctx); err != nil {
		return model.PricingConfig{}, err
	}
	if len(sets) == 0 {
		return r.get(ctx)
	}
	args = append(args, settingsRowID)
	if _, err := r.db.ExecContext(ctx,
		`UPDATE settings SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
		return model.PricingConfig{}, err
	}
	return r.get(ctx)
}
