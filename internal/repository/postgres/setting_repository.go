package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tpcell/internal/common"
	"tpcell/internal/domain/setting"
)

// SettingRepository reads and writes the single global policy row. The row is
// keyed by a fixed id so there can only ever be one.
type SettingRepository struct {
	db *sql.DB
}

func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Get(ctx context.Context) (*setting.Policy, error) {
	row := r.db.QueryRowContext(ctx, `SELECT registrations_allowed, cpi_change_allowed FROM settings WHERE id = 1`)
	var policy setting.Policy
	if err := row.Scan(&policy.RegistrationsAllowed, &policy.CPIChangeAllowed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeInternal, "settings row is missing", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load settings", err)
	}
	return &policy, nil
}

func (r *SettingRepository) Update(ctx context.Context, policy setting.Policy) (*setting.Policy, error) {
	_, err := r.db.ExecContext(ctx, `INSERT INTO settings (id, registrations_allowed, cpi_change_allowed, updated_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET registrations_allowed = $1, cpi_change_allowed = $2, updated_at = $3`,
		policy.RegistrationsAllowed, policy.CPIChangeAllowed, time.Now().UTC())
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update settings", err)
	}
	return &policy, nil
}
