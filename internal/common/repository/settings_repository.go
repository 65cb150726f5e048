package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/c14220110/poliklinik-lab/internal/common/models"
)

const settingsRowID = 1

// SettingsRepository membaca dan menulis pengaturan global (branding lab), satu baris.
type SettingsRepository struct {
	DB       *sql.DB
	Defaults models.GlobalSettings
}

func NewSettingsRepository(db *sql.DB, defaults models.GlobalSettings) *SettingsRepository {
	return &SettingsRepository{DB: db, Defaults: defaults}
}

// Settings selalu membaca nilai terbaru; jika belum pernah diatur, kembalikan default.
func (r *SettingsRepository) Settings(ctx context.Context) (models.GlobalSettings, error) {
	var (
		s    models.GlobalSettings
		logo sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT nama_lab, logo_lab FROM Global_Settings WHERE id = ?`, settingsRowID,
	).Scan(&s.LabName, &logo)
	if errors.Is(err, sql.ErrNoRows) {
		return r.Defaults, nil
	}
	if err != nil {
		return models.GlobalSettings{}, fmt.Errorf("query settings: %w", err)
	}
	s.LabLogo = logo.String
	return s, nil
}

func (r *SettingsRepository) UpdateSettings(ctx context.Context, s models.GlobalSettings) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO Global_Settings (id, nama_lab, logo_lab) VALUES (?,?,?)
		ON DUPLICATE KEY UPDATE nama_lab = VALUES(nama_lab), logo_lab = VALUES(logo_lab)`,
		settingsRowID, s.LabName, s.LabLogo,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
