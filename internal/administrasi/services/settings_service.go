package services

import (
	"context"
	"strings"

	cm "github.com/c14220110/poliklinik-lab/internal/common/models"
	"github.com/c14220110/poliklinik-lab/pkg/apperrors"
	"github.com/rs/zerolog/log"
)

const MsgLabNameRequired = "Lab name is required"

type SettingsStore interface {
	SettingsProvider
	UpdateSettings(ctx context.Context, s cm.GlobalSettings) error
}

// SettingsService melayani katalog tes diagnostik dan pengaturan branding lab.
type SettingsService struct {
	catalog  TestCatalog
	settings SettingsStore
}

func NewSettingsService(catalog TestCatalog, settings SettingsStore) *SettingsService {
	return &SettingsService{catalog: catalog, settings: settings}
}

func (s *SettingsService) Tests(ctx context.Context) ([]cm.DiagnosticTest, error) {
	list, err := s.catalog.Tests(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to retrieve diagnostic tests", err)
	}
	return list, nil
}

func (s *SettingsService) Settings(ctx context.Context) (cm.GlobalSettings, error) {
	settings, err := s.settings.Settings(ctx)
	if err != nil {
		return settings, apperrors.NewInternalError("failed to retrieve settings", err)
	}
	return settings, nil
}

// UpdateSettings mengganti nama dan logo lab. Invoice yang sudah tersimpan tidak berubah.
func (s *SettingsService) UpdateSettings(ctx context.Context, in cm.GlobalSettings) (cm.GlobalSettings, error) {
	in.LabName = strings.TrimSpace(in.LabName)
	in.LabLogo = strings.TrimSpace(in.LabLogo)
	if in.LabName == "" {
		return cm.GlobalSettings{}, apperrors.NewValidationError(MsgLabNameRequired)
	}
	if err := s.settings.UpdateSettings(ctx, in); err != nil {
		return cm.GlobalSettings{}, apperrors.NewInternalError("failed to update settings", err)
	}
	log.Info().Str("lab_name", in.LabName).Msg("lab settings updated")
	return in, nil
}
