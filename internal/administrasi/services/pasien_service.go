package services

import (
	"context"
	"strings"

	cm "github.com/c14220110/poliklinik-lab/internal/common/models"
	"github.com/c14220110/poliklinik-lab/pkg/apperrors"
)

type PatientLookup interface {
	GetPatient(ctx context.Context, id string) (cm.Patient, error)
}

// PasienService membaca data pasien untuk form resep dan lab order.
type PasienService struct {
	patients PatientLookup
}

func NewPasienService(patients PatientLookup) *PasienService {
	return &PasienService{patients: patients}
}

func (s *PasienService) GetPatient(ctx context.Context, id string) (cm.Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return cm.Patient{}, apperrors.NewValidationError("id pasien harus diisi")
	}
	p, err := s.patients.GetPatient(ctx, id)
	if err != nil {
		if apperrors.TypeOf(err) == apperrors.ErrorTypeNotFound {
			return p, err
		}
		return p, apperrors.NewInternalError("failed to retrieve patient", err)
	}
	return p, nil
}
