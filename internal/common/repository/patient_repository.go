package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/c14220110/poliklinik-lab/internal/common/models"
	"github.com/c14220110/poliklinik-lab/pkg/apperrors"
)

type PatientRepository struct {
	DB *sql.DB
}

func NewPatientRepository(db *sql.DB) *PatientRepository {
	return &PatientRepository{DB: db}
}

func (r *PatientRepository) GetPatient(ctx context.Context, id string) (models.Patient, error) {
	var p models.Patient
	err := r.DB.QueryRowContext(ctx, `
		SELECT id_pasien, no_rm, nama, umur, jenis_kelamin, no_telp
		FROM Pasien WHERE id_pasien = ?`, id,
	).Scan(&p.ID, &p.PatientID, &p.Name, &p.Age, &p.Gender, &p.PhoneNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return p, apperrors.NewNotFoundError("Pasien tidak ditemukan")
	}
	if err != nil {
		return p, fmt.Errorf("query patient %s: %w", id, err)
	}
	return p, nil
}
