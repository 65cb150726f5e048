package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/c14220110/poliklinik-lab/internal/common/models"
	"github.com/c14220110/poliklinik-lab/pkg/apperrors"
)

// TemplateRepository membaca paket diagnosa (obat + tes lab) dari Diagnosis_Template.
type TemplateRepository struct {
	DB *sql.DB
}

func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

const selectTemplate = `
	SELECT id_template, nama, kode_icd10, deskripsi, medications, lab_tests
	FROM Diagnosis_Template`

func (r *TemplateRepository) Templates(ctx context.Context) ([]models.DiagnosisTemplate, error) {
	rows, err := r.DB.QueryContext(ctx, selectTemplate+` ORDER BY nama`)
	if err != nil {
		return nil, fmt.Errorf("query diagnosis templates: %w", err)
	}
	defer rows.Close()

	list := []models.DiagnosisTemplate{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *TemplateRepository) GetTemplate(ctx context.Context, id int) (models.DiagnosisTemplate, error) {
	rows, err := r.DB.QueryContext(ctx, selectTemplate+` WHERE id_template = ?`, id)
	if err != nil {
		return models.DiagnosisTemplate{}, fmt.Errorf("query diagnosis template %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return models.DiagnosisTemplate{}, err
		}
		return models.DiagnosisTemplate{}, apperrors.NewNotFoundError("Template diagnosa tidak ditemukan")
	}
	return scanTemplate(rows)
}

func scanTemplate(rows *sql.Rows) (models.DiagnosisTemplate, error) {
	var (
		t                     models.DiagnosisTemplate
		medications, labTests sql.NullString
	)
	if err := rows.Scan(&t.ID, &t.Name, &t.Diagnosis.Code, &t.Diagnosis.Description, &medications, &labTests); err != nil {
		return t, fmt.Errorf("scan diagnosis template: %w", err)
	}
	if err := fromJSON(medications, &t.Medications); err != nil {
		return t, fmt.Errorf("decode medications of template %d: %w", t.ID, err)
	}
	if err := fromJSON(labTests, &t.LabTests); err != nil {
		return t, fmt.Errorf("decode lab_tests of template %d: %w", t.ID, err)
	}
	return t, nil
}
