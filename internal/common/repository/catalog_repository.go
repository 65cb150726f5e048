package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/c14220110/poliklinik-lab/internal/common/models"
)

// CatalogRepository membaca katalog tes diagnostik dari tabel Diagnostic_Test.
type CatalogRepository struct {
	DB *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// Tests mengembalikan seluruh katalog sesuai urutan input.
func (r *CatalogRepository) Tests(ctx context.Context) ([]models.DiagnosticTest, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT nama, harga FROM Diagnostic_Test ORDER BY id_test`)
	if err != nil {
		return nil, fmt.Errorf("query diagnostic tests: %w", err)
	}
	defer rows.Close()

	tests := []models.DiagnosticTest{}
	for rows.Next() {
		var t models.DiagnosticTest
		if err := rows.Scan(&t.Name, &t.Price); err != nil {
			return nil, fmt.Errorf("scan diagnostic test: %w", err)
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}
