package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/c14220110/poliklinik-lab/internal/common/models"
	"github.com/c14220110/poliklinik-lab/pkg/apperrors"
)

// InvoiceRepository menangani penyimpanan Lab_Invoice. Invoice hanya ditambah, tidak diubah.
type InvoiceRepository struct {
	DB *sql.DB
}

func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

func (r *InvoiceRepository) AddInvoice(ctx context.Context, inv models.LabInvoice) error {
	tests, err := toJSON(inv.Tests)
	if err != nil {
		return fmt.Errorf("encode invoice tests: %w", err)
	}
	if !tests.Valid {
		tests = sql.NullString{String: "[]", Valid: true}
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO Lab_Invoice
		  (id_invoice, tanggal, id_resep, nama_pasien, tests, subtotal, diskon, total, status, nama_lab, logo_lab)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		inv.ID, inv.Date, inv.PrescriptionID, inv.PatientName, tests,
		inv.Subtotal, inv.Discount, inv.Total, inv.Status, inv.LabName, inv.LabLogo,
	)
	if err != nil {
		return fmt.Errorf("insert invoice %s: %w", inv.ID, err)
	}
	return nil
}

const selectInvoice = `
	SELECT id_invoice, tanggal, id_resep, nama_pasien, tests, subtotal, diskon, total, status, nama_lab, logo_lab
	FROM Lab_Invoice`

// ListInvoices mengembalikan invoice terbaru lebih dulu.
func (r *InvoiceRepository) ListInvoices(ctx context.Context) ([]models.LabInvoice, error) {
	rows, err := r.DB.QueryContext(ctx, selectInvoice+` ORDER BY tanggal DESC, id_invoice DESC`)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	list := []models.LabInvoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func (r *InvoiceRepository) GetInvoice(ctx context.Context, id string) (models.LabInvoice, error) {
	rows, err := r.DB.QueryContext(ctx, selectInvoice+` WHERE id_invoice = ? LIMIT 1`, id)
	if err != nil {
		return models.LabInvoice{}, fmt.Errorf("query invoice %s: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return models.LabInvoice{}, err
		}
		return models.LabInvoice{}, apperrors.NewNotFoundError("Invoice tidak ditemukan")
	}
	return scanInvoice(rows)
}

func scanInvoice(rows *sql.Rows) (models.LabInvoice, error) {
	var (
		inv   models.LabInvoice
		tests sql.NullString
		logo  sql.NullString
	)
	if err := rows.Scan(&inv.ID, &inv.Date, &inv.PrescriptionID, &inv.PatientName, &tests,
		&inv.Subtotal, &inv.Discount, &inv.Total, &inv.Status, &inv.LabName, &logo); err != nil {
		return inv, fmt.Errorf("scan invoice: %w", err)
	}
	inv.LabLogo = logo.String
	if err := fromJSON(tests, &inv.Tests); err != nil {
		return inv, fmt.Errorf("decode tests of %s: %w", inv.ID, err)
	}
	if inv.Tests == nil {
		inv.Tests = []string{}
	}
	return inv, nil
}
