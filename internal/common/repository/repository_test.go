package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/c14220110/poliklinik-lab/internal/common/models"
	"github.com/c14220110/poliklinik-lab/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestCatalogRepositoryTests(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT nama, harga FROM Diagnostic_Test ORDER BY id_test")).
		WillReturnRows(sqlmock.NewRows([]string{"nama", "harga"}).
			AddRow("CBC", 100.0).
			AddRow("X-Ray", 300.0))

	tests, err := NewCatalogRepository(db).Tests(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.DiagnosticTest{{Name: "CBC", Price: 100}, {Name: "X-Ray", Price: 300}}, tests)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryQueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("FROM Diagnostic_Test").WillReturnError(errors.New("db down"))

	_, err := NewCatalogRepository(db).Tests(context.Background())

	assert.ErrorContains(t, err, "db down")
}

var resepColumns = []string{"id_resep", "id_kunjungan", "id_pasien", "nama_pasien", "umur", "jenis_kelamin",
	"no_telp", "tanggal", "status", "gejala", "vital_signs", "diagnoses", "medications", "lab_tests"}

func TestPrescriptionRepositoryPrescriptions(t *testing.T) {
	db, mock := setupMockDB(t)
	date := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM Resep").
		WillReturnRows(sqlmock.NewRows(resepColumns).
			AddRow("RX001", "V1", "P1", "Siti", "34", "F", "0812", date, "completed", "demam",
				`{"pulseRate":88}`, `[{"code":"A01","description":"Tifoid"}]`,
				`[{"name":"Paracetamol"}]`, `["CBC","Widal"]`).
			AddRow("RX002", "V2", "P2", "Budi", "", "", "", date, "", nil, nil, nil, nil, nil))

	list, err := NewPrescriptionRepository(db).Prescriptions(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "RX001", list[0].PrescriptionID)
	assert.Equal(t, "demam", list[0].Symptoms)
	require.NotNil(t, list[0].VitalSigns)
	assert.Equal(t, 88, *list[0].VitalSigns.PulseRate)
	assert.Equal(t, []models.Diagnosis{{Code: "A01", Description: "Tifoid"}}, list[0].Diagnoses)
	assert.Equal(t, []string{"CBC", "Widal"}, list[0].LabTests)
	assert.Nil(t, list[1].VitalSigns)
	assert.Empty(t, list[1].LabTests)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrescriptionRepositorySubmit(t *testing.T) {
	db, mock := setupMockDB(t)
	p := models.Prescription{
		PrescriptionID: "RX9", VisitID: "V9", PatientID: "P9", PatientName: "Ani",
		Age: "7", Gender: "F", Phone: "0813", Date: time.Now(), Status: models.PrescriptionStatusCompleted,
		LabTests: []string{"CBC"},
	}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Resep")).
		WithArgs("RX9", "V9", "P9", "Ani", "7", "F", "0813", sqlmock.AnyArg(), "completed", "",
			nil, nil, nil, `["CBC"]`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, NewPrescriptionRepository(db).Submit(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

var invoiceColumns = []string{"id_invoice", "tanggal", "id_resep", "nama_pasien", "tests", "subtotal",
	"diskon", "total", "status", "nama_lab", "logo_lab"}

func TestInvoiceRepositoryAddInvoice(t *testing.T) {
	db, mock := setupMockDB(t)
	inv := models.LabInvoice{
		ID: "INV1", Date: time.Now(), PrescriptionID: "RX001", PatientName: "Siti",
		Tests: []string{"CBC", "X-Ray"}, Subtotal: 400, Discount: 10, Total: 360,
		Status: models.InvoiceStatusSaved, LabName: "Lab Sehat", LabLogo: "logo.png",
	}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Lab_Invoice")).
		WithArgs("INV1", sqlmock.AnyArg(), "RX001", "Siti", `["CBC","X-Ray"]`, 400.0, 10.0, 360.0,
			"saved", "Lab Sehat", "logo.png").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, NewInvoiceRepository(db).AddInvoice(context.Background(), inv))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepositoryAddInvoiceWithoutTests(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectExec("INSERT INTO Lab_Invoice").
		WithArgs("INV2", sqlmock.AnyArg(), "", "", "[]", 0.0, 0.0, 0.0, "", "", "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, NewInvoiceRepository(db).AddInvoice(context.Background(), models.LabInvoice{ID: "INV2"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepositoryListAndGet(t *testing.T) {
	db, mock := setupMockDB(t)
	date := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("ORDER BY tanggal DESC").
		WillReturnRows(sqlmock.NewRows(invoiceColumns).
			AddRow("INV2", date, "RX2", "Budi", `["CBC"]`, 100.0, 0.0, 100.0, "saved", "Lab", nil).
			AddRow("INV1", date, "RX1", "Siti", `[]`, 0.0, 0.0, 0.0, "saved", "Lab", "logo.png"))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id_invoice = ?")).WithArgs("INV404").
		WillReturnRows(sqlmock.NewRows(invoiceColumns))

	repo := NewInvoiceRepository(db)
	list, err := repo.ListInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []string{"CBC"}, list[0].Tests)
	assert.Equal(t, "", list[0].LabLogo)
	assert.Equal(t, "logo.png", list[1].LabLogo)

	_, err = repo.GetInvoice(context.Background(), "INV404")
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepository(t *testing.T) {
	db, mock := setupMockDB(t)
	defaults := models.GlobalSettings{LabName: "Default Lab"}
	repo := NewSettingsRepository(db, defaults)

	mock.ExpectQuery("FROM Global_Settings").WithArgs(1).WillReturnError(sql.ErrNoRows)
	s, err := repo.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, defaults, s)

	mock.ExpectQuery("FROM Global_Settings").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"nama_lab", "logo_lab"}).AddRow("Lab Sehat", "data:image/png"))
	s, err = repo.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.GlobalSettings{LabName: "Lab Sehat", LabLogo: "data:image/png"}, s)

	mock.ExpectExec("INSERT INTO Global_Settings").WithArgs(1, "Lab Baru", "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.UpdateSettings(context.Background(), models.GlobalSettings{LabName: "Lab Baru"}))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientRepositoryGetPatient(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPatientRepository(db)

	mock.ExpectQuery("FROM Pasien").WithArgs("P1").
		WillReturnRows(sqlmock.NewRows([]string{"id_pasien", "no_rm", "nama", "umur", "jenis_kelamin", "no_telp"}).
			AddRow("P1", "RM-01", "Siti", 34, "F", "0812"))
	p, err := repo.GetPatient(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, models.Patient{ID: "P1", PatientID: "RM-01", Name: "Siti", Age: 34, Gender: "F", PhoneNumber: "0812"}, p)

	mock.ExpectQuery("FROM Pasien").WithArgs("P404").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetPatient(context.Background(), "P404")
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
}

func TestTemplateRepository(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTemplateRepository(db)
	cols := []string{"id_template", "nama", "kode_icd10", "deskripsi", "medications", "lab_tests"}

	mock.ExpectQuery("FROM Diagnosis_Template").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, "Demam Tifoid", "A01.0", "Typhoid fever", `[{"name":"Ciprofloxacin","dosage":"500mg"}]`, `["Widal","CBC"]`))
	list, err := repo.Templates(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A01.0", list[0].Diagnosis.Code)
	assert.Equal(t, []models.Medication{{Name: "Ciprofloxacin", Dosage: "500mg"}}, list[0].Medications)
	assert.Equal(t, []string{"Widal", "CBC"}, list[0].LabTests)

	mock.ExpectQuery("WHERE id_template = ?").WithArgs(9).WillReturnRows(sqlmock.NewRows(cols))
	_, err = repo.GetTemplate(context.Background(), 9)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
