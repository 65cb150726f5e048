package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/c14220110/poliklinik-lab/internal/administrasi/models"
	cm "github.com/c14220110/poliklinik-lab/internal/common/models"
	"github.com/c14220110/poliklinik-lab/internal/common/session"
	"github.com/c14220110/poliklinik-lab/pkg/apperrors"
	"github.com/c14220110/poliklinik-lab/pkg/utils"
	"github.com/rs/zerolog/log"
)

// Pesan validasi yang ditampilkan ke pengguna.
const (
	MsgPrescriptionIDRequired = "Please enter a Prescription ID"
	MsgNoLabTestsFound        = "No lab tests found for this prescription ID"
	MsgPatientNameRequired    = "Please enter patient name"
	MsgSelectAtLeastOneTest   = "Please select at least one test"
	MsgNoPrescriptionSelected = "No prescription selected"
	MsgInvalidDiscount        = "Discount must be between 0 and 100"
	MsgInvalidView            = "Invalid view"
	MsgTestNameRequired       = "Please select a test"
)

const EventInvoiceSaved = "invoice_saved"

type TestCatalog interface {
	Tests(ctx context.Context) ([]cm.DiagnosticTest, error)
}

type PrescriptionCollection interface {
	Prescriptions(ctx context.Context) ([]cm.Prescription, error)
}

// InvoiceStore menerima invoice baru dan menyediakan daftar invoice tersimpan.
type InvoiceStore interface {
	AddInvoice(ctx context.Context, inv cm.LabInvoice) error
	ListInvoices(ctx context.Context) ([]cm.LabInvoice, error)
	GetInvoice(ctx context.Context, id string) (cm.LabInvoice, error)
}

type SettingsProvider interface {
	Settings(ctx context.Context) (cm.GlobalSettings, error)
}

type EventPublisher interface {
	Publish(eventType string, data interface{})
}

// BillingService menangani form invoice lab order: cari resep atau susun tes
// manual, hitung harga, lalu simpan invoice.
type BillingService struct {
	catalog       TestCatalog
	prescriptions PrescriptionCollection
	invoices      InvoiceStore
	settings      SettingsProvider
	events        EventPublisher
	ids           *utils.IDSource
	now           func() time.Time
	sessions      *session.Manager[models.LabOrderState]
}

type BillingDeps struct {
	Catalog       TestCatalog
	Prescriptions PrescriptionCollection
	Invoices      InvoiceStore
	Settings      SettingsProvider
	Events        EventPublisher // opsional
	IDs           *utils.IDSource
	Now           func() time.Time
	Sessions      session.Store[models.LabOrderState]
}

func NewBillingService(d BillingDeps) *BillingService {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.IDs == nil {
		d.IDs = utils.NewIDSource(d.Now)
	}
	return &BillingService{
		catalog:       d.Catalog,
		prescriptions: d.Prescriptions,
		invoices:      d.Invoices,
		settings:      d.Settings,
		events:        d.Events,
		ids:           d.IDs,
		now:           d.Now,
		sessions:      session.NewManager(d.Sessions),
	}
}

// StartSession membuka form baru dengan state awal.
func (s *BillingService) StartSession(ctx context.Context) (models.LabOrderView, error) {
	state := models.NewLabOrderState()
	id, err := s.sessions.Create(ctx, state)
	if err != nil {
		return models.LabOrderView{}, apperrors.NewInternalError("failed to create session", err)
	}
	return s.render(ctx, id, state)
}

func (s *BillingService) GetSession(ctx context.Context, id string) (models.LabOrderView, error) {
	state, err := s.sessions.Get(ctx, id)
	if err != nil {
		return models.LabOrderView{}, err
	}
	return s.render(ctx, id, state)
}

func (s *BillingService) CloseSession(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

func (s *BillingService) SetView(ctx context.Context, id string, view models.View) (models.LabOrderView, error) {
	return s.update(ctx, id, func(st *models.LabOrderState) error {
		if !view.Valid() {
			return apperrors.NewValidationError(MsgInvalidView)
		}
		st.View = view
		return nil
	})
}

// Search mencari resep berdasarkan prescriptionId (case-insensitive, persis).
// Resep pertama yang cocok dan memiliki tes lab dipilih, lalu view pindah ke invoice.
func (s *BillingService) Search(ctx context.Context, id, prescriptionID string) (models.LabOrderView, error) {
	return s.update(ctx, id, func(st *models.LabOrderState) error {
		st.PrescriptionID = prescriptionID
		if strings.TrimSpace(prescriptionID) == "" {
			return apperrors.NewValidationError(MsgPrescriptionIDRequired)
		}

		list, err := s.prescriptions.Prescriptions(ctx)
		if err != nil {
			return apperrors.NewInternalError("failed to load prescriptions", err)
		}
		found := FindPrescriptionWithLabTests(list, prescriptionID)
		if found == nil {
			return apperrors.NewValidationError(MsgNoLabTestsFound)
		}

		st.SelectedPrescription = found
		st.View = models.ViewInvoice
		return nil
	})
}

// FindPrescriptionWithLabTests mengembalikan salinan resep pertama yang id-nya
// sama (tanpa membedakan huruf besar/kecil) dan memiliki minimal satu tes lab.
func FindPrescriptionWithLabTests(list []cm.Prescription, prescriptionID string) *cm.Prescription {
	for _, p := range list {
		if strings.EqualFold(p.PrescriptionID, prescriptionID) && len(p.LabTests) > 0 {
			found := p
			found.LabTests = append([]string(nil), p.LabTests...)
			return &found
		}
	}
	return nil
}

func (s *BillingService) SetPatientName(ctx context.Context, id, name string) (models.LabOrderView, error) {
	return s.update(ctx, id, func(st *models.LabOrderState) error {
		st.PatientName = name
		return nil
	})
}

func (s *BillingService) SetSearchTerm(ctx context.Context, id, term string) (models.LabOrderView, error) {
	return s.update(ctx, id, func(st *models.LabOrderState) error {
		st.SearchTerm = term
		return nil
	})
}

// AddTest menambah tes ke pilihan manual. Tes yang sudah dipilih diabaikan.
func (s *BillingService) AddTest(ctx context.Context, id, testName string) (models.LabOrderView, error) {
	return s.update(ctx, id, func(st *models.LabOrderState) error {
		if strings.TrimSpace(testName) == "" {
			return apperrors.NewValidationError(MsgTestNameRequired)
		}
		AddSelectedTest(st, testName)
		return nil
	})
}

func AddSelectedTest(st *models.LabOrderState, testName string) {
	if containsTest(st.SelectedTests, testName) {
		return
	}
	st.SelectedTests = append(st.SelectedTests, testName)
	st.SearchTerm = ""
}

// RemoveTest menghapus tes dari pilihan manual; nama yang tidak ada diabaikan.
func (s *BillingService) RemoveTest(ctx context.Context, id, testName string) (models.LabOrderView, error) {
	return s.update(ctx, id, func(st *models.LabOrderState) error {
		RemoveSelectedTest(st, testName)
		return nil
	})
}

func RemoveSelectedTest(st *models.LabOrderState, testName string) {
	kept := make([]string, 0, len(st.SelectedTests))
	for _, t := range st.SelectedTests {
		if t != testName {
			kept = append(kept, t)
		}
	}
	st.SelectedTests = kept
}

// CreateManualOrder membuat resep walk-in dari nama pasien dan tes yang dipilih.
func (s *BillingService) CreateManualOrder(ctx context.Context, id string) (models.LabOrderView, error) {
	return s.update(ctx, id, func(st *models.LabOrderState) error {
		name := strings.TrimSpace(st.PatientName)
		if name == "" {
			return apperrors.NewValidationError(MsgPatientNameRequired)
		}
		if len(st.SelectedTests) == 0 {
			return apperrors.NewValidationError(MsgSelectAtLeastOneTest)
		}

		stamp := s.ids.Stamp()
		st.SelectedPrescription = &cm.Prescription{
			PrescriptionID: utils.WithStamp(utils.PrefixManualPrescription, stamp),
			VisitID:        utils.WithStamp(utils.PrefixManualVisit, stamp),
			PatientID:      utils.WithStamp(utils.PrefixManualPatient, stamp),
			PatientName:    name,
			Date:           s.now(),
			LabTests:       append([]string(nil), st.SelectedTests...),
		}
		st.View = models.ViewInvoice
		return nil
	})
}

func (s *BillingService) SetDiscount(ctx context.Context, id string, discount float64) (models.LabOrderView, error) {
	return s.update(ctx, id, func(st *models.LabOrderState) error {
		if math.IsNaN(discount) || discount < 0 || discount > 100 {
			return apperrors.NewValidationError(MsgInvalidDiscount)
		}
		st.Discount = discount
		return nil
	})
}

// Save menyimpan invoice dari resep terpilih lalu mengembalikan form ke state awal.
// Nama dan logo lab dibaca dari pengaturan global saat ini juga.
func (s *BillingService) Save(ctx context.Context, id string) (models.SaveResult, error) {
	var (
		invoice cm.LabInvoice
		saved   bool
	)
	state, err := s.sessions.Update(ctx, id, func(st *models.LabOrderState) error {
		if st.SelectedPrescription == nil {
			return apperrors.NewValidationError(MsgNoPrescriptionSelected)
		}

		catalog, err := s.catalog.Tests(ctx)
		if err != nil {
			return apperrors.NewInternalError("failed to load diagnostic tests", err)
		}
		settings, err := s.settings.Settings(ctx)
		if err != nil {
			return apperrors.NewInternalError("failed to load settings", err)
		}

		invoice = BuildInvoice(st.SelectedPrescription, catalog, st.Discount, settings,
			utils.WithStamp(utils.PrefixInvoice, s.ids.Stamp()), s.now())
		if err := s.invoices.AddInvoice(ctx, invoice); err != nil {
			return apperrors.NewInternalError("failed to save invoice", err)
		}

		saved = true
		*st = models.NewLabOrderState()
		return nil
	})
	if err != nil {
		if !saved || !errors.Is(err, session.ErrNotPersisted) {
			return models.SaveResult{}, err
		}
		// Invoice sudah tersimpan, jadi Save tetap berhasil walau reset form gagal.
		log.Error().Err(err).
			Str("session_id", id).
			Str("invoice_id", invoice.ID).
			Msg("lab order session not reset after invoice save")
	}

	log.Info().
		Str("invoice_id", invoice.ID).
		Str("prescription_id", invoice.PrescriptionID).
		Float64("total", invoice.Total).
		Msg("lab invoice saved")
	if s.events != nil {
		s.events.Publish(EventInvoiceSaved, invoice)
	}

	view, err := s.render(ctx, id, state)
	if err != nil {
		return models.SaveResult{}, err
	}
	return models.SaveResult{Invoice: invoice, View: view}, nil
}

// BuildInvoice menyusun snapshot invoice dari resep terpilih.
func BuildInvoice(p *cm.Prescription, catalog []cm.DiagnosticTest, discount float64, settings cm.GlobalSettings, invoiceID string, now time.Time) cm.LabInvoice {
	tests := append([]string{}, p.LabTests...)
	subtotal := CalculateTotal(catalog, tests)
	return cm.LabInvoice{
		ID:             invoiceID,
		Date:           now,
		PrescriptionID: p.PrescriptionID,
		PatientName:    p.PatientName,
		Tests:          tests,
		Subtotal:       subtotal,
		Discount:       discount,
		Total:          DiscountedTotal(subtotal, discount),
		Status:         cm.InvoiceStatusSaved,
		LabName:        settings.LabName,
		LabLogo:        settings.LabLogo,
	}
}

// Reset mengosongkan semua input dan kembali ke view daftar.
func (s *BillingService) Reset(ctx context.Context, id string) (models.LabOrderView, error) {
	return s.update(ctx, id, func(st *models.LabOrderState) error {
		*st = models.NewLabOrderState()
		return nil
	})
}

func (s *BillingService) ListInvoices(ctx context.Context) ([]cm.LabInvoice, error) {
	list, err := s.invoices.ListInvoices(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to retrieve invoices", err)
	}
	return list, nil
}

func (s *BillingService) GetInvoice(ctx context.Context, invoiceID string) (cm.LabInvoice, error) {
	inv, err := s.invoices.GetInvoice(ctx, invoiceID)
	if err != nil {
		if apperrors.TypeOf(err) == apperrors.ErrorTypeNotFound {
			return inv, err
		}
		return inv, apperrors.NewInternalError("failed to retrieve invoice", err)
	}
	return inv, nil
}

// AvailableTests mengembalikan pilihan dropdown tes untuk sesi, terlepas dari view aktif.
func (s *BillingService) AvailableTests(ctx context.Context, id string) ([]cm.DiagnosticTest, error) {
	state, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalog.Tests(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load diagnostic tests", err)
	}
	return FilterTests(catalog, state.SearchTerm, state.SelectedTests), nil
}

// FilterTests mengembalikan tes katalog yang namanya memuat term (case-insensitive)
// dan belum dipilih.
func FilterTests(catalog []cm.DiagnosticTest, term string, selected []string) []cm.DiagnosticTest {
	term = strings.ToLower(term)
	out := []cm.DiagnosticTest{}
	for _, t := range catalog {
		if strings.Contains(strings.ToLower(t.Name), term) && !containsTest(selected, t.Name) {
			out = append(out, t)
		}
	}
	return out
}

func (s *BillingService) update(ctx context.Context, id string, fn func(*models.LabOrderState) error) (models.LabOrderView, error) {
	state, err := s.sessions.Update(ctx, id, fn)
	if err != nil {
		return models.LabOrderView{}, err
	}
	return s.render(ctx, id, state)
}

func (s *BillingService) render(ctx context.Context, id string, st models.LabOrderState) (models.LabOrderView, error) {
	view := models.LabOrderView{SessionID: id, State: st}
	if st.View != models.ViewCreate && st.View != models.ViewInvoice {
		return view, nil
	}

	catalog, err := s.catalog.Tests(ctx)
	if err != nil {
		return view, apperrors.NewInternalError("failed to load diagnostic tests", err)
	}

	if st.View == models.ViewCreate {
		view.FilteredTests = FilterTests(catalog, st.SearchTerm, st.SelectedTests)
		return view, nil
	}
	if st.SelectedPrescription != nil {
		view.Invoice = Preview(st.SelectedPrescription, catalog, st.Discount)
	}
	return view, nil
}

// Preview menghitung baris harga, subtotal, dan total untuk layar invoice.
func Preview(p *cm.Prescription, catalog []cm.DiagnosticTest, discount float64) *models.InvoicePreview {
	lines := make([]models.InvoiceLine, 0, len(p.LabTests))
	for _, name := range p.LabTests {
		lines = append(lines, models.InvoiceLine{Name: name, Price: TestPrice(catalog, name)})
	}
	subtotal := CalculateTotal(catalog, p.LabTests)
	return &models.InvoicePreview{
		PatientName:    p.PatientName,
		PrescriptionID: p.PrescriptionID,
		Lines:          lines,
		Subtotal:       subtotal,
		Discount:       discount,
		Total:          DiscountedTotal(subtotal, discount),
	}
}

func containsTest(tests []string, name string) bool {
	for _, t := range tests {
		if t == name {
			return true
		}
	}
	return false
}
