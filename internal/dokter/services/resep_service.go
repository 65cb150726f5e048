package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	cm "github.com/c14220110/poliklinik-lab/internal/common/models"
	"github.com/c14220110/poliklinik-lab/internal/common/session"
	"github.com/c14220110/poliklinik-lab/internal/dokter/models"
	"github.com/c14220110/poliklinik-lab/pkg/apperrors"
	"github.com/rs/zerolog/log"
)

const (
	MsgPatientRequired  = "patient_id or patient is required"
	MsgTemplateInvalid  = "Invalid template_id"
	MsgAlreadySubmitted = "Prescription already submitted"
)

const EventPrescriptionSubmitted = "prescription_submitted"

// IDGenerator menghasilkan id kunjungan dan id resep yang unik antar panggilan.
type IDGenerator interface {
	VisitID() string
	PrescriptionID() string
}

// SubmissionHandler menerima resep final dari form.
type SubmissionHandler interface {
	Submit(ctx context.Context, p cm.Prescription) error
}

type PatientSource interface {
	GetPatient(ctx context.Context, id string) (cm.Patient, error)
}

type TemplateSource interface {
	Templates(ctx context.Context) ([]cm.DiagnosisTemplate, error)
	GetTemplate(ctx context.Context, id int) (cm.DiagnosisTemplate, error)
}

type EventPublisher interface {
	Publish(eventType string, data interface{})
}

// ResepService menyusun satu resep dari sub-form (tanda vital, gejala, diagnosa,
// obat, tes lab) lalu meneruskannya ke SubmissionHandler.
type ResepService struct {
	ids       IDGenerator
	handler   SubmissionHandler
	patients  PatientSource
	templates TemplateSource
	events    EventPublisher
	now       func() time.Time
	sessions  *session.Manager[models.ComposerState]
}

type ResepDeps struct {
	IDs       IDGenerator
	Handler   SubmissionHandler
	Patients  PatientSource
	Templates TemplateSource
	Events    EventPublisher // opsional
	Now       func() time.Time
	Sessions  session.Store[models.ComposerState]
}

func NewResepService(d ResepDeps) *ResepService {
	if d.Now == nil {
		d.Now = time.Now
	}
	return &ResepService{
		ids:       d.IDs,
		handler:   d.Handler,
		patients:  d.Patients,
		templates: d.Templates,
		events:    d.Events,
		now:       d.Now,
		sessions:  session.NewManager(d.Sessions),
	}
}

// NewComposerState membentuk state awal. Id kunjungan dan id resep diambil dari
// initial (mode edit) bila ada, selain itu dibuat sekali di sini (mode buat baru).
func NewComposerState(patientID string, patient cm.Patient, initial *cm.Prescription, ids IDGenerator) models.ComposerState {
	var p cm.Prescription
	if initial != nil {
		p = *initial
	}
	if p.VisitID == "" {
		p.VisitID = ids.VisitID()
	}
	if p.PrescriptionID == "" {
		p.PrescriptionID = ids.PrescriptionID()
	}
	p.PatientID = patientID
	p = withPatient(p, patient)
	return models.ComposerState{PatientID: patientID, Patient: patient, Prescription: p}
}

// Normalize mengembalikan salinan resep dengan field pasien diturunkan ulang dari
// data pasien terkini.
func Normalize(p cm.Prescription, patient cm.Patient) cm.Prescription {
	p = withPatient(p, patient)
	p.PatientID = patient.ID
	return p
}

func withPatient(p cm.Prescription, patient cm.Patient) cm.Prescription {
	age := strconv.Itoa(patient.Age)
	p.PatientName = patient.Name
	p.Age = age
	p.Gender = patient.Gender
	p.Phone = patient.PhoneNumber
	p.Patient = &cm.PatientSnapshot{
		ID:          patient.ID,
		PatientID:   patient.PatientID,
		Name:        patient.Name,
		Age:         age,
		Gender:      patient.Gender,
		PhoneNumber: patient.PhoneNumber,
	}
	return p
}

// ApplyTemplate menambahkan obat dari template (duplikat dibiarkan) dan
// menggabungkan tes lab tanpa duplikat dengan urutan kemunculan pertama.
func ApplyTemplate(p *cm.Prescription, t cm.DiagnosisTemplate) {
	meds := make([]cm.Medication, 0, len(p.Medications)+len(t.Medications))
	meds = append(meds, p.Medications...)
	p.Medications = append(meds, t.Medications...)

	seen := make(map[string]struct{}, len(p.LabTests)+len(t.LabTests))
	tests := make([]string, 0, len(p.LabTests)+len(t.LabTests))
	for _, name := range append(append([]string(nil), p.LabTests...), t.LabTests...) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		tests = append(tests, name)
	}
	p.LabTests = tests
}

// StartSession membuka form resep untuk satu pasien. Jika patient tidak dikirim,
// data pasien dibaca dari PatientSource.
func (s *ResepService) StartSession(ctx context.Context, req models.StartComposerRequest) (models.ComposerView, error) {
	patient, err := s.resolvePatient(ctx, req)
	if err != nil {
		return models.ComposerView{}, err
	}
	patientID := req.PatientID
	if patientID == "" {
		patientID = patient.ID
	}

	state := NewComposerState(patientID, patient, req.InitialData, s.ids)
	id, err := s.sessions.Create(ctx, state)
	if err != nil {
		return models.ComposerView{}, apperrors.NewInternalError("failed to create session", err)
	}
	return render(id, state), nil
}

func (s *ResepService) resolvePatient(ctx context.Context, req models.StartComposerRequest) (cm.Patient, error) {
	if req.Patient != nil {
		return *req.Patient, nil
	}
	if strings.TrimSpace(req.PatientID) == "" {
		return cm.Patient{}, apperrors.NewValidationError(MsgPatientRequired)
	}
	patient, err := s.patients.GetPatient(ctx, req.PatientID)
	if err != nil {
		if apperrors.TypeOf(err) == apperrors.ErrorTypeNotFound {
			return patient, err
		}
		return patient, apperrors.NewInternalError("failed to load patient", err)
	}
	return patient, nil
}

func (s *ResepService) GetSession(ctx context.Context, id string) (models.ComposerView, error) {
	state, err := s.sessions.Get(ctx, id)
	if err != nil {
		return models.ComposerView{}, err
	}
	return render(id, state), nil
}

func (s *ResepService) CloseSession(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

// SetPatient mengganti data pasien terkini. Resep internal tidak disentuh;
// normalisasi terjadi saat resep dikirim keluar.
func (s *ResepService) SetPatient(ctx context.Context, id string, patient cm.Patient) (models.ComposerView, error) {
	return s.update(ctx, id, func(st *models.ComposerState) error {
		st.Patient = patient
		return nil
	})
}

func (s *ResepService) UpdateVitalSigns(ctx context.Context, id string, vitals cm.VitalSigns) (models.ComposerView, error) {
	return s.update(ctx, id, func(st *models.ComposerState) error {
		st.Prescription.VitalSigns = &vitals
		return nil
	})
}

func (s *ResepService) UpdateSymptoms(ctx context.Context, id, symptoms string) (models.ComposerView, error) {
	return s.update(ctx, id, func(st *models.ComposerState) error {
		st.Prescription.Symptoms = symptoms
		return nil
	})
}

func (s *ResepService) UpdateDiagnoses(ctx context.Context, id string, diagnoses []cm.Diagnosis) (models.ComposerView, error) {
	return s.update(ctx, id, func(st *models.ComposerState) error {
		st.Prescription.Diagnoses = diagnoses
		return nil
	})
}

func (s *ResepService) UpdateMedications(ctx context.Context, id string, meds []cm.Medication) (models.ComposerView, error) {
	return s.update(ctx, id, func(st *models.ComposerState) error {
		st.Prescription.Medications = meds
		return nil
	})
}

func (s *ResepService) UpdateLabTests(ctx context.Context, id string, tests []string) (models.ComposerView, error) {
	return s.update(ctx, id, func(st *models.ComposerState) error {
		st.Prescription.LabTests = tests
		return nil
	})
}

// ApplyTemplate memuat template diagnosa lalu menerapkannya ke resep sesi.
func (s *ResepService) ApplyTemplate(ctx context.Context, id string, templateID int) (models.ComposerView, error) {
	if templateID <= 0 {
		return models.ComposerView{}, apperrors.NewValidationError(MsgTemplateInvalid)
	}
	tmpl, err := s.Template(ctx, templateID)
	if err != nil {
		return models.ComposerView{}, err
	}
	return s.update(ctx, id, func(st *models.ComposerState) error {
		ApplyTemplate(&st.Prescription, tmpl)
		return nil
	})
}

func (s *ResepService) Templates(ctx context.Context) ([]cm.DiagnosisTemplate, error) {
	list, err := s.templates.Templates(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to retrieve diagnosis templates", err)
	}
	return list, nil
}

func (s *ResepService) Template(ctx context.Context, id int) (cm.DiagnosisTemplate, error) {
	tmpl, err := s.templates.GetTemplate(ctx, id)
	if err != nil {
		if apperrors.TypeOf(err) == apperrors.ErrorTypeNotFound {
			return tmpl, err
		}
		return tmpl, apperrors.NewInternalError("failed to load diagnosis template", err)
	}
	return tmpl, nil
}

// Submit menggabungkan isi sub-form dengan data pasien terkini, memberi tanggal
// sekarang dan status "completed", lalu meneruskannya ke SubmissionHandler.
// Tidak ada validasi tambahan di sini.
func (s *ResepService) Submit(ctx context.Context, id string) (cm.Prescription, error) {
	var (
		final     cm.Prescription
		submitted bool
	)
	_, err := s.sessions.Update(ctx, id, func(st *models.ComposerState) error {
		if st.Submitted != nil {
			return apperrors.NewValidationError(MsgAlreadySubmitted)
		}
		final = Normalize(st.Prescription, st.Patient)
		final.Date = s.now()
		final.Status = cm.PrescriptionStatusCompleted

		if err := s.handler.Submit(ctx, final); err != nil {
			return apperrors.NewInternalError("failed to submit prescription", err)
		}
		submitted = true
		st.Submitted = &final
		return nil
	})
	if err != nil {
		if !submitted || !errors.Is(err, session.ErrNotPersisted) {
			return cm.Prescription{}, err
		}
		log.Error().Err(err).
			Str("session_id", id).
			Str("prescription_id", final.PrescriptionID).
			Msg("prescription session not updated after submit")
	}

	log.Info().
		Str("prescription_id", final.PrescriptionID).
		Str("visit_id", final.VisitID).
		Str("patient_id", final.PatientID).
		Int("medications", len(final.Medications)).
		Int("lab_tests", len(final.LabTests)).
		Msg("prescription submitted")
	if s.events != nil {
		s.events.Publish(EventPrescriptionSubmitted, final)
	}
	return final, nil
}

// update menerapkan fn ke sesi yang resepnya belum disubmit.
func (s *ResepService) update(ctx context.Context, id string, fn func(*models.ComposerState) error) (models.ComposerView, error) {
	state, err := s.sessions.Update(ctx, id, func(st *models.ComposerState) error {
		if st.Submitted != nil {
			return apperrors.NewValidationError(MsgAlreadySubmitted)
		}
		return fn(st)
	})
	if err != nil {
		return models.ComposerView{}, err
	}
	return render(id, state), nil
}

func render(id string, st models.ComposerState) models.ComposerView {
	return models.ComposerView{
		SessionID:    id,
		Patient:      st.Patient,
		Prescription: Normalize(st.Prescription, st.Patient),
		Submitted:    st.Submitted,
	}
}
