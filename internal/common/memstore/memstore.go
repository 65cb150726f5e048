// Package memstore menyediakan implementasi in-memory untuk seluruh repository
// (katalog tes, resep, invoice, pengaturan, pasien, template diagnosa). Dipakai
// oleh `serve --memory` dan pengujian controller.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/c14220110/poliklinik-lab/internal/common/models"
	"github.com/c14220110/poliklinik-lab/pkg/apperrors"
)

type Store struct {
	mu            sync.RWMutex
	tests         []models.DiagnosticTest
	prescriptions []models.Prescription
	invoices      []models.LabInvoice
	settings      models.GlobalSettings
	patients      map[string]models.Patient
	templates     []models.DiagnosisTemplate
}

func New() *Store {
	return &Store{patients: make(map[string]models.Patient)}
}

// Seed mengganti katalog, pasien, dan template dengan data awal.
func (s *Store) Seed(tests []models.DiagnosticTest, patients []models.Patient, templates []models.DiagnosisTemplate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tests = append([]models.DiagnosticTest(nil), tests...)
	for _, p := range patients {
		s.patients[p.ID] = p
	}
	s.templates = append([]models.DiagnosisTemplate(nil), templates...)
}

func (s *Store) Tests(context.Context) ([]models.DiagnosticTest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.DiagnosticTest{}, s.tests...), nil
}

func (s *Store) Prescriptions(context.Context) ([]models.Prescription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Prescription{}, s.prescriptions...), nil
}

// Submit menambah resep baru atau menimpa resep dengan id yang sama.
func (s *Store) Submit(_ context.Context, p models.Prescription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.LabTests = append([]string(nil), p.LabTests...)
	for i := range s.prescriptions {
		if s.prescriptions[i].PrescriptionID == p.PrescriptionID {
			s.prescriptions[i] = p
			return nil
		}
	}
	s.prescriptions = append(s.prescriptions, p)
	return nil
}

func (s *Store) AddInvoice(_ context.Context, inv models.LabInvoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv.Tests = append([]string{}, inv.Tests...)
	s.invoices = append(s.invoices, inv)
	return nil
}

// ListInvoices mengembalikan invoice terbaru lebih dulu.
func (s *Store) ListInvoices(context.Context) ([]models.LabInvoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := append([]models.LabInvoice{}, s.invoices...)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return list, nil
}

func (s *Store) GetInvoice(_ context.Context, id string) (models.LabInvoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inv := range s.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return models.LabInvoice{}, apperrors.NewNotFoundError("Invoice tidak ditemukan")
}

func (s *Store) Settings(context.Context) (models.GlobalSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

func (s *Store) UpdateSettings(_ context.Context, settings models.GlobalSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return nil
}

func (s *Store) GetPatient(_ context.Context, id string) (models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patients[id]
	if !ok {
		return p, apperrors.NewNotFoundError("Pasien tidak ditemukan")
	}
	return p, nil
}

func (s *Store) Templates(context.Context) ([]models.DiagnosisTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := append([]models.DiagnosisTemplate{}, s.templates...)
	sort.SliceStable(list, func(i, j int) bool { return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name) })
	return list, nil
}

func (s *Store) GetTemplate(_ context.Context, id int) (models.DiagnosisTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.templates {
		if t.ID == id {
			return t, nil
		}
	}
	return models.DiagnosisTemplate{}, apperrors.NewNotFoundError("Template diagnosa tidak ditemukan")
}
