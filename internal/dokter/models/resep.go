package models

import (
	cm "github.com/c14220110/poliklinik-lab/internal/common/models"
)

// ComposerState adalah state satu sesi form resep dokter.
type ComposerState struct {
	// PatientID adalah id pasien yang dipakai saat form dibuka.
	PatientID    string           `json:"patientId"`
	Patient      cm.Patient       `json:"patient"`
	Prescription cm.Prescription  `json:"prescription"`
	Submitted    *cm.Prescription `json:"submitted,omitempty"`
}

// ComposerView adalah respons API untuk satu sesi: resep yang sudah dinormalisasi
// terhadap data pasien terkini.
type ComposerView struct {
	SessionID    string           `json:"sessionId"`
	Patient      cm.Patient       `json:"patient"`
	Prescription cm.Prescription  `json:"prescription"`
	Submitted    *cm.Prescription `json:"submitted,omitempty"`
}

// Request payloads

type StartComposerRequest struct {
	PatientID   string           `json:"patient_id"`
	Patient     *cm.Patient      `json:"patient,omitempty"`
	InitialData *cm.Prescription `json:"initial_data,omitempty"`
}

type SymptomsRequest struct {
	Symptoms string `json:"symptoms"`
}

type DiagnosesRequest struct {
	Diagnoses []cm.Diagnosis `json:"diagnoses"`
}

type MedicationsRequest struct {
	Medications []cm.Medication `json:"medications"`
}

type LabTestsRequest struct {
	LabTests []string `json:"lab_tests"`
}

type TemplateRequest struct {
	TemplateID int `json:"template_id"`
}
