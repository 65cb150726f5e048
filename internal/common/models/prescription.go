package models

import "time"

const (
	PrescriptionStatusCompleted = "completed"
)

// Patient adalah data pasien yang sedang dilayani dokter.
type Patient struct {
	ID          string `json:"id"`
	PatientID   string `json:"patientId"` // nomor rekam medis
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	PhoneNumber string `json:"phoneNumber"`
}

// PatientSnapshot adalah salinan Patient di dalam resep, umur disimpan sebagai teks.
type PatientSnapshot struct {
	ID          string `json:"id"`
	PatientID   string `json:"patientId"`
	Name        string `json:"name"`
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	PhoneNumber string `json:"phoneNumber"`
}

type VitalSigns struct {
	SystolicBP      *int     `json:"systolicBp,omitempty"`
	DiastolicBP     *int     `json:"diastolicBp,omitempty"`
	PulseRate       *int     `json:"pulseRate,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
	RespiratoryRate *int     `json:"respiratoryRate,omitempty"`
	SpO2            *int     `json:"spo2,omitempty"`
	HeightCm        *int     `json:"heightCm,omitempty"`
	WeightKg        *float64 `json:"weightKg,omitempty"`
}

type Diagnosis struct {
	Code        string `json:"code,omitempty"` // ICD-10
	Description string `json:"description"`
}

type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage,omitempty"`
	Frequency    string `json:"frequency,omitempty"`
	Duration     string `json:"duration,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// Prescription adalah catatan kunjungan klinis: diagnosa, obat, dan tes lab yang dipesan.
type Prescription struct {
	PrescriptionID string           `json:"prescriptionId"`
	VisitID        string           `json:"visitId"`
	PatientID      string           `json:"patientId"`
	PatientName    string           `json:"patientName"`
	Age            string           `json:"age,omitempty"`
	Gender         string           `json:"gender,omitempty"`
	Phone          string           `json:"phone,omitempty"`
	Patient        *PatientSnapshot `json:"patient,omitempty"`
	Date           time.Time        `json:"date"`
	Status         string           `json:"status,omitempty"`
	Symptoms       string           `json:"symptoms,omitempty"`
	VitalSigns     *VitalSigns      `json:"vitalSigns,omitempty"`
	Diagnoses      []Diagnosis      `json:"diagnoses,omitempty"`
	Medications    []Medication     `json:"medications,omitempty"`
	LabTests       []string         `json:"labTests,omitempty"`
}

// DiagnosisTemplate adalah paket obat dan tes lab untuk satu kondisi.
type DiagnosisTemplate struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Diagnosis   Diagnosis    `json:"diagnosis"`
	Medications []Medication `json:"medications"`
	LabTests    []string     `json:"labTests"`
}
