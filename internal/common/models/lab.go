package models

import "time"

const (
	InvoiceStatusSaved = "saved"
)

// DiagnosticTest adalah satu item katalog tes laboratorium.
type DiagnosticTest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// LabInvoice adalah tagihan tes lab. Branding lab disalin saat invoice disimpan.
type LabInvoice struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	PrescriptionID string    `json:"prescriptionId"`
	PatientName    string    `json:"patientName"`
	Tests          []string  `json:"tests"`
	Subtotal       float64   `json:"subtotal"`
	Discount       float64   `json:"discount"`
	Total          float64   `json:"total"`
	Status         string    `json:"status"`
	LabName        string    `json:"labName"`
	LabLogo        string    `json:"labLogo"`
}

type GlobalSettings struct {
	LabName string `json:"labName"`
	LabLogo string `json:"labLogo"`
}
