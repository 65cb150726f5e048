package models

import (
	cm "github.com/c14220110/poliklinik-lab/internal/common/models"
)

// View adalah layar aktif pada form invoice lab order.
type View string

const (
	ViewList    View = "list"
	ViewSearch  View = "search"
	ViewCreate  View = "create"
	ViewInvoice View = "invoice"
)

func (v View) Valid() bool {
	switch v {
	case ViewList, ViewSearch, ViewCreate, ViewInvoice:
		return true
	}
	return false
}

// LabOrderState adalah state satu sesi form invoice lab order.
type LabOrderState struct {
	View                 View             `json:"view"`
	PrescriptionID       string           `json:"prescriptionId"`
	Discount             float64          `json:"discount"`
	SelectedPrescription *cm.Prescription `json:"selectedPrescription"`
	SelectedTests        []string         `json:"selectedTests"`
	PatientName          string           `json:"patientName"`
	SearchTerm           string           `json:"searchTerm"`
}

// NewLabOrderState mengembalikan state awal (view daftar, semua input kosong).
func NewLabOrderState() LabOrderState {
	return LabOrderState{View: ViewList, SelectedTests: []string{}}
}

type InvoiceLine struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// InvoicePreview adalah isi layar invoice sebelum disimpan.
type InvoicePreview struct {
	PatientName    string        `json:"patientName"`
	PrescriptionID string        `json:"prescriptionId"`
	Lines          []InvoiceLine `json:"lines"`
	Subtotal       float64       `json:"subtotal"`
	Discount       float64       `json:"discount"`
	Total          float64       `json:"total"`
}

// LabOrderView adalah respons API untuk satu sesi.
type LabOrderView struct {
	SessionID     string              `json:"sessionId"`
	State         LabOrderState       `json:"state"`
	FilteredTests []cm.DiagnosticTest `json:"filteredTests,omitempty"`
	Invoice       *InvoicePreview     `json:"invoice,omitempty"`
}

// Request payloads

type SetViewRequest struct {
	View View `json:"view"`
}

type SearchRequest struct {
	PrescriptionID string `json:"prescription_id"`
}

type PatientNameRequest struct {
	PatientName string `json:"patient_name"`
}

type SearchTermRequest struct {
	SearchTerm string `json:"search_term"`
}

type AddTestRequest struct {
	TestName string `json:"test_name"`
}

type DiscountRequest struct {
	Discount float64 `json:"discount"`
}

type SaveResult struct {
	Invoice cm.LabInvoice `json:"invoice"`
	View    LabOrderView  `json:"view"`
}
