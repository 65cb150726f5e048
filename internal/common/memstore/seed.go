package memstore

import "github.com/c14220110/poliklinik-lab/internal/common/models"

// DemoTests adalah katalog tes contoh untuk mode `serve --memory`.
var DemoTests = []models.DiagnosticTest{
	{Name: "Complete Blood Count (CBC)", Price: 150000},
	{Name: "Blood Glucose", Price: 50000},
	{Name: "Lipid Profile", Price: 200000},
	{Name: "Urinalysis", Price: 75000},
	{Name: "Widal Test", Price: 90000},
	{Name: "Chest X-Ray", Price: 300000},
	{Name: "CRP", Price: 120000},
}

var DemoPatients = []models.Patient{
	{ID: "1", PatientID: "RM-0001", Name: "Siti Rahayu", Age: 34, Gender: "female", PhoneNumber: "081234567890"},
	{ID: "2", PatientID: "RM-0002", Name: "Budi Santoso", Age: 52, Gender: "male", PhoneNumber: "081298765432"},
}

var DemoTemplates = []models.DiagnosisTemplate{
	{
		ID:        1,
		Name:      "Demam Tifoid",
		Diagnosis: models.Diagnosis{Code: "A01.0", Description: "Typhoid fever"},
		Medications: []models.Medication{
			{Name: "Ciprofloxacin", Dosage: "500mg", Frequency: "2x sehari", Duration: "7 hari"},
			{Name: "Paracetamol", Dosage: "500mg", Frequency: "3x sehari", Duration: "3 hari", Instructions: "bila demam"},
		},
		LabTests: []string{"Complete Blood Count (CBC)", "Widal Test"},
	},
	{
		ID:          2,
		Name:        "Diabetes Mellitus Tipe 2",
		Diagnosis:   models.Diagnosis{Code: "E11", Description: "Type 2 diabetes mellitus"},
		Medications: []models.Medication{{Name: "Metformin", Dosage: "500mg", Frequency: "2x sehari", Duration: "30 hari"}},
		LabTests:    []string{"Blood Glucose", "Lipid Profile", "Urinalysis"},
	},
}

// NewDemo mengembalikan Store berisi data contoh.
func NewDemo(settings models.GlobalSettings) *Store {
	s := New()
	s.Seed(DemoTests, DemoPatients, DemoTemplates)
	s.settings = settings
	return s
}
