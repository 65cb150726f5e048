package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/c14220110/poliklinik-lab/internal/common/models"
)

// PrescriptionRepository menyimpan resep yang sudah disubmit dokter.
type PrescriptionRepository struct {
	DB *sql.DB
}

func NewPrescriptionRepository(db *sql.DB) *PrescriptionRepository {
	return &PrescriptionRepository{DB: db}
}

const selectResep = `
	SELECT id_resep, id_kunjungan, id_pasien, nama_pasien, umur, jenis_kelamin, no_telp,
	       tanggal, status, gejala, vital_signs, diagnoses, medications, lab_tests
	FROM Resep`

// Prescriptions mengembalikan seluruh resep, terlama lebih dulu.
func (r *PrescriptionRepository) Prescriptions(ctx context.Context) ([]models.Prescription, error) {
	rows, err := r.DB.QueryContext(ctx, selectResep+` ORDER BY tanggal, id_resep`)
	if err != nil {
		return nil, fmt.Errorf("query prescriptions: %w", err)
	}
	defer rows.Close()

	list := []models.Prescription{}
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPrescription(rows *sql.Rows) (models.Prescription, error) {
	var (
		p                                        models.Prescription
		gejala                                   sql.NullString
		vitals, diagnoses, medications, labTests sql.NullString
	)
	if err := rows.Scan(&p.PrescriptionID, &p.VisitID, &p.PatientID, &p.PatientName, &p.Age,
		&p.Gender, &p.Phone, &p.Date, &p.Status, &gejala, &vitals, &diagnoses, &medications, &labTests); err != nil {
		return p, fmt.Errorf("scan prescription: %w", err)
	}
	p.Symptoms = gejala.String

	if vitals.Valid {
		p.VitalSigns = &models.VitalSigns{}
		if err := fromJSON(vitals, p.VitalSigns); err != nil {
			return p, fmt.Errorf("decode vital_signs of %s: %w", p.PrescriptionID, err)
		}
	}
	if err := fromJSON(diagnoses, &p.Diagnoses); err != nil {
		return p, fmt.Errorf("decode diagnoses of %s: %w", p.PrescriptionID, err)
	}
	if err := fromJSON(medications, &p.Medications); err != nil {
		return p, fmt.Errorf("decode medications of %s: %w", p.PrescriptionID, err)
	}
	if err := fromJSON(labTests, &p.LabTests); err != nil {
		return p, fmt.Errorf("decode lab_tests of %s: %w", p.PrescriptionID, err)
	}
	return p, nil
}

// Submit menyimpan resep. Resep dengan id yang sama (mode edit) ditimpa.
func (r *PrescriptionRepository) Submit(ctx context.Context, p models.Prescription) error {
	vitals, err := toJSON(p.VitalSigns)
	if err != nil {
		return fmt.Errorf("encode vital signs: %w", err)
	}
	diagnoses, err := toJSON(p.Diagnoses)
	if err != nil {
		return fmt.Errorf("encode diagnoses: %w", err)
	}
	medications, err := toJSON(p.Medications)
	if err != nil {
		return fmt.Errorf("encode medications: %w", err)
	}
	labTests, err := toJSON(p.LabTests)
	if err != nil {
		return fmt.Errorf("encode lab tests: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO Resep
		  (id_resep, id_kunjungan, id_pasien, nama_pasien, umur, jenis_kelamin, no_telp,
		   tanggal, status, gejala, vital_signs, diagnoses, medications, lab_tests)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
		  id_kunjungan = VALUES(id_kunjungan), id_pasien = VALUES(id_pasien),
		  nama_pasien = VALUES(nama_pasien), umur = VALUES(umur),
		  jenis_kelamin = VALUES(jenis_kelamin), no_telp = VALUES(no_telp),
		  tanggal = VALUES(tanggal), status = VALUES(status), gejala = VALUES(gejala),
		  vital_signs = VALUES(vital_signs), diagnoses = VALUES(diagnoses),
		  medications = VALUES(medications), lab_tests = VALUES(lab_tests)`,
		p.PrescriptionID, p.VisitID, p.PatientID, p.PatientName, p.Age, p.Gender, p.Phone,
		p.Date, p.Status, p.Symptoms, vitals, diagnoses, medications, labTests,
	)
	if err != nil {
		return fmt.Errorf("insert prescription %s: %w", p.PrescriptionID, err)
	}
	return nil
}
