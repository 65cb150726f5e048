package mariadb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS Diagnostic_Test (
		id_test INT AUTO_INCREMENT PRIMARY KEY,
		nama VARCHAR(191) NOT NULL UNIQUE,
		harga DOUBLE NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS Pasien (
		id_pasien VARCHAR(64) PRIMARY KEY,
		no_rm VARCHAR(64) NOT NULL,
		nama VARCHAR(191) NOT NULL,
		umur INT NOT NULL DEFAULT 0,
		jenis_kelamin VARCHAR(16) NOT NULL DEFAULT '',
		no_telp VARCHAR(32) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS Resep (
		id_resep VARCHAR(64) PRIMARY KEY,
		id_kunjungan VARCHAR(64) NOT NULL,
		id_pasien VARCHAR(64) NOT NULL,
		nama_pasien VARCHAR(191) NOT NULL,
		umur VARCHAR(16) NOT NULL DEFAULT '',
		jenis_kelamin VARCHAR(16) NOT NULL DEFAULT '',
		no_telp VARCHAR(32) NOT NULL DEFAULT '',
		tanggal DATETIME NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT '',
		gejala TEXT,
		vital_signs JSON,
		diagnoses JSON,
		medications JSON,
		lab_tests JSON
	)`,
	`CREATE TABLE IF NOT EXISTS Lab_Invoice (
		id_invoice VARCHAR(64) PRIMARY KEY,
		tanggal DATETIME NOT NULL,
		id_resep VARCHAR(64) NOT NULL,
		nama_pasien VARCHAR(191) NOT NULL,
		tests JSON NOT NULL,
		subtotal DOUBLE NOT NULL,
		diskon DOUBLE NOT NULL,
		total DOUBLE NOT NULL,
		status VARCHAR(32) NOT NULL,
		nama_lab VARCHAR(191) NOT NULL DEFAULT '',
		logo_lab TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS Global_Settings (
		id TINYINT PRIMARY KEY,
		nama_lab VARCHAR(191) NOT NULL DEFAULT '',
		logo_lab TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS Diagnosis_Template (
		id_template INT AUTO_INCREMENT PRIMARY KEY,
		nama VARCHAR(191) NOT NULL,
		kode_icd10 VARCHAR(16) NOT NULL DEFAULT '',
		deskripsi VARCHAR(255) NOT NULL DEFAULT '',
		medications JSON,
		lab_tests JSON
	)`,
}

// Migrate membuat tabel yang dibutuhkan jika belum ada.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i, err)
		}
	}
	log.Info().Int("statements", len(schema)).Msg("schema migrated")
	return nil
}
