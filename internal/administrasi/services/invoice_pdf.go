package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cm "github.com/c14220110/poliklinik-lab/internal/common/models"
	"github.com/jung-kurt/gofpdf"
)

// RenderInvoicePDF mencetak invoice tersimpan ke PDF A4.
func (s *BillingService) RenderInvoicePDF(ctx context.Context, invoiceID string) ([]byte, error) {
	inv, err := s.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return InvoicePDF(inv)
}

// InvoicePDF hanya memakai data snapshot invoice, bukan harga katalog saat ini.
func InvoicePDF(inv cm.LabInvoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	addLogo(pdf, tr, inv.LabLogo)

	labName := inv.LabName
	if labName == "" {
		labName = "Laboratorium"
	}
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(79, 70, 229)
	pdf.CellFormat(0, 10, tr(labName), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "Lab Order Invoice", "1", 1, "C", false, 0, "")

	addDetail(pdf, "Invoice ID", inv.ID)
	addDetail(pdf, "Prescription ID", inv.PrescriptionID)
	addDetail(pdf, "Patient Name", tr(inv.PatientName))
	addDetail(pdf, "Date", inv.Date.Format("02/01/2006"))
	addDetail(pdf, "Status", inv.Status)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(10, 8, "No", "1", 0, "C", false, 0, "")
	pdf.CellFormat(0, 8, "Test Name", "1", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	for i, name := range inv.Tests {
		pdf.CellFormat(10, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(0, 7, tr(name), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	addDetail(pdf, "Subtotal", formatAmount(inv.Subtotal))
	addDetail(pdf, "Discount (%)", fmt.Sprintf("%g", inv.Discount))
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(60, 9, "Total", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 9, formatAmount(inv.Total), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", inv.ID, err)
	}
	return buf.Bytes(), nil
}

const logoHeight = 20

// addLogo menggambar logo lab dari data URL base64 atau file lokal. Logo lain
// (misalnya URL http) dicetak sebagai teks.
func addLogo(pdf *gofpdf.Fpdf, tr func(string) string, logo string) {
	logo = strings.TrimSpace(logo)
	if logo == "" {
		return
	}
	opts := gofpdf.ImageOptions{ReadDpi: true}
	switch {
	case strings.HasPrefix(logo, "data:image/"):
		if imgType, data, ok := decodeDataURL(logo); ok {
			opts.ImageType = imgType
			pdf.RegisterImageOptionsReader("lab-logo", opts, bytes.NewReader(data))
			if pdf.Ok() {
				pdf.ImageOptions("lab-logo", 10, 0, 0, logoHeight, true, opts, 0, "")
				return
			}
			pdf.ClearError()
		}
	case imageTypeOf(filepath.Ext(logo)) != "":
		if _, err := os.Stat(logo); err == nil {
			opts.ImageType = imageTypeOf(filepath.Ext(logo))
			pdf.ImageOptions(logo, 10, 0, 0, logoHeight, true, opts, 0, "")
			if pdf.Ok() {
				return
			}
			pdf.ClearError()
		}
	}

	pdf.SetFont("Arial", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, tr("Logo: "+logo), "", 1, "C", false, 0, "")
}

// decodeDataURL membaca "data:image/<type>;base64,<data>".
func decodeDataURL(s string) (string, []byte, bool) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:image/"), ",")
	if !ok {
		return "", nil, false
	}
	mime, encoding, _ := strings.Cut(meta, ";")
	imgType := imageTypeOf(mime)
	if imgType == "" || encoding != "base64" {
		return "", nil, false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, false
	}
	return imgType, data, true
}

func imageTypeOf(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return "PNG"
	case "jpg", "jpeg":
		return "JPG"
	case "gif":
		return "GIF"
	}
	return ""
}

func addDetail(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(60, 7, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, value, "", 1, "R", false, 0, "")
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
