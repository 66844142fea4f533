package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"vetclinic/config"
	"vetclinic/internal/domain"
)

const (
	fontFamily = "Helvetica"
	margin     = 18.0
	lineHeight = 6.0
)

// PDFRenderer renders clinical records as a one-document A4 summary with the
// clinic letterhead.
type PDFRenderer struct {
	clinic config.ClinicConfig
}

func NewPDFRenderer(clinic config.ClinicConfig) *PDFRenderer {
	return &PDFRenderer{clinic: clinic}
}

func (r *PDFRenderer) Render(record domain.ClinicalRecord, petName, vetName string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(fmt.Sprintf("Historia clínica %d", record.ID), true)
	pdf.SetAuthor(r.clinic.Name, true)
	if !record.CreatedAt.IsZero() {
		pdf.SetCreationDate(record.CreatedAt)
	}

	// Core fonts are cp1252; accented Spanish text has to be translated.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	width, _ := pdf.GetPageSize()
	width -= 2 * margin

	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 20)
	pdf.CellFormat(width, 10, tr(r.clinic.Name), "", 1, "C", false, 0, "")

	pdf.SetFont(fontFamily, "", 11)
	pdf.CellFormat(width, lineHeight, tr(r.contactLine()), "", 1, "C", false, 0, "")

	pdf.Ln(3)
	y := pdf.GetY()
	pdf.Line(margin, y, margin+width, y)
	pdf.Ln(6)

	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(width, 8, tr("Historia Clínica Veterinaria"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(fontFamily, "", 12)
	for _, line := range []string{
		"Fecha: " + domain.FormatDate(record.Date),
		"Hora: " + record.Time,
		"Veterinario: Dr. " + vetName,
		"Mascota: " + petName,
	} {
		pdf.CellFormat(width, lineHeight, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	sections := []struct {
		title string
		body  string
	}{
		{"Motivo de consulta", record.Reason},
		{"Diagnóstico", record.Diagnosis},
		{"Tratamiento", record.Treatment},
		{"Proceder", record.NextSteps},
		{"Observaciones", record.Observations},
	}
	for _, s := range sections {
		pdf.SetFont(fontFamily, "B", 14)
		pdf.CellFormat(width, 8, tr(s.title+":"), "", 1, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 12)
		body := strings.TrimSpace(s.body)
		if body == "" {
			body = "-"
		}
		pdf.MultiCell(width, lineHeight, tr(body), "", "L", false)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering clinical record %d: %w", record.ID, err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) contactLine() string {
	var parts []string
	if r.clinic.Address != "" {
		parts = append(parts, r.clinic.Address)
	}
	if r.clinic.Phone != "" {
		parts = append(parts, "Tel: "+r.clinic.Phone)
	}
	if r.clinic.Email != "" {
		parts = append(parts, r.clinic.Email)
	}
	return strings.Join(parts, " | ")
}
