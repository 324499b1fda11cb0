package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// StatementService renders a per-enrollment payment statement PDF from the
// computed breakdown. Loader can be injected in tests to skip the DB.
type StatementService struct {
	Billing   BillingService
	RequestID string
	Loader    func(int64) (EnrollmentBilling, error)
}

// GenerateStatement builds the statement PDF for one enrollment and returns
// the bytes plus a suggested filename.
func (s StatementService) GenerateStatement(enrollmentID int64) ([]byte, string, error) {
	data, err := s.load(enrollmentID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "statement", "generate", fmt.Sprintf("enrollment_id=%d", enrollmentID))
	return buildStatementPDF(data)
}

func (s StatementService) load(enrollmentID int64) (EnrollmentBilling, error) {
	if s.Loader != nil {
		return s.Loader(enrollmentID)
	}
	return s.Billing.GetEnrollmentBilling(enrollmentID)
}

func buildStatementPDF(d EnrollmentBilling) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payment Statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT STATEMENT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Enrollment : #%d", d.EnrollmentID))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Passenger  : "+safe(d.PassengerName, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued at  : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Balance by category:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	rows := []string{
		"Trip fare paid    : " + utils.FormatBRL(d.Breakdown.PaidTrip),
		"Trip fare pending : " + utils.FormatBRL(d.Breakdown.PendingTrip),
		"Tours paid        : " + utils.FormatBRL(d.Breakdown.PaidTours),
		"Tours pending     : " + utils.FormatBRL(d.Breakdown.PendingTours),
	}
	for _, row := range rows {
		pdf.Cell(0, 6, row)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total pending: "+utils.FormatBRL(d.Breakdown.PendingTotal))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Status: "+string(d.Status)+" - "+d.StatusDetail, "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("STATEMENT_%d_%s.pdf", d.EnrollmentID, safeFilenamePart(d.PassengerName))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
