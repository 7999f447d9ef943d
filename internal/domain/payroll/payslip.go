package payroll

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PayslipPDF renders a payslip for a paid record.
func (s *Service) PayslipPDF(ctx context.Context, payrollID string) ([]byte, error) {
	record, err := s.store.GetRecord(ctx, payrollID)
	if err != nil {
		return nil, err
	}
	if record.Status != StatusPaid {
		return nil, ErrNotPaid
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Name: %s", record.PersonName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s (%s to %s)", record.Period,
		record.PeriodStart.Format("2006-01-02"), record.PeriodEnd.Format("2006-01-02")))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %.2f RWF", record.GrossAmount))
	pdf.Ln(9)

	if len(record.Deductions) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Deductions")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, deduction := range record.Deductions {
			pdf.Cell(130, 7, deduction.Description)
			pdf.CellFormat(40, 7, fmt.Sprintf("-%.2f", deduction.Amount), "", 0, "R", false, 0, "")
			pdf.Ln(7)
		}
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total deductions: %.2f RWF", record.TotalDeductions))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net pay: %.2f RWF", record.NetAmount))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Paid via %s on %s", record.PaymentMethod, record.PaidAt.Format("2006-01-02")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
