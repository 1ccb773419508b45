package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/emsdev/ems-service/internal/domain"
)

// PaymentReceiptPDF renders a single page receipt for a payment.
func PaymentReceiptPDF(company domain.Company, p domain.Payment) (*bytes.Buffer, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payment receipt "+p.Key, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Payment Receipt")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, company.Name)
	pdf.Ln(6)
	if company.Email != "" {
		pdf.Cell(0, 6, company.Email)
		pdf.Ln(6)
	}
	pdf.Ln(6)

	rows := [][2]string{
		{"Payment ID", p.Key},
		{"Date", p.PaidAt.Format("2006-01-02 15:04")},
		{"Amount", "$" + p.Amount.StringFixed(2)},
		{"Method", string(p.Method)},
		{"Account", MaskAccount(p.AccountNumber)},
		{"Status", string(p.Status)},
	}
	if p.Reference != "" {
		rows = append(rows, [2]string{"Reference", p.Reference})
	}
	if p.PackageID != nil {
		if pkg, ok := domain.FindPackage(*p.PackageID); ok {
			rows = append(rows, [2]string{"Package", pkg.Name + " (" + pkg.Billing + ")"})
		}
	}

	for _, r := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 8, r[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, r[1], "1", 1, "L", false, 0, "")
	}
	if p.Description != "" {
		pdf.Ln(6)
		pdf.MultiCell(0, 6, p.Description, "", "L", false)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrGenerateFailed, err)
	}
	return buf, fmt.Sprintf("receipt_%s.pdf", p.Key), nil
}

// MaskAccount keeps the last four characters of an account number.
func MaskAccount(account string) string {
	r := []rune(account)
	if len(r) <= 4 {
		return account
	}
	masked := make([]rune, len(r))
	for i := range r {
		if i < len(r)-4 {
			masked[i] = '*'
		} else {
			masked[i] = r[i]
		}
	}
	return string(masked)
}
