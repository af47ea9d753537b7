package services

import (
	"bytes"
	"fmt"
	"strings"

	"smartrental/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// RenderReceiptPDF lays out a single rent payment receipt on one A4 page.
func RenderReceiptPDF(payment *models.RentPayment, tenant *models.User, house *models.House) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	marginX := 20.0
	marginY := 20.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(marginX, marginY)
	pdf.CellFormat(0, 10, "Smart Rental Management", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, "Rent Payment Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	rows := [][2]string{
		{"Receipt ID", payment.ReceiptID},
		{"Date", payment.PaymentDate.Format("Mon Jan 02 2006")},
		{"Tenant", tenant.FullName},
		{"House", fmt.Sprintf("%s (%s)", house.Title, formatLocation(house.Location))},
		{"Amount Paid", fmt.Sprintf("KES %d", payment.AmountPaid)},
		{"Payment Method", payment.PaymentMethod},
	}

	pdf.SetFillColor(240, 240, 240)
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(50, 8, row[0], "1", 0, "L", true, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(120, 8, row[1], "1", 1, "L", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 6, "Thank you for your payment!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func formatLocation(loc models.Location) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{loc.Street, loc.Town, loc.County} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
