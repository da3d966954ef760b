package services

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"ultimedia/internal/config"
)

// PDFService renders an invoice document. Rendering is a pure function of
// the invoice detail; rendering the same detail twice yields the same
// document.
type PDFService interface {
	RenderInvoice(detail *InvoiceDetail) ([]byte, error)
}

type pdfService struct {
	company config.Company
}

func NewPDFService(company config.Company) PDFService {
	return &pdfService{company: company}
}

func (p *pdfService) RenderInvoice(detail *InvoiceDetail) ([]byte, error) {
	invoice := detail.Invoice
	booking := detail.Booking

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	marginX := 20.0
	marginY := 20.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	// Company header
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(marginX, marginY)
	pdf.Cell(0, 10, p.company.Name)
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 5, p.company.Address)
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("%s | %s", p.company.Phone, p.company.Email))
	pdf.Ln(12)

	// Invoice details
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice Number: %s", invoice.InvoiceNumber))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Issue Date: %s", invoice.IssuedDate.Format("02-Jan-2006")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Due Date: %s", invoice.DueDate.Format("02-Jan-2006")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Event Date: %s", booking.EventDate.Format("02-Jan-2006")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Event Location: %s", booking.EventLocation))
	pdf.Ln(10)

	// Billing information
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, "BILL TO:")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 10)
	if detail.Profile != nil {
		pdf.Cell(0, 6, detail.Profile.FullName)
		pdf.Ln(6)
		pdf.Cell(0, 6, detail.Profile.Email)
		pdf.Ln(6)
		if detail.Profile.PhoneNumber != nil && *detail.Profile.PhoneNumber != "" {
			pdf.Cell(0, 6, *detail.Profile.PhoneNumber)
			pdf.Ln(6)
		}
	} else {
		pdf.Cell(0, 6, "Customer")
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Line items table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)

	headers := []string{"Description", "Amount (KES)"}
	colWidths := []float64{130, 40}
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(255, 255, 255)
	for _, svc := range detail.Services {
		pdf.CellFormat(colWidths[0], 8, svc.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, formatAmount(svc.BasePrice), "1", 0, "R", false, 0, "")
		pdf.Ln(8)
	}
	if detail.Equipment != nil && detail.Equipment.Price.IsPositive() {
		pdf.CellFormat(colWidths[0], 8, fmt.Sprintf("Equipment: %s", detail.Equipment.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, formatAmount(detail.Equipment.Price), "1", 0, "R", false, 0, "")
		pdf.Ln(8)
	}
	if booking.TransportCost.IsPositive() {
		transport := fmt.Sprintf("Transport (%s km)", booking.DistanceKm.String())
		pdf.CellFormat(colWidths[0], 8, transport, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, formatAmount(booking.TransportCost), "1", 0, "R", false, 0, "")
		pdf.Ln(8)
	}
	pdf.Ln(5)

	// Totals
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(130, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, formatAmount(booking.BaseAmount), "", 0, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(130, 5, "VAT (16%):", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 5, formatAmount(booking.VATAmount), "", 0, "R", false, 0, "")
	pdf.Ln(5)
	pdf.CellFormat(130, 5, "Tourism Levy (0.03%):", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 5, formatAmount(booking.LevyAmount), "", 0, "R", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(220, 20, 60)
	pdf.CellFormat(130, 8, "TOTAL DUE:", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, formatAmount(invoice.AmountDue), "", 0, "R", false, 0, "")
	pdf.Ln(10)

	// Payment instructions
	pdf.SetTextColor(33, 37, 41)
	pdf.SetFont("Arial", "B", 9)
	pdf.Cell(0, 6, "Payment Instructions:")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 8)
	instructions := []string{
		"1. M-Pesa Paybill: 542542, Account: " + invoice.InvoiceNumber,
		"2. Bank transfer: quote the invoice number as the payment reference",
		"3. Payment is due within 30 days of the issue date",
		"4. This is a computer generated invoice",
	}
	for _, line := range instructions {
		pdf.Cell(0, 5, line)
		pdf.Ln(5)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.Cell(0, 5, "Thank you for choosing "+p.company.Name+"!")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
