package pdfgen

import (
	"bytes"

	"warranty-hub-backend/domain"

	"github.com/jung-kurt/gofpdf"
)

// RenderCertificate renders the fixed-layout warranty certificate from the
// mapped response object.
func RenderCertificate(w domain.WarrantyResponse) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Warranty Certificate "+w.Code, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Warranty Certificate", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	if w.StoreName != "" {
		pdf.CellFormat(0, 6, "Issued by "+w.StoreName, "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(40, 7, "Code", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, w.Code, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(40, 7, "Customer", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, w.CustomerName, "", 1, "L", false, 0, "")

	if w.CustomerEmail != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(40, 7, "Email", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 7, w.CustomerEmail, "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(40, 7, "Issued on", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, w.CreatedAt, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// items table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(55, 8, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Serial", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Purchased", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Expires", "1", 0, "L", true, 0, "")
	pdf.CellFormat(45, 8, "Status", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range w.Items {
		expiry := item.ExpiryDate
		if expiry == "" {
			expiry = "-"
		}
		pdf.CellFormat(55, 8, item.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, item.Serial, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, item.PurchaseDate, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, expiry, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 8, item.Status.Label, "1", 1, "L", false, 0, "")
	}

	for _, item := range w.Items {
		if item.Coverage == "" {
			continue
		}
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, item.ProductName+" coverage", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, item.Coverage, "", "L", false)
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 5, "Keep this certificate together with your proof of purchase.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
