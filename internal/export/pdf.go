// Package export renders priced quotes to customer-facing files: a quote
// PDF with the full component breakdown, and QR-coded production labels.
package export

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/JonBeak/signquote/internal/model"
	"github.com/JonBeak/signquote/internal/pricing"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	contentWidth = pageWidth - marginLeft - marginRight
	rowHeight    = 6.0
)

// ExportQuotePDF renders a priced quote to a PDF: a header block, the line
// item table with per-component breakdowns, and the totals section.
func ExportQuotePDF(path string, quote *model.Quote, totals pricing.QuoteTotals) error {
	if len(totals.Lines) == 0 {
		return fmt.Errorf("no priced lines to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	y := renderQuoteHeader(pdf, quote)
	y = renderLineTable(pdf, totals, y)
	renderTotals(pdf, totals, y)

	return pdf.OutputFileAndClose(path)
}

// renderQuoteHeader draws the title block and returns the next free y.
func renderQuoteHeader(pdf *fpdf.Fpdf, quote *model.Quote) float64 {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 10, quoteTitle(quote), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(marginLeft, marginTop+10)
	meta := fmt.Sprintf("Customer: %s    Created: %s", customerLabel(quote), createdDate(quote))
	pdf.CellFormat(contentWidth, 5, meta, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+18, pageWidth-marginRight, marginTop+18)

	return marginTop + 24
}

// renderLineTable draws the priced line items with their component
// breakdowns and returns the next free y.
func renderLineTable(pdf *fpdf.Fpdf, totals pricing.QuoteTotals, y float64) float64 {
	colWidths := []float64{10, 90, 15, 20, 45}
	headers := []string{"#", "Item", "Qty", "Mult", "Price"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], rowHeight, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += rowHeight

	for i, line := range totals.Lines {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		rowData := []string{
			fmt.Sprintf("%d", i+1),
			line.Description,
			fmt.Sprintf("%d", line.Quantity),
			multiplierLabel(line.Multiplier),
			lineAmount(line),
		}

		pdf.SetFont("Helvetica", "", 9)
		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], rowHeight, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += rowHeight

		y = renderComponents(pdf, line, y)

		if y > pageHeight-marginBottom-40 {
			pdf.AddPage()
			y = marginTop
		}
	}
	return y + 4
}

// renderComponents draws one line's component breakdown as indented
// sub-rows.
func renderComponents(pdf *fpdf.Fpdf, line pricing.LineItem, y float64) float64 {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(100, 100, 100)
	for _, c := range line.Pricing.Components {
		pdf.SetXY(marginLeft+10, y)
		text := c.Name
		if c.Calculation != "" {
			text = fmt.Sprintf("%s  (%s)", c.Name, c.Calculation)
		}
		pdf.CellFormat(contentWidth-55, 4.5, text, "", 0, "L", false, 0, "")
		pdf.SetXY(pageWidth-marginRight-45, y)
		pdf.CellFormat(45, 4.5, fmt.Sprintf("$%.2f", c.UnitPrice), "", 0, "R", false, 0, "")
		y += 4.5
	}
	pdf.SetTextColor(0, 0, 0)
	return y + 1
}

// renderTotals draws subtotal lines, adjustments, and the grand total.
func renderTotals(pdf *fpdf.Fpdf, totals pricing.QuoteTotals, y float64) {
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.3)
	pdf.Line(pageWidth-marginRight-70, y, pageWidth-marginRight, y)
	y += 3

	writeAmount := func(label, amount string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.SetXY(pageWidth-marginRight-70, y)
		pdf.CellFormat(40, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, amount, "", 0, "R", false, 0, "")
		y += 6
	}

	for i, sub := range totals.Subtotals {
		writeAmount(fmt.Sprintf("Subtotal %d:", i+1), "$"+sub.Amount.StringFixed(2), false)
	}
	for _, adj := range totals.Adjustments {
		label := adj.Description
		if label == "" {
			label = "Adjustment"
		}
		writeAmount(label+":", "$"+adj.Amount.StringFixed(2), false)
	}
	writeAmount("Total:", "$"+totals.Total.StringFixed(2), true)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4, "Generated by SignQuote", "", 0, "C", false, 0, "")
}

func quoteTitle(quote *model.Quote) string {
	if quote.Name != "" {
		return quote.Name
	}
	return "Quote " + quote.ID
}

func customerLabel(quote *model.Quote) string {
	if quote.CustomerID != "" {
		return quote.CustomerID
	}
	return "walk-in"
}

// createdDate reduces the stored RFC3339 timestamp to its date portion.
// An unparseable timestamp is shown verbatim rather than dropped.
func createdDate(quote *model.Quote) string {
	t, err := time.Parse(time.RFC3339, quote.CreatedAt)
	if err != nil {
		return quote.CreatedAt
	}
	return t.Format("2006-01-02")
}

func multiplierLabel(m float64) string {
	if m == 1 {
		return "-"
	}
	return fmt.Sprintf("x%.2g", m)
}

func lineAmount(line pricing.LineItem) string {
	if line.Pricing.Status != pricing.StatusCompleted {
		return string(line.Pricing.Status)
	}
	return "$" + line.Extended.StringFixed(2)
}
