package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/JonBeak/signquote/internal/model"
	"github.com/JonBeak/signquote/internal/pricing"
)

// LabelInfo holds the data encoded into each production label's QR code.
type LabelInfo struct {
	QuoteID     string `json:"quote"`
	QuoteName   string `json:"quote_name,omitempty"`
	RowID       string `json:"row"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Amount      string `json:"amount"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10
// rows per page). Each label cell is approximately 66.7mm x 25.4mm on US
// Letter paper.
const (
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// ExportLabels generates a PDF of QR-coded production labels, one per
// completed line item. Each label carries the line description, quantity,
// and a QR code encoding the line metadata as JSON.
func ExportLabels(path string, quote *model.Quote, totals pricing.QuoteTotals) error {
	labels := CollectLabelInfos(quote, totals)
	if len(labels) == 0 {
		return fmt.Errorf("no completed lines to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Description, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%s", info.QuoteID, info.RowID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	description := info.Description
	if pdf.GetStringWidth(description) > textW {
		for len(description) > 0 && pdf.GetStringWidth(description+"...") > textW {
			description = description[:len(description)-1]
		}
		description += "..."
	}
	pdf.CellFormat(textW, 4.5, description, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("Qty %d - %s", info.Quantity, info.Amount), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, quoteLine(info), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	return nil
}

func quoteLine(info LabelInfo) string {
	if info.QuoteName != "" {
		return info.QuoteName
	}
	return "Quote " + info.QuoteID
}

// CollectLabelInfos extracts label data from a priced quote for use in
// testing or alternative export formats. Lines that did not price to
// completion are skipped.
func CollectLabelInfos(quote *model.Quote, totals pricing.QuoteTotals) []LabelInfo {
	var labels []LabelInfo
	for _, line := range totals.Lines {
		if line.Pricing.Status != pricing.StatusCompleted {
			continue
		}
		labels = append(labels, LabelInfo{
			QuoteID:     quote.ID,
			QuoteName:   quote.Name,
			RowID:       line.RowID,
			Description: line.Description,
			Quantity:    line.Quantity,
			Amount:      "$" + line.Extended.StringFixed(2),
		})
	}
	return labels
}
