// Package importer provides CSV and Excel import of quote grids. It
// supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition. Imported cells stay raw text; the
// validation engine, not the importer, decides what they mean.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/JonBeak/signquote/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Rows     []model.Row
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// Fields holds the index for each of the ten data fields; -1 means absent.
type ColumnMapping struct {
	Product  int
	Quantity int
	Fields   [model.FieldCount]int
}

// headerAliases maps canonical column names to their accepted aliases (all
// lowercase). The field aliases follow the channel letter layout, the
// richest product schema, but plain "field1".."field10" headers always
// work.
var headerAliases = map[string][]string{
	"product":  {"product", "product type", "type", "item"},
	"quantity": {"quantity", "qty", "count", "num", "pcs"},
	"field1":   {"field1", "style"},
	"field2":   {"field2", "letter data", "letters", "data", "dimensions", "size"},
	"field3":   {"field3", "leds", "led", "led count"},
	"field4":   {"field4", "ps type", "supply type"},
	"field5":   {"field5", "ps count", "supplies"},
	"field6":   {"field6", "ul"},
	"field7":   {"field7", "pins"},
	"field8":   {"field8", "wire", "extra wire"},
	"field9":   {"field9", "ps price"},
	"field10":  {"field10", "notes", "comments"},
}

// markerKinds maps product-column text to marker row kinds.
var markerKinds = map[string]model.RowKind{
	"multiplier": model.RowMultiplier,
	"divider":    model.RowDivider,
	"subtotal":   model.RowSubtotal,
	"discount":   model.RowDiscountFee,
	"fee":        model.RowDiscountFee,
}

// productAliases maps product-column text to product type identifiers.
var productAliases = map[string]string{
	"channel letters": model.ProductChannelLetters,
	"channel_letters": model.ProductChannelLetters,
	"vinyl":           model.ProductVinyl,
	"substrate":       model.ProductSubstrate,
	"substrate_cut":   model.ProductSubstrate,
	"backer panel":    model.ProductBackerPanel,
	"backer_panel":    model.ProductBackerPanel,
	"push thru":       model.ProductPushThru,
	"push_thru":       model.ProductPushThru,
	"blade sign":      model.ProductBladeSign,
	"blade_sign":      model.ProductBladeSign,
	"led neon":        model.ProductLEDNeon,
	"led_neon":        model.ProductLEDNeon,
	"painting":        model.ProductPainting,
	"custom":          model.ProductCustom,
	"shipping":        model.ProductShipping,
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe; the delimiter
// that produces the most consistent multi-column split wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. Matching
// is case-insensitive against the known aliases for each column role.
// Returns the mapping and true if a header was detected, or a positional
// mapping (product, quantity, field1..field10) and false if not.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Product: -1, Quantity: -1}
	for i := range mapping.Fields {
		mapping.Fields[i] = -1
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "product":
					if mapping.Product == -1 {
						mapping.Product = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				default:
					var n int
					fmt.Sscanf(role, "field%d", &n)
					if n >= 1 && n <= model.FieldCount && mapping.Fields[n-1] == -1 {
						mapping.Fields[n-1] = i
					}
				}
			}
		}
	}

	if !isHeader {
		mapping = ColumnMapping{Product: 0, Quantity: 1}
		for i := range mapping.Fields {
			mapping.Fields[i] = i + 2
		}
		return mapping, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow converts one data row into a grid row using the column mapping.
// The product cell decides between a marker row and a product row; every
// other cell is carried over as raw field text.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.Row, string) {
	product := strings.ToLower(getCell(row, mapping.Product))
	if product == "" {
		return model.Row{}, fmt.Sprintf("%s: Missing product type", rowLabel)
	}

	var out model.Row
	if kind, ok := markerKinds[product]; ok {
		out = model.NewMarkerRow(kind)
	} else {
		typeID, ok := productAliases[product]
		if !ok {
			return model.Row{}, fmt.Sprintf("%s: Unknown product type '%s'", rowLabel, product)
		}
		out = model.NewRow(typeID)
		qty := getCell(row, mapping.Quantity)
		if qty == "" {
			qty = "1"
		}
		out.SetField(model.FieldQuantity, qty)
	}

	for i, idx := range mapping.Fields {
		if value := getCell(row, idx); value != "" {
			out.SetField(model.FieldName(i+1), value)
		}
	}
	return out, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports grid rows from a CSV file. The delimiter is detected
// automatically; comma, semicolon, tab, and pipe are supported.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	warnings := result.Warnings
	result = importFromRows(records, "Line")
	result.Warnings = append(warnings, result.Warnings...)
	return result
}

// ImportCSVFromReader imports grid rows from a CSV reader with a known
// delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line")
}

// ImportExcel imports grid rows from an Excel (.xlsx) file. Only the first
// sheet is read.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row")
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string) ImportResult {
	result := ImportResult{}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.Product == -1 {
			result.Errors = append(result.Errors, "Required column not found in header: Product")
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		gridRow, errMsg := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Rows = append(result.Rows, gridRow)
	}

	return result
}
