package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/JonBeak/signquote/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Product,Qty,Style,Letters\nchannel letters,1,front lit,12x9\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Product;Qty;Style;Letters\nchannel letters;1;front lit;12x9\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Product\tQty\tStyle\tLetters\nchannel letters\t1\tfront lit\t12x9\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Product", "Qty", "Style", "Letter Data", "LEDs", "UL"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Product != 0 {
		t.Errorf("expected Product at 0, got %d", mapping.Product)
	}
	if mapping.Quantity != 1 {
		t.Errorf("expected Quantity at 1, got %d", mapping.Quantity)
	}
	if mapping.Fields[0] != 2 {
		t.Errorf("expected field1 at 2, got %d", mapping.Fields[0])
	}
	if mapping.Fields[1] != 3 {
		t.Errorf("expected field2 at 3, got %d", mapping.Fields[1])
	}
	if mapping.Fields[2] != 4 {
		t.Errorf("expected field3 at 4, got %d", mapping.Fields[2])
	}
	if mapping.Fields[5] != 5 {
		t.Errorf("expected field6 at 5, got %d", mapping.Fields[5])
	}
}

func TestDetectColumns_ExplicitFieldNames(t *testing.T) {
	row := []string{"product", "quantity", "field1", "field7", "field10"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Fields[0] != 2 {
		t.Errorf("expected field1 at 2, got %d", mapping.Fields[0])
	}
	if mapping.Fields[6] != 3 {
		t.Errorf("expected field7 at 3, got %d", mapping.Fields[6])
	}
	if mapping.Fields[9] != 4 {
		t.Errorf("expected field10 at 4, got %d", mapping.Fields[9])
	}
	if mapping.Fields[1] != -1 {
		t.Errorf("expected field2 absent, got %d", mapping.Fields[1])
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"channel letters", "1", "front lit", "12x9"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("expected no header for data-looking row")
	}
	if mapping.Product != 0 || mapping.Quantity != 1 || mapping.Fields[0] != 2 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── ImportCSV Tests ───────────────────────────────────────

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grid.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp csv: %v", err)
	}
	return path
}

func TestImportCSV_ChannelLetters(t *testing.T) {
	path := writeTempCSV(t, strings.Join([]string{
		"Product,Qty,Style,Letter Data,LEDs,UL",
		"channel letters,2,front lit,48x48*12 + 15,,yes",
	}, "\n"))

	result := ImportCSV(path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}

	row := result.Rows[0]
	if row.ProductTypeID != model.ProductChannelLetters {
		t.Errorf("expected channel letters, got %s", row.ProductTypeID)
	}
	if row.Kind != model.RowMain {
		t.Errorf("expected main row, got %s", row.Kind)
	}
	if row.Field(model.FieldQuantity) != "2" {
		t.Errorf("expected quantity 2, got %q", row.Field(model.FieldQuantity))
	}
	if row.Field("field2") != "48x48*12 + 15" {
		t.Errorf("letter data not carried over: %q", row.Field("field2"))
	}
	if row.Field("field6") != "yes" {
		t.Errorf("UL flag not carried over: %q", row.Field("field6"))
	}
}

func TestImportCSV_MarkerRows(t *testing.T) {
	path := writeTempCSV(t, strings.Join([]string{
		"Product,Qty,field1",
		"channel letters,1,front lit",
		"divider,,",
		"multiplier,,2",
		"subtotal,,",
	}, "\n"))

	result := ImportCSV(path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(result.Rows))
	}
	for i, want := range []model.RowKind{model.RowMain, model.RowDivider, model.RowMultiplier, model.RowSubtotal} {
		if result.Rows[i].Kind != want {
			t.Errorf("row %d: expected %s, got %s", i, want, result.Rows[i].Kind)
		}
	}
	if result.Rows[2].Field("field1") != "2" {
		t.Errorf("multiplier value not carried over: %q", result.Rows[2].Field("field1"))
	}
}

func TestImportCSV_UnknownProduct(t *testing.T) {
	path := writeTempCSV(t, "Product,Qty\nflux capacitor,1\n")

	result := ImportCSV(path)
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "flux capacitor") {
		t.Errorf("error should name the product: %s", result.Errors[0])
	}
}

func TestImportCSV_DefaultQuantity(t *testing.T) {
	path := writeTempCSV(t, "Product,Qty,Style\nvinyl,,matte\n")

	result := ImportCSV(path)
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d (%v)", len(result.Rows), result.Errors)
	}
	if got := result.Rows[0].Field(model.FieldQuantity); got != "1" {
		t.Errorf("expected default quantity 1, got %q", got)
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")
	result := ImportCSV(path)
	if len(result.Errors) == 0 {
		t.Error("expected an error for an empty file")
	}
}

func TestImportCSVFromReader_SkipsEmptyRows(t *testing.T) {
	data := "Product,Qty\nchannel letters,1\n,\nvinyl,3\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d (%v)", len(result.Rows), result.Errors)
	}
}

// ─── ImportExcel Tests ─────────────────────────────────────

func TestImportExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := [][]string{
		{"Product", "Qty", "Style", "Letter Data"},
		{"channel letters", "1", "halo lit", "10,12..3,4"},
	}
	for r, rowCells := range cells {
		for c, value := range rowCells {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("setting cell: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("saving xlsx: %v", err)
	}

	result := ImportExcel(path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	if result.Rows[0].Field("field2") != "10,12..3,4" {
		t.Errorf("grouped letter data not carried over: %q", result.Rows[0].Field("field2"))
	}
}
