package parser

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ukaji3/parselo-go/pkg/parselo/models"
	"github.com/xuri/excelize/v2"
)

func TestLoadSheet(t *testing.T) {
	// Create a temporary Excel file for testing
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	bought := time.Date(2017, 8, 10, 0, 0, 0, 0, time.UTC)
	f.SetCellValue(sheetName, "B2", "Header1")
	f.SetCellValue(sheetName, "C2", "Header2")
	f.SetCellValue(sheetName, "B3", 100)
	f.SetCellValue(sheetName, "C3", 200.5)
	f.SetCellValue(sheetName, "D3", bought)
	f.SetCellValue(sheetName, "E3", true)
	f.SetCellValue(sheetName, "B4", "")
	f.SetCellValue(sheetName, "C5", 42957)

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		t.Fatalf("NewStyle failed: %v", err)
	}
	f.SetCellStyle(sheetName, "C5", "C5", dateStyle)

	// Save to temp file
	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	// Open and load
	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f2.Close()

	sheet, err := LoadSheet(f2, sheetName)
	if err != nil {
		t.Fatalf("LoadSheet failed: %v", err)
	}

	if sheet.FirstRow() != 1 || sheet.LastRow() != 4 {
		t.Errorf("Expected populated rows [1, 4], got [%d, %d]", sheet.FirstRow(), sheet.LastRow())
	}

	header, ok := sheet.Cell(1, 1)
	if !ok || header.Kind != models.CellText || header.Display != "Header1" {
		t.Errorf("Expected text cell 'Header1', got %+v", header)
	}

	n, ok := sheet.Cell(2, 1)
	if !ok || n.Kind != models.CellNumber || n.Number != 100 || n.IsDate {
		t.Errorf("Expected number 100, got %+v", n)
	}

	fl, _ := sheet.Cell(2, 2)
	if fl == nil || fl.Number != 200.5 {
		t.Errorf("Expected number 200.5, got %+v", fl)
	}

	d, _ := sheet.Cell(2, 3)
	if d == nil || !d.IsDate || !d.Time.Equal(bought) {
		t.Errorf("Expected date %v, got %+v", bought, d)
	}

	b, _ := sheet.Cell(2, 4)
	if b == nil || b.Kind != models.CellBool || b.Raw != "1" {
		t.Errorf("Expected boolean true, got %+v", b)
	}

	if c, ok := sheet.Cell(3, 1); ok {
		t.Errorf("Expected empty string cell to be absent, got %+v", c)
	}

	styled, _ := sheet.Cell(4, 2)
	if styled == nil || !styled.IsDate || !styled.Time.Equal(bought) {
		t.Errorf("Expected date-formatted number to be a date, got %+v", styled)
	}
}

func TestLoadSheetMissing(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := LoadSheet(f, "Nope"); err == nil {
		t.Error("Expected error for missing sheet")
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		cellType excelize.CellType
		raw      string
		expected models.CellKind
	}{
		{excelize.CellTypeUnset, "12", models.CellNumber},
		{excelize.CellTypeNumber, "1.5E3", models.CellNumber},
		{excelize.CellTypeUnset, "abc", models.CellText},
		{excelize.CellTypeSharedString, "12", models.CellText},
		{excelize.CellTypeInlineString, "x", models.CellText},
		{excelize.CellTypeBool, "0", models.CellBool},
		{excelize.CellTypeError, "#DIV/0!", models.CellError},
		{excelize.CellTypeDate, "2019-03-04T00:00:00Z", models.CellDate},
	}

	for _, tt := range tests {
		if got := classify(tt.cellType, tt.raw); got != tt.expected {
			t.Errorf("classify(%v, %q) = %s, expected %s", tt.cellType, tt.raw, got, tt.expected)
		}
	}
}

func TestParseISODate(t *testing.T) {
	for _, s := range []string{"2019-03-04", "2019-03-04T00:00:00", "2019-03-04T00:00:00Z"} {
		got, err := parseISODate(s)
		if err != nil {
			t.Errorf("parseISODate(%q) failed: %v", s, err)
			continue
		}
		if y, m, d := got.Date(); y != 2019 || m != time.March || d != 4 {
			t.Errorf("parseISODate(%q) = %v", s, got)
		}
	}

	if _, err := parseISODate("March 4th"); err == nil {
		t.Error("Expected error for non ISO date")
	}
}
