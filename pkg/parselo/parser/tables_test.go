package parser

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestDetectTables(t *testing.T) {
	rows := [][]string{
		{},
		{"", "Producer", "Model", "Year"},
		{"", "Opel", "Astra", "2010"},
		{"", "Dacia", "", "2015"},
	}

	regions, err := detectTables(rows, DefaultTableParams())
	if err != nil {
		t.Fatalf("detectTables failed: %v", err)
	}
	if len(regions) != 1 {
		t.Fatalf("Expected 1 region, got %d", len(regions))
	}
	if got := regions[0].String(); got != "B2:D4" {
		t.Errorf("Expected B2:D4, got %s", got)
	}
}

func TestDetectTablesSparse(t *testing.T) {
	params := DefaultTableParams()

	regions, err := detectTables([][]string{{"a"}, {"", "b"}}, params)
	if err != nil || len(regions) != 0 {
		t.Errorf("Expected no region below MinNonemptyCells, got %v (%v)", regions, err)
	}

	regions, err = detectTables(nil, params)
	if err != nil || len(regions) != 0 {
		t.Errorf("Expected no region for empty rows, got %v (%v)", regions, err)
	}
}

func TestDetectTablesFromFile(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetRow("Sheet1", "C3", &[]interface{}{"x", 1, 2})
	f.SetSheetRow("Sheet1", "C4", &[]interface{}{"y", 3, 4})

	regions, err := DetectTables(f, "Sheet1", DefaultTableParams())
	if err != nil {
		t.Fatalf("DetectTables failed: %v", err)
	}
	if len(regions) != 1 || regions[0].String() != "C3:E4" {
		t.Errorf("Expected [C3:E4], got %v", regions)
	}
}

func TestFindDataBounds(t *testing.T) {
	minRow, maxRow, minCol, maxCol := findDataBounds([][]string{{}, {"", "", "x"}, {"y"}})
	if minRow != 1 || maxRow != 2 || minCol != 0 || maxCol != 2 {
		t.Errorf("findDataBounds = (%d, %d, %d, %d), expected (1, 2, 0, 2)", minRow, maxRow, minCol, maxCol)
	}
}
