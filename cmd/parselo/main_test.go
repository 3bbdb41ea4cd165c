package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetRow("Sheet1", "B1", &[]any{"a", "b", "c"})
	f.SetSheetRow("Sheet1", "B2", &[]any{1.5, "", 3})

	path := filepath.Join(dir, "in.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	dir := t.TempDir()
	in := writeWorkbook(t, dir)
	out := filepath.Join(dir, "out.json")

	outputPath, pretty, verbose, password = "", false, false, ""
	cmd := newRootCmd()
	cmd.SetArgs(append(append([]string{}, args...), in, "-o", out))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute(%v) failed: %v", args, err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	return string(data)
}

func TestArrayCommand(t *testing.T) {
	got := execute(t, "array", "--sheet", "Sheet1", "--range", "B1:D1")
	if got != `["a","b","c"]` {
		t.Errorf("Unexpected output %s", got)
	}
}

func TestMatrixCommandFloatDefault(t *testing.T) {
	got := execute(t, "matrix", "--sheet", "Sheet1", "--range", "B2:D2", "--kind", "float")
	if got != `[[1.5,0,3]]` {
		t.Errorf("Unexpected output %s", got)
	}
}

func TestArrayCommandInvalidRange(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"array", "--sheet", "Sheet1", "--range", "B0:D1", "missing.xlsx"})
	cmd.SetErr(new(discard))
	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for invalid range")
	}
}

type discard struct{}

func (*discard) Write(p []byte) (int, error) { return len(p), nil }
