package parselo

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"sync"

	"github.com/ukaji3/parselo-go/pkg/parselo/binder"
	"github.com/ukaji3/parselo-go/pkg/parselo/errs"
	"github.com/ukaji3/parselo-go/pkg/parselo/models"
	"github.com/ukaji3/parselo-go/pkg/parselo/parser"
	"github.com/xuri/excelize/v2"
)

// Workbook is an opened xlsx file. Sheets are loaded into memory on first use
// and cached; a Workbook may be shared between goroutines.
type Workbook struct {
	file   *excelize.File
	name   string
	opts   Options
	binder *binder.Binder

	mu     sync.Mutex
	sheets map[string]*models.SheetData
}

// Open opens the workbook at path.
func Open(path string, opts ...Option) (*Workbook, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(path, excelize.Options{Password: o.Password})
	if err != nil {
		return nil, err
	}
	return newWorkbook(f, filepath.Base(path), o), nil
}

// OpenReader reads a workbook from r.
func OpenReader(r io.Reader, opts ...Option) (*Workbook, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(r, excelize.Options{Password: o.Password})
	if err != nil {
		return nil, err
	}
	return newWorkbook(f, "", o), nil
}

// FromFile wraps an already opened excelize file. Close closes f.
func FromFile(f *excelize.File, opts ...Option) (*Workbook, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	name := ""
	if f.Path != "" {
		name = filepath.Base(f.Path)
	}
	return newWorkbook(f, name, o), nil
}

func newWorkbook(f *excelize.File, name string, o Options) *Workbook {
	binderOpts := []binder.Option{binder.WithLogger(o.Logger)}
	if o.Describer != nil {
		binderOpts = append(binderOpts, binder.WithDescriber(o.Describer))
	}
	return &Workbook{
		file:   f,
		name:   name,
		opts:   o,
		binder: binder.New(o.Registry, binderOpts...),
		sheets: make(map[string]*models.SheetData),
	}
}

// Close closes the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Name returns the workbook file name, empty for workbooks read from a reader.
func (w *Workbook) Name() string {
	return w.name
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Sheet returns the loaded sheet with the given name.
func (w *Workbook) Sheet(name string) (models.Sheet, error) {
	s, err := w.sheet(name)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (w *Workbook) sheet(name string) (*models.SheetData, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if s, ok := w.sheets[name]; ok {
		return s, nil
	}
	if !slices.Contains(w.file.GetSheetList(), name) {
		return nil, fmt.Errorf("%w: %q", errs.ErrSheetNotFound, name)
	}

	s, err := parser.LoadSheet(w.file, name)
	if err != nil {
		return nil, NewExtractionError(name, "load", err)
	}
	w.opts.Logger.Debug("loaded sheet",
		"book", w.name,
		"sheet", name,
		"cells", s.Len(),
		"first_row", s.FirstRow()+1,
		"last_row", s.LastRow()+1)
	w.sheets[name] = s
	return s, nil
}

// DefinedRegions returns the defined names that refer to a single range.
func (w *Workbook) DefinedRegions() []models.DefinedRegion {
	return parser.ExtractDefinedRegions(w.file)
}

// DefinedRegion returns the defined name called name. A workbook-scoped name
// wins over sheet-scoped names of the same spelling.
func (w *Workbook) DefinedRegion(name string) (models.DefinedRegion, error) {
	var found *models.DefinedRegion
	for _, dr := range w.DefinedRegions() {
		if dr.Name != name {
			continue
		}
		if found == nil || dr.Scope == "" {
			found = &dr
		}
	}
	if found == nil {
		return models.DefinedRegion{}, fmt.Errorf("%w: %q", errs.ErrDefinedNameNotFound, name)
	}
	return *found, nil
}

// Summary describes every sheet of the workbook.
func (w *Workbook) Summary() (*models.WorkbookData, error) {
	data := &models.WorkbookData{
		BookName:     w.name,
		DefinedNames: w.DefinedRegions(),
	}

	for _, name := range w.SheetNames() {
		s, err := w.sheet(name)
		if err != nil {
			return nil, err
		}
		summary := models.SheetSummary{
			Name:     name,
			FirstRow: s.FirstRow() + 1,
			LastRow:  s.LastRow() + 1,
			Cells:    s.Len(),
		}

		tables, err := parser.DetectTables(w.file, name, parser.DefaultTableParams())
		if err != nil {
			// Log warning and continue without candidates
			w.opts.Logger.Warn("table detection failed", "sheet", name, "error", err)
		}
		for _, t := range tables {
			summary.TableCandidates = append(summary.TableCandidates, t.String())
		}
		data.Sheets = append(data.Sheets, summary)
	}

	return data, nil
}
