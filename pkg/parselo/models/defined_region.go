package models

// DefinedRegion is a workbook defined name resolved to a sheet area.
type DefinedRegion struct {
	// Name is the defined name, e.g. "Cars" or "_xlnm.Print_Area".
	Name string `json:"name"`
	// Scope is the sheet the name is local to, empty for workbook scope.
	Scope string `json:"scope,omitempty"`
	// SheetName is the sheet the reference points at.
	SheetName string `json:"sheet_name"`
	// Region is the referenced area.
	Region Region `json:"region"`
}
