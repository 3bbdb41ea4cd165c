package parser

import (
	"strings"

	"github.com/ukaji3/parselo-go/pkg/parselo/models"
	"github.com/xuri/excelize/v2"
)

// ExtractDefinedRegions resolves the workbook's defined names that refer to a
// single rectangular range, including print areas. Names pointing at formulas,
// constants or several ranges are skipped.
func ExtractDefinedRegions(f *excelize.File) []models.DefinedRegion {
	var result []models.DefinedRegion

	for _, dn := range f.GetDefinedName() {
		sheetName, region, ok := parseReference(dn.RefersTo)
		if !ok {
			continue
		}
		scope := dn.Scope
		if strings.EqualFold(scope, "Workbook") {
			scope = ""
		}
		result = append(result, models.DefinedRegion{
			Name:      dn.Name,
			Scope:     scope,
			SheetName: sheetName,
			Region:    region,
		})
	}

	return result
}

// parseReference parses a reference string.
// Format: 'Sheet Name'!$A$1:$D$10 or SheetName!$A$1:$D$10
func parseReference(ref string) (string, models.Region, bool) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "=")
	if strings.Contains(ref, ",") {
		return "", models.Region{}, false
	}

	idx := strings.LastIndex(ref, "!")
	if idx < 0 {
		return "", models.Region{}, false
	}
	sheetName := strings.ReplaceAll(strings.Trim(ref[:idx], "'"), "''", "'")

	region, err := models.ParseRegion(ref[idx+1:])
	if err != nil {
		return "", models.Region{}, false
	}
	return sheetName, region, true
}
