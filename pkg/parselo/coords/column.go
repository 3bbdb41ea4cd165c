// Package coords converts between spreadsheet column letters, cell names and
// zero-based indexes.
package coords

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/parselo-go/pkg/parselo/errs"
)

const alphabet = 26

// ToIndex converts a case-insensitive column name ("A", "az", "CUZ") to its
// zero-based index. Letters form a bijective base-26 numeral: "A" is 0, "Z" is 25
// and "AA" is 26.
func ToIndex(letters string) (int, error) {
	if !isLetters(letters) {
		return 0, fmt.Errorf("%w: %q must contain only letters A-Z", errs.ErrInvalidColumnName, letters)
	}

	index := 0
	for i := 0; i < len(letters); i++ {
		if index > (math.MaxInt-alphabet)/alphabet {
			return 0, fmt.Errorf("%w: %q is too long", errs.ErrInvalidColumnName, letters)
		}
		index = index*alphabet + int(upper(letters[i])-'A') + 1
	}
	return index - 1, nil
}

// Letters converts a zero-based column index to its canonical upper-case name.
func Letters(index int) (string, error) {
	if index < 0 {
		return "", fmt.Errorf("%w: index %d is negative", errs.ErrInvalidColumnName, index)
	}

	var buf []byte
	for n := index + 1; n > 0; n = (n - 1) / alphabet {
		buf = append(buf, byte('A'+(n-1)%alphabet))
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}

// Canonical returns the upper-case form of a valid column name.
func Canonical(letters string) (string, error) {
	if !isLetters(letters) {
		return "", fmt.Errorf("%w: %q must contain only letters A-Z", errs.ErrInvalidColumnName, letters)
	}
	return strings.ToUpper(letters), nil
}

// ValidateColumnName fails when value is blank or contains anything but letters.
// property names the value in the error message.
func ValidateColumnName(value, property string) error {
	if strings.TrimSpace(value) == "" {
		return &errs.RegionError{Property: property, Value: value, Err: errs.ErrInvalidColumnName}
	}
	if !isLetters(value) {
		return &errs.RegionError{Property: property, Value: value, Err: errs.ErrInvalidColumnName}
	}
	return nil
}

// ValidateRowNumber fails when value is not a positive, one-based row number.
func ValidateRowNumber(value int, property string) error {
	if value <= 0 {
		return &errs.RegionError{Property: property, Value: value, Err: errs.ErrInvalidRowNumber}
	}
	return nil
}

// ParseCellName splits an A1-style reference such as "B3" or "$AA$10" into its
// upper-case column letters and one-based row.
func ParseCellName(name string) (string, int, error) {
	name = strings.ReplaceAll(strings.TrimSpace(name), "$", "")

	split := 0
	for split < len(name) && isLetter(name[split]) {
		split++
	}
	col, digits := name[:split], name[split:]
	if col == "" {
		return "", 0, fmt.Errorf("%w: cell %q has no column letters", errs.ErrInvalidColumnName, name)
	}

	row, err := strconv.Atoi(digits)
	if err != nil || row <= 0 {
		return "", 0, fmt.Errorf("%w: cell %q has no valid row", errs.ErrInvalidRowNumber, name)
	}
	return strings.ToUpper(col), row, nil
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) {
			return false
		}
	}
	return true
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
