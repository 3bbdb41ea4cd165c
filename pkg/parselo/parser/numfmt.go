package parser

import (
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// builtinDateFormats holds the built-in number format ids that render dates or times.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

var (
	dateChars = map[rune]bool{'y': true, 'm': true, 'd': true, 'h': true, 's': true}
	numChars  = map[rune]bool{'0': true, '#': true, '?': true}
	skipChars = map[rune]bool{'$': true, '-': true, '+': true, '/': true, '(': true, ')': true, ':': true, ' ': true}

	bracketed = regexp.MustCompile(`\[.*?\]`)
)

// IsDateFormat reports whether a number format code renders a date or time.
// Quoted text, escaped characters and [bracketed] sections are ignored; the
// code is a date format when the rest has y/m/d/h/s tokens and no digit
// placeholders.
func IsDateFormat(code string) bool {
	var b strings.Builder
	state := 0
	for _, c := range code {
		switch state {
		case 0:
			switch {
			case c == '"':
				state = 1
			case c == '\\' || c == '_' || c == '*':
				state = 2
			case skipChars[c]:
			default:
				b.WriteRune(c)
			}
		case 1:
			if c == '"' {
				state = 0
			}
		case 2:
			state = 0
		}
	}

	reduced := bracketed.ReplaceAllString(b.String(), "")
	switch strings.ToLower(reduced) {
	case "", "general", "@", "0.00e+00", "##0.0e+0":
		return false
	}

	hasDate := false
	for _, c := range strings.ToLower(reduced) {
		if numChars[c] {
			return false
		}
		if dateChars[c] {
			hasDate = true
		}
	}
	return hasDate
}

// formatCache memoizes IsDateFormat per style id.
type formatCache struct {
	f      *excelize.File
	styles map[int]bool
}

func newFormatCache(f *excelize.File) *formatCache {
	return &formatCache{f: f, styles: make(map[int]bool)}
}

func (c *formatCache) isDate(sheetName, cellName string) bool {
	styleID, err := c.f.GetCellStyle(sheetName, cellName)
	if err != nil || styleID == 0 {
		return false
	}
	if v, ok := c.styles[styleID]; ok {
		return v
	}

	v := false
	if style, err := c.f.GetStyle(styleID); err == nil && style != nil {
		v = builtinDateFormats[style.NumFmt]
		if !v && style.CustomNumFmt != nil {
			v = IsDateFormat(*style.CustomNumFmt)
		}
	}
	c.styles[styleID] = v
	return v
}
