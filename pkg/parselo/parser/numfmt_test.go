package parser

import "testing"

func TestIsDateFormat(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"mm-dd-yy", true},
		{"d-mmm-yy", true},
		{"m/d/yy h:mm", true},
		{"yyyy\\-mm\\-dd", true},
		{"[$-409]mmmm d, yyyy", true},
		{"[h]:mm:ss", true},
		{"h:mm AM/PM", true},
		{"General", false},
		{"@", false},
		{"0.00", false},
		{"#,##0", false},
		{"0.00%", false},
		{"0.00E+00", false},
		{`#,##0 "days"`, false},
		{"[Red]0.00", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsDateFormat(tt.code); got != tt.expected {
			t.Errorf("IsDateFormat(%q) = %v, expected %v", tt.code, got, tt.expected)
		}
	}
}
