package services

import (
	"regexp"
	"testing"
)

func TestFormatQuoteNumber(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		sequence int
		suffix   string
		expect   string
	}{
		{"first of the year", 2026, 1, "a1b2", "EST-2026-0001-a1b2"},
		{"mid sequence", 2026, 42, "ffff", "EST-2026-0042-ffff"},
		{"four digit sequence", 2026, 1234, "0000", "EST-2026-1234-0000"},
		{"sequence overflows padding", 2026, 10001, "beef", "EST-2026-10001-beef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatQuoteNumber(tt.year, tt.sequence, tt.suffix)
			if got != tt.expect {
				t.Errorf("formatQuoteNumber(%d, %d, %q) = %q, want %q",
					tt.year, tt.sequence, tt.suffix, got, tt.expect)
			}
		})
	}
}

func TestQuoteNumberShape(t *testing.T) {
	pattern := regexp.MustCompile(`^EST-\d{4}-\d{4,}-[0-9a-f]{4}$`)
	got := formatQuoteNumber(2026, 7, "1c3d")
	if !pattern.MatchString(got) {
		t.Errorf("quote number %q does not match the documented shape", got)
	}
}
