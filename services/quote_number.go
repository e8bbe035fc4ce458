package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
)

// formatQuoteNumber constructs the display number from its components. The
// uuid-derived suffix keeps numbers unique even if two saves race on the
// same sequence slot.
func formatQuoteNumber(year int, sequence int, suffix string) string {
	return fmt.Sprintf("EST-%d-%04d-%s", year, sequence, suffix)
}

// GenerateQuoteNumber creates the next estimate display number.
// Format: EST-{year}-{sequence}-{suffix}
// - year: calendar year of creation
// - sequence: 4-digit zero-padded, counted per year across all opportunities
// - suffix: first 4 hex chars of a random UUID
func GenerateQuoteNumber(app *pocketbase.PocketBase, now time.Time) (string, error) {
	year := now.Year()
	prefix := fmt.Sprintf("EST-%d-", year)

	existing, err := app.FindRecordsByFilter(
		"estimates",
		"display_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		// Collection empty or not yet created -- start at 1.
		existing = nil
	}

	nextSeq := len(existing) + 1
	suffix := uuid.NewString()[:4]

	return formatQuoteNumber(year, nextSeq, suffix), nil
}
