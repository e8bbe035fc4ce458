package collections

import (
	"fmt"
	"log"
	"time"

	"github.com/pocketbase/pocketbase"

	"crmsuite/services"
)

// MigrateEstimateNumbers assigns a display number to every estimate that
// predates display-number generation. Safe to call on every startup --
// returns early if nothing to migrate.
func MigrateEstimateNumbers(app *pocketbase.PocketBase) error {
	estimatesCol, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		return fmt.Errorf("migrate: could not find estimates collection: %w", err)
	}

	unnumbered, err := app.FindRecordsByFilter(
		estimatesCol,
		"display_number = ''",
		"created",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query unnumbered estimates: %w", err)
	}

	if len(unnumbered) == 0 {
		return nil
	}

	log.Printf("migrate: found %d estimate(s) without a display number -- assigning...\n", len(unnumbered))

	for _, estimate := range unnumbered {
		displayNumber, err := services.GenerateQuoteNumber(app, time.Now())
		if err != nil {
			return fmt.Errorf("migrate: generate number for estimate %s: %w", estimate.Id, err)
		}
		estimate.Set("display_number", displayNumber)
		if err := app.Save(estimate); err != nil {
			return fmt.Errorf("migrate: save estimate %s: %w", estimate.Id, err)
		}
		log.Printf("migrate: estimate %s -> %s", estimate.Id, displayNumber)
	}

	return nil
}
