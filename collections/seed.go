package collections

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"crmsuite/services"
)

// Seed inserts a demo customer with a contact, an opportunity and one
// worked estimate so a fresh install has something to look at. Skips
// entirely when any customer already exists.
func Seed(app *pocketbase.PocketBase) error {
	existing, err := app.FindRecordsByFilter("customers", "", "", 1, 0, nil)
	if err == nil && len(existing) > 0 {
		return nil
	}

	customersCol, err := app.FindCollectionByNameOrId("customers")
	if err != nil {
		return fmt.Errorf("seed: customers collection: %w", err)
	}
	customer := core.NewRecord(customersCol)
	customer.Set("name", "Dana Whitfield")
	customer.Set("company_name", "Harborview Manufacturing")
	customer.Set("address", "410 Dockside Ave, Erie, PA 16507")
	customer.Set("phone", "(555) 020-1180")
	customer.Set("email", "dwhitfield@harborview.example")
	customer.Set("status", "active")
	if err := app.Save(customer); err != nil {
		return fmt.Errorf("seed: save customer: %w", err)
	}

	contactsCol, err := app.FindCollectionByNameOrId("contacts")
	if err != nil {
		return fmt.Errorf("seed: contacts collection: %w", err)
	}
	contact := core.NewRecord(contactsCol)
	contact.Set("customer", customer.Id)
	contact.Set("first_name", "Dana")
	contact.Set("last_name", "Whitfield")
	contact.Set("title", "Plant Engineer")
	contact.Set("email", "dwhitfield@harborview.example")
	contact.Set("phone", "(555) 020-1180")
	contact.Set("is_primary", true)
	if err := app.Save(contact); err != nil {
		return fmt.Errorf("seed: save contact: %w", err)
	}

	opportunitiesCol, err := app.FindCollectionByNameOrId("opportunities")
	if err != nil {
		return fmt.Errorf("seed: opportunities collection: %w", err)
	}
	opportunity := core.NewRecord(opportunitiesCol)
	opportunity.Set("customer", customer.Id)
	opportunity.Set("description", "Annual substation maintenance testing")
	opportunity.Set("status", "open")
	if err := app.Save(opportunity); err != nil {
		return fmt.Errorf("seed: save opportunity: %w", err)
	}

	doc := services.DefaultEstimateDocument()
	doc.GeneralInfo.ClientName = "Harborview Manufacturing"
	doc.GeneralInfo.JobDescription = "Annual substation maintenance testing"
	doc.GeneralInfo.Location = "Erie, PA"
	doc.SovItems[0] = services.LineItem{
		Item:       "Transformer testing - 2500 kVA",
		Quantity:   2,
		LaborMen:   2,
		LaborHours: 4,
	}
	doc.SovItems[1] = services.LineItem{
		Item:          "Breaker testing - 480V",
		Quantity:      12,
		MaterialPrice: 15,
		LaborMen:      2,
		LaborHours:    1.5,
	}
	services.Recalculate(&doc)

	data, err := services.MarshalEstimateData(doc)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	displayNumber, err := services.GenerateQuoteNumber(app, time.Now())
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	estimatesCol, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		return fmt.Errorf("seed: estimates collection: %w", err)
	}
	estimate := core.NewRecord(estimatesCol)
	estimate.Set("opportunity", opportunity.Id)
	estimate.Set("data", string(data))
	estimate.Set("display_number", displayNumber)
	if err := app.Save(estimate); err != nil {
		return fmt.Errorf("seed: save estimate: %w", err)
	}

	return nil
}
