// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"crmsuite/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestCustomer creates a customer record with the given name and returns it.
func CreateTestCustomer(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("customers")
	if err != nil {
		t.Fatalf("failed to find customers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("company_name", name+" Inc")
	record.Set("address", "77 Substation Rd, Toledo, OH 43604")
	record.Set("phone", "(555) 011-2233")
	record.Set("email", "ops@example.com")
	record.Set("status", "active")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test customer: %v", err)
	}

	return record
}

// CreateTestContact creates a contact record linked to a customer.
func CreateTestContact(t *testing.T, app *pocketbase.PocketBase, customerID, firstName string, primary bool) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("contacts")
	if err != nil {
		t.Fatalf("failed to find contacts collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("customer", customerID)
	record.Set("first_name", firstName)
	record.Set("last_name", "Tester")
	record.Set("title", "Facilities Manager")
	record.Set("email", "contact@example.com")
	record.Set("phone", "(555) 044-5566")
	record.Set("is_primary", primary)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test contact: %v", err)
	}

	return record
}

// CreateTestOpportunity creates an opportunity record linked to a customer.
func CreateTestOpportunity(t *testing.T, app *pocketbase.PocketBase, customerID, description string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("opportunities")
	if err != nil {
		t.Fatalf("failed to find opportunities collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("customer", customerID)
	record.Set("description", description)
	record.Set("status", "open")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test opportunity: %v", err)
	}

	return record
}

// CreateTestEstimate creates an estimate record with the given serialized
// data blob linked to an opportunity.
func CreateTestEstimate(t *testing.T, app *pocketbase.PocketBase, opportunityID, data, displayNumber string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		t.Fatalf("failed to find estimates collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("opportunity", opportunityID)
	record.Set("data", data)
	record.Set("display_number", displayNumber)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test estimate: %v", err)
	}

	return record
}

// CreateTestInteraction creates an interaction record linked to a customer.
func CreateTestInteraction(t *testing.T, app *pocketbase.PocketBase, customerID, interactionType, notes string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("interactions")
	if err != nil {
		t.Fatalf("failed to find interactions collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("customer", customerID)
	record.Set("type", interactionType)
	record.Set("notes", notes)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test interaction: %v", err)
	}

	return record
}

// CreateTestSurvey creates a survey record with the given ratings.
func CreateTestSurvey(t *testing.T, app *pocketbase.PocketBase, customerID string, quality, timeliness, communication, value float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("surveys")
	if err != nil {
		t.Fatalf("failed to find surveys collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("customer", customerID)
	record.Set("quality", quality)
	record.Set("timeliness", timeliness)
	record.Set("communication", communication)
	record.Set("value", value)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test survey: %v", err)
	}

	return record
}

// CreateTestProposal creates a letter proposal record linked to an estimate.
func CreateTestProposal(t *testing.T, app *pocketbase.PocketBase, estimateID, html, quoteNumber string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("letter_proposals")
	if err != nil {
		t.Fatalf("failed to find letter_proposals collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("estimate", estimateID)
	record.Set("html", html)
	record.Set("quote_number", quoteNumber)
	record.Set("neta_standard", "NETA ATS")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test proposal: %v", err)
	}

	return record
}
