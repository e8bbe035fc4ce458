package collections_test

import (
	"testing"

	"crmsuite/collections"
	"crmsuite/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"customers",
	"contacts",
	"opportunities",
	"estimates",
	"letter_proposals",
	"interactions",
	"surveys",
	"documents",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	// Collect IDs from first run
	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	// Run Setup() again
	collections.Setup(app)

	// IDs should not change
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_CustomersFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("customers")

	fields := []string{"name", "company_name", "address", "phone", "email", "status", "created", "updated"}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("customers: missing field %q", f)
		}
	}

	statusField := col.Fields.GetByName("status")
	if sf, ok := statusField.(*core.SelectField); ok {
		expected := map[string]bool{"lead": true, "active": true, "inactive": true}
		for _, v := range sf.Values {
			if !expected[v] {
				t.Errorf("unexpected status value: %q", v)
			}
			delete(expected, v)
		}
		for v := range expected {
			t.Errorf("missing status value: %q", v)
		}
	} else {
		t.Errorf("status field is not a SelectField")
	}
}

func TestSetup_EstimatesFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("estimates")

	fields := []string{"opportunity", "data", "travel_data", "display_number", "created", "updated"}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("estimates: missing field %q", f)
		}
	}

	// Opportunity relation with cascade delete
	oppField := col.Fields.GetByName("opportunity")
	if rf, ok := oppField.(*core.RelationField); ok {
		if rf.MaxSelect != 1 {
			t.Errorf("estimates.opportunity: expected MaxSelect=1, got %d", rf.MaxSelect)
		}
		if !rf.CascadeDelete {
			t.Error("estimates.opportunity: expected CascadeDelete=true")
		}
	} else {
		t.Errorf("estimates.opportunity is not a RelationField")
	}

	if _, ok := col.Fields.GetByName("data").(*core.JSONField); !ok {
		t.Error("estimates.data is not a JSONField")
	}
	if _, ok := col.Fields.GetByName("travel_data").(*core.JSONField); !ok {
		t.Error("estimates.travel_data is not a JSONField")
	}
}

func TestSetup_ContactsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("contacts")

	fields := []string{"customer", "first_name", "last_name", "title", "email", "phone", "notes", "is_primary"}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("contacts: missing field %q", f)
		}
	}

	customerField := col.Fields.GetByName("customer")
	if rf, ok := customerField.(*core.RelationField); ok {
		if !rf.CascadeDelete {
			t.Error("contacts.customer: expected CascadeDelete=true")
		}
	} else {
		t.Errorf("contacts.customer is not a RelationField")
	}
}

func TestSetup_ProposalsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("letter_proposals")

	fields := []string{"estimate", "quote_number", "neta_standard", "html", "created", "updated"}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("letter_proposals: missing field %q", f)
		}
	}

	standardField := col.Fields.GetByName("neta_standard")
	if sf, ok := standardField.(*core.SelectField); ok {
		expected := map[string]bool{"NETA ATS": true, "NETA MTS": true}
		for _, v := range sf.Values {
			if !expected[v] {
				t.Errorf("unexpected neta_standard value: %q", v)
			}
		}
	} else {
		t.Errorf("neta_standard field is not a SelectField")
	}
}

func TestSetup_SurveysFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("surveys")

	fields := []string{"customer", "quality", "timeliness", "communication", "value", "comments"}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("surveys: missing field %q", f)
		}
	}
}

func TestSetup_DocumentsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("documents")

	fields := []string{"customer", "title", "file", "storage_key", "content_type", "size"}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("documents: missing field %q", f)
		}
	}

	if ff, ok := col.Fields.GetByName("file").(*core.FileField); ok {
		if ff.MaxSize != 25<<20 {
			t.Errorf("documents.file: MaxSize = %d, want %d", ff.MaxSize, 25<<20)
		}
	} else {
		t.Errorf("documents.file is not a FileField")
	}
}
