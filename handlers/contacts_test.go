package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crmsuite/testhelpers"
)

func TestHandleContactCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Harborview")
	handler := HandleContactCreate(app)

	body := `{"firstName":"Dana","lastName":"Whitfield","title":"Plant Engineer","isPrimary":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/customers/"+customer.Id+"/contacts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("customerId", customer.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	records, _ := app.FindRecordsByFilter("contacts", "", "", 0, 0, nil)
	if len(records) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(records))
	}
	if !records[0].GetBool("is_primary") {
		t.Error("contact should be primary")
	}
}

func TestHandleContactCreate_PrimaryFlagMovesOver(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Harborview")
	old := testhelpers.CreateTestContact(t, app, customer.Id, "Old", true)
	handler := HandleContactCreate(app)

	body := `{"firstName":"New","isPrimary":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/customers/"+customer.Id+"/contacts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("customerId", customer.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	reloaded, _ := app.FindRecordById("contacts", old.Id)
	if reloaded.GetBool("is_primary") {
		t.Error("previous primary contact should have lost the flag")
	}
}

func TestHandleContactCreate_CustomerMissing(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleContactCreate(app)

	req := httptest.NewRequest(http.MethodPost, "/api/customers/missing/contacts", strings.NewReader(`{"firstName":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("customerId", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleContactList_PrimaryFirst(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Harborview")
	testhelpers.CreateTestContact(t, app, customer.Id, "Alice", false)
	testhelpers.CreateTestContact(t, app, customer.Id, "Zara", true)
	handler := HandleContactList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/customers/"+customer.Id+"/contacts", nil)
	req.SetPathValue("customerId", customer.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(got))
	}
	if got[0]["firstName"] != "Zara" {
		t.Errorf("first contact = %v, want the primary one", got[0]["firstName"])
	}
}

func TestHandleContactDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Harborview")
	contact := testhelpers.CreateTestContact(t, app, customer.Id, "Gone", false)
	handler := HandleContactDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/api/contacts/"+contact.Id, nil)
	req.SetPathValue("id", contact.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if _, err := app.FindRecordById("contacts", contact.Id); err == nil {
		t.Error("contact still exists after delete")
	}
}
