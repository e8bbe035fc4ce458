package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crmsuite/testhelpers"
)

func TestHandleInteractionCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Harborview")
	handler := HandleInteractionCreate(app)

	body := `{"type": "site_visit", "notes": "Walked the substation with the facility manager.", "occurredAt": "2026-08-14 10:00:00.000Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/customers/"+customer.Id+"/interactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("customerId", customer.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	records, _ := app.FindRecordsByFilter("interactions", "", "", 0, 0, nil)
	if len(records) != 1 {
		t.Fatalf("expected 1 interaction, got %d", len(records))
	}
	if records[0].GetString("type") != "site_visit" {
		t.Errorf("type = %q", records[0].GetString("type"))
	}
	if records[0].GetString("occurred_at") == "" {
		t.Error("occurred_at not stored")
	}
}

func TestHandleInteractionCreate_InvalidType(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Harborview")
	handler := HandleInteractionCreate(app)

	body := `{"type": "carrier_pigeon", "notes": "x"}`
	req := httptest.NewRequest(http.MethodPost, "/api/customers/"+customer.Id+"/interactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("customerId", customer.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "type") {
		t.Errorf("error body should mention the type field: %s", rec.Body.String())
	}
}

func TestHandleInteractionCreate_CustomerMissing(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleInteractionCreate(app)

	body := `{"type": "call", "notes": "x"}`
	req := httptest.NewRequest(http.MethodPost, "/api/customers/missing/interactions", strings.NewReader(body))
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

func TestHandleInteractionList_ScopedToCustomer(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Harborview")
	other := testhelpers.CreateTestCustomer(t, app, "Lakeside")
	testhelpers.CreateTestInteraction(t, app, customer.Id, "call", "Discussed outage window")
	testhelpers.CreateTestInteraction(t, app, customer.Id, "email", "Sent draft scope")
	testhelpers.CreateTestInteraction(t, app, other.Id, "meeting", "Kickoff")
	handler := HandleInteractionList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/customers/"+customer.Id+"/interactions", nil)
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
		t.Fatalf("expected 2 interactions, got %d", len(got))
	}
	for _, item := range got {
		if item["type"] == "meeting" {
			t.Error("list leaked another customer's interaction")
		}
	}
}

func TestHandleInteractionDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Harborview")
	interaction := testhelpers.CreateTestInteraction(t, app, customer.Id, "call", "x")
	handler := HandleInteractionDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/api/interactions/"+interaction.Id, nil)
	req.SetPathValue("id", interaction.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if _, err := app.FindRecordById("interactions", interaction.Id); err == nil {
		t.Error("interaction still present after delete")
	}
}
