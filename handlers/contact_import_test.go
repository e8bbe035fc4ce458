package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"crmsuite/testhelpers"
)

// newUploadRequest builds a multipart POST with one file part named "file".
func newUploadRequest(t *testing.T, target, fileName string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHandleContactTemplateDownload(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleContactTemplateDownload(app)

	req := httptest.NewRequest(http.MethodGet, "/api/customers/x/contacts/import/template", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("template body is empty")
	}
}

func TestHandleContactValidate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Harborview")
	handler := HandleContactValidate(app)

	csvData := "First Name *,Last Name *,Email\nDana,Whitfield,dana@example.com\n,Missing,bad\n"
	req := newUploadRequest(t, "/api/customers/"+customer.Id+"/contacts/import", "contacts.csv", []byte(csvData))
	req.SetPathValue("customerId", customer.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if result["total_rows"].(float64) != 2 {
		t.Errorf("total_rows = %v, want 2", result["total_rows"])
	}
	if result["valid_rows"].(float64) != 1 {
		t.Errorf("valid_rows = %v, want 1", result["valid_rows"])
	}
	if result["error_rows"].(float64) != 1 {
		t.Errorf("error_rows = %v, want 1", result["error_rows"])
	}

	// Validation must not create records.
	contacts, _ := app.FindRecordsByFilter("contacts", "", "", 0, 0, nil)
	if len(contacts) != 0 {
		t.Errorf("validate created %d contacts", len(contacts))
	}
}

func TestHandleContactImportCommit(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Harborview")
	handler := HandleContactImportCommit(app)

	csvData := "First Name *,Last Name *,Email\nDana,Whitfield,dana@example.com\nSam,Ortiz,sam@example.com\n"
	req := newUploadRequest(t, "/api/customers/"+customer.Id+"/contacts/import/commit", "contacts.csv", []byte(csvData))
	req.SetPathValue("customerId", customer.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	contacts, _ := app.FindRecordsByFilter(
		"contacts",
		"customer = {:customerId}",
		"first_name",
		0,
		0,
		map[string]any{"customerId": customer.Id},
	)
	if len(contacts) != 2 {
		t.Fatalf("expected 2 imported contacts, got %d", len(contacts))
	}
	if contacts[0].GetString("first_name") != "Dana" {
		t.Errorf("first imported contact = %q", contacts[0].GetString("first_name"))
	}
}

func TestHandleContactImportCommit_RejectsInvalidRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Harborview")
	handler := HandleContactImportCommit(app)

	csvData := "First Name *,Last Name *,Email\nDana,Whitfield,dana@example.com\n,Broken,\n"
	req := newUploadRequest(t, "/api/customers/"+customer.Id+"/contacts/import/commit", "contacts.csv", []byte(csvData))
	req.SetPathValue("customerId", customer.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	// All-or-nothing commit: the valid row must not sneak in.
	contacts, _ := app.FindRecordsByFilter("contacts", "", "", 0, 0, nil)
	if len(contacts) != 0 {
		t.Errorf("partial import created %d contacts", len(contacts))
	}
}
