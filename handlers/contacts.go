package handlers

import (
	"log"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type contactInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Title     string `json:"title"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
	IsPrimary bool   `json:"isPrimary"`
}

func (in contactInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Email, is.EmailFormat),
	)
}

func contactResponse(rec *core.Record) map[string]any {
	return map[string]any{
		"id":        rec.Id,
		"customer":  rec.GetString("customer"),
		"firstName": rec.GetString("first_name"),
		"lastName":  rec.GetString("last_name"),
		"title":     rec.GetString("title"),
		"email":     rec.GetString("email"),
		"phone":     rec.GetString("phone"),
		"notes":     rec.GetString("notes"),
		"isPrimary": rec.GetBool("is_primary"),
	}
}

// HandleContactList returns a customer's contacts, primary first.
func HandleContactList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		customerID := e.Request.PathValue("customerId")
		records, err := app.FindRecordsByFilter(
			"contacts",
			"customer = {:customerId}",
			"-is_primary,first_name",
			0,
			0,
			map[string]any{"customerId": customerID},
		)
		if err != nil {
			log.Printf("contacts: list query failed for customer %s: %v", customerID, err)
			return apiError(e, http.StatusInternalServerError, "could not load contacts")
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, contactResponse(rec))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleContactCreate creates a contact under a customer. Marking the new
// contact primary clears the flag on any existing primary contact.
func HandleContactCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		customerID := e.Request.PathValue("customerId")
		if _, err := app.FindRecordById("customers", customerID); err != nil {
			return apiError(e, http.StatusNotFound, "customer not found")
		}

		var in contactInput
		if err := e.BindBody(&in); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}
		if err := in.Validate(); err != nil {
			return apiValidationError(e, err)
		}

		col, err := app.FindCollectionByNameOrId("contacts")
		if err != nil {
			log.Printf("contacts: collection lookup failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "internal error")
		}

		if in.IsPrimary {
			clearPrimaryContact(app, customerID)
		}

		rec := core.NewRecord(col)
		rec.Set("customer", customerID)
		applyContactInput(rec, in)
		if err := app.Save(rec); err != nil {
			log.Printf("contacts: save failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not save contact")
		}
		return e.JSON(http.StatusCreated, contactResponse(rec))
	}
}

// HandleContactUpdate overwrites a contact's fields.
func HandleContactUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("contacts", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "contact not found")
		}

		var in contactInput
		if err := e.BindBody(&in); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}
		if err := in.Validate(); err != nil {
			return apiValidationError(e, err)
		}

		if in.IsPrimary && !rec.GetBool("is_primary") {
			clearPrimaryContact(app, rec.GetString("customer"))
		}

		applyContactInput(rec, in)
		if err := app.Save(rec); err != nil {
			log.Printf("contacts: update %s failed: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not save contact")
		}
		return e.JSON(http.StatusOK, contactResponse(rec))
	}
}

// HandleContactDelete removes a contact.
func HandleContactDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("contacts", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "contact not found")
		}
		if err := app.Delete(rec); err != nil {
			log.Printf("contacts: delete %s failed: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not delete contact")
		}
		return e.NoContent(http.StatusNoContent)
	}
}

func applyContactInput(rec *core.Record, in contactInput) {
	rec.Set("first_name", in.FirstName)
	rec.Set("last_name", in.LastName)
	rec.Set("title", in.Title)
	rec.Set("email", in.Email)
	rec.Set("phone", in.Phone)
	rec.Set("notes", in.Notes)
	rec.Set("is_primary", in.IsPrimary)
}

func clearPrimaryContact(app *pocketbase.PocketBase, customerID string) {
	existing, err := app.FindRecordsByFilter(
		"contacts",
		"customer = {:customerId} && is_primary = true",
		"",
		0,
		0,
		map[string]any{"customerId": customerID},
	)
	if err != nil {
		return
	}
	for _, rec := range existing {
		rec.Set("is_primary", false)
		if err := app.Save(rec); err != nil {
			log.Printf("contacts: could not clear primary flag on %s: %v", rec.Id, err)
		}
	}
}
