package handlers

import (
	"log"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// customerInput is the create/update payload for a customer record.
type customerInput struct {
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Status      string `json:"status"`
}

func (in customerInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Email, is.EmailFormat),
		validation.Field(&in.Status, validation.In("", "lead", "active", "inactive")),
	)
}

func customerResponse(rec *core.Record) map[string]any {
	return map[string]any{
		"id":          rec.Id,
		"name":        rec.GetString("name"),
		"companyName": rec.GetString("company_name"),
		"address":     rec.GetString("address"),
		"phone":       rec.GetString("phone"),
		"email":       rec.GetString("email"),
		"status":      rec.GetString("status"),
		"created":     rec.GetString("created"),
		"updated":     rec.GetString("updated"),
	}
}

// HandleCustomerList returns all customers, optionally filtered by a search
// term across name and company.
func HandleCustomerList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := e.Request.URL.Query().Get("q")

		filter := ""
		params := map[string]any{}
		if q != "" {
			filter = "name ~ {:q} || company_name ~ {:q}"
			params["q"] = q
		}

		records, err := app.FindRecordsByFilter("customers", filter, "-created", 0, 0, params)
		if err != nil {
			log.Printf("customers: list query failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not load customers")
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, customerResponse(rec))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleCustomerView returns a single customer by id.
func HandleCustomerView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("customers", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "customer not found")
		}
		return e.JSON(http.StatusOK, customerResponse(rec))
	}
}

// HandleCustomerCreate creates a customer from a JSON payload.
func HandleCustomerCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in customerInput
		if err := e.BindBody(&in); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}
		if err := in.Validate(); err != nil {
			return apiValidationError(e, err)
		}

		col, err := app.FindCollectionByNameOrId("customers")
		if err != nil {
			log.Printf("customers: collection lookup failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "internal error")
		}

		rec := core.NewRecord(col)
		applyCustomerInput(rec, in)
		if err := app.Save(rec); err != nil {
			log.Printf("customers: save failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not save customer")
		}
		return e.JSON(http.StatusCreated, customerResponse(rec))
	}
}

// HandleCustomerUpdate overwrites an existing customer's fields.
func HandleCustomerUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("customers", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "customer not found")
		}

		var in customerInput
		if err := e.BindBody(&in); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}
		if err := in.Validate(); err != nil {
			return apiValidationError(e, err)
		}

		applyCustomerInput(rec, in)
		if err := app.Save(rec); err != nil {
			log.Printf("customers: update %s failed: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not save customer")
		}
		return e.JSON(http.StatusOK, customerResponse(rec))
	}
}

// HandleCustomerDelete removes a customer and, through cascade, its
// contacts, opportunities, interactions, surveys and documents.
func HandleCustomerDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("customers", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "customer not found")
		}
		if err := app.Delete(rec); err != nil {
			log.Printf("customers: delete %s failed: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not delete customer")
		}
		return e.NoContent(http.StatusNoContent)
	}
}

func applyCustomerInput(rec *core.Record, in customerInput) {
	rec.Set("name", in.Name)
	rec.Set("company_name", in.CompanyName)
	rec.Set("address", in.Address)
	rec.Set("phone", in.Phone)
	rec.Set("email", in.Email)
	if in.Status != "" {
		rec.Set("status", in.Status)
	}
}
