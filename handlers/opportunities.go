package handlers

import (
	"log"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type opportunityInput struct {
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Value       float64 `json:"value"`
}

func (in opportunityInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Description, validation.Required, validation.Length(1, 500)),
		validation.Field(&in.Status, validation.In("", "open", "quoted", "won", "lost")),
	)
}

func opportunityResponse(rec *core.Record) map[string]any {
	return map[string]any{
		"id":          rec.Id,
		"customer":    rec.GetString("customer"),
		"description": rec.GetString("description"),
		"status":      rec.GetString("status"),
		"value":       rec.GetFloat("value"),
		"created":     rec.GetString("created"),
	}
}

// HandleOpportunityList returns a customer's opportunities, newest first.
func HandleOpportunityList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		customerID := e.Request.PathValue("customerId")
		records, err := app.FindRecordsByFilter(
			"opportunities",
			"customer = {:customerId}",
			"-created",
			0,
			0,
			map[string]any{"customerId": customerID},
		)
		if err != nil {
			log.Printf("opportunities: list query failed for customer %s: %v", customerID, err)
			return apiError(e, http.StatusInternalServerError, "could not load opportunities")
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, opportunityResponse(rec))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleOpportunityContext returns the opportunity with its customer and
// primary contact, the read-only context used to pre-fill a brand-new
// estimate's general info.
func HandleOpportunityContext(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("opportunities", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "opportunity not found")
		}

		customer, err := app.FindRecordById("customers", rec.GetString("customer"))
		if err != nil {
			log.Printf("opportunities: customer %s missing for opportunity %s", rec.GetString("customer"), rec.Id)
			return apiError(e, http.StatusInternalServerError, "customer record missing")
		}

		out := map[string]any{
			"description": rec.GetString("description"),
			"status":      rec.GetString("status"),
			"customer": map[string]any{
				"name":        customer.GetString("name"),
				"companyName": customer.GetString("company_name"),
				"address":     customer.GetString("address"),
			},
		}

		if primary := findPrimaryContact(app, customer.Id); primary != nil {
			out["primaryContact"] = contactResponse(primary)
		}

		return e.JSON(http.StatusOK, out)
	}
}

// HandleOpportunityCreate creates an opportunity under a customer.
func HandleOpportunityCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		customerID := e.Request.PathValue("customerId")
		if _, err := app.FindRecordById("customers", customerID); err != nil {
			return apiError(e, http.StatusNotFound, "customer not found")
		}

		var in opportunityInput
		if err := e.BindBody(&in); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}
		if err := in.Validate(); err != nil {
			return apiValidationError(e, err)
		}

		col, err := app.FindCollectionByNameOrId("opportunities")
		if err != nil {
			log.Printf("opportunities: collection lookup failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "internal error")
		}

		rec := core.NewRecord(col)
		rec.Set("customer", customerID)
		applyOpportunityInput(rec, in)
		if err := app.Save(rec); err != nil {
			log.Printf("opportunities: save failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not save opportunity")
		}
		return e.JSON(http.StatusCreated, opportunityResponse(rec))
	}
}

// HandleOpportunityUpdate overwrites an opportunity's fields.
func HandleOpportunityUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("opportunities", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "opportunity not found")
		}

		var in opportunityInput
		if err := e.BindBody(&in); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}
		if err := in.Validate(); err != nil {
			return apiValidationError(e, err)
		}

		applyOpportunityInput(rec, in)
		if err := app.Save(rec); err != nil {
			log.Printf("opportunities: update %s failed: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not save opportunity")
		}
		return e.JSON(http.StatusOK, opportunityResponse(rec))
	}
}

// HandleOpportunityDelete removes an opportunity and, through cascade, its
// estimates and their proposals.
func HandleOpportunityDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("opportunities", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "opportunity not found")
		}
		if err := app.Delete(rec); err != nil {
			log.Printf("opportunities: delete %s failed: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not delete opportunity")
		}
		return e.NoContent(http.StatusNoContent)
	}
}

func applyOpportunityInput(rec *core.Record, in opportunityInput) {
	rec.Set("description", in.Description)
	rec.Set("value", in.Value)
	if in.Status != "" {
		rec.Set("status", in.Status)
	}
}

// findPrimaryContact returns the customer's primary contact, or the first
// contact when none is flagged, or nil.
func findPrimaryContact(app *pocketbase.PocketBase, customerID string) *core.Record {
	records, err := app.FindRecordsByFilter(
		"contacts",
		"customer = {:customerId}",
		"-is_primary,created",
		1,
		0,
		map[string]any{"customerId": customerID},
	)
	if err != nil || len(records) == 0 {
		return nil
	}
	return records[0]
}
