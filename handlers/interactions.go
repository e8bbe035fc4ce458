package handlers

import (
	"log"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type interactionInput struct {
	Type       string `json:"type"`
	Notes      string `json:"notes"`
	OccurredAt string `json:"occurredAt"`
}

func (in interactionInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Type, validation.Required,
			validation.In("call", "email", "meeting", "site_visit")),
		validation.Field(&in.Notes, validation.Length(0, 2000)),
	)
}

func interactionResponse(rec *core.Record) map[string]any {
	return map[string]any{
		"id":         rec.Id,
		"customer":   rec.GetString("customer"),
		"type":       rec.GetString("type"),
		"notes":      rec.GetString("notes"),
		"occurredAt": rec.GetString("occurred_at"),
		"created":    rec.GetString("created"),
	}
}

// HandleInteractionList returns a customer's interaction log, newest first.
func HandleInteractionList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		customerID := e.Request.PathValue("customerId")
		records, err := app.FindRecordsByFilter(
			"interactions",
			"customer = {:customerId}",
			"-occurred_at,-created",
			0,
			0,
			map[string]any{"customerId": customerID},
		)
		if err != nil {
			log.Printf("interactions: list query failed for customer %s: %v", customerID, err)
			return apiError(e, http.StatusInternalServerError, "could not load interactions")
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, interactionResponse(rec))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleInteractionCreate logs an interaction against a customer.
func HandleInteractionCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		customerID := e.Request.PathValue("customerId")
		if _, err := app.FindRecordById("customers", customerID); err != nil {
			return apiError(e, http.StatusNotFound, "customer not found")
		}

		var in interactionInput
		if err := e.BindBody(&in); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}
		if err := in.Validate(); err != nil {
			return apiValidationError(e, err)
		}

		col, err := app.FindCollectionByNameOrId("interactions")
		if err != nil {
			log.Printf("interactions: collection lookup failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "internal error")
		}

		rec := core.NewRecord(col)
		rec.Set("customer", customerID)
		rec.Set("type", in.Type)
		rec.Set("notes", in.Notes)
		if in.OccurredAt != "" {
			rec.Set("occurred_at", in.OccurredAt)
		}
		if err := app.Save(rec); err != nil {
			log.Printf("interactions: save failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not save interaction")
		}
		return e.JSON(http.StatusCreated, interactionResponse(rec))
	}
}

// HandleInteractionDelete removes an interaction entry.
func HandleInteractionDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("interactions", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "interaction not found")
		}
		if err := app.Delete(rec); err != nil {
			log.Printf("interactions: delete %s failed: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not delete interaction")
		}
		return e.NoContent(http.StatusNoContent)
	}
}
