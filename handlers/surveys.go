package handlers

import (
	"log"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"crmsuite/services"
)

type surveyInput struct {
	Quality       int    `json:"quality"`
	Timeliness    int    `json:"timeliness"`
	Communication int    `json:"communication"`
	Value         int    `json:"value"`
	Comments      string `json:"comments"`
}

func (in surveyInput) Validate() error {
	rating := []validation.Rule{validation.Required, validation.Min(1), validation.Max(5)}
	return validation.ValidateStruct(&in,
		validation.Field(&in.Quality, rating...),
		validation.Field(&in.Timeliness, rating...),
		validation.Field(&in.Communication, rating...),
		validation.Field(&in.Value, rating...),
		validation.Field(&in.Comments, validation.Length(0, 2000)),
	)
}

func surveyResponse(rec *core.Record) map[string]any {
	return map[string]any{
		"id":            rec.Id,
		"customer":      rec.GetString("customer"),
		"quality":       rec.GetInt("quality"),
		"timeliness":    rec.GetInt("timeliness"),
		"communication": rec.GetInt("communication"),
		"value":         rec.GetInt("value"),
		"comments":      rec.GetString("comments"),
		"created":       rec.GetString("created"),
	}
}

// HandleSurveyList returns a customer's survey responses, newest first.
func HandleSurveyList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		customerID := e.Request.PathValue("customerId")
		records, err := app.FindRecordsByFilter(
			"surveys",
			"customer = {:customerId}",
			"-created",
			0,
			0,
			map[string]any{"customerId": customerID},
		)
		if err != nil {
			log.Printf("surveys: list query failed for customer %s: %v", customerID, err)
			return apiError(e, http.StatusInternalServerError, "could not load surveys")
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, surveyResponse(rec))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleSurveyCreate records a satisfaction survey for a customer.
func HandleSurveyCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		customerID := e.Request.PathValue("customerId")
		if _, err := app.FindRecordById("customers", customerID); err != nil {
			return apiError(e, http.StatusNotFound, "customer not found")
		}

		var in surveyInput
		if err := e.BindBody(&in); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}
		if err := in.Validate(); err != nil {
			return apiValidationError(e, err)
		}

		col, err := app.FindCollectionByNameOrId("surveys")
		if err != nil {
			log.Printf("surveys: collection lookup failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "internal error")
		}

		rec := core.NewRecord(col)
		rec.Set("customer", customerID)
		rec.Set("quality", in.Quality)
		rec.Set("timeliness", in.Timeliness)
		rec.Set("communication", in.Communication)
		rec.Set("value", in.Value)
		rec.Set("comments", in.Comments)
		if err := app.Save(rec); err != nil {
			log.Printf("surveys: save failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not save survey")
		}
		return e.JSON(http.StatusCreated, surveyResponse(rec))
	}
}

// HandleSurveyStats returns per-question averages and the overall score for
// a customer's surveys.
func HandleSurveyStats(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		customerID := e.Request.PathValue("customerId")
		records, err := app.FindRecordsByFilter(
			"surveys",
			"customer = {:customerId}",
			"-created",
			0,
			0,
			map[string]any{"customerId": customerID},
		)
		if err != nil {
			log.Printf("surveys: stats query failed for customer %s: %v", customerID, err)
			return apiError(e, http.StatusInternalServerError, "could not load surveys")
		}

		responses := make([]services.SurveyResponse, 0, len(records))
		for _, rec := range records {
			responses = append(responses, services.SurveyResponse{
				Quality:       float64(rec.GetInt("quality")),
				Timeliness:    float64(rec.GetInt("timeliness")),
				Communication: float64(rec.GetInt("communication")),
				Value:         float64(rec.GetInt("value")),
			})
		}
		return e.JSON(http.StatusOK, services.CalcSurveyStats(responses))
	}
}
