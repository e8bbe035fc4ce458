package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"crmsuite/services"
)

// loadEstimateDocument parses a stored estimate record into a normalized,
// freshly recalculated document. Malformed blobs fall back to defaults.
func loadEstimateDocument(rec *core.Record) services.EstimateDocument {
	return services.ParseEstimateDocument(
		services.RawColumn(rec.Get("data")),
		services.RawColumn(rec.Get("travel_data")),
	)
}

func estimateSummary(rec *core.Record, doc services.EstimateDocument) map[string]any {
	return map[string]any{
		"id":            rec.Id,
		"displayNumber": rec.GetString("display_number"),
		"clientName":    doc.GeneralInfo.ClientName,
		"final":         doc.CalculatedValues.Final,
		"created":       rec.GetString("created"),
	}
}

func estimateResponse(rec *core.Record, doc services.EstimateDocument) map[string]any {
	out := map[string]any{
		"id":            rec.Id,
		"opportunity":   rec.GetString("opportunity"),
		"displayNumber": rec.GetString("display_number"),
		"created":       rec.GetString("created"),
		"document":      doc,
	}
	if doc.TravelData != nil {
		out["travelData"] = doc.TravelData
	}
	return out
}

// HandleEstimateList returns all estimates for an opportunity, newest first.
// Each stored blob is re-parsed and re-priced so summaries always reflect the
// current pricing rules.
func HandleEstimateList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		opportunityID := e.Request.PathValue("opportunityId")
		records, err := app.FindRecordsByFilter(
			"estimates",
			"opportunity = {:opportunityId}",
			"-created",
			0,
			0,
			map[string]any{"opportunityId": opportunityID},
		)
		if err != nil {
			log.Printf("estimates: list query failed for opportunity %s: %v", opportunityID, err)
			return apiError(e, http.StatusInternalServerError, "could not load estimates")
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, estimateSummary(rec, loadEstimateDocument(rec)))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleEstimateView returns a single estimate's full document.
func HandleEstimateView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("estimates", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "estimate not found")
		}
		return e.JSON(http.StatusOK, estimateResponse(rec, loadEstimateDocument(rec)))
	}
}

// HandleEstimateCreate starts a new estimate under an opportunity. The
// document begins from defaults with the general info pre-filled from the
// opportunity's customer, and the server assigns the quote number.
func HandleEstimateCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		opportunityID := e.Request.PathValue("opportunityId")
		opportunity, err := app.FindRecordById("opportunities", opportunityID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "opportunity not found")
		}

		doc := services.DefaultEstimateDocument()
		if customer, err := app.FindRecordById("customers", opportunity.GetString("customer")); err == nil {
			doc.GeneralInfo.ClientName = customer.GetString("company_name")
			if doc.GeneralInfo.ClientName == "" {
				doc.GeneralInfo.ClientName = customer.GetString("name")
			}
			doc.GeneralInfo.Location = customer.GetString("address")
		}
		doc.GeneralInfo.JobDescription = opportunity.GetString("description")
		services.Recalculate(&doc)

		displayNumber, err := services.GenerateQuoteNumber(app, time.Now())
		if err != nil {
			log.Printf("estimates: quote number generation failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not assign quote number")
		}

		data, err := services.MarshalEstimateData(doc)
		if err != nil {
			log.Printf("estimates: marshal failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not serialize estimate")
		}

		col, err := app.FindCollectionByNameOrId("estimates")
		if err != nil {
			log.Printf("estimates: collection lookup failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "internal error")
		}

		rec := core.NewRecord(col)
		rec.Set("opportunity", opportunityID)
		rec.Set("display_number", displayNumber)
		rec.Set("data", string(data))
		if err := app.Save(rec); err != nil {
			log.Printf("estimates: save failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not save estimate")
		}
		return e.JSON(http.StatusCreated, estimateResponse(rec, doc))
	}
}

type estimateUpdateInput struct {
	GeneralInfo  services.GeneralInfo  `json:"generalInfo"`
	SovItems     []services.LineItem   `json:"sovItems"`
	NonSovItems  []services.LineItem   `json:"nonSovItems"`
	HoursSummary services.HoursSummary `json:"hoursSummary"`
	TravelData   *services.TravelData  `json:"travelData"`
}

// HandleEstimateUpdate overwrites the whole stored document with the
// submitted one. Client-sent calculated values are discarded; the server
// reprices from the raw inputs before persisting.
func HandleEstimateUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("estimates", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "estimate not found")
		}

		var in estimateUpdateInput
		if err := e.BindBody(&in); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}

		doc := services.EstimateDocument{
			GeneralInfo:  in.GeneralInfo,
			SovItems:     in.SovItems,
			NonSovItems:  in.NonSovItems,
			HoursSummary: in.HoursSummary,
			TravelData:   in.TravelData,
		}
		services.NormalizeEstimateDocument(&doc)
		services.Recalculate(&doc)

		data, err := services.MarshalEstimateData(doc)
		if err != nil {
			log.Printf("estimates: marshal failed for %s: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not serialize estimate")
		}
		travelData, err := services.MarshalTravelData(doc)
		if err != nil {
			log.Printf("estimates: travel marshal failed for %s: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not serialize estimate")
		}

		rec.Set("data", string(data))
		if travelData == nil {
			rec.Set("travel_data", nil)
		} else {
			rec.Set("travel_data", string(travelData))
		}
		if err := app.Save(rec); err != nil {
			log.Printf("estimates: update %s failed: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not save estimate")
		}
		return e.JSON(http.StatusOK, estimateResponse(rec, doc))
	}
}

// HandleEstimateDelete removes an estimate.
func HandleEstimateDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("estimates", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "estimate not found")
		}
		if err := app.Delete(rec); err != nil {
			log.Printf("estimates: delete %s failed: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not delete estimate")
		}
		return e.NoContent(http.StatusNoContent)
	}
}
