package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"crmsuite/config"
	"crmsuite/services"
)

type proposalGenerateInput struct {
	EstimateID   string `json:"estimateId"`
	NetaStandard string `json:"netaStandard"`
}

func (in proposalGenerateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.EstimateID, validation.Required),
		validation.Field(&in.NetaStandard, validation.In("", services.NetaStandardATS, services.NetaStandardMTS)),
	)
}

type proposalUpdateInput struct {
	HTML string `json:"html"`
}

func proposalResponse(rec *core.Record) map[string]any {
	return map[string]any{
		"id":           rec.Id,
		"estimate":     rec.GetString("estimate"),
		"quoteNumber":  rec.GetString("quote_number"),
		"netaStandard": rec.GetString("neta_standard"),
		"html":         rec.GetString("html"),
		"created":      rec.GetString("created"),
	}
}

// buildProposalData assembles the render inputs for an estimate's letter
// proposal from the stored document and company config.
func buildProposalData(app *pocketbase.PocketBase, cfg *config.Config, estimate *core.Record, netaStandard string) services.ProposalData {
	doc := loadEstimateDocument(estimate)

	data := services.ProposalData{
		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		CompanyPhone:   cfg.CompanyPhone,
		CompanyEmail:   cfg.CompanyEmail,

		QuoteNumber:    estimate.GetString("display_number"),
		Date:           time.Now().Format("January 2, 2006"),
		ClientCompany:  doc.GeneralInfo.ClientName,
		ClientAddress:  doc.GeneralInfo.Location,
		JobDescription: doc.GeneralInfo.JobDescription,
		Location:       doc.GeneralInfo.Location,
		NetaStandard:   netaStandard,

		Final:           doc.CalculatedValues.Final,
		MobilizationFee: doc.CalculatedValues.MobilizationFee,
		Net30:           doc.CalculatedValues.Net30,
		Net60:           doc.CalculatedValues.Net60,
		Net90:           doc.CalculatedValues.Net90,

		ValidityDays: cfg.ProposalValidityDays,
	}

	// Address the letter to the primary contact when the customer chain is
	// intact; the company name alone is acceptable when it is not.
	if opportunity, err := app.FindRecordById("opportunities", estimate.GetString("opportunity")); err == nil {
		if primary := findPrimaryContact(app, opportunity.GetString("customer")); primary != nil {
			data.ClientName = primary.GetString("first_name") + " " + primary.GetString("last_name")
		}
	}

	return data
}

// HandleProposalGenerate renders a new letter proposal from an estimate's
// current pricing and stores it. Regenerating for the same estimate creates
// a new record rather than touching existing ones.
func HandleProposalGenerate(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in proposalGenerateInput
		if err := e.BindBody(&in); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}
		if err := in.Validate(); err != nil {
			return apiValidationError(e, err)
		}

		estimate, err := app.FindRecordById("estimates", in.EstimateID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "estimate not found")
		}

		netaStandard := in.NetaStandard
		if netaStandard == "" {
			netaStandard = services.NetaStandardATS
		}

		data := buildProposalData(app, cfg, estimate, netaStandard)
		html, err := services.BuildProposalHTML(data)
		if err != nil {
			log.Printf("proposals: render failed for estimate %s: %v", estimate.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not render proposal")
		}

		col, err := app.FindCollectionByNameOrId("letter_proposals")
		if err != nil {
			log.Printf("proposals: collection lookup failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "internal error")
		}

		rec := core.NewRecord(col)
		rec.Set("estimate", estimate.Id)
		rec.Set("quote_number", data.QuoteNumber)
		rec.Set("neta_standard", netaStandard)
		rec.Set("html", html)
		if err := app.Save(rec); err != nil {
			log.Printf("proposals: save failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not save proposal")
		}
		return e.JSON(http.StatusCreated, proposalResponse(rec))
	}
}

// HandleProposalList returns an estimate's proposals, newest first.
func HandleProposalList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimateID := e.Request.PathValue("estimateId")
		records, err := app.FindRecordsByFilter(
			"letter_proposals",
			"estimate = {:estimateId}",
			"-created",
			0,
			0,
			map[string]any{"estimateId": estimateID},
		)
		if err != nil {
			log.Printf("proposals: list query failed for estimate %s: %v", estimateID, err)
			return apiError(e, http.StatusInternalServerError, "could not load proposals")
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, proposalResponse(rec))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleProposalView returns a single proposal.
func HandleProposalView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("letter_proposals", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "proposal not found")
		}
		return e.JSON(http.StatusOK, proposalResponse(rec))
	}
}

// HandleProposalUpdate saves in-place edits to a proposal's HTML body.
func HandleProposalUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("letter_proposals", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "proposal not found")
		}

		var in proposalUpdateInput
		if err := e.BindBody(&in); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}

		rec.Set("html", in.HTML)
		if err := app.Save(rec); err != nil {
			log.Printf("proposals: update %s failed: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not save proposal")
		}
		return e.JSON(http.StatusOK, proposalResponse(rec))
	}
}

// HandleProposalDelete removes a proposal.
func HandleProposalDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("letter_proposals", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "proposal not found")
		}
		if err := app.Delete(rec); err != nil {
			log.Printf("proposals: delete %s failed: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not delete proposal")
		}
		return e.NoContent(http.StatusNoContent)
	}
}

// HandleProposalPDF streams a proposal as a PDF, regenerated from the
// estimate's current pricing rather than the stored HTML.
func HandleProposalPDF(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("letter_proposals", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "proposal not found")
		}

		estimate, err := app.FindRecordById("estimates", rec.GetString("estimate"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "estimate not found")
		}

		data := buildProposalData(app, cfg, estimate, rec.GetString("neta_standard"))
		pdf, err := services.GenerateProposalPDF(data)
		if err != nil {
			log.Printf("proposals: pdf generation failed for %s: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not generate pdf")
		}

		fileName := rec.GetString("quote_number")
		if fileName == "" {
			fileName = rec.Id
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName+".pdf"))
		e.Response.WriteHeader(http.StatusOK)
		if _, err := e.Response.Write(pdf); err != nil {
			log.Printf("proposals: writing pdf response failed: %v", err)
		}
		return nil
	}
}
