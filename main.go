package main

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"crmsuite/collections"
	"crmsuite/config"
	"crmsuite/handlers"
)

func main() {
	cfg := config.Load()
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateEstimateNumbers(app); err != nil {
			log.Printf("Warning: estimate number migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Customer CRUD ────────────────────────────────────────
		se.Router.GET("/api/customers", handlers.HandleCustomerList(app))
		se.Router.POST("/api/customers", handlers.HandleCustomerCreate(app))
		se.Router.GET("/api/customers/{id}", handlers.HandleCustomerView(app))
		se.Router.PUT("/api/customers/{id}", handlers.HandleCustomerUpdate(app))
		se.Router.DELETE("/api/customers/{id}", handlers.HandleCustomerDelete(app))

		// ── Contacts (customer-scoped) ───────────────────────────
		se.Router.GET("/api/customers/{customerId}/contacts", handlers.HandleContactList(app))
		se.Router.POST("/api/customers/{customerId}/contacts", handlers.HandleContactCreate(app))
		se.Router.PUT("/api/contacts/{id}", handlers.HandleContactUpdate(app))
		se.Router.DELETE("/api/contacts/{id}", handlers.HandleContactDelete(app))

		// Contact import - template, validate, commit
		se.Router.GET("/api/customers/{customerId}/contacts/import/template",
			handlers.HandleContactTemplateDownload(app))
		se.Router.POST("/api/customers/{customerId}/contacts/import",
			handlers.HandleContactValidate(app))
		se.Router.POST("/api/customers/{customerId}/contacts/import/commit",
			handlers.HandleContactImportCommit(app))

		// ── Opportunities ────────────────────────────────────────
		se.Router.GET("/api/customers/{customerId}/opportunities", handlers.HandleOpportunityList(app))
		se.Router.POST("/api/customers/{customerId}/opportunities", handlers.HandleOpportunityCreate(app))
		se.Router.GET("/api/opportunities/{id}/context", handlers.HandleOpportunityContext(app))
		se.Router.PUT("/api/opportunities/{id}", handlers.HandleOpportunityUpdate(app))
		se.Router.DELETE("/api/opportunities/{id}", handlers.HandleOpportunityDelete(app))

		// ── Estimates ────────────────────────────────────────────
		se.Router.GET("/api/opportunities/{opportunityId}/estimates", handlers.HandleEstimateList(app))
		se.Router.POST("/api/opportunities/{opportunityId}/estimates", handlers.HandleEstimateCreate(app))
		se.Router.GET("/api/estimates/{id}/export/excel", handlers.HandleEstimateExport(app))
		se.Router.GET("/api/estimates/{id}", handlers.HandleEstimateView(app))
		se.Router.PUT("/api/estimates/{id}", handlers.HandleEstimateUpdate(app))
		se.Router.DELETE("/api/estimates/{id}", handlers.HandleEstimateDelete(app))

		// ── Letter proposals ─────────────────────────────────────
		se.Router.POST("/api/proposals", handlers.HandleProposalGenerate(app, cfg))
		se.Router.GET("/api/estimates/{estimateId}/proposals", handlers.HandleProposalList(app))
		se.Router.GET("/api/proposals/{id}/export/pdf", handlers.HandleProposalPDF(app, cfg))
		se.Router.GET("/api/proposals/{id}", handlers.HandleProposalView(app))
		se.Router.PUT("/api/proposals/{id}", handlers.HandleProposalUpdate(app))
		se.Router.DELETE("/api/proposals/{id}", handlers.HandleProposalDelete(app))

		// ── Interactions ─────────────────────────────────────────
		se.Router.GET("/api/customers/{customerId}/interactions", handlers.HandleInteractionList(app))
		se.Router.POST("/api/customers/{customerId}/interactions", handlers.HandleInteractionCreate(app))
		se.Router.DELETE("/api/interactions/{id}", handlers.HandleInteractionDelete(app))

		// ── Surveys ──────────────────────────────────────────────
		se.Router.GET("/api/customers/{customerId}/surveys", handlers.HandleSurveyList(app))
		se.Router.POST("/api/customers/{customerId}/surveys", handlers.HandleSurveyCreate(app))
		se.Router.GET("/api/customers/{customerId}/surveys/stats", handlers.HandleSurveyStats(app))

		// ── Documents ────────────────────────────────────────────
		se.Router.GET("/api/customers/{customerId}/documents", handlers.HandleDocumentList(app))
		se.Router.POST("/api/customers/{customerId}/documents", handlers.HandleDocumentUpload(app, cfg))
		se.Router.DELETE("/api/documents/{id}", handlers.HandleDocumentDelete(app))

		se.Router.GET("/api/health", func(e *core.RequestEvent) error {
			return e.JSON(http.StatusOK, map[string]string{"status": "ok"})
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
