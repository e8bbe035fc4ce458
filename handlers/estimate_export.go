package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"crmsuite/services"
)

// HandleEstimateExport streams an estimate as an Excel workbook.
func HandleEstimateExport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("estimates", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "estimate not found")
		}

		doc := loadEstimateDocument(rec)
		data := services.BuildEstimateExportData(doc, rec.GetString("display_number"), rec.GetString("created"))

		workbook, err := services.GenerateEstimateExcel(data)
		if err != nil {
			log.Printf("estimates: excel generation failed for %s: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not generate export")
		}

		fileName := rec.GetString("display_number")
		if fileName == "" {
			fileName = rec.Id
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName+".xlsx"))
		e.Response.WriteHeader(http.StatusOK)
		if _, err := e.Response.Write(workbook); err != nil {
			log.Printf("estimates: writing export response failed: %v", err)
		}
		return nil
	}
}
