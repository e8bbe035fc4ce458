package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"crmsuite/services"
)

// HandleContactTemplateDownload serves the xlsx import template.
func HandleContactTemplateDownload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := services.GenerateContactTemplate()
		if err != nil {
			log.Printf("contact_import: template generation failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not generate template")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", `attachment; filename="contact_import_template.xlsx"`)
		_, err = e.Response.Write(data)
		return err
	}
}

// HandleContactValidate accepts an uploaded .csv/.xlsx file and returns the
// validation result without writing anything.
func HandleContactValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		customerID := e.Request.PathValue("customerId")
		if _, err := app.FindRecordById("customers", customerID); err != nil {
			return apiError(e, http.StatusNotFound, "customer not found")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, "missing file upload")
		}
		defer file.Close()

		result, err := services.ValidateContactFile(file, header.Filename)
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}
		return e.JSON(http.StatusOK, result)
	}
}

// HandleContactImportCommit re-validates the uploaded file and creates
// contact records for every valid row.
func HandleContactImportCommit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		customerID := e.Request.PathValue("customerId")
		if _, err := app.FindRecordById("customers", customerID); err != nil {
			return apiError(e, http.StatusNotFound, "customer not found")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, "missing file upload")
		}
		defer file.Close()

		result, err := services.ValidateContactFile(file, header.Filename)
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}
		if result.ErrorRows > 0 {
			return apiError(e, http.StatusBadRequest,
				fmt.Sprintf("file has %d invalid row(s); fix and re-upload", result.ErrorRows))
		}

		created, err := services.CommitContactImport(app, customerID, result.ParsedRows)
		if err != nil {
			log.Printf("contact_import: commit failed for customer %s: %v", customerID, err)
			return apiError(e, http.StatusInternalServerError, "import failed")
		}

		return e.JSON(http.StatusOK, map[string]any{"created": created})
	}
}
