package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/filesystem"

	"crmsuite/config"
)

// allowedDocumentTypes is the upload allowlist, checked against the sniffed
// content type rather than the client-declared one.
var allowedDocumentTypes = []string{
	"application/pdf",
	"image/png",
	"image/jpeg",
	"text/csv",
	"text/plain",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/msword",
	"application/vnd.ms-excel",
	"application/zip",
}

// documentTypeAllowed matches via MIME.Is so charset parameters and aliases
// do not defeat the allowlist.
func documentTypeAllowed(detected *mimetype.MIME) bool {
	for _, t := range allowedDocumentTypes {
		if detected.Is(t) {
			return true
		}
	}
	return false
}

func documentResponse(rec *core.Record) map[string]any {
	size := rec.GetFloat("size")
	return map[string]any{
		"id":          rec.Id,
		"customer":    rec.GetString("customer"),
		"title":       rec.GetString("title"),
		"file":        rec.GetString("file"),
		"storageKey":  rec.GetString("storage_key"),
		"contentType": rec.GetString("content_type"),
		"size":        size,
		"sizeLabel":   humanize.Bytes(uint64(size)),
		"created":     rec.GetString("created"),
	}
}

// HandleDocumentList returns a customer's documents, newest first.
func HandleDocumentList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		customerID := e.Request.PathValue("customerId")
		records, err := app.FindRecordsByFilter(
			"documents",
			"customer = {:customerId}",
			"-created",
			0,
			0,
			map[string]any{"customerId": customerID},
		)
		if err != nil {
			log.Printf("documents: list query failed for customer %s: %v", customerID, err)
			return apiError(e, http.StatusInternalServerError, "could not load documents")
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, documentResponse(rec))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleDocumentUpload accepts a multipart file upload for a customer. The
// content type is sniffed from the payload and checked against the allowlist
// before anything is stored.
func HandleDocumentUpload(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		customerID := e.Request.PathValue("customerId")
		if _, err := app.FindRecordById("customers", customerID); err != nil {
			return apiError(e, http.StatusNotFound, "customer not found")
		}

		if err := e.Request.ParseMultipartForm(cfg.MaxUploadBytes); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid multipart form")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, "missing file upload")
		}
		defer file.Close()

		if header.Size > cfg.MaxUploadBytes {
			return apiError(e, http.StatusRequestEntityTooLarge, "file exceeds the upload size limit")
		}

		detected, err := mimetype.DetectReader(file)
		if err != nil {
			log.Printf("documents: content sniff failed for %s: %v", header.Filename, err)
			return apiError(e, http.StatusBadRequest, "unreadable file upload")
		}
		if !documentTypeAllowed(detected) {
			return apiError(e, http.StatusUnsupportedMediaType, "file type not allowed")
		}
		if _, err := file.Seek(0, 0); err != nil {
			return apiError(e, http.StatusBadRequest, "unreadable file upload")
		}

		upload, err := filesystem.NewFileFromMultipart(header)
		if err != nil {
			log.Printf("documents: reading upload %s failed: %v", header.Filename, err)
			return apiError(e, http.StatusBadRequest, "unreadable file upload")
		}

		title := e.Request.FormValue("title")
		if title == "" {
			title = header.Filename
		}

		col, err := app.FindCollectionByNameOrId("documents")
		if err != nil {
			log.Printf("documents: collection lookup failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "internal error")
		}

		rec := core.NewRecord(col)
		rec.Set("customer", customerID)
		rec.Set("title", title)
		rec.Set("file", upload)
		rec.Set("storage_key", strings.ReplaceAll(uuid.NewString(), "-", ""))
		rec.Set("content_type", detected.String())
		rec.Set("size", header.Size)
		if err := app.Save(rec); err != nil {
			log.Printf("documents: save failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not save document")
		}
		return e.JSON(http.StatusCreated, documentResponse(rec))
	}
}

// HandleDocumentDelete removes a document record and its stored file.
func HandleDocumentDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("documents", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "document not found")
		}
		if err := app.Delete(rec); err != nil {
			log.Printf("documents: delete %s failed: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not delete document")
		}
		return e.NoContent(http.StatusNoContent)
	}
}
