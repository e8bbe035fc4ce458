// Package handlers wires the CRM JSON API onto PocketBase request events.
package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// apiError writes a JSON error body with the given status. Backend failures
// surface to the caller exactly once; there is no retry layer.
func apiError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, map[string]string{"error": message})
}

// apiValidationError writes field-level validation errors as a 400 body.
func apiValidationError(e *core.RequestEvent, err error) error {
	return e.JSON(http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": err,
	})
}
