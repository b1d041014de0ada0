// JSON response helpers for raw (non-wrapped) handlers.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apierrors "orderdesk/internal/errors"
)

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "err", err)
	}
}

// writeAPIError writes a structured API error response.
func writeAPIError(w http.ResponseWriter, apiErr *apierrors.APIError) {
	response := map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code(),
			"message": apiErr.Error(),
		},
	}
	if details := apiErr.Details(); len(details) > 0 {
		response["details"] = details
	}
	writeJSON(w, apiErr.StatusCode(), response)
}
