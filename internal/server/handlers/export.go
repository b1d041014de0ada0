package handlers

import (
	"io"
	"net/http"
)

// Export serves the collection as a raw JSON document. Internal failures
// degrade to an empty collection, matching the store's export contract, so
// this handler never reports an error.
func (h *OrderHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc := h.svc.ExportJSON(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, doc)
}
