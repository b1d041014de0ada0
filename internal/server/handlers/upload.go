package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	apierrors "orderdesk/internal/errors"
	"orderdesk/internal/models"
)

// UploadHandler accepts replacement spreadsheet uploads.
//
// Uploaded files are validated and acknowledged but never applied to the
// store; wiring uploads into persistence is a reserved extension point.
// The response says so explicitly rather than pretending the data was
// imported.
type UploadHandler struct {
	maxBytes int64
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(maxBytes int64) *UploadHandler {
	return &UploadHandler{maxBytes: maxBytes}
}

// Upload handles a multipart spreadsheet upload.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		slog.ErrorContext(ctx, "No file in upload request", "err", err)
		writeAPIError(w, apierrors.MissingField("file"))
		return
	}
	defer func() {
		_ = file.Close()
	}()

	if header.Filename == "" {
		writeAPIError(w, apierrors.BadRequest("Uploaded file has no name"))
		return
	}
	if !strings.HasSuffix(header.Filename, ".xlsx") {
		writeAPIError(w, apierrors.BadRequest("Only .xlsx files are supported"))
		return
	}

	size, err := io.Copy(io.Discard, file)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to read uploaded file", "filename", header.Filename, "err", err)
		writeAPIError(w, apierrors.BadRequest("Failed to read uploaded file"))
		return
	}

	slog.InfoContext(ctx, "Spreadsheet upload accepted but not applied", "filename", header.Filename, "bytes", size)
	writeJSON(w, http.StatusOK, &models.UploadResponse{
		Status:    "info",
		Message:   "Upload accepted but not applied; import is not wired to storage yet",
		Filename:  header.Filename,
		Timestamp: models.Timestamp(),
	})
}
