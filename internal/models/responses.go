package models

import (
	"time"

	apierrors "orderdesk/internal/errors"
)

var errMissingData = apierrors.MissingField("data")

// Timestamp returns the envelope timestamp for API responses.
func Timestamp() string {
	return time.Now().Format(time.RFC3339)
}

// HealthResponse is a response from a health check.
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// ListOrdersResponse is a response containing the full collection in
// normalized read order.
type ListOrdersResponse struct {
	Status    string  `json:"status"`
	Data      []Order `json:"data"`
	Count     int     `json:"count"`
	Timestamp string  `json:"timestamp"`
}

// MutationResponse is a response from a create, update, delete or import.
type MutationResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Success   bool   `json:"success"`
	Timestamp string `json:"timestamp"`
}

// BatchDeleteResponse is a response from a batch delete by order numbers.
type BatchDeleteResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Success   bool   `json:"success"`
	Removed   int    `json:"removed"`
	Requested int    `json:"requested"`
	Timestamp string `json:"timestamp"`
}

// UploadResponse acknowledges an uploaded spreadsheet. The file is accepted
// but not applied to the store; applying uploads is a reserved extension
// point.
type UploadResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Filename  string `json:"filename"`
	Timestamp string `json:"timestamp"`
}
