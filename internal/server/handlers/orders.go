// Package handlers implements the HTTP request handlers for the order API.
//
// Handlers translate requests into OrderService calls and store results
// into response envelopes. Store failures become structured API errors:
// bad input (out-of-range index, unknown order number, malformed document)
// maps to 4xx, storage failures to 5xx.
package handlers

import (
	"context"
	"errors"
	"strconv"

	apierrors "orderdesk/internal/errors"
	"orderdesk/internal/models"
	"orderdesk/internal/storage"
)

// OrderHandler handles production order CRUD requests.
type OrderHandler struct {
	svc *storage.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(svc *storage.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// List returns the whole collection in normalized read order.
func (h *OrderHandler) List(ctx context.Context, req *models.ListOrdersRequest) (*models.ListOrdersResponse, error) {
	orders := h.svc.Load(ctx)
	return &models.ListOrdersResponse{
		Status:    "success",
		Data:      orders,
		Count:     len(orders),
		Timestamp: models.Timestamp(),
	}, nil
}

// Create inserts a new order at the rank named by its priority.
func (h *OrderHandler) Create(ctx context.Context, req *models.CreateOrderRequest) (*models.MutationResponse, error) {
	if err := h.svc.Insert(ctx, req.Data); err != nil {
		return nil, storeError(err)
	}
	return mutationOK("Order created"), nil
}

// Update replaces the order at a 0-based position.
func (h *OrderHandler) Update(ctx context.Context, req *models.UpdateOrderRequest) (*models.MutationResponse, error) {
	index, err := strconv.Atoi(req.Index)
	if err != nil {
		return nil, apierrors.BadRequest("Invalid order index: " + req.Index)
	}
	if err := h.svc.ReplaceAt(ctx, index, req.Data); err != nil {
		return nil, storeError(err)
	}
	return mutationOK("Order updated"), nil
}

// Delete removes the order at a 0-based position.
func (h *OrderHandler) Delete(ctx context.Context, req *models.DeleteOrderRequest) (*models.MutationResponse, error) {
	index, err := strconv.Atoi(req.Index)
	if err != nil {
		return nil, apierrors.BadRequest("Invalid order index: " + req.Index)
	}
	if err := h.svc.RemoveAt(ctx, index); err != nil {
		return nil, storeError(err)
	}
	return mutationOK("Order deleted"), nil
}

// DeleteByNumber removes the first order matching the production order
// number.
func (h *OrderHandler) DeleteByNumber(ctx context.Context, req *models.DeleteByNumberRequest) (*models.MutationResponse, error) {
	if err := h.svc.RemoveByNumber(ctx, req.Number); err != nil {
		return nil, storeError(err)
	}
	return mutationOK("Order deleted"), nil
}

// DeleteBatch removes every order whose production order number appears in
// the request. The envelope reports how many of the requested numbers
// matched; success is true only when at least one record was removed.
func (h *OrderHandler) DeleteBatch(ctx context.Context, req *models.DeleteBatchRequest) (*models.BatchDeleteResponse, error) {
	removed, requested, err := h.svc.RemoveBatch(ctx, req.ProductionOrders)
	if err != nil {
		return nil, storeError(err)
	}
	resp := &models.BatchDeleteResponse{
		Removed:   removed,
		Requested: requested,
		Timestamp: models.Timestamp(),
	}
	if removed > 0 {
		resp.Status = "success"
		resp.Success = true
		resp.Message = "Removed " + strconv.Itoa(removed) + " orders"
	} else {
		resp.Status = "error"
		resp.Message = "No matching orders found"
	}
	return resp, nil
}

// Import replaces the collection with the records in the request document.
func (h *OrderHandler) Import(ctx context.Context, req *models.ImportOrdersRequest) (*models.MutationResponse, error) {
	if err := h.svc.ImportJSON(ctx, string(req.Data)); err != nil {
		return nil, storeError(err)
	}
	return mutationOK("Orders imported"), nil
}

func mutationOK(message string) *models.MutationResponse {
	return &models.MutationResponse{
		Status:    "success",
		Message:   message,
		Success:   true,
		Timestamp: models.Timestamp(),
	}
}

// storeError maps store failures to API errors: NotFound and bad-input
// conditions become 4xx, everything else is a storage-level 5xx.
func storeError(err error) error {
	switch {
	case errors.Is(err, storage.ErrIndexOutOfRange):
		return apierrors.BadRequest("Order index out of range")
	case errors.Is(err, storage.ErrOrderNotFound):
		return apierrors.NotFound("Production order")
	case errors.Is(err, storage.ErrEmptyNumberList):
		return apierrors.BadRequest("production_orders must name at least one order")
	case errors.Is(err, storage.ErrMalformedDocument):
		return apierrors.BadRequest("Import document is not a JSON array of records")
	default:
		return apierrors.StorageError("Failed to persist orders", err)
	}
}
