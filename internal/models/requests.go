package models

import "encoding/json"

// Validatable is implemented by request types that can validate themselves.
type Validatable interface {
	Validate() error
}

// HealthRequest is a request for a health check.
type HealthRequest struct{}

// Validate checks that the request is valid.
func (r *HealthRequest) Validate() error { return nil }

// ListOrdersRequest is a request to list all orders.
type ListOrdersRequest struct{}

// Validate checks that the request is valid.
func (r *ListOrdersRequest) Validate() error { return nil }

// CreateOrderRequest is a request to create an order. The order is inserted
// at the rank named by Data.Priority, clamped to [1, N+1]; a missing
// priority appends.
type CreateOrderRequest struct {
	// Action is accepted for compatibility with older clients and ignored.
	Action string     `json:"action"`
	Data   OrderInput `json:"data"`
}

// Validate checks that the request is valid.
func (r *CreateOrderRequest) Validate() error { return nil }

// UpdateOrderRequest is a request to replace the order at a 0-based position
// in the current read order.
type UpdateOrderRequest struct {
	Index  string     `path:"index"`
	Action string     `json:"action"`
	Data   OrderInput `json:"data"`
}

// Validate checks that the request is valid.
func (r *UpdateOrderRequest) Validate() error { return nil }

// DeleteOrderRequest is a request to remove the order at a 0-based position.
type DeleteOrderRequest struct {
	Index string `path:"index"`
}

// Validate checks that the request is valid.
func (r *DeleteOrderRequest) Validate() error { return nil }

// DeleteByNumberRequest is a request to remove the first order whose
// production order number matches.
type DeleteByNumberRequest struct {
	Number string `path:"number"`
}

// Validate checks that the request is valid.
func (r *DeleteByNumberRequest) Validate() error { return nil }

// DeleteBatchRequest is a request to remove every order whose production
// order number appears in the list.
type DeleteBatchRequest struct {
	ProductionOrders []string `json:"production_orders"`
}

// Validate checks that the request is valid.
func (r *DeleteBatchRequest) Validate() error { return nil }

// ImportOrdersRequest is a request to replace the collection with the
// records in Data.
type ImportOrdersRequest struct {
	Data json.RawMessage `json:"data"`
}

// Validate checks that the request is valid.
func (r *ImportOrdersRequest) Validate() error {
	if len(r.Data) == 0 {
		return errMissingData
	}
	return nil
}
