// Package models defines the production order record and the HTTP API
// request types shared by the storage and server layers.
package models

// Schema column names, in persisted order. The backing spreadsheet always
// carries exactly these columns in this order.
const (
	ColPriority        = "Priority"
	ColStatus          = "Status"
	ColProductionOrder = "Production_order"
	ColPartType        = "Part_type"
	ColPiecesFinished  = "Pieces_finished"
	ColPiecesIntended  = "Pieces_intended"
	ColDeliveryDate    = "Delivery_date"
	ColScheduledDate   = "Scheduled_date"
)

// Order is one production order row. Field order matches the spreadsheet
// column order; the JSON names are the column names.
//
// Priority is a dense 1-based rank maintained by the store: it is re-derived
// on every load and persist, so a caller-supplied value only acts as a sort
// key and is never stored verbatim.
type Order struct {
	Priority        int    `json:"Priority" jsonschema:"description=Dense 1-based rank within the collection"`
	Status          string `json:"Status" jsonschema:"description=Free-form status text"`
	ProductionOrder string `json:"Production_order" jsonschema:"description=Business key identifying the order"`
	PartType        string `json:"Part_type" jsonschema:"description=Part type being produced"`
	PiecesFinished  int    `json:"Pieces_finished" jsonschema:"description=Pieces completed so far"`
	PiecesIntended  int    `json:"Pieces_intended" jsonschema:"description=Total pieces to produce"`
	DeliveryDate    string `json:"Delivery_date" jsonschema:"format=date,description=Delivery date (YYYY-MM-DD) or empty"`
	ScheduledDate   string `json:"Scheduled_date" jsonschema:"format=date,description=Scheduled date (YYYY-MM-DD) or empty"`
}

// OrderInput is an inbound order as submitted by a client. Priority is a
// pointer so an absent rank can be told apart from an explicit 0: a missing
// priority appends (insert) or sorts first (replace), while 0 clamps to
// rank 1 on insert.
type OrderInput struct {
	Priority        *int   `json:"Priority"`
	Status          string `json:"Status"`
	ProductionOrder string `json:"Production_order"`
	PartType        string `json:"Part_type"`
	PiecesFinished  int    `json:"Pieces_finished"`
	PiecesIntended  int    `json:"Pieces_intended"`
	DeliveryDate    string `json:"Delivery_date"`
	ScheduledDate   string `json:"Scheduled_date"`
}

// Order converts the input to an Order, substituting fallback for a missing
// Priority.
func (in *OrderInput) Order(fallback int) Order {
	priority := fallback
	if in.Priority != nil {
		priority = *in.Priority
	}
	return Order{
		Priority:        priority,
		Status:          in.Status,
		ProductionOrder: in.ProductionOrder,
		PartType:        in.PartType,
		PiecesFinished:  in.PiecesFinished,
		PiecesIntended:  in.PiecesIntended,
		DeliveryDate:    in.DeliveryDate,
		ScheduledDate:   in.ScheduledDate,
	}
}
