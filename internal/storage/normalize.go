// Implements schema coercion for raw spreadsheet rows.

package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"orderdesk/internal/models"
)

// dateLayouts are the accepted input formats for date columns, tried in
// order. Output is always YYYY-MM-DD.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01-02-06",
	"01/02/2006",
}

// fromRows coerces raw row mappings into typed orders.
//
// Every schema column is materialized: missing text becomes "", missing or
// non-numeric numbers become 0, and dates are reformatted to YYYY-MM-DD or
// emptied when unparsable. Unknown columns in the source are dropped. The
// output never contains null-like values, so it is always serializable to
// JSON without NaN/null placeholders. The pass is idempotent.
func fromRows(rows []map[string]any) []models.Order {
	orders := make([]models.Order, len(rows))
	for i, row := range rows {
		orders[i] = models.Order{
			Priority:        coerceInt(row[models.ColPriority]),
			Status:          coerceString(row[models.ColStatus]),
			ProductionOrder: coerceString(row[models.ColProductionOrder]),
			PartType:        coerceString(row[models.ColPartType]),
			PiecesFinished:  coerceInt(row[models.ColPiecesFinished]),
			PiecesIntended:  coerceInt(row[models.ColPiecesIntended]),
			DeliveryDate:    coerceDate(row[models.ColDeliveryDate]),
			ScheduledDate:   coerceDate(row[models.ColScheduledDate]),
		}
	}
	return orders
}

// toRows converts typed orders back to row mappings for the codec.
func toRows(orders []models.Order) []map[string]any {
	rows := make([]map[string]any, len(orders))
	for i, o := range orders {
		rows[i] = map[string]any{
			models.ColPriority:        o.Priority,
			models.ColStatus:          o.Status,
			models.ColProductionOrder: o.ProductionOrder,
			models.ColPartType:        o.PartType,
			models.ColPiecesFinished:  o.PiecesFinished,
			models.ColPiecesIntended:  o.PiecesIntended,
			models.ColDeliveryDate:    o.DeliveryDate,
			models.ColScheduledDate:   o.ScheduledDate,
		}
	}
	return rows
}

// cleanOrder re-applies the date coercion rules to an already-typed order.
// Numeric fields are typed ints and need no further cleaning.
func cleanOrder(o models.Order) models.Order {
	o.DeliveryDate = coerceDate(o.DeliveryDate)
	o.ScheduledDate = coerceDate(o.ScheduledDate)
	return o
}

// coerceInt converts a raw cell value to an integer. Fractional input
// truncates; anything non-numeric becomes 0.
func coerceInt(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return int(f)
	default:
		return 0
	}
}

// coerceString converts a raw cell value to text. Missing values become the
// empty string.
func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// coerceDate converts a raw cell value to a YYYY-MM-DD string, or "" when
// the value is missing or unparsable.
func coerceDate(v any) string {
	s := strings.TrimSpace(coerceString(v))
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
