// Package storage owns persistence for the production order collection.
//
// The collection is one spreadsheet file; there is no other state. Every
// operation is a full read-modify-write of that file: load, edit in memory,
// rewrite. There is no locking and no in-process cache, so concurrent
// mutating callers race and the later write wins. Callers that need safety
// must serialize mutations externally.
//
// The store's one invariant is dense ranking: after any successful persist,
// iterating the collection in stored order yields Priority values exactly
// 1..N, ordered by a stable sort of the input on ascending Priority.
// Caller-supplied priorities are only a sort key, never the stored truth.
package storage

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	"orderdesk/internal/models"
	"orderdesk/internal/xlsxtab"
)

var (
	// ErrIndexOutOfRange is returned for a positional operation whose index
	// does not name a record in the current read order.
	ErrIndexOutOfRange = errors.New("order index out of range")
	// ErrOrderNotFound is returned when no record matches the given
	// production order number.
	ErrOrderNotFound = errors.New("production order not found")
	// ErrEmptyNumberList is returned when a batch delete names no usable
	// order numbers.
	ErrEmptyNumberList = errors.New("empty production order list")
	// ErrMalformedDocument is returned when an import document cannot be
	// parsed. Nothing is written in that case.
	ErrMalformedDocument = errors.New("malformed import document")
)

// OrderService handles the priority-ordered production order collection
// backed by a single spreadsheet file.
type OrderService struct {
	path  string
	codec *xlsxtab.Codec
}

// NewOrderService creates a service bound to the given file path. The file
// itself is created lazily on first persist.
func NewOrderService(path string) (*OrderService, error) {
	codec, err := xlsxtab.NewCodec[models.Order]()
	if err != nil {
		return nil, err
	}
	return &OrderService{path: path, codec: codec}, nil
}

// Path returns the backing file path.
func (s *OrderService) Path() string {
	return s.path
}

// Load reads the whole collection in normalized order: cleaned, stably
// sorted by Priority and renumbered 1..N. The renumbering is in-memory
// only; Load never writes.
//
// A missing backing file is a valid empty collection. A decode failure is
// logged and collapsed into an empty collection as well; callers cannot
// tell the two apart without the log.
func (s *OrderService) Load(ctx context.Context) []models.Order {
	rows, err := s.codec.Read(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.WarnContext(ctx, "Order file does not exist, returning empty collection", "path", s.path)
		} else {
			slog.ErrorContext(ctx, "Failed to read order file", "path", s.path, "err", err)
		}
		return []models.Order{}
	}
	return rank(fromRows(rows))
}

// Persist cleans, re-ranks and writes the whole collection, replacing the
// file. The destination directory is created if needed.
func (s *OrderService) Persist(ctx context.Context, orders []models.Order) error {
	for i := range orders {
		orders[i] = cleanOrder(orders[i])
	}
	orders = rank(orders)
	if err := s.codec.Write(s.path, toRows(orders)); err != nil {
		slog.ErrorContext(ctx, "Failed to write order file", "path", s.path, "err", err)
		return fmt.Errorf("failed to persist orders: %w", err)
	}
	slog.InfoContext(ctx, "Persisted orders", "path", s.path, "count", len(orders))
	return nil
}

// Insert places the order at the rank named by its Priority, clamped to
// [1, N+1]; records at or after that rank shift one slot later. A missing
// priority appends.
func (s *OrderService) Insert(ctx context.Context, in models.OrderInput) error {
	orders := s.Load(ctx)
	total := len(orders)

	desired := total + 1
	if in.Priority != nil {
		desired = *in.Priority
	}
	desired = max(1, min(desired, total+1))

	idx := desired - 1
	spliced := make([]models.Order, 0, total+1)
	spliced = append(spliced, orders[:idx]...)
	spliced = append(spliced, in.Order(desired))
	spliced = append(spliced, orders[idx:]...)

	// Position is authoritative here: the candidate's rank has been placed,
	// so renumber by position before the persist re-rank (a no-op sort).
	for i := range spliced {
		spliced[i].Priority = i + 1
	}
	return s.Persist(ctx, spliced)
}

// ReplaceAt replaces the record at a 0-based position in the current read
// order. The replacement's Priority participates in the persist re-ranking
// like any other record; a missing priority sorts first.
func (s *OrderService) ReplaceAt(ctx context.Context, index int, in models.OrderInput) error {
	orders := s.Load(ctx)
	if index < 0 || index >= len(orders) {
		slog.ErrorContext(ctx, "Order index out of range", "index", index, "count", len(orders))
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	orders[index] = in.Order(0)
	return s.Persist(ctx, orders)
}

// RemoveAt removes the record at a 0-based position in the current read
// order; the remainder is renumbered 1..N-1 on persist.
func (s *OrderService) RemoveAt(ctx context.Context, index int) error {
	orders := s.Load(ctx)
	if index < 0 || index >= len(orders) {
		slog.ErrorContext(ctx, "Order index out of range", "index", index, "count", len(orders))
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return s.Persist(ctx, slices.Delete(orders, index, index+1))
}

// RemoveByNumber removes the first record whose trimmed production order
// number equals the trimmed key. When nothing matches, no write happens.
func (s *OrderService) RemoveByNumber(ctx context.Context, number string) error {
	target := strings.TrimSpace(number)
	orders := s.Load(ctx)
	for i, o := range orders {
		if strings.TrimSpace(o.ProductionOrder) == target {
			return s.Persist(ctx, slices.Delete(orders, i, i+1))
		}
	}
	slog.WarnContext(ctx, "Production order not found", "number", target)
	return fmt.Errorf("%w: %s", ErrOrderNotFound, target)
}

// RemoveBatch removes every record whose production order number appears in
// numbers. Duplicate and blank keys collapse; requested is the size of the
// resulting set. The whole batch is one load and one persist, so it cannot
// lose concurrent single-key deletes the way N sequential RemoveByNumber
// calls would.
//
// The unmatched remainder is persisted even when nothing matched; removed
// reports how many records were filtered out.
func (s *OrderService) RemoveBatch(ctx context.Context, numbers []string) (removed, requested int, err error) {
	targets := make(map[string]struct{}, len(numbers))
	for _, n := range numbers {
		if t := strings.TrimSpace(n); t != "" {
			targets[t] = struct{}{}
		}
	}
	if len(targets) == 0 {
		return 0, 0, ErrEmptyNumberList
	}

	orders := s.Load(ctx)
	kept := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if _, ok := targets[strings.TrimSpace(o.ProductionOrder)]; ok {
			removed++
		} else {
			kept = append(kept, o)
		}
	}
	if err := s.Persist(ctx, kept); err != nil {
		return removed, len(targets), err
	}
	return removed, len(targets), nil
}

// ExportJSON serializes the collection to a JSON document. Failures
// degrade to the representation of an empty collection.
func (s *OrderService) ExportJSON(ctx context.Context) string {
	orders := s.Load(ctx)
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		slog.ErrorContext(ctx, "Failed to export orders", "err", err)
		return "[]"
	}
	return string(data)
}

// ImportJSON parses a JSON document of row mappings and persists it as the
// whole collection. A malformed document yields an error with no write.
func (s *OrderService) ImportJSON(ctx context.Context, doc string) error {
	var rows []map[string]any
	if err := json.Unmarshal([]byte(doc), &rows); err != nil {
		slog.ErrorContext(ctx, "Failed to parse import document", "err", err)
		return fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return s.Persist(ctx, fromRows(rows))
}

// rank stably sorts by ascending Priority and renumbers 1..N in sorted
// order. Equal priorities keep their relative input order.
func rank(orders []models.Order) []models.Order {
	slices.SortStableFunc(orders, func(a, b models.Order) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
	for i := range orders {
		orders[i].Priority = i + 1
	}
	return orders
}
