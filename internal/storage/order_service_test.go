package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"orderdesk/internal/models"
)

func setupService(t *testing.T) *OrderService {
	t.Helper()
	svc, err := NewOrderService(filepath.Join(t.TempDir(), "orders.xlsx"))
	if err != nil {
		t.Fatal(err)
	}
	return svc
}

func intPtr(v int) *int {
	return &v
}

// seedSample persists three orders with gappy, unsorted priorities. After the
// persist re-rank they come back as FA_401002 (1), FA_401003 (2),
// FA_401001 (3).
func seedSample(t *testing.T, svc *OrderService) {
	t.Helper()
	orders := []models.Order{
		{Priority: 50, Status: "Active", ProductionOrder: "FA_401001_R2017", PartType: "4_318220", PiecesFinished: 2, PiecesIntended: 50, DeliveryDate: "2017-09-26"},
		{Priority: 10, Status: "Active", ProductionOrder: "FA_401002_R2017", PartType: "4_318220", PiecesFinished: 0, PiecesIntended: 20, DeliveryDate: "2017-10-04"},
		{Priority: 11, Status: "New", ProductionOrder: "FA_401003_R2016", PartType: "4_318220", PiecesFinished: 0, PiecesIntended: 30, DeliveryDate: "2017-10-04"},
	}
	if err := svc.Persist(context.Background(), orders); err != nil {
		t.Fatal(err)
	}
}

func orderNumbers(orders []models.Order) []string {
	numbers := make([]string, len(orders))
	for i, o := range orders {
		numbers[i] = o.ProductionOrder
	}
	return numbers
}

func checkOrder(t *testing.T, got []models.Order, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d orders %v, want %d %v", len(got), orderNumbers(got), len(want), want)
	}
	for i, number := range want {
		if got[i].ProductionOrder != number {
			t.Errorf("orders[%d] = %q, want %q (full: %v)", i, got[i].ProductionOrder, number, orderNumbers(got))
		}
		if got[i].Priority != i+1 {
			t.Errorf("orders[%d].Priority = %d, want %d", i, got[i].Priority, i+1)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	svc := setupService(t)
	orders := svc.Load(t.Context())
	if len(orders) != 0 {
		t.Errorf("Load on missing file = %v, want empty", orders)
	}
	if _, err := os.Stat(svc.Path()); !os.IsNotExist(err) {
		t.Errorf("Load created the backing file: %v", err)
	}
}

func TestPersistRanksDensely(t *testing.T) {
	svc := setupService(t)
	seedSample(t, svc)
	// Priorities 50, 10, 11 sort to 401002, 401003, 401001 ranked 1..3.
	checkOrder(t, svc.Load(t.Context()), "FA_401002_R2017", "FA_401003_R2016", "FA_401001_R2017")
}

func TestRankIsStable(t *testing.T) {
	svc := setupService(t)
	orders := []models.Order{
		{Priority: 5, ProductionOrder: "first"},
		{Priority: 5, ProductionOrder: "second"},
		{Priority: 5, ProductionOrder: "third"},
	}
	if err := svc.Persist(context.Background(), orders); err != nil {
		t.Fatal(err)
	}
	checkOrder(t, svc.Load(t.Context()), "first", "second", "third")
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name     string
		priority *int
		want     []string
	}{
		{"nil priority appends", nil, []string{"FA_401002_R2017", "FA_401003_R2016", "FA_401001_R2017", "NEW"}},
		{"zero clamps to first", intPtr(0), []string{"NEW", "FA_401002_R2017", "FA_401003_R2016", "FA_401001_R2017"}},
		{"negative clamps to first", intPtr(-7), []string{"NEW", "FA_401002_R2017", "FA_401003_R2016", "FA_401001_R2017"}},
		{"middle shifts the tail", intPtr(2), []string{"FA_401002_R2017", "NEW", "FA_401003_R2016", "FA_401001_R2017"}},
		{"oversized clamps to last", intPtr(999), []string{"FA_401002_R2017", "FA_401003_R2016", "FA_401001_R2017", "NEW"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setupService(t)
			seedSample(t, svc)
			in := models.OrderInput{Priority: tt.priority, ProductionOrder: "NEW", Status: "New"}
			if err := svc.Insert(context.Background(), in); err != nil {
				t.Fatal(err)
			}
			checkOrder(t, svc.Load(t.Context()), tt.want...)
		})
	}
}

func TestInsertIntoEmpty(t *testing.T) {
	svc := setupService(t)
	if err := svc.Insert(context.Background(), models.OrderInput{ProductionOrder: "ONLY"}); err != nil {
		t.Fatal(err)
	}
	checkOrder(t, svc.Load(t.Context()), "ONLY")
}

func TestReplaceAt(t *testing.T) {
	t.Run("keeps rank with explicit priority", func(t *testing.T) {
		svc := setupService(t)
		seedSample(t, svc)
		in := models.OrderInput{Priority: intPtr(2), ProductionOrder: "REPLACED", Status: "Paused"}
		if err := svc.ReplaceAt(context.Background(), 1, in); err != nil {
			t.Fatal(err)
		}
		got := svc.Load(t.Context())
		checkOrder(t, got, "FA_401002_R2017", "REPLACED", "FA_401001_R2017")
		if got[1].Status != "Paused" {
			t.Errorf("Status = %q, want Paused", got[1].Status)
		}
	})

	t.Run("missing priority sorts first", func(t *testing.T) {
		svc := setupService(t)
		seedSample(t, svc)
		in := models.OrderInput{ProductionOrder: "REPLACED"}
		if err := svc.ReplaceAt(context.Background(), 2, in); err != nil {
			t.Fatal(err)
		}
		checkOrder(t, svc.Load(t.Context()), "REPLACED", "FA_401002_R2017", "FA_401003_R2016")
	})

	t.Run("out of range leaves file unchanged", func(t *testing.T) {
		svc := setupService(t)
		seedSample(t, svc)
		before, err := os.ReadFile(svc.Path())
		if err != nil {
			t.Fatal(err)
		}
		for _, index := range []int{-1, 3, 100} {
			err := svc.ReplaceAt(context.Background(), index, models.OrderInput{ProductionOrder: "X"})
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("ReplaceAt(%d) error = %v, want ErrIndexOutOfRange", index, err)
			}
		}
		after, err := os.ReadFile(svc.Path())
		if err != nil {
			t.Fatal(err)
		}
		if string(before) != string(after) {
			t.Error("failed ReplaceAt rewrote the backing file")
		}
	})
}

func TestRemoveAt(t *testing.T) {
	t.Run("removes and renumbers", func(t *testing.T) {
		svc := setupService(t)
		seedSample(t, svc)
		if err := svc.RemoveAt(context.Background(), 0); err != nil {
			t.Fatal(err)
		}
		checkOrder(t, svc.Load(t.Context()), "FA_401003_R2016", "FA_401001_R2017")
	})

	t.Run("out of range", func(t *testing.T) {
		svc := setupService(t)
		seedSample(t, svc)
		for _, index := range []int{-1, 3} {
			if err := svc.RemoveAt(context.Background(), index); !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("RemoveAt(%d) error = %v, want ErrIndexOutOfRange", index, err)
			}
		}
		checkOrder(t, svc.Load(t.Context()), "FA_401002_R2017", "FA_401003_R2016", "FA_401001_R2017")
	})
}

func TestRemoveByNumber(t *testing.T) {
	t.Run("trims the key", func(t *testing.T) {
		svc := setupService(t)
		seedSample(t, svc)
		if err := svc.RemoveByNumber(context.Background(), "  FA_401003_R2016  "); err != nil {
			t.Fatal(err)
		}
		checkOrder(t, svc.Load(t.Context()), "FA_401002_R2017", "FA_401001_R2017")
	})

	t.Run("no match leaves file unchanged", func(t *testing.T) {
		svc := setupService(t)
		seedSample(t, svc)
		before, err := os.ReadFile(svc.Path())
		if err != nil {
			t.Fatal(err)
		}
		if err := svc.RemoveByNumber(context.Background(), "FA_999999_R2099"); !errors.Is(err, ErrOrderNotFound) {
			t.Errorf("RemoveByNumber error = %v, want ErrOrderNotFound", err)
		}
		after, err := os.ReadFile(svc.Path())
		if err != nil {
			t.Fatal(err)
		}
		if string(before) != string(after) {
			t.Error("failed RemoveByNumber rewrote the backing file")
		}
	})
}

func TestRemoveBatch(t *testing.T) {
	t.Run("partial match counts both sides", func(t *testing.T) {
		svc := setupService(t)
		seedSample(t, svc)
		numbers := []string{"FA_401003_R2016", "FA_401001_R2017", "FA_404040_R2099"}
		removed, requested, err := svc.RemoveBatch(context.Background(), numbers)
		if err != nil {
			t.Fatal(err)
		}
		if removed != 2 || requested != 3 {
			t.Errorf("RemoveBatch = (%d, %d), want (2, 3)", removed, requested)
		}
		checkOrder(t, svc.Load(t.Context()), "FA_401002_R2017")
	})

	t.Run("duplicates and blanks collapse", func(t *testing.T) {
		svc := setupService(t)
		seedSample(t, svc)
		numbers := []string{"FA_401002_R2017", " FA_401002_R2017 ", "", "  "}
		removed, requested, err := svc.RemoveBatch(context.Background(), numbers)
		if err != nil {
			t.Fatal(err)
		}
		if removed != 1 || requested != 1 {
			t.Errorf("RemoveBatch = (%d, %d), want (1, 1)", removed, requested)
		}
	})

	t.Run("no match still persists", func(t *testing.T) {
		svc := setupService(t)
		seedSample(t, svc)
		removed, requested, err := svc.RemoveBatch(context.Background(), []string{"nope"})
		if err != nil {
			t.Fatal(err)
		}
		if removed != 0 || requested != 1 {
			t.Errorf("RemoveBatch = (%d, %d), want (0, 1)", removed, requested)
		}
		checkOrder(t, svc.Load(t.Context()), "FA_401002_R2017", "FA_401003_R2016", "FA_401001_R2017")
	})

	t.Run("empty list", func(t *testing.T) {
		svc := setupService(t)
		seedSample(t, svc)
		if _, _, err := svc.RemoveBatch(context.Background(), []string{"", "   "}); !errors.Is(err, ErrEmptyNumberList) {
			t.Errorf("RemoveBatch error = %v, want ErrEmptyNumberList", err)
		}
	})
}

func TestExportImportRoundTrip(t *testing.T) {
	svc := setupService(t)
	seedSample(t, svc)
	doc := svc.ExportJSON(t.Context())

	var exported []models.Order
	if err := json.Unmarshal([]byte(doc), &exported); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	checkOrder(t, exported, "FA_401002_R2017", "FA_401003_R2016", "FA_401001_R2017")

	other := setupService(t)
	if err := other.ImportJSON(context.Background(), doc); err != nil {
		t.Fatal(err)
	}
	checkOrder(t, other.Load(t.Context()), "FA_401002_R2017", "FA_401003_R2016", "FA_401001_R2017")
}

func TestExportEmpty(t *testing.T) {
	svc := setupService(t)
	if doc := svc.ExportJSON(t.Context()); doc != "[]" {
		t.Errorf("ExportJSON = %q, want []", doc)
	}
}

func TestImportMalformed(t *testing.T) {
	svc := setupService(t)
	seedSample(t, svc)
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", "{{{"},
		{"wrong shape", `{"Priority": 1}`},
		{"array of scalars", `[1, 2, 3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.ImportJSON(context.Background(), tt.doc); !errors.Is(err, ErrMalformedDocument) {
				t.Errorf("ImportJSON(%q) error = %v, want ErrMalformedDocument", tt.doc, err)
			}
		})
	}
	// Nothing was written.
	checkOrder(t, svc.Load(t.Context()), "FA_401002_R2017", "FA_401003_R2016", "FA_401001_R2017")
}

func TestImportReplacesCollection(t *testing.T) {
	svc := setupService(t)
	seedSample(t, svc)
	doc := `[{"Priority": "7", "Production_order": "FA_500000_R2018", "Delivery_date": "2018-01-15 00:00:00"}]`
	if err := svc.ImportJSON(context.Background(), doc); err != nil {
		t.Fatal(err)
	}
	got := svc.Load(t.Context())
	checkOrder(t, got, "FA_500000_R2018")
	if got[0].DeliveryDate != "2018-01-15" {
		t.Errorf("DeliveryDate = %q, want 2018-01-15", got[0].DeliveryDate)
	}
}
