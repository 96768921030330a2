package cart

import (
	"context"
	"testing"

	"github.com/bakeria/bakeria-backend/internal/catalog"
	pkgerrors "github.com/bakeria/bakeria-backend/pkg/errors"
	"github.com/bakeria/bakeria-backend/pkg/types"
	"github.com/shopspring/decimal"
)

type stubStore struct {
	carts   map[string][]types.CartLine
	deleted []string
}

func newStubStore() *stubStore {
	return &stubStore{carts: map[string][]types.CartLine{}}
}

func (s *stubStore) Get(ctx context.Context, ownerID string) ([]types.CartLine, error) {
	lines, ok := s.carts[ownerID]
	if !ok {
		return []types.CartLine{}, nil
	}
	out := make([]types.CartLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (s *stubStore) Replace(ctx context.Context, ownerID string, lines []types.CartLine) error {
	stored := make([]types.CartLine, len(lines))
	copy(stored, lines)
	s.carts[ownerID] = stored
	return nil
}

func (s *stubStore) Delete(ctx context.Context, ownerID string) error {
	delete(s.carts, ownerID)
	s.deleted = append(s.deleted, ownerID)
	return nil
}

type stubCatalog struct {
	products map[string]catalog.Product
	calls    int
}

func (s *stubCatalog) Product(ctx context.Context, productID string) (*catalog.Product, error) {
	s.calls++
	p, ok := s.products[productID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeProductNotFound, "product not found")
	}
	return &p, nil
}

func price(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", value, err)
	}
	return d
}

func newTestService(t *testing.T, store Store, lookup catalog.Lookup) Service {
	t.Helper()
	svc, err := NewService(store, lookup)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func croissant(t *testing.T) catalog.Product {
	return catalog.Product{
		ID:       "croissant-01",
		Name:     "Butter Croissant",
		Price:    price(t, "45.50"),
		ImageURL: "https://img.test/croissant.jpg",
	}
}

func TestGetUnknownOwnerReturnsEmptyCart(t *testing.T) {
	svc := newTestService(t, newStubStore(), &stubCatalog{})

	lines, err := svc.Get(context.Background(), "anon-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines == nil || len(lines) != 0 {
		t.Fatalf("expected empty slice, got %#v", lines)
	}
}

func TestAddItemAppendsSnapshot(t *testing.T) {
	store := newStubStore()
	cat := &stubCatalog{products: map[string]catalog.Product{"croissant-01": croissant(t)}}
	svc := newTestService(t, store, cat)

	lines, err := svc.AddItem(context.Background(), "anon-1", "croissant-01", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	line := lines[0]
	if line.ProductID != "croissant-01" || line.Name != "Butter Croissant" || line.Quantity != 2 {
		t.Fatalf("unexpected line %+v", line)
	}
	if !line.Price.Equal(price(t, "45.50")) {
		t.Fatalf("unexpected price %s", line.Price)
	}
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	store := newStubStore()
	cheap := croissant(t)
	store.carts["anon-1"] = []types.CartLine{{
		ProductID: cheap.ID,
		Name:      cheap.Name,
		Price:     price(t, "40.00"),
		Quantity:  1,
	}}
	cat := &stubCatalog{products: map[string]catalog.Product{cheap.ID: cheap}}
	svc := newTestService(t, store, cat)

	lines, err := svc.AddItem(context.Background(), "anon-1", cheap.ID, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected single merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", lines[0].Quantity)
	}
	if !lines[0].Price.Equal(price(t, "40.00")) {
		t.Fatalf("existing line should keep its stored price, got %s", lines[0].Price)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	store := newStubStore()
	svc := newTestService(t, store, &stubCatalog{})

	_, err := svc.AddItem(context.Background(), "anon-1", "missing", 1)
	if !pkgerrors.IsCode(err, pkgerrors.CodeProductNotFound) {
		t.Fatalf("expected product-not-found, got %v", err)
	}
	if len(store.carts) != 0 {
		t.Fatalf("failed add must not write the cart")
	}
}

func TestAddItemValidation(t *testing.T) {
	svc := newTestService(t, newStubStore(), &stubCatalog{})

	cases := []struct {
		name    string
		owner   string
		product string
		qty     int
	}{
		{"missing owner", " ", "croissant-01", 1},
		{"missing product", "anon-1", "", 1},
		{"zero quantity", "anon-1", "croissant-01", 0},
		{"negative quantity", "anon-1", "croissant-01", -2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddItem(context.Background(), tc.owner, tc.product, tc.qty)
			if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	store := newStubStore()
	store.carts["anon-1"] = []types.CartLine{{ProductID: "croissant-01", Quantity: 2}}
	svc := newTestService(t, store, &stubCatalog{})

	lines, err := svc.RemoveItem(context.Background(), "anon-1", "croissant-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}

	lines, err = svc.RemoveItem(context.Background(), "anon-1", "croissant-01")
	if err != nil {
		t.Fatalf("second remove should be a no-op, got %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}
}

func TestUpdateQuantitySetsAbsoluteValue(t *testing.T) {
	store := newStubStore()
	store.carts["anon-1"] = []types.CartLine{{ProductID: "croissant-01", Quantity: 2}}
	svc := newTestService(t, store, &stubCatalog{})

	lines, err := svc.UpdateQuantity(context.Background(), "anon-1", "croissant-01", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0].Quantity != 7 {
		t.Fatalf("expected absolute quantity 7, got %d", lines[0].Quantity)
	}
}

func TestUpdateQuantityNonPositiveRemoves(t *testing.T) {
	store := newStubStore()
	store.carts["anon-1"] = []types.CartLine{
		{ProductID: "croissant-01", Quantity: 2},
		{ProductID: "baguette-02", Quantity: 1},
	}
	svc := newTestService(t, store, &stubCatalog{})

	lines, err := svc.UpdateQuantity(context.Background(), "anon-1", "croissant-01", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 || lines[0].ProductID != "baguette-02" {
		t.Fatalf("expected croissant removed, got %+v", lines)
	}
}

func TestUpdateQuantityAbsentItem(t *testing.T) {
	svc := newTestService(t, newStubStore(), &stubCatalog{})

	_, err := svc.UpdateQuantity(context.Background(), "anon-1", "croissant-01", 3)
	if !pkgerrors.IsCode(err, pkgerrors.CodeItemNotFound) {
		t.Fatalf("expected item-not-found, got %v", err)
	}
}

func TestMergeSumsOverlapAndPreservesOrder(t *testing.T) {
	store := newStubStore()
	store.carts["somchai"] = []types.CartLine{
		{ProductID: "croissant-01", Quantity: 1},
		{ProductID: "baguette-02", Quantity: 2},
	}
	store.carts["anon-1"] = []types.CartLine{
		{ProductID: "eclair-03", Quantity: 4},
		{ProductID: "croissant-01", Quantity: 2},
	}
	cat := &stubCatalog{}
	svc := newTestService(t, store, cat)

	lines, err := svc.Merge(context.Background(), "somchai", "anon-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []string{"croissant-01", "baguette-02", "eclair-03"}
	if len(lines) != len(wantOrder) {
		t.Fatalf("expected %d lines, got %d", len(wantOrder), len(lines))
	}
	for i, id := range wantOrder {
		if lines[i].ProductID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, lines[i].ProductID)
		}
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected summed quantity 3, got %d", lines[0].Quantity)
	}

	if _, ok := store.carts["anon-1"]; ok {
		t.Fatalf("source cart row should be deleted")
	}
	if cat.calls != 0 {
		t.Fatalf("merge must not hit the catalog")
	}
}

func TestMergeAbsentSourceLeavesTargetUntouched(t *testing.T) {
	store := newStubStore()
	store.carts["somchai"] = []types.CartLine{{ProductID: "croissant-01", Quantity: 1}}
	svc := newTestService(t, store, &stubCatalog{})

	lines, err := svc.Merge(context.Background(), "somchai", "anon-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 1 {
		t.Fatalf("expected untouched target, got %+v", lines)
	}
	if len(store.deleted) != 0 {
		t.Fatalf("empty merge should not delete anything")
	}
}

func TestClearKeepsEmptyDocument(t *testing.T) {
	store := newStubStore()
	store.carts["anon-1"] = []types.CartLine{{ProductID: "croissant-01", Quantity: 2}}
	svc := newTestService(t, store, &stubCatalog{})

	lines, err := svc.Clear(context.Background(), "anon-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}
	stored, ok := store.carts["anon-1"]
	if !ok {
		t.Fatalf("clear should keep the row as an empty document")
	}
	if len(stored) != 0 {
		t.Fatalf("expected stored empty document, got %+v", stored)
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(nil, &stubCatalog{}); err == nil {
		t.Fatalf("expected store requirement error")
	}
	if _, err := NewService(newStubStore(), nil); err == nil {
		t.Fatalf("expected catalog requirement error")
	}
}
