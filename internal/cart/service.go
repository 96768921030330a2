package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/bakeria/bakeria-backend/internal/catalog"
	pkgerrors "github.com/bakeria/bakeria-backend/pkg/errors"
	"github.com/bakeria/bakeria-backend/pkg/types"
)

// Service owns the cart document lifecycle. Every mutation is a
// read-modify-write of the whole document; concurrent writers are
// last-writer-wins.
type Service interface {
	Get(ctx context.Context, ownerID string) ([]types.CartLine, error)
	AddItem(ctx context.Context, ownerID, productID string, quantity int) ([]types.CartLine, error)
	RemoveItem(ctx context.Context, ownerID, productID string) ([]types.CartLine, error)
	UpdateQuantity(ctx context.Context, ownerID, productID string, quantity int) ([]types.CartLine, error)
	Merge(ctx context.Context, targetOwner, sourceOwner string) ([]types.CartLine, error)
	Clear(ctx context.Context, ownerID string) ([]types.CartLine, error)
}

type service struct {
	store   Store
	catalog catalog.Lookup
}

// NewService builds the cart service with its required dependencies.
func NewService(store Store, lookup catalog.Lookup) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if lookup == nil {
		return nil, fmt.Errorf("catalog lookup required")
	}
	return &service{store: store, catalog: lookup}, nil
}

func (s *service) Get(ctx context.Context, ownerID string) ([]types.CartLine, error) {
	owner, err := requireOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return s.store.Get(ctx, owner)
}

func (s *service) AddItem(ctx context.Context, ownerID, productID string, quantity int) ([]types.CartLine, error) {
	owner, err := requireOwner(ownerID)
	if err != nil {
		return nil, err
	}
	product := strings.TrimSpace(productID)
	if product == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	snapshot, err := s.catalog.Product(ctx, product)
	if err != nil {
		return nil, err
	}

	lines, err := s.store.Get(ctx, owner)
	if err != nil {
		return nil, err
	}

	if idx := indexOf(lines, product); idx >= 0 {
		// Existing lines keep the snapshot captured at first add.
		lines[idx].Quantity += quantity
	} else {
		lines = append(lines, types.CartLine{
			ProductID: snapshot.ID,
			Name:      snapshot.Name,
			Price:     snapshot.Price,
			ImageURL:  snapshot.ImageURL,
			Quantity:  quantity,
		})
	}

	if err := s.store.Replace(ctx, owner, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *service) RemoveItem(ctx context.Context, ownerID, productID string) ([]types.CartLine, error) {
	owner, err := requireOwner(ownerID)
	if err != nil {
		return nil, err
	}
	product := strings.TrimSpace(productID)
	if product == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	lines, err := s.store.Get(ctx, owner)
	if err != nil {
		return nil, err
	}

	idx := indexOf(lines, product)
	if idx < 0 {
		// Removing an absent product is a no-op.
		return lines, nil
	}
	lines = append(lines[:idx], lines[idx+1:]...)

	if err := s.store.Replace(ctx, owner, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *service) UpdateQuantity(ctx context.Context, ownerID, productID string, quantity int) ([]types.CartLine, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, ownerID, productID)
	}

	owner, err := requireOwner(ownerID)
	if err != nil {
		return nil, err
	}
	product := strings.TrimSpace(productID)
	if product == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	lines, err := s.store.Get(ctx, owner)
	if err != nil {
		return nil, err
	}

	idx := indexOf(lines, product)
	if idx < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeItemNotFound, "item not in cart").
			WithDetails(map[string]string{"product_id": product})
	}
	lines[idx].Quantity = quantity

	if err := s.store.Replace(ctx, owner, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *service) Merge(ctx context.Context, targetOwner, sourceOwner string) ([]types.CartLine, error) {
	target, err := requireOwner(targetOwner)
	if err != nil {
		return nil, err
	}
	source := strings.TrimSpace(sourceOwner)
	if source == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "source cart id required")
	}
	if source == target {
		return s.store.Get(ctx, target)
	}

	sourceLines, err := s.store.Get(ctx, source)
	if err != nil {
		return nil, err
	}
	targetLines, err := s.store.Get(ctx, target)
	if err != nil {
		return nil, err
	}

	if len(sourceLines) == 0 {
		return targetLines, nil
	}

	// Target order first, then source-only lines in source order. Snapshots
	// are carried over as stored, never re-resolved against the catalog.
	merged := targetLines
	for _, line := range sourceLines {
		if idx := indexOf(merged, line.ProductID); idx >= 0 {
			merged[idx].Quantity += line.Quantity
			continue
		}
		merged = append(merged, line)
	}

	if err := s.store.Replace(ctx, target, merged); err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, source); err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *service) Clear(ctx context.Context, ownerID string) ([]types.CartLine, error) {
	owner, err := requireOwner(ownerID)
	if err != nil {
		return nil, err
	}
	empty := []types.CartLine{}
	if err := s.store.Replace(ctx, owner, empty); err != nil {
		return nil, err
	}
	return empty, nil
}

func requireOwner(ownerID string) (string, error) {
	owner := strings.TrimSpace(ownerID)
	if owner == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart owner id required")
	}
	return owner, nil
}

func indexOf(lines []types.CartLine, productID string) int {
	for i, line := range lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
