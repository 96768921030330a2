package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bakeria/bakeria-backend/internal/events"
	"github.com/bakeria/bakeria-backend/internal/orders"
	"github.com/bakeria/bakeria-backend/pkg/enums"
	pkgerrors "github.com/bakeria/bakeria-backend/pkg/errors"
	"github.com/bakeria/bakeria-backend/pkg/types"
	"github.com/google/uuid"
)

const fallbackUserName = "Unknown"

// CartStore is the slice of the cart store checkout consumes.
type CartStore interface {
	Get(ctx context.Context, ownerID string) ([]types.CartLine, error)
	Delete(ctx context.Context, ownerID string) error
}

// OrderWriter persists the order produced by a conversion.
type OrderWriter interface {
	Insert(ctx context.Context, order *orders.Order) error
}

// Service converts a cart into an immutable order.
type Service interface {
	Checkout(ctx context.Context, ownerID, userName string, shipping types.ShippingInfo) (*orders.Order, error)
}

type service struct {
	carts    CartStore
	orders   OrderWriter
	events   events.Publisher
	location *time.Location

	now   func() time.Time
	newID func() string
}

// NewService builds the checkout service. The location formats the
// time-of-day display string stored on the order.
func NewService(carts CartStore, writer OrderWriter, publisher events.Publisher, location *time.Location) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if writer == nil {
		return nil, fmt.Errorf("order writer required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("event publisher required")
	}
	if location == nil {
		location = time.UTC
	}
	return &service{
		carts:    carts,
		orders:   writer,
		events:   publisher,
		location: location,
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

// Checkout validates shipping, snapshots the cart into an order row and then
// deletes the cart. The two writes are sequential and not transactional; a
// crash in between leaves both the order and the cart behind, which staff
// resolve manually.
func (s *service) Checkout(ctx context.Context, ownerID, userName string, shipping types.ShippingInfo) (*orders.Order, error) {
	owner := strings.TrimSpace(ownerID)
	if owner == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart owner id required")
	}

	if err := shipping.Validate(); err != nil {
		return nil, err
	}
	shipping = shipping.Normalized()

	lines, err := s.carts.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}

	name := strings.TrimSpace(userName)
	if name == "" {
		name = strings.TrimSpace(shipping.Name)
	}
	if name == "" {
		name = fallbackUserName
	}

	createdAt := s.now().UTC()
	order := &orders.Order{
		OrderID:   s.newID(),
		UserID:    owner,
		UserName:  name,
		CreatedAt: createdAt,
		TimeOfDay: createdAt.In(s.location).Format("15:04:05"),
		Items:     lines,
		Shipping:  shipping,
		Status:    enums.OrderStatusPending.String(),
		Total:     types.CartTotal(lines),
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}
	if err := s.carts.Delete(ctx, owner); err != nil {
		return nil, err
	}

	s.events.OrderCreated(ctx, events.OrderCreated{
		UserID:    order.UserID,
		OrderID:   order.OrderID,
		UserName:  order.UserName,
		Total:     order.Total,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	})

	return order, nil
}
