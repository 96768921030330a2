package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bakeria/bakeria-backend/internal/events"
	pkgerrors "github.com/bakeria/bakeria-backend/pkg/errors"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Service exposes the order query surface plus the staff status overwrite.
type Service interface {
	GetByID(ctx context.Context, ownerID, orderID string) (*Order, error)
	ListByUser(ctx context.Context, ownerID string) ([]Order, error)
	ListAll(ctx context.Context, startDate, endDate string) ([]Order, error)
	UpdateStatus(ctx context.Context, userID, orderID, status string) (*Order, error)
}

type service struct {
	store    Store
	events   events.Publisher
	location *time.Location
}

// NewService builds the order service. The location anchors the day bounds
// of the staff listing.
func NewService(store Store, publisher events.Publisher, location *time.Location) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("order store required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("event publisher required")
	}
	if location == nil {
		location = time.UTC
	}
	return &service{store: store, events: publisher, location: location}, nil
}

func (s *service) GetByID(ctx context.Context, ownerID, orderID string) (*Order, error) {
	owner := strings.TrimSpace(ownerID)
	if owner == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}
	id := strings.TrimSpace(orderID)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.store.FindByID(ctx, owner, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, orderNotFound(id)
		}
		return nil, err
	}
	return order, nil
}

func (s *service) ListByUser(ctx context.Context, ownerID string) ([]Order, error) {
	owner := strings.TrimSpace(ownerID)
	if owner == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}
	return s.store.ListByUser(ctx, owner)
}

func (s *service) ListAll(ctx context.Context, startDate, endDate string) ([]Order, error) {
	from, err := s.dayBound(startDate, false)
	if err != nil {
		return nil, err
	}
	to, err := s.dayBound(endDate, true)
	if err != nil {
		return nil, err
	}
	return s.store.ListAll(ctx, from, to)
}

func (s *service) UpdateStatus(ctx context.Context, userID, orderID, status string) (*Order, error) {
	user := strings.TrimSpace(userID)
	if user == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	id := strings.TrimSpace(orderID)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	next := strings.TrimSpace(status)
	if next == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status required")
	}

	// Status values are free-form; staff tooling owns the vocabulary.
	affected, err := s.store.UpdateStatus(ctx, user, id, next)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, orderNotFound(id)
	}

	s.events.OrderStatusChanged(ctx, events.OrderStatusChanged{
		UserID:  user,
		OrderID: id,
		Status:  next,
	})

	order, err := s.store.FindByID(ctx, user, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, orderNotFound(id)
		}
		return nil, err
	}
	return order, nil
}

// dayBound turns a YYYY-MM-DD value into the inclusive instant bounding that
// day in the configured zone. Empty input leaves the side open.
func (s *service) dayBound(date string, endOfDay bool) (*time.Time, error) {
	trimmed := strings.TrimSpace(date)
	if trimmed == "" {
		return nil, nil
	}
	day, err := time.ParseInLocation(dateLayout, trimmed, s.location)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date must be YYYY-MM-DD").
			WithDetails(map[string]string{"value": trimmed})
	}
	bound := day
	if endOfDay {
		bound = day.Add(24*time.Hour - time.Second)
	}
	bound = bound.UTC()
	return &bound, nil
}

func orderNotFound(orderID string) error {
	return pkgerrors.New(pkgerrors.CodeOrderNotFound, "order not found").
		WithDetails(map[string]string{"order_id": orderID})
}
