package orders

import (
	"context"
	"time"

	"github.com/bakeria/bakeria-backend/pkg/db"
	"github.com/bakeria/bakeria-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Store persists order rows. Items and shipping round-trip through opaque
// text blobs; reads deserialize on every call.
type Store interface {
	Insert(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, userID, orderID string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListAll(ctx context.Context, from, to *time.Time) ([]Order, error)
	UpdateStatus(ctx context.Context, userID, orderID, status string) (int64, error)
}

type store struct {
	db *gorm.DB
}

// NewStore builds an order store bound to the provided DB.
func NewStore(gdb *gorm.DB) Store {
	return &store{db: gdb}
}

func (s *store) Insert(ctx context.Context, order *Order) error {
	record, err := toRecord(order)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return db.AsStoreError(err, "insert order")
	}
	return nil
}

func (s *store) FindByID(ctx context.Context, userID, orderID string) (*Order, error) {
	var record models.OrderRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND order_id = ?", userID, orderID).
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, db.AsStoreError(err, "load order")
	}
	return fromRecord(&record)
}

func (s *store) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	var records []models.OrderRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, db.AsStoreError(err, "list user orders")
	}
	return recordsToOrders(records)
}

func (s *store) ListAll(ctx context.Context, from, to *time.Time) ([]Order, error) {
	query := s.db.WithContext(ctx).Model(&models.OrderRecord{})
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}

	var records []models.OrderRecord
	if err := query.Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, db.AsStoreError(err, "list all orders")
	}
	return recordsToOrders(records)
}

func (s *store) UpdateStatus(ctx context.Context, userID, orderID, status string) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&models.OrderRecord{}).
		Where("user_id = ? AND order_id = ?", userID, orderID).
		Update("status", status)
	if result.Error != nil {
		return 0, db.AsStoreError(result.Error, "update order status")
	}
	return result.RowsAffected, nil
}

func recordsToOrders(records []models.OrderRecord) ([]Order, error) {
	orders := make([]Order, 0, len(records))
	for i := range records {
		order, err := fromRecord(&records[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}
