package orders

import (
	"encoding/json"
	"time"

	"github.com/bakeria/bakeria-backend/pkg/db/models"
	pkgerrors "github.com/bakeria/bakeria-backend/pkg/errors"
	"github.com/bakeria/bakeria-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// Order is the immutable record produced by checkout. Only Status may change
// after creation.
type Order struct {
	OrderID   string             `json:"orderId"`
	UserID    string             `json:"userId"`
	UserName  string             `json:"userName"`
	CreatedAt time.Time          `json:"createdAt"`
	TimeOfDay string             `json:"time"`
	Items     []types.CartLine   `json:"items"`
	Shipping  types.ShippingInfo `json:"shipping"`
	Status    string             `json:"status"`
	Total     decimal.Decimal    `json:"total"`
}

func toRecord(order *Order) (*models.OrderRecord, error) {
	items := order.Items
	if items == nil {
		items = []types.CartLine{}
	}
	itemsBlob, err := json.Marshal(items)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode order items")
	}
	shippingBlob, err := json.Marshal(order.Shipping)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode order shipping")
	}
	return &models.OrderRecord{
		UserID:    order.UserID,
		OrderID:   order.OrderID,
		UserName:  order.UserName,
		CreatedAt: order.CreatedAt,
		TimeOfDay: order.TimeOfDay,
		Items:     string(itemsBlob),
		Shipping:  string(shippingBlob),
		Status:    order.Status,
		Total:     order.Total,
	}, nil
}

func fromRecord(record *models.OrderRecord) (*Order, error) {
	order := &Order{
		OrderID:   record.OrderID,
		UserID:    record.UserID,
		UserName:  record.UserName,
		CreatedAt: record.CreatedAt,
		TimeOfDay: record.TimeOfDay,
		Status:    record.Status,
		Total:     record.Total,
		Items:     []types.CartLine{},
	}
	if record.Items != "" {
		if err := json.Unmarshal([]byte(record.Items), &order.Items); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode order items")
		}
		if order.Items == nil {
			order.Items = []types.CartLine{}
		}
	}
	if record.Shipping != "" {
		if err := json.Unmarshal([]byte(record.Shipping), &order.Shipping); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode order shipping")
		}
	}
	return order, nil
}
