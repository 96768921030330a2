package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bakeria/bakeria-backend/pkg/enums"
	"github.com/bakeria/bakeria-backend/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:orders_%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS bakeria_orders (
  user_id     TEXT NOT NULL,
  order_id    TEXT NOT NULL,
  user_name   TEXT NOT NULL DEFAULT 'Unknown',
  created_at  DATETIME NOT NULL,
  time_of_day TEXT NOT NULL DEFAULT '',
  items       TEXT NOT NULL DEFAULT '[]',
  shipping    TEXT NOT NULL DEFAULT '{}',
  status      TEXT NOT NULL DEFAULT 'pending',
  total       NUMERIC NOT NULL DEFAULT 0,
  PRIMARY KEY (user_id, order_id)
);`
	require.NoError(t, gdb.Exec(schema).Error)
	return gdb
}

func sampleOrder(userID, orderID string, createdAt time.Time) *Order {
	return &Order{
		OrderID:   orderID,
		UserID:    userID,
		UserName:  "Somchai J.",
		CreatedAt: createdAt,
		TimeOfDay: createdAt.Format("15:04:05"),
		Items: []types.CartLine{
			{
				ProductID: "croissant-01",
				Name:      "Butter Croissant",
				Price:     decimal.RequireFromString("45.50"),
				Quantity:  2,
			},
		},
		Shipping: types.ShippingInfo{
			Name:    "Somchai J.",
			Phone:   "0812345678",
			Address: "12 Sukhumvit Rd",
			Method:  enums.ShippingMethodDelivery,
		},
		Status: "pending",
		Total:  decimal.RequireFromString("91.00"),
	}
}

func TestStoreInsertAndFindRoundTrip(t *testing.T) {
	store := NewStore(setupOrdersTestDB(t))
	ctx := context.Background()
	createdAt := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	require.NoError(t, store.Insert(ctx, sampleOrder("somchai", "order-1", createdAt)))

	got, err := store.FindByID(ctx, "somchai", "order-1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", got.OrderID)
	assert.Equal(t, "Somchai J.", got.UserName)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "croissant-01", got.Items[0].ProductID)
	assert.True(t, got.Items[0].Price.Equal(decimal.RequireFromString("45.50")))
	assert.Equal(t, enums.ShippingMethodDelivery, got.Shipping.Method)
	assert.Equal(t, "12 Sukhumvit Rd", got.Shipping.Address)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("91.00")))
}

func TestStoreFindByIDScopesToOwner(t *testing.T) {
	store := NewStore(setupOrdersTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, sampleOrder("somchai", "order-1", time.Now().UTC())))

	_, err := store.FindByID(ctx, "somebody-else", "order-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStoreListByUserAscending(t *testing.T) {
	store := NewStore(setupOrdersTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Insert(ctx, sampleOrder("somchai", "order-2", base.Add(time.Hour))))
	require.NoError(t, store.Insert(ctx, sampleOrder("somchai", "order-1", base)))
	require.NoError(t, store.Insert(ctx, sampleOrder("other", "order-3", base)))

	got, err := store.ListByUser(ctx, "somchai")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "order-1", got[0].OrderID)
	assert.Equal(t, "order-2", got[1].OrderID)
}

func TestStoreListAllDateBounds(t *testing.T) {
	store := NewStore(setupOrdersTestDB(t))
	ctx := context.Background()

	day1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	day3 := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.Insert(ctx, sampleOrder("a", "order-1", day1)))
	require.NoError(t, store.Insert(ctx, sampleOrder("b", "order-2", day2)))
	require.NoError(t, store.Insert(ctx, sampleOrder("c", "order-3", day3)))

	from := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 2, 23, 59, 59, 0, time.UTC)

	got, err := store.ListAll(ctx, &from, &to)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "order-2", got[0].OrderID)

	got, err = store.ListAll(ctx, &from, nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = store.ListAll(ctx, nil, &to)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = store.ListAll(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestStoreUpdateStatus(t *testing.T) {
	store := NewStore(setupOrdersTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, sampleOrder("somchai", "order-1", time.Now().UTC())))

	affected, err := store.UpdateStatus(ctx, "somchai", "order-1", "Ready")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := store.FindByID(ctx, "somchai", "order-1")
	require.NoError(t, err)
	assert.Equal(t, "Ready", got.Status)

	affected, err = store.UpdateStatus(ctx, "somchai", "order-missing", "Ready")
	require.NoError(t, err)
	assert.Zero(t, affected)
}
