package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bakeria/bakeria-backend/pkg/db"
	"github.com/bakeria/bakeria-backend/pkg/db/models"
	pkgerrors "github.com/bakeria/bakeria-backend/pkg/errors"
	"github.com/bakeria/bakeria-backend/pkg/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists cart documents keyed by owner. Carts are whole-document
// replaced; a missing row reads as an empty cart.
type Store interface {
	Get(ctx context.Context, ownerID string) ([]types.CartLine, error)
	Replace(ctx context.Context, ownerID string, lines []types.CartLine) error
	Delete(ctx context.Context, ownerID string) error
}

type store struct {
	db *gorm.DB
}

// NewStore builds a cart store bound to the provided DB.
func NewStore(gdb *gorm.DB) Store {
	return &store{db: gdb}
}

func (s *store) Get(ctx context.Context, ownerID string) ([]types.CartLine, error) {
	var record models.CartRecord
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return []types.CartLine{}, nil
		}
		return nil, db.AsStoreError(err, "load cart")
	}
	return decodeLines(record.Items)
}

func (s *store) Replace(ctx context.Context, ownerID string, lines []types.CartLine) error {
	blob, err := encodeLines(lines)
	if err != nil {
		return err
	}
	record := models.CartRecord{
		OwnerID:   ownerID,
		Items:     blob,
		UpdatedAt: time.Now().UTC(),
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return db.AsStoreError(err, "replace cart")
	}
	return nil
}

func (s *store) Delete(ctx context.Context, ownerID string) error {
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&models.CartRecord{}).Error
	if err != nil {
		return db.AsStoreError(err, "delete cart")
	}
	return nil
}

func decodeLines(blob string) ([]types.CartLine, error) {
	if blob == "" {
		return []types.CartLine{}, nil
	}
	var lines []types.CartLine
	if err := json.Unmarshal([]byte(blob), &lines); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cart items")
	}
	if lines == nil {
		lines = []types.CartLine{}
	}
	return lines, nil
}

func encodeLines(lines []types.CartLine) (string, error) {
	if lines == nil {
		lines = []types.CartLine{}
	}
	blob, err := json.Marshal(lines)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart items")
	}
	return string(blob), nil
}
