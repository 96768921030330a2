package db

import (
	"context"
	"errors"

	pkgerrors "github.com/bakeria/bakeria-backend/pkg/errors"
	"gorm.io/gorm"
)

// AsStoreError classifies a storage failure. Record misses stay as-is for the
// caller to translate; everything else surfaces as STORE_UNAVAILABLE so the
// engines never leak driver errors.
func AsStoreError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, op+" timed out")
	}
	return pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, op+" failed")
}
