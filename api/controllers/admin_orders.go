package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bakeria/bakeria-backend/api/responses"
	"github.com/bakeria/bakeria-backend/api/validators"
	ordersvc "github.com/bakeria/bakeria-backend/internal/orders"
	pkgerrors "github.com/bakeria/bakeria-backend/pkg/errors"
	"github.com/bakeria/bakeria-backend/pkg/logger"
)

const maxStatusLen = 64

// AdminOrdersList returns orders across all shoppers, optionally bounded to
// a day range via start/end query params (YYYY-MM-DD, inclusive).
func AdminOrdersList(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		start := validators.SanitizeString(r.URL.Query().Get("start"), maxStatusLen)
		end := validators.SanitizeString(r.URL.Query().Get("end"), maxStatusLen)

		orders, err := svc.ListAll(r.Context(), start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders)
	}
}

// AdminOrderUpdateStatus overwrites an order's fulfillment status.
func AdminOrderUpdateStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID := validators.SanitizeString(chi.URLParam(r, "userId"), maxOwnerIDLen)
		orderID := validators.SanitizeString(chi.URLParam(r, "orderId"), maxOwnerIDLen)

		var payload updateStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := validators.SanitizeString(payload.Status, maxStatusLen)

		order, err := svc.UpdateStatus(r.Context(), userID, orderID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
