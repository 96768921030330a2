package controllers

import (
	"net/http"

	"github.com/bakeria/bakeria-backend/api/middleware"
	"github.com/bakeria/bakeria-backend/api/responses"
	"github.com/bakeria/bakeria-backend/api/validators"
	checkoutsvc "github.com/bakeria/bakeria-backend/internal/checkout"
	pkgerrors "github.com/bakeria/bakeria-backend/pkg/errors"
	"github.com/bakeria/bakeria-backend/pkg/logger"
	"github.com/bakeria/bakeria-backend/pkg/types"
)

// Checkout converts the shopper's cart into an order.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		principal := middleware.PrincipalFromContext(r.Context())
		if principal == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign-in required for checkout"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userName := validators.SanitizeString(payload.UserName, maxOwnerIDLen)

		order, err := svc.Checkout(r.Context(), principal.UserID, userName, payload.Shipping)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

type checkoutRequest struct {
	UserName string             `json:"userName,omitempty"`
	Shipping types.ShippingInfo `json:"shipping" validate:"required"`
}
