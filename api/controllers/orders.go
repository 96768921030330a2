package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bakeria/bakeria-backend/api/middleware"
	"github.com/bakeria/bakeria-backend/api/responses"
	"github.com/bakeria/bakeria-backend/api/validators"
	"github.com/bakeria/bakeria-backend/internal/identity"
	ordersvc "github.com/bakeria/bakeria-backend/internal/orders"
	pkgerrors "github.com/bakeria/bakeria-backend/pkg/errors"
	"github.com/bakeria/bakeria-backend/pkg/logger"
)

// OrdersListMine returns the authenticated shopper's order history, oldest
// first.
func OrdersListMine(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		owner, err := identity.ResolveOwner(middleware.PrincipalFromContext(r.Context()), "")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := svc.ListByUser(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders)
	}
}

// OrdersGetMine returns one of the shopper's own orders. A match under a
// different owner reads as not found.
func OrdersGetMine(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		owner, err := identity.ResolveOwner(middleware.PrincipalFromContext(r.Context()), "")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID := validators.SanitizeString(chi.URLParam(r, "orderId"), maxOwnerIDLen)

		order, err := svc.GetByID(r.Context(), owner, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}
