package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/bakeria/bakeria-backend/api/middleware"
	"github.com/bakeria/bakeria-backend/api/responses"
	"github.com/bakeria/bakeria-backend/api/validators"
	cartsvc "github.com/bakeria/bakeria-backend/internal/cart"
	"github.com/bakeria/bakeria-backend/internal/identity"
	pkgerrors "github.com/bakeria/bakeria-backend/pkg/errors"
	"github.com/bakeria/bakeria-backend/pkg/logger"
	"github.com/bakeria/bakeria-backend/pkg/types"
)

const maxOwnerIDLen = 128

// CartGetMine returns the authenticated shopper's cart.
func CartGetMine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		owner, err := identity.ResolveOwner(middleware.PrincipalFromContext(r.Context()), "")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, err := svc.Get(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(owner, lines))
	}
}

// CartGetByOwner returns the cart for an explicit owner id. Anonymous
// storefronts use it with their locally generated cart id.
func CartGetByOwner(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		owner := validators.SanitizeString(chi.URLParam(r, "ownerId"), maxOwnerIDLen)
		if owner == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart owner id required"))
			return
		}

		lines, err := svc.Get(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(owner, lines))
	}
}

// CartAddItem adds a catalog product to the cart, incrementing the quantity
// when the product is already present.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		owner, err := identity.ResolveOwner(middleware.PrincipalFromContext(r.Context()), payload.AnonymousID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, err := svc.AddItem(r.Context(), owner, payload.ProductID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(owner, lines))
	}
}

// CartRemoveItem drops a product from the cart. Removing an absent product
// is a no-op.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		productID := validators.SanitizeString(chi.URLParam(r, "productId"), maxOwnerIDLen)
		anonID := r.URL.Query().Get("anonymous_id")

		owner, err := identity.ResolveOwner(middleware.PrincipalFromContext(r.Context()), anonID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, err := svc.RemoveItem(r.Context(), owner, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(owner, lines))
	}
}

// CartUpdateQuantity sets the absolute quantity for a line. Zero or negative
// quantities remove the line.
func CartUpdateQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		productID := validators.SanitizeString(chi.URLParam(r, "productId"), maxOwnerIDLen)

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		owner, err := identity.ResolveOwner(middleware.PrincipalFromContext(r.Context()), payload.AnonymousID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, err := svc.UpdateQuantity(r.Context(), owner, productID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(owner, lines))
	}
}

// CartClear empties the cart without deleting the owner row.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		anonID := r.URL.Query().Get("anonymous_id")
		owner, err := identity.ResolveOwner(middleware.PrincipalFromContext(r.Context()), anonID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, err := svc.Clear(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(owner, lines))
	}
}

// CartMerge folds an anonymous cart into the authenticated shopper's cart
// after sign-in.
func CartMerge(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		principal := middleware.PrincipalFromContext(r.Context())
		if principal == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign-in required to merge carts"))
			return
		}

		var payload mergeCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, err := svc.Merge(r.Context(), principal.UserID, payload.AnonymousID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(principal.UserID, lines))
	}
}

type addItemRequest struct {
	ProductID   string `json:"productId" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
	AnonymousID string `json:"anonymousId,omitempty"`
}

type updateQuantityRequest struct {
	Quantity    int    `json:"quantity"`
	AnonymousID string `json:"anonymousId,omitempty"`
}

type mergeCartRequest struct {
	AnonymousID string `json:"anonymousId" validate:"required"`
}

type cartResponse struct {
	OwnerID string           `json:"ownerId"`
	Items   []types.CartLine `json:"items"`
	Total   decimal.Decimal  `json:"total"`
}

func newCartResponse(ownerID string, lines []types.CartLine) cartResponse {
	if lines == nil {
		lines = []types.CartLine{}
	}
	return cartResponse{
		OwnerID: ownerID,
		Items:   lines,
		Total:   types.CartTotal(lines),
	}
}
