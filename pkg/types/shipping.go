package types

import (
	"strings"

	"github.com/bakeria/bakeria-backend/pkg/enums"
	pkgerrors "github.com/bakeria/bakeria-backend/pkg/errors"
)

// ShippingInfo is the fulfillment contact captured at checkout. Address is
// required for delivery and ignored for pickup.
type ShippingInfo struct {
	Name    string               `json:"name"`
	Phone   string               `json:"phone"`
	Address string               `json:"address,omitempty"`
	Method  enums.ShippingMethod `json:"method"`
}

// Validate enforces the shipping invariant: name/phone present, method known,
// and a non-empty address when the method is delivery.
func (s ShippingInfo) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeInvalidShipping, "shipping name is required")
	}
	if strings.TrimSpace(s.Phone) == "" {
		return pkgerrors.New(pkgerrors.CodeInvalidShipping, "shipping phone is required")
	}
	if !s.Method.IsValid() {
		return pkgerrors.New(pkgerrors.CodeInvalidShipping, "shipping method must be pickup or delivery")
	}
	if s.Method == enums.ShippingMethodDelivery && strings.TrimSpace(s.Address) == "" {
		return pkgerrors.New(pkgerrors.CodeInvalidShipping, "address is required for delivery")
	}
	return nil
}

// Normalized returns a copy with the address cleared for pickup orders.
func (s ShippingInfo) Normalized() ShippingInfo {
	if s.Method == enums.ShippingMethodPickup {
		s.Address = ""
	}
	return s
}
