package identity

import (
	"strings"

	"github.com/bakeria/bakeria-backend/pkg/auth"
	"github.com/bakeria/bakeria-backend/pkg/enums"
	pkgerrors "github.com/bakeria/bakeria-backend/pkg/errors"
)

// Principal is the resolved caller identity derived from a verified token.
//
// Shopper tokens carry a name claim and the "user" group; the name claim is
// the cart/order owner key. Staff tokens have no name claim and carry the
// admin or employee group; their subject is the identity key.
type Principal struct {
	UserID string
	Name   string
	Email  string
	Role   enums.ActorRole
}

// IsStaff reports whether the principal may use staff-only operations.
func (p Principal) IsStaff() bool {
	return p.Role.IsStaff()
}

// FromClaims derives a Principal from verified token claims.
func FromClaims(claims *auth.AccessTokenClaims) (*Principal, error) {
	if claims == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "token claims missing")
	}

	name := strings.TrimSpace(claims.Name)
	if name != "" {
		if !claims.HasGroup(enums.ActorRoleShopper.String()) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "named token lacks shopper group")
		}
		return &Principal{
			UserID: name,
			Name:   name,
			Email:  claims.Email,
			Role:   enums.ActorRoleShopper,
		}, nil
	}

	for _, role := range []enums.ActorRole{enums.ActorRoleAdmin, enums.ActorRoleEmployee} {
		if claims.HasGroup(role.String()) {
			subject := strings.TrimSpace(claims.Subject)
			if subject == "" {
				return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "staff token missing subject")
			}
			return &Principal{
				UserID: subject,
				Email:  claims.Email,
				Role:   role,
			}, nil
		}
	}

	return nil, pkgerrors.New(pkgerrors.CodeForbidden, "token groups grant no access")
}

// ResolveOwner picks the cart owner key for a request. An authenticated
// principal always wins over the anonymous cart id supplied by the client.
func ResolveOwner(p *Principal, anonID string) (string, error) {
	if p != nil && p.UserID != "" {
		return p.UserID, nil
	}
	anon := strings.TrimSpace(anonID)
	if anon == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart owner id required")
	}
	return anon, nil
}
