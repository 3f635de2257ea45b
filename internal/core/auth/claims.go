package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/manhwalog/manhwa-api/internal/core/domain"
)

var (
	errMissingUserID = errors.New("userId claim is empty")
	errInvalidRole   = errors.New("role claim is not a known role")
)

// AccessClaims is the payload of an access token.
type AccessClaims struct {
	UserID string      `json:"userId"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Validate is called by the jwt validator after the registered claims pass.
func (c AccessClaims) Validate() error {
	if c.UserID == "" {
		return errMissingUserID
	}
	if !c.Role.Valid() {
		return errInvalidRole
	}
	return nil
}

// Identity returns the identity the token was issued for. The role is the
// one at issuance time; callers that authorize should re-read it from the
// user store.
func (c AccessClaims) Identity() domain.Identity {
	return domain.Identity{ID: c.UserID, Role: c.Role}
}

// RefreshClaims is the payload of a refresh token. It carries no role so a
// refresh can never carry privileges that were not re-read from the store.
type RefreshClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

func (c RefreshClaims) Validate() error {
	if c.UserID == "" {
		return errMissingUserID
	}
	return nil
}
