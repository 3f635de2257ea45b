package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/manhwalog/manhwa-api/internal/core/domain"
)

var errUnexpectedAlg = errors.New("unexpected signing method")

// Verifier checks signature and expiry of incoming tokens.
type Verifier struct {
	cfg Config
	now Clock
}

// NewVerifier validates cfg and returns a Verifier.
func NewVerifier(cfg Config, opts ...Option) (*Verifier, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return &Verifier{cfg: cfg.withDefaults(), now: o.now}, nil
}

// VerifyAccess parses an access token signed with the access secret.
func (v *Verifier) VerifyAccess(token string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := v.Verify(token, v.cfg.AccessSecret, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

// VerifyRefresh parses a refresh token signed with the refresh secret.
func (v *Verifier) VerifyRefresh(token string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := v.Verify(token, v.cfg.RefreshSecret, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

// Verify parses token into claims using secret. Only HS256 is accepted and
// exp is mandatory. The returned error wraps one of domain.ErrExpiredToken,
// domain.ErrInvalidSignature or domain.ErrMalformedToken.
func (v *Verifier) Verify(token string, secret []byte, claims jwt.Claims) error {
	if token == "" {
		return domain.ErrMissingToken
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	}
	if v.cfg.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.cfg.Issuer))
	}

	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errUnexpectedAlg
		}
		return secret, nil
	}, parserOpts...)
	if err != nil {
		return classify(err)
	}
	if !tkn.Valid {
		return domain.ErrMalformedToken
	}
	return nil
}

// classify maps jwt parse errors onto the domain taxonomy. Anything not
// recognised is treated as malformed.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", domain.ErrExpiredToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}
}
