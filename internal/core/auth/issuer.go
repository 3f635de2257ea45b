package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/manhwalog/manhwa-api/internal/core/domain"
)

// TokenPair is returned to the client on login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Issuer mints signed access and refresh tokens.
type Issuer struct {
	cfg Config
	now Clock
}

// NewIssuer validates cfg and returns an Issuer.
func NewIssuer(cfg Config, opts ...Option) (*Issuer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return &Issuer{cfg: cfg.withDefaults(), now: o.now}, nil
}

// IssueAccessToken signs {userId, role} with the access secret.
func (i *Issuer) IssueAccessToken(id domain.Identity) (string, error) {
	if id.ID == "" || !id.Role.Valid() {
		return "", fmt.Errorf("issue access token: %w", domain.ErrInvalidInput)
	}

	claims := AccessClaims{
		UserID:           id.ID,
		Role:             id.Role,
		RegisteredClaims: i.registered(id.ID, i.cfg.AccessTTL),
	}
	return sign(claims, i.cfg.AccessSecret)
}

// IssueRefreshToken signs {userId} with the refresh secret. Each token gets a
// unique jti.
func (i *Issuer) IssueRefreshToken(id domain.Identity) (string, error) {
	if id.ID == "" {
		return "", fmt.Errorf("issue refresh token: %w", domain.ErrInvalidInput)
	}

	claims := RefreshClaims{
		UserID:           id.ID,
		RegisteredClaims: i.registered(id.ID, i.cfg.RefreshTTL),
	}
	claims.ID = uuid.NewString()
	return sign(claims, i.cfg.RefreshSecret)
}

// IssuePair mints both tokens for id.
func (i *Issuer) IssuePair(id domain.Identity) (TokenPair, error) {
	access, err := i.IssueAccessToken(id)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := i.IssueRefreshToken(id)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (i *Issuer) registered(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := i.now()
	return jwt.RegisteredClaims{
		Issuer:    i.cfg.Issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func sign(claims jwt.Claims, secret []byte) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
