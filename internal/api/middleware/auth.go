package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/manhwalog/manhwa-api/internal/core/auth"
	"github.com/manhwalog/manhwa-api/internal/core/domain"
	"github.com/manhwalog/manhwa-api/internal/core/ports"
	"github.com/manhwalog/manhwa-api/internal/pkg/metrics"
)

// AccessVerifier is satisfied by *auth.Verifier.
type AccessVerifier interface {
	VerifyAccess(token string) (*auth.AccessClaims, error)
}

// Authenticate resolves the bearer token into a domain.Identity and attaches
// it to the request context. The role is re-read from the store so role
// changes and deletions take effect before the token expires.
//
// Every failure is returned as an error for the central error handler; next
// is only called once an identity is attached.
func Authenticate(verifier AccessVerifier, finder ports.IdentityFinder, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrMissingToken
			}

			claims, err := verifier.VerifyAccess(token)
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, domain.ErrExpiredToken) {
					reason = "token_expired"
				}
				metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
				log.Debug().Err(err).Str("path", c.Path()).Msg("access token rejected")
				return err
			}

			ctx := c.Request().Context()
			identity, err := finder.FindIdentityByID(ctx, claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.AuthRejectionsTotal.WithLabelValues("unknown_user").Inc()
					return domain.ErrUnknownUser
				}
				return fmt.Errorf("resolve identity: %w", err)
			}

			c.SetRequest(c.Request().WithContext(WithIdentity(ctx, *identity)))
			return next(c)
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
