package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/manhwalog/manhwa-api/internal/api/handler"
	"github.com/manhwalog/manhwa-api/internal/core/domain"
)

type resolvedError struct {
	status int
	msg    string
	code   string
	// challenge is sent as WWW-Authenticate on 401 responses.
	challenge string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Collapses malformed, forged and orphaned tokens into one "Invalid token"
//     answer so callers cannot probe which accounts exist.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "code": "<code>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		re := resolveError(err, log, c)
		if re.challenge != "" {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, re.challenge)
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(re.status)
			return
		}
		_ = c.JSON(re.status, handler.ErrorResponse{Error: re.msg, Code: re.code})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) resolvedError {
	// Echo's own errors (bind failures, 404 from router, rate limiter, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return resolvedError{status: he.Code, msg: fmt.Sprintf("%v", he.Message)}
	}

	// Token failures first: they must never fall through to a 500.
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return resolvedError{
			status:    http.StatusUnauthorized,
			msg:       "Unauthorized: Missing token",
			code:      "missing_token",
			challenge: "Bearer",
		}
	case errors.Is(err, domain.ErrExpiredToken):
		return resolvedError{
			status:    http.StatusUnauthorized,
			msg:       "Access token expired",
			code:      "token_expired",
			challenge: `Bearer error="invalid_token", error_description="token expired"`,
		}
	case domain.IsAuthError(err):
		return resolvedError{
			status:    http.StatusUnauthorized,
			msg:       "Invalid token",
			code:      "invalid_token",
			challenge: `Bearer error="invalid_token"`,
		}
	case errors.Is(err, domain.ErrInsufficientRole):
		return resolvedError{status: http.StatusForbidden, msg: "Forbidden", code: "insufficient_role"}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return resolvedError{status: http.StatusForbidden, msg: "access forbidden", code: "forbidden"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return resolvedError{status: http.StatusUnauthorized, msg: "invalid credentials", code: "invalid_credentials"}
	case errors.Is(err, domain.ErrTooManyAttempts):
		return resolvedError{status: http.StatusTooManyRequests, msg: "too many login attempts, try again later", code: "too_many_attempts"}
	case errors.Is(err, domain.ErrInvalidInput):
		return resolvedError{status: http.StatusBadRequest, msg: err.Error(), code: "invalid_input"}
	case errors.Is(err, domain.ErrUserNotFound):
		return resolvedError{status: http.StatusNotFound, msg: "User not found", code: "user_not_found"}
	case errors.Is(err, domain.ErrUserExists):
		return resolvedError{status: http.StatusConflict, msg: "User already exists", code: "user_exists"}
	case errors.Is(err, domain.ErrManhwaNotFound):
		return resolvedError{status: http.StatusNotFound, msg: "Manhwa not found", code: "manhwa_not_found"}
	case errors.Is(err, domain.ErrManhwaExists):
		return resolvedError{status: http.StatusConflict, msg: "Manhwa already exists", code: "manhwa_exists"}
	case errors.Is(err, domain.ErrBookmarkNotFound):
		return resolvedError{status: http.StatusNotFound, msg: "Bookmark not found", code: "bookmark_not_found"}
	case errors.Is(err, domain.ErrAlreadyBookmarked):
		return resolvedError{status: http.StatusBadRequest, msg: "Already bookmarked", code: "already_bookmarked"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return resolvedError{status: http.StatusInternalServerError, msg: "internal server error"}
}
