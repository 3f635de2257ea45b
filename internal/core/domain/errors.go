package domain

import "errors"

// Authentication failures. All of them surface as 401.
var (
	ErrMissingToken     = errors.New("missing token")
	ErrMalformedToken   = errors.New("malformed token")
	ErrExpiredToken     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrUnknownUser      = errors.New("token subject not found")
)

// ErrInsufficientRole is returned by role gates (403).
var ErrInsufficientRole = errors.New("insufficient role")

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidInput       = errors.New("invalid input")
)

var (
	ErrManhwaNotFound    = errors.New("manhwa not found")
	ErrManhwaExists      = errors.New("manhwa already exists")
	ErrBookmarkNotFound  = errors.New("bookmark not found")
	ErrAlreadyBookmarked = errors.New("already bookmarked")
)

// IsAuthError reports whether err is one of the 401 token failures.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrUnknownUser)
}
