package ports

import (
	"context"

	"github.com/manhwalog/manhwa-api/internal/core/auth"
	"github.com/manhwalog/manhwa-api/internal/core/domain"
)

// RegisterInput is the data accepted for a new account. New accounts always
// get domain.RoleUser.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Tokens auth.TokenPair
	User   *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// LoginLimiter throttles failed logins per email.
type LoginLimiter interface {
	// Blocked reports whether the key has used up its attempts.
	Blocked(ctx context.Context, key string) (bool, error)
	// Fail records a failed attempt.
	Fail(ctx context.Context, key string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, key string) error
}
