package ports

import (
	"context"

	"github.com/manhwalog/manhwa-api/internal/core/domain"
)

// UpdateUserInput carries a profile change. CurrentPassword is required when
// Password is set.
type UpdateUserInput struct {
	Username        *string
	Email           *string
	Password        *string
	CurrentPassword string
}

// UserService covers account management. Every call takes the caller's
// identity so ownership can be enforced.
type UserService interface {
	Get(ctx context.Context, caller domain.Identity, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, caller domain.Identity, id string, in UpdateUserInput) (*domain.User, error)
	UpdateRole(ctx context.Context, caller domain.Identity, id string, role domain.Role) (*domain.User, error)
	Delete(ctx context.Context, caller domain.Identity, id string) error
}
