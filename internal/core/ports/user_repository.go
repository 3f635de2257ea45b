package ports

import (
	"context"

	"github.com/manhwalog/manhwa-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, upd domain.UserUpdate) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	Delete(ctx context.Context, id string) error

	IdentityFinder
}

// IdentityFinder loads only the authorization attributes of a user. It
// returns domain.ErrUserNotFound when the id no longer exists.
type IdentityFinder interface {
	FindIdentityByID(ctx context.Context, id string) (*domain.Identity, error)
}
