package ports

import (
	"context"

	"github.com/manhwalog/manhwa-api/internal/core/domain"
)

// ManhwaRepository handles catalog persistence.
type ManhwaRepository interface {
	Create(ctx context.Context, m *domain.Manhwa) error
	FindByID(ctx context.Context, id string) (*domain.Manhwa, error)
	FindByTitle(ctx context.Context, title string) (*domain.Manhwa, error)
	List(ctx context.Context) ([]domain.Manhwa, error)
	Update(ctx context.Context, id string, upd domain.ManhwaUpdate) (*domain.Manhwa, error)
	Delete(ctx context.Context, id string) error
}

// CreateManhwaInput is the data accepted for a new catalog entry.
type CreateManhwaInput struct {
	Title       string
	Description string
	CoverImage  string
}

// ManhwaLookup selects one entry by id or, when ID is empty, by exact title.
type ManhwaLookup struct {
	ID    string
	Title string
}

type ManhwaService interface {
	Create(ctx context.Context, in CreateManhwaInput) (*domain.Manhwa, error)
	Find(ctx context.Context, q ManhwaLookup) (*domain.Manhwa, error)
	List(ctx context.Context) ([]domain.Manhwa, error)
	Update(ctx context.Context, id string, upd domain.ManhwaUpdate) (*domain.Manhwa, error)
	Delete(ctx context.Context, id string) error
}
