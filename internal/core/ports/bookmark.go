package ports

import (
	"context"

	"github.com/manhwalog/manhwa-api/internal/core/domain"
)

// BookmarkRepository handles bookmark persistence. Every lookup is scoped to
// the owning user.
type BookmarkRepository interface {
	Create(ctx context.Context, b *domain.Bookmark) error
	// ListByUser returns the user's bookmarks newest first with the manhwa
	// summary attached. A non-empty titleFilter matches titles
	// case-insensitively.
	ListByUser(ctx context.Context, userID, titleFilter string) ([]domain.Bookmark, error)
	UpdateChapter(ctx context.Context, userID, id string, chapter int) (*domain.Bookmark, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	DeleteByManhwa(ctx context.Context, manhwaID string) error
}

type AddBookmarkInput struct {
	ManhwaID string
	Chapter  int
}

type BookmarkService interface {
	Add(ctx context.Context, userID string, in AddBookmarkInput) (*domain.Bookmark, error)
	List(ctx context.Context, userID, titleFilter string) ([]domain.Bookmark, error)
	UpdateChapter(ctx context.Context, userID, id string, chapter int) (*domain.Bookmark, error)
	Delete(ctx context.Context, userID, id string) error
}
