package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manhwalog/manhwa-api/internal/core/domain"
	"github.com/manhwalog/manhwa-api/internal/core/ports"
)

type bookmarkService struct {
	bookmarks ports.BookmarkRepository
	manhwa    ports.ManhwaRepository
	now       func() time.Time
}

// NewBookmarkService returns a BookmarkService implementation.
func NewBookmarkService(bookmarks ports.BookmarkRepository, manhwa ports.ManhwaRepository) ports.BookmarkService {
	return &bookmarkService{bookmarks: bookmarks, manhwa: manhwa, now: time.Now}
}

func (s *bookmarkService) Add(ctx context.Context, userID string, in ports.AddBookmarkInput) (*domain.Bookmark, error) {
	if in.Chapter < 0 {
		return nil, fmt.Errorf("add bookmark: %w", domain.ErrInvalidInput)
	}
	if in.Chapter == 0 {
		in.Chapter = 1
	}

	m, err := s.manhwa.FindByID(ctx, in.ManhwaID)
	if err != nil {
		return nil, fmt.Errorf("add bookmark: %w", err)
	}

	now := s.now().UTC()
	b := &domain.Bookmark{
		ID:        uuid.NewString(),
		UserID:    userID,
		ManhwaID:  m.ID,
		Chapter:   in.Chapter,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// A second bookmark on the same manhwa trips the (user_id, manhwa_id)
	// unique index and comes back as ErrAlreadyBookmarked.
	if err := s.bookmarks.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("add bookmark: %w", err)
	}

	b.Manhwa = &domain.ManhwaSummary{ID: m.ID, Title: m.Title, CoverImage: m.CoverImage}
	return b, nil
}

func (s *bookmarkService) List(ctx context.Context, userID, titleFilter string) ([]domain.Bookmark, error) {
	list, err := s.bookmarks.ListByUser(ctx, userID, titleFilter)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return list, nil
}

func (s *bookmarkService) UpdateChapter(ctx context.Context, userID, id string, chapter int) (*domain.Bookmark, error) {
	if chapter < 1 {
		return nil, fmt.Errorf("update bookmark: %w", domain.ErrInvalidInput)
	}
	b, err := s.bookmarks.UpdateChapter(ctx, userID, id, chapter)
	if err != nil {
		return nil, fmt.Errorf("update bookmark: %w", err)
	}
	return b, nil
}

func (s *bookmarkService) Delete(ctx context.Context, userID, id string) error {
	if err := s.bookmarks.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	return nil
}
