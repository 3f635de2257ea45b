package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/manhwalog/manhwa-api/internal/core/domain"
	"github.com/manhwalog/manhwa-api/internal/core/ports"
)

type manhwaService struct {
	repo      ports.ManhwaRepository
	bookmarks ports.BookmarkRepository
	log       zerolog.Logger
	now       func() time.Time
}

// NewManhwaService returns a ManhwaService implementation.
func NewManhwaService(repo ports.ManhwaRepository, bookmarks ports.BookmarkRepository, log zerolog.Logger) ports.ManhwaService {
	return &manhwaService{repo: repo, bookmarks: bookmarks, log: log, now: time.Now}
}

// minTitleLen is counted in runes after trimming.
const minTitleLen = 3

func normalizeTitle(raw string) (string, bool) {
	title := strings.TrimSpace(raw)
	return title, utf8.RuneCountInString(title) >= minTitleLen
}

func (s *manhwaService) Create(ctx context.Context, in ports.CreateManhwaInput) (*domain.Manhwa, error) {
	title, ok := normalizeTitle(in.Title)
	if !ok {
		return nil, fmt.Errorf("create manhwa: %w", domain.ErrInvalidInput)
	}

	// Fast path; the unique index on title settles races.
	if _, err := s.repo.FindByTitle(ctx, title); err == nil {
		return nil, domain.ErrManhwaExists
	} else if !errors.Is(err, domain.ErrManhwaNotFound) {
		return nil, fmt.Errorf("create manhwa: %w", err)
	}

	now := s.now().UTC()
	m := &domain.Manhwa{
		ID:          uuid.NewString(),
		Title:       title,
		Description: in.Description,
		CoverImage:  in.CoverImage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create manhwa: %w", err)
	}
	return m, nil
}

func (s *manhwaService) Find(ctx context.Context, q ports.ManhwaLookup) (*domain.Manhwa, error) {
	var (
		m   *domain.Manhwa
		err error
	)
	switch {
	case q.ID != "":
		m, err = s.repo.FindByID(ctx, q.ID)
	case q.Title != "":
		m, err = s.repo.FindByTitle(ctx, q.Title)
	default:
		return nil, fmt.Errorf("find manhwa: id or title is required: %w", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("find manhwa: %w", err)
	}
	return m, nil
}

func (s *manhwaService) List(ctx context.Context) ([]domain.Manhwa, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list manhwa: %w", err)
	}
	return list, nil
}

func (s *manhwaService) Update(ctx context.Context, id string, upd domain.ManhwaUpdate) (*domain.Manhwa, error) {
	if upd.Title != nil {
		title, ok := normalizeTitle(*upd.Title)
		if !ok {
			return nil, fmt.Errorf("update manhwa: %w", domain.ErrInvalidInput)
		}
		existing, err := s.repo.FindByTitle(ctx, title)
		switch {
		case err == nil && existing.ID != id:
			return nil, domain.ErrManhwaExists
		case err != nil && !errors.Is(err, domain.ErrManhwaNotFound):
			return nil, fmt.Errorf("update manhwa: %w", err)
		}
		upd.Title = &title
	}

	m, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("update manhwa: %w", err)
	}
	return m, nil
}

func (s *manhwaService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete manhwa: %w", err)
	}
	if err := s.bookmarks.DeleteByManhwa(ctx, id); err != nil {
		s.log.Error().Err(err).Str("manhwa_id", id).Msg("failed to delete bookmarks of removed manhwa")
	}
	return nil
}
