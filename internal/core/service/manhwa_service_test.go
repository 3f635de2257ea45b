package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/manhwalog/manhwa-api/internal/core/domain"
	"github.com/manhwalog/manhwa-api/internal/core/ports"
)

func TestManhwaService_Create(t *testing.T) {
	repo := newStubManhwaRepo()
	svc := NewManhwaService(repo, newStubBookmarkRepo(), zerolog.Nop())
	ctx := context.Background()

	m, err := svc.Create(ctx, ports.CreateManhwaInput{Title: "  Solo Leveling ", Description: "Hunters"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if m.ID == "" || m.Title != "Solo Leveling" || m.CreatedAt.IsZero() {
		t.Fatalf("unexpected manhwa %+v", m)
	}

	if _, err := svc.Create(ctx, ports.CreateManhwaInput{Title: "Solo Leveling"}); !errors.Is(err, domain.ErrManhwaExists) {
		t.Fatalf("expected ErrManhwaExists, got %v", err)
	}
	if _, err := svc.Create(ctx, ports.CreateManhwaInput{Title: "   "}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestManhwaService_Find(t *testing.T) {
	repo := newStubManhwaRepo()
	repo.seed(domain.Manhwa{ID: "m-1", Title: "Tower of God"})
	svc := NewManhwaService(repo, newStubBookmarkRepo(), zerolog.Nop())
	ctx := context.Background()

	if m, err := svc.Find(ctx, ports.ManhwaLookup{ID: "m-1"}); err != nil || m.Title != "Tower of God" {
		t.Fatalf("by id: %+v %v", m, err)
	}
	if m, err := svc.Find(ctx, ports.ManhwaLookup{Title: "Tower of God"}); err != nil || m.ID != "m-1" {
		t.Fatalf("by title: %+v %v", m, err)
	}
	if _, err := svc.Find(ctx, ports.ManhwaLookup{ID: "m-9"}); !errors.Is(err, domain.ErrManhwaNotFound) {
		t.Fatalf("expected ErrManhwaNotFound, got %v", err)
	}
	if _, err := svc.Find(ctx, ports.ManhwaLookup{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestManhwaService_Update_TitleClash(t *testing.T) {
	repo := newStubManhwaRepo()
	repo.seed(domain.Manhwa{ID: "m-1", Title: "Tower of God"})
	repo.seed(domain.Manhwa{ID: "m-2", Title: "The Breaker"})
	svc := NewManhwaService(repo, newStubBookmarkRepo(), zerolog.Nop())
	ctx := context.Background()

	title := "Tower of God"
	if _, err := svc.Update(ctx, "m-2", domain.ManhwaUpdate{Title: &title}); !errors.Is(err, domain.ErrManhwaExists) {
		t.Fatalf("expected ErrManhwaExists, got %v", err)
	}
	// Keeping its own title is not a clash.
	if _, err := svc.Update(ctx, "m-1", domain.ManhwaUpdate{Title: &title}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := svc.Update(ctx, "m-9", domain.ManhwaUpdate{}); !errors.Is(err, domain.ErrManhwaNotFound) {
		t.Fatalf("expected ErrManhwaNotFound, got %v", err)
	}
}

func TestManhwaService_RejectsShortTitles(t *testing.T) {
	repo := newStubManhwaRepo()
	repo.seed(domain.Manhwa{ID: "m-1", Title: "Tower of God"})
	svc := NewManhwaService(repo, newStubBookmarkRepo(), zerolog.Nop())
	ctx := context.Background()

	for _, title := range []string{"", "     ", "  ab  ", "\t漫\n"} {
		title := title
		if _, err := svc.Update(ctx, "m-1", domain.ManhwaUpdate{Title: &title}); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("update %q: expected ErrInvalidInput, got %v", title, err)
		}
		if _, err := svc.Create(ctx, ports.CreateManhwaInput{Title: title}); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("create %q: expected ErrInvalidInput, got %v", title, err)
		}
	}
	if got := repo.items["m-1"].Title; got != "Tower of God" {
		t.Fatalf("stored title changed to %q", got)
	}

	// Three runes is enough, even when they are multi-byte.
	short := " 나혼렙 "
	m, err := svc.Update(ctx, "m-1", domain.ManhwaUpdate{Title: &short})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if m.Title != "나혼렙" {
		t.Fatalf("title not trimmed: %q", m.Title)
	}
}

func TestManhwaService_Delete_CascadesBookmarks(t *testing.T) {
	repo := newStubManhwaRepo()
	repo.seed(domain.Manhwa{ID: "m-1", Title: "Tower of God"})
	bookmarks := newStubBookmarkRepo()
	svc := NewManhwaService(repo, bookmarks, zerolog.Nop())

	if err := svc.Delete(context.Background(), "m-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(bookmarks.deletedManhwa) != 1 || bookmarks.deletedManhwa[0] != "m-1" {
		t.Fatalf("bookmarks not removed: %v", bookmarks.deletedManhwa)
	}
	if err := svc.Delete(context.Background(), "m-1"); !errors.Is(err, domain.ErrManhwaNotFound) {
		t.Fatalf("expected ErrManhwaNotFound, got %v", err)
	}
}
