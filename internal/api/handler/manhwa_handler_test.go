package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/manhwalog/manhwa-api/internal/core/domain"
	"github.com/manhwalog/manhwa-api/internal/core/ports"
)

type stubManhwaService struct {
	createFn func(ctx context.Context, in ports.CreateManhwaInput) (*domain.Manhwa, error)
	findFn   func(ctx context.Context, q ports.ManhwaLookup) (*domain.Manhwa, error)
}

func (s *stubManhwaService) Create(ctx context.Context, in ports.CreateManhwaInput) (*domain.Manhwa, error) {
	return s.createFn(ctx, in)
}

func (s *stubManhwaService) Find(ctx context.Context, q ports.ManhwaLookup) (*domain.Manhwa, error) {
	return s.findFn(ctx, q)
}

func (s *stubManhwaService) List(context.Context) ([]domain.Manhwa, error) {
	return []domain.Manhwa{}, nil
}

func (s *stubManhwaService) Update(_ context.Context, id string, _ domain.ManhwaUpdate) (*domain.Manhwa, error) {
	return &domain.Manhwa{ID: id}, nil
}

func (s *stubManhwaService) Delete(context.Context, string) error { return nil }

func TestManhwaHandler_Create_AcceptsSnakeCaseCover(t *testing.T) {
	e := newEcho()
	h := NewManhwaHandler(&stubManhwaService{
		createFn: func(_ context.Context, in ports.CreateManhwaInput) (*domain.Manhwa, error) {
			if in.CoverImage != "https://img.example.com/solo.png" {
				t.Fatalf("cover not mapped: %+v", in)
			}
			return &domain.Manhwa{ID: "m-1", Title: in.Title, CoverImage: in.CoverImage}, nil
		},
	})

	req := jsonRequest(http.MethodPost, "/api/manhwa",
		`{"title":"Solo Leveling","desc":"Hunters","cover_image":"https://img.example.com/solo.png"}`)
	rec := httptest.NewRecorder()
	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestManhwaHandler_Create_Validation(t *testing.T) {
	e := newEcho()
	h := NewManhwaHandler(&stubManhwaService{})

	for _, body := range []string{`{"title":"ab"}`, `{"title":"Solo Leveling","coverImage":"not a url"}`} {
		err := h.Create(e.NewContext(jsonRequest(http.MethodPost, "/api/manhwa", body), httptest.NewRecorder()))
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %v", body, err)
		}
	}
}

func TestManhwaHandler_Find_ByTitle(t *testing.T) {
	e := newEcho()
	h := NewManhwaHandler(&stubManhwaService{
		findFn: func(_ context.Context, q ports.ManhwaLookup) (*domain.Manhwa, error) {
			if q.ID != "" || q.Title != "Solo Leveling" {
				t.Fatalf("unexpected lookup %+v", q)
			}
			return nil, domain.ErrManhwaNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/manhwa/s?title=Solo+Leveling", nil)
	if err := h.Find(e.NewContext(req, httptest.NewRecorder())); !errors.Is(err, domain.ErrManhwaNotFound) {
		t.Fatalf("expected ErrManhwaNotFound, got %v", err)
	}
}
