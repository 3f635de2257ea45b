package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/manhwalog/manhwa-api/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
	err   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) seed(u domain.User) *domain.User {
	r.users[u.ID] = cloneUser(&u)
	return cloneUser(&u)
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	created := cloneUser(user)
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindIdentityByID(ctx context.Context, id string) (*domain.Identity, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	id2 := u.Identity()
	return &id2, nil
}

func (r *stubUserRepo) List(context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, upd domain.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubManhwaRepo struct {
	items map[string]*domain.Manhwa
}

func newStubManhwaRepo() *stubManhwaRepo {
	return &stubManhwaRepo{items: make(map[string]*domain.Manhwa)}
}

func (r *stubManhwaRepo) seed(m domain.Manhwa) {
	r.items[m.ID] = &m
}

func (r *stubManhwaRepo) Create(_ context.Context, m *domain.Manhwa) error {
	for _, existing := range r.items {
		if existing.Title == m.Title {
			return domain.ErrManhwaExists
		}
	}
	clone := *m
	r.items[m.ID] = &clone
	return nil
}

func (r *stubManhwaRepo) FindByID(_ context.Context, id string) (*domain.Manhwa, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, domain.ErrManhwaNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *stubManhwaRepo) FindByTitle(_ context.Context, title string) (*domain.Manhwa, error) {
	for _, m := range r.items {
		if m.Title == title {
			clone := *m
			return &clone, nil
		}
	}
	return nil, domain.ErrManhwaNotFound
}

func (r *stubManhwaRepo) List(context.Context) ([]domain.Manhwa, error) {
	out := make([]domain.Manhwa, 0, len(r.items))
	for _, m := range r.items {
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubManhwaRepo) Update(_ context.Context, id string, upd domain.ManhwaUpdate) (*domain.Manhwa, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, domain.ErrManhwaNotFound
	}
	if upd.Title != nil {
		m.Title = *upd.Title
	}
	if upd.Description != nil {
		m.Description = *upd.Description
	}
	if upd.CoverImage != nil {
		m.CoverImage = *upd.CoverImage
	}
	clone := *m
	return &clone, nil
}

func (r *stubManhwaRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrManhwaNotFound
	}
	delete(r.items, id)
	return nil
}

type stubBookmarkRepo struct {
	items           map[string]*domain.Bookmark
	deletedUsers    []string
	deletedManhwa   []string
	deleteManyError error
}

func newStubBookmarkRepo() *stubBookmarkRepo {
	return &stubBookmarkRepo{items: make(map[string]*domain.Bookmark)}
}

func (r *stubBookmarkRepo) Create(_ context.Context, b *domain.Bookmark) error {
	for _, existing := range r.items {
		if existing.UserID == b.UserID && existing.ManhwaID == b.ManhwaID {
			return domain.ErrAlreadyBookmarked
		}
	}
	clone := *b
	r.items[b.ID] = &clone
	return nil
}

func (r *stubBookmarkRepo) ListByUser(_ context.Context, userID, _ string) ([]domain.Bookmark, error) {
	var out []domain.Bookmark
	for _, b := range r.items {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubBookmarkRepo) UpdateChapter(_ context.Context, userID, id string, chapter int) (*domain.Bookmark, error) {
	b, ok := r.items[id]
	if !ok || b.UserID != userID {
		return nil, domain.ErrBookmarkNotFound
	}
	b.Chapter = chapter
	clone := *b
	return &clone, nil
}

func (r *stubBookmarkRepo) Delete(_ context.Context, userID, id string) error {
	b, ok := r.items[id]
	if !ok || b.UserID != userID {
		return domain.ErrBookmarkNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubBookmarkRepo) DeleteByUser(_ context.Context, userID string) error {
	r.deletedUsers = append(r.deletedUsers, userID)
	return r.deleteManyError
}

func (r *stubBookmarkRepo) DeleteByManhwa(_ context.Context, manhwaID string) error {
	r.deletedManhwa = append(r.deletedManhwa, manhwaID)
	return r.deleteManyError
}

type stubLimiter struct {
	failures map[string]int
	limit    int
	err      error
}

func newStubLimiter(limit int) *stubLimiter {
	return &stubLimiter{failures: make(map[string]int), limit: limit}
}

func (l *stubLimiter) Blocked(_ context.Context, key string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	return l.failures[key] >= l.limit, nil
}

func (l *stubLimiter) Fail(_ context.Context, key string) error {
	l.failures[key]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, key string) error {
	delete(l.failures, key)
	return nil
}

type recordingAudit struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (a *recordingAudit) Record(e domain.AuthEvent) {
	a.mu.Lock()
	a.events = append(a.events, e)
	a.mu.Unlock()
}

func (a *recordingAudit) types() []domain.AuthEventType {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuthEventType, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Type)
	}
	return out
}
