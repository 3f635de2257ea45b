package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/manhwalog/manhwa-api/internal/core/domain"
	"github.com/manhwalog/manhwa-api/internal/core/ports"
)

type userService struct {
	users     ports.UserRepository
	bookmarks ports.BookmarkRepository
	hasher    PasswordHasher
	audit     ports.AuditRecorder
	log       zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(
	users ports.UserRepository,
	bookmarks ports.BookmarkRepository,
	hasher PasswordHasher,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) ports.UserService {
	return &userService{
		users:     users,
		bookmarks: bookmarks,
		hasher:    hasher,
		audit:     audit,
		log:       log,
	}
}

// canManage reports whether caller may read the account id.
func canManage(caller domain.Identity, id string) bool {
	return caller.ID == id || caller.Role == domain.RoleAdmin || caller.Role == domain.RoleSuperadmin
}

// authorizeWrite checks that caller may modify the account id. Owners always
// may; anyone else must outrank the stored role of the target.
func (s *userService) authorizeWrite(ctx context.Context, caller domain.Identity, id string) error {
	if !canManage(caller, id) {
		return domain.ErrForbidden
	}
	if caller.ID == id {
		return nil
	}
	target, err := s.users.FindIdentityByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.Role.CanManage(target.Role) {
		return domain.ErrForbidden
	}
	return nil
}

func (s *userService) Get(ctx context.Context, caller domain.Identity, id string) (*domain.User, error) {
	if !canManage(caller, id) {
		return nil, domain.ErrForbidden
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update applies a profile change. The account owner must confirm a password
// change with the current password; a higher-ranked caller resetting someone
// else's password does not.
func (s *userService) Update(ctx context.Context, caller domain.Identity, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if err := s.authorizeWrite(ctx, caller, id); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	upd := domain.UserUpdate{Username: in.Username}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		upd.Email = &email
	}

	if in.Password != nil {
		if caller.ID == id {
			if in.CurrentPassword == "" {
				return nil, fmt.Errorf("update user: currentPassword is required: %w", domain.ErrInvalidInput)
			}
			current, err := s.users.FindByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("update user: %w", err)
			}
			if !s.hasher.Verify(in.CurrentPassword, current.PasswordHash) {
				return nil, domain.ErrInvalidCredentials
			}
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		upd.PasswordHash = &hash
	}

	user, err := s.users.Update(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	attrs := map[string]string{}
	if upd.PasswordHash != nil {
		attrs["password"] = "changed"
	}
	s.audit.Record(domain.AuthEvent{
		Type:       domain.EventUserUpdated,
		Subject:    id,
		ActorID:    caller.ID,
		Attributes: attrs,
	})
	return user, nil
}

func (s *userService) UpdateRole(ctx context.Context, caller domain.Identity, id string, role domain.Role) (*domain.User, error) {
	if caller.Role != domain.RoleSuperadmin {
		return nil, domain.ErrInsufficientRole
	}
	if !role.Valid() {
		return nil, fmt.Errorf("update role: %w", domain.ErrInvalidInput)
	}

	user, err := s.users.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}

	s.audit.Record(domain.AuthEvent{
		Type:       domain.EventUserRoleChanged,
		Subject:    id,
		ActorID:    caller.ID,
		Attributes: map[string]string{"role": string(role)},
	})
	return user, nil
}

// Delete removes the account and its bookmarks. Outstanding tokens stop
// working on the next request because the identity lookup fails.
func (s *userService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	if err := s.authorizeWrite(ctx, caller, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if err := s.bookmarks.DeleteByUser(ctx, id); err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("failed to delete bookmarks of removed user")
	}

	s.audit.Record(domain.AuthEvent{
		Type:    domain.EventUserDeleted,
		Subject: id,
		ActorID: caller.ID,
	})
	return nil
}
