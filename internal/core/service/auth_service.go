package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/manhwalog/manhwa-api/internal/core/auth"
	"github.com/manhwalog/manhwa-api/internal/core/domain"
	"github.com/manhwalog/manhwa-api/internal/core/ports"
	"github.com/manhwalog/manhwa-api/internal/pkg/metrics"
)

// PasswordHasher is satisfied by *auth.Hasher.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer is satisfied by *auth.Issuer.
type TokenIssuer interface {
	IssuePair(id domain.Identity) (auth.TokenPair, error)
}

// AuthService implements registration and login.
type AuthService struct {
	repo    ports.UserRepository
	hasher  PasswordHasher
	issuer  TokenIssuer
	limiter ports.LoginLimiter
	audit   ports.AuditRecorder
	log     zerolog.Logger
	now     func() time.Time
}

func NewAuthService(
	repo ports.UserRepository,
	hasher PasswordHasher,
	issuer TokenIssuer,
	limiter ports.LoginLimiter,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:    repo,
		hasher:  hasher,
		issuer:  issuer,
		limiter: limiter,
		audit:   audit,
		log:     log,
		now:     time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if in.Username == "" || email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.audit.Record(domain.AuthEvent{
		Type:    domain.EventUserRegistered,
		Subject: created.ID,
		ActorID: created.ID,
	})
	return created, nil
}

// Login checks the credentials and returns a fresh token pair. An unknown
// email and a wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	blocked, err := s.limiter.Blocked(ctx, email)
	if err != nil {
		// Limiter failures never block a login.
		s.log.Warn().Err(err).Msg("login limiter unavailable")
	} else if blocked {
		metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, s.loginFailed(ctx, email, "unknown_email")
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, s.loginFailed(ctx, email, "bad_password")
	}

	tokens, err := s.issuer.IssuePair(user.Identity())
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to reset login attempts")
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.audit.Record(domain.AuthEvent{
		Type:    domain.EventLoginSucceeded,
		Subject: user.ID,
		ActorID: user.ID,
	})

	return &ports.LoginResult{Tokens: tokens, User: user}, nil
}

func (s *AuthService) loginFailed(ctx context.Context, email, reason string) error {
	if err := s.limiter.Fail(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login attempt")
	}
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	s.audit.Record(domain.AuthEvent{
		Type:       domain.EventLoginFailed,
		Subject:    email,
		Attributes: map[string]string{"reason": reason},
	})
	return domain.ErrInvalidCredentials
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
