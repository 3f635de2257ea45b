package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/manhwalog/manhwa-api/internal/core/auth"
	"github.com/manhwalog/manhwa-api/internal/core/domain"
	"github.com/manhwalog/manhwa-api/internal/core/ports"
)

type authFixture struct {
	svc      *AuthService
	repo     *stubUserRepo
	limiter  *stubLimiter
	audit    *recordingAudit
	hasher   *auth.Hasher
	verifier *auth.Verifier
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	cfg := auth.Config{
		AccessSecret:  []byte("svc-access-secret"),
		RefreshSecret: []byte("svc-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	}
	issuer, err := auth.NewIssuer(cfg)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	verifier, err := auth.NewVerifier(cfg)
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}

	f := &authFixture{
		repo:     newStubUserRepo(),
		limiter:  newStubLimiter(3),
		audit:    &recordingAudit{},
		hasher:   auth.NewHasher(bcrypt.MinCost),
		verifier: verifier,
	}
	f.svc = NewAuthService(f.repo, f.hasher, issuer, f.limiter, f.audit, zerolog.Nop())
	return f
}

func (f *authFixture) register(t *testing.T, username, email, password string) *domain.User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: username, Email: email, Password: password})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return u
}

func TestAuthService_Register_Success(t *testing.T) {
	f := newAuthFixture(t)

	u := f.register(t, "alice", "  Alice@Example.com ", "secret123")
	if u.ID == "" {
		t.Fatalf("expected id to be assigned")
	}
	if u.Email != "alice@example.com" {
		t.Fatalf("email not normalised: %q", u.Email)
	}
	if u.Role != domain.RoleUser {
		t.Fatalf("new accounts must be USER, got %s", u.Role)
	}
	if u.PasswordHash == "secret123" || !f.hasher.Verify("secret123", u.PasswordHash) {
		t.Fatalf("password not hashed correctly")
	}
	if got := f.audit.types(); len(got) != 1 || got[0] != domain.EventUserRegistered {
		t.Fatalf("unexpected audit trail: %v", got)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	f := newAuthFixture(t)

	inputs := []ports.RegisterInput{
		{Email: "a@example.com", Password: "secret123"},
		{Username: "alice", Password: "secret123"},
		{Username: "alice", Email: "a@example.com"},
	}
	for _, in := range inputs {
		if _, err := f.svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "alice", "alice@example.com", "secret123")

	_, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "alice2", Email: "ALICE@example.com", Password: "secret123"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "alice", "alice@example.com", "secret123")

	res, err := f.svc.Login(context.Background(), "Alice@Example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.User.ID != u.ID {
		t.Fatalf("unexpected user %+v", res.User)
	}

	claims, err := f.verifier.VerifyAccess(res.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("access token does not verify: %v", err)
	}
	if claims.UserID != u.ID || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if _, err := f.verifier.VerifyRefresh(res.Tokens.RefreshToken); err != nil {
		t.Fatalf("refresh token does not verify: %v", err)
	}
}

func TestAuthService_Login_TokenCarriesStoredRole(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "boss", "boss@example.com", "secret123")
	f.repo.users[u.ID].Role = domain.RoleSuperadmin

	res, err := f.svc.Login(context.Background(), "boss@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := f.verifier.VerifyAccess(res.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Role != domain.RoleSuperadmin {
		t.Fatalf("expected SUPERADMIN, got %s", claims.Role)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "alice", "alice@example.com", "secret123")

	if _, err := f.svc.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if f.limiter.failures["alice@example.com"] != 1 {
		t.Fatalf("failure not counted")
	}
}

func TestAuthService_Login_UnknownEmailLooksLikeBadPassword(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), "nobody@example.com", "secret123")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("unknown email must not be distinguishable")
	}
}

func TestAuthService_Login_LockoutAndReset(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "alice", "alice@example.com", "secret123")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = f.svc.Login(ctx, "alice@example.com", "wrong")
	}
	if _, err := f.svc.Login(ctx, "alice@example.com", "secret123"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}

	delete(f.limiter.failures, "alice@example.com")
	_, _ = f.svc.Login(ctx, "alice@example.com", "wrong")
	if _, err := f.svc.Login(ctx, "alice@example.com", "secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if n := f.limiter.failures["alice@example.com"]; n != 0 {
		t.Fatalf("successful login must reset the counter, got %d", n)
	}
}

func TestAuthService_Login_LimiterOutageFailsOpen(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "alice", "alice@example.com", "secret123")
	f.limiter.err = errors.New("redis down")

	if _, err := f.svc.Login(context.Background(), "alice@example.com", "secret123"); err != nil {
		t.Fatalf("expected login to succeed without the limiter, got %v", err)
	}
}

func TestAuthService_Login_StoreErrorIsNotCredentials(t *testing.T) {
	f := newAuthFixture(t)
	storeErr := errors.New("mongo down")
	f.repo.err = storeErr

	_, err := f.svc.Login(context.Background(), "alice@example.com", "secret123")
	if !errors.Is(err, storeErr) || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestAuthService_Login_AuditTrail(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "alice", "alice@example.com", "secret123")
	ctx := context.Background()

	_, _ = f.svc.Login(ctx, "alice@example.com", "wrong")
	_, _ = f.svc.Login(ctx, "alice@example.com", "secret123")

	want := []domain.AuthEventType{domain.EventUserRegistered, domain.EventLoginFailed, domain.EventLoginSucceeded}
	got := f.audit.types()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if reason := f.audit.events[1].Attributes["reason"]; reason != "bad_password" {
		t.Fatalf("unexpected failure reason %q", reason)
	}
}
