package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/manhwalog/manhwa-api/internal/core/auth"
	"github.com/manhwalog/manhwa-api/internal/core/domain"
)

var testTokenConfig = auth.Config{
	AccessSecret:  []byte("access-secret-for-tests"),
	RefreshSecret: []byte("refresh-secret-for-tests"),
	AccessTTL:     15 * time.Minute,
	RefreshTTL:    7 * 24 * time.Hour,
}

type stubFinder struct {
	identities map[string]domain.Role
	err        error
	calls      int
}

func (f *stubFinder) FindIdentityByID(_ context.Context, id string) (*domain.Identity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	role, ok := f.identities[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.Identity{ID: id, Role: role}, nil
}

func newTokens(t *testing.T, now time.Time) (*auth.Issuer, *auth.Verifier) {
	t.Helper()
	clock := auth.WithClock(func() time.Time { return now })
	issuer, err := auth.NewIssuer(testTokenConfig, clock)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	verifier, err := auth.NewVerifier(testTokenConfig, clock)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	return issuer, verifier
}

// runAuth sends one request with the given Authorization header through
// Authenticate and reports the error and the identity seen by next.
func runAuth(t *testing.T, v AccessVerifier, f *stubFinder, header string) (*domain.Identity, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/bookmarks", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var seen *domain.Identity
	h := Authenticate(v, f, zerolog.Nop())(func(c echo.Context) error {
		id, ok := IdentityFromContext(c.Request().Context())
		if !ok {
			t.Fatalf("next called without identity")
		}
		seen = &id
		return c.NoContent(http.StatusOK)
	})
	err := h(c)
	return seen, err
}

func TestAuthenticate_AttachesIdentity(t *testing.T) {
	now := time.Now()
	issuer, verifier := newTokens(t, now)
	token, err := issuer.IssueAccessToken(domain.Identity{ID: "u-1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	finder := &stubFinder{identities: map[string]domain.Role{"u-1": domain.RoleUser}}

	id, err := runAuth(t, verifier, finder, "Bearer "+token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == nil || id.ID != "u-1" || id.Role != domain.RoleUser {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestAuthenticate_RoleComesFromStore(t *testing.T) {
	issuer, verifier := newTokens(t, time.Now())
	token, _ := issuer.IssueAccessToken(domain.Identity{ID: "u-1", Role: domain.RoleAdmin})
	// Demoted after the token was issued.
	finder := &stubFinder{identities: map[string]domain.Role{"u-1": domain.RoleUser}}

	id, err := runAuth(t, verifier, finder, "Bearer "+token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Role != domain.RoleUser {
		t.Fatalf("expected stored role USER, got %s", id.Role)
	}
}

func TestAuthenticate_SchemeIsCaseInsensitive(t *testing.T) {
	issuer, verifier := newTokens(t, time.Now())
	token, _ := issuer.IssueAccessToken(domain.Identity{ID: "u-1", Role: domain.RoleUser})
	finder := &stubFinder{identities: map[string]domain.Role{"u-1": domain.RoleUser}}

	if _, err := runAuth(t, verifier, finder, "bearer "+token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAuthenticate_MissingToken(t *testing.T) {
	_, verifier := newTokens(t, time.Now())

	for _, header := range []string{"", "Bearer", "Bearer    ", "Token abc", "Basic dXNlcjpwYXNz"} {
		finder := &stubFinder{}
		id, err := runAuth(t, verifier, finder, header)
		if !errors.Is(err, domain.ErrMissingToken) {
			t.Fatalf("header %q: expected ErrMissingToken, got %v", header, err)
		}
		if id != nil {
			t.Fatalf("header %q: next must not run", header)
		}
		if finder.calls != 0 {
			t.Fatalf("header %q: store consulted without a token", header)
		}
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	issued := time.Now().Add(-time.Hour)
	issuer, _ := newTokens(t, issued)
	_, verifier := newTokens(t, time.Now())
	token, _ := issuer.IssueAccessToken(domain.Identity{ID: "u-1", Role: domain.RoleUser})
	finder := &stubFinder{identities: map[string]domain.Role{"u-1": domain.RoleUser}}

	_, err := runAuth(t, verifier, finder, "Bearer "+token)
	if !errors.Is(err, domain.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
	if finder.calls != 0 {
		t.Fatalf("store consulted for an expired token")
	}
}

func TestAuthenticate_RejectsForgedAndMalformed(t *testing.T) {
	now := time.Now()
	issuer, verifier := newTokens(t, now)

	forgedCfg := testTokenConfig
	forgedCfg.AccessSecret = []byte("someone-elses-secret")
	forger, err := auth.NewIssuer(forgedCfg)
	if err != nil {
		t.Fatalf("forger: %v", err)
	}
	forged, _ := forger.IssueAccessToken(domain.Identity{ID: "u-1", Role: domain.RoleSuperadmin})
	refresh, _ := issuer.IssueRefreshToken(domain.Identity{ID: "u-1", Role: domain.RoleUser})

	cases := map[string]string{
		"forged":        forged,
		"refresh token": refresh,
		"garbage":       "not.a.jwt",
	}
	for name, token := range cases {
		finder := &stubFinder{identities: map[string]domain.Role{"u-1": domain.RoleUser}}
		id, err := runAuth(t, verifier, finder, "Bearer "+token)
		if !domain.IsAuthError(err) || errors.Is(err, domain.ErrExpiredToken) {
			t.Fatalf("%s: expected invalid token error, got %v", name, err)
		}
		if id != nil {
			t.Fatalf("%s: next must not run", name)
		}
	}
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	issuer, verifier := newTokens(t, time.Now())
	token, _ := issuer.IssueAccessToken(domain.Identity{ID: "deleted", Role: domain.RoleAdmin})

	id, err := runAuth(t, verifier, &stubFinder{}, "Bearer "+token)
	if !errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
	if id != nil {
		t.Fatalf("next must not run")
	}
}

func TestAuthenticate_StoreErrorIsNotAnAuthError(t *testing.T) {
	issuer, verifier := newTokens(t, time.Now())
	token, _ := issuer.IssueAccessToken(domain.Identity{ID: "u-1", Role: domain.RoleUser})
	storeErr := errors.New("mongo unavailable")

	_, err := runAuth(t, verifier, &stubFinder{err: storeErr}, "Bearer "+token)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	if domain.IsAuthError(err) {
		t.Fatalf("store failure must not look like a token failure")
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"BEARER abc", "abc", true},
		{"Bearer  abc ", "abc", true},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Bearerabc", "", false},
		{"Token abc", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		token, ok := bearerToken(tc.header)
		if token != tc.token || ok != tc.ok {
			t.Fatalf("bearerToken(%q) = %q, %v; want %q, %v", tc.header, token, ok, tc.token, tc.ok)
		}
	}
}
