package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/JaimeStill/adscreen/internal/auth"
	"github.com/JaimeStill/adscreen/internal/config"
	"github.com/JaimeStill/adscreen/pkg/routes"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRolePermissions(t *testing.T) {
	tests := []struct {
		role auth.Role
		perm auth.Permission
		want bool
	}{
		{auth.RoleReviewer, auth.AnalysisCreate, true},
		{auth.RoleReviewer, auth.AnalysisHistoryRead, true},
		{auth.RoleReviewer, auth.AdminUsersManage, false},
		{auth.RoleReviewer, auth.AdminRegulationsManage, false},
		{auth.RoleAdmin, auth.AnalysisRead, true},
		{auth.RoleAdmin, auth.AdminSettingsManage, true},
		{auth.Role("guest"), auth.AnalysisRead, false},
	}

	for _, tt := range tests {
		if got := tt.role.Can(tt.perm); got != tt.want {
			t.Errorf("%s.Can(%s) = %v, want %v", tt.role, tt.perm, got, tt.want)
		}
	}

	if n := len(auth.RoleAdmin.Permissions()); n != 7 {
		t.Errorf("admin permissions = %d, want 7", n)
	}
	if auth.Role("guest").Valid() || !auth.RoleReviewer.Valid() {
		t.Error("Valid() mismatch")
	}
}

func TestActor(t *testing.T) {
	if got := auth.Actor(context.Background()); got != "system" {
		t.Errorf("Actor = %s, want system", got)
	}
	ctx := auth.WithIdentity(context.Background(), auth.Identity{Email: "a@b.c", Role: auth.RoleAdmin})
	if got := auth.Actor(ctx); got != "a@b.c" {
		t.Errorf("Actor = %s, want a@b.c", got)
	}
}

func TestRequire(t *testing.T) {
	a := auth.NewAuthorizer(auth.HeaderResolver{}, discardLogger())

	var seen auth.Identity
	h := a.Require(auth.AdminUsersManage, func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		email  string
		role   string
		status int
	}{
		{"missing identity", "", "", http.StatusUnauthorized},
		{"missing role", "a@medai.com", "", http.StatusUnauthorized},
		{"insufficient role", "r@medai.com", "reviewer", http.StatusForbidden},
		{"unknown role", "x@medai.com", "owner", http.StatusForbidden},
		{"allowed", "admin@medai.com", "admin", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.email != "" {
				req.Header.Set(auth.HeaderEmail, tt.email)
			}
			if tt.role != "" {
				req.Header.Set(auth.HeaderRole, tt.role)
			}
			rec := httptest.NewRecorder()
			h(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}

	if seen.Email != "admin@medai.com" || seen.Role != auth.RoleAdmin {
		t.Errorf("identity in context = %+v", seen)
	}
}

func TestGuard(t *testing.T) {
	a := auth.NewAuthorizer(auth.HeaderResolver{}, discardLogger())
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

	group := a.Guard(routes.Group{
		Prefix: "/admin",
		Routes: []routes.Route{{Method: "GET", Pattern: "/settings", Handler: ok}},
		Children: []routes.Group{{
			Prefix: "/phrases",
			Routes: []routes.Route{{Method: "GET", Pattern: "", Handler: ok}},
		}},
	}, auth.AdminSettingsManage)

	mux := http.NewServeMux()
	routes.Register(mux, group)

	for _, path := range []string{"/admin/settings", "/admin/phrases"} {
		req := httptest.NewRequest("GET", path, nil)
		req.Header.Set(auth.HeaderEmail, "r@medai.com")
		req.Header.Set(auth.HeaderRole, "reviewer")
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s status = %d, want 403", path, rec.Code)
		}
	}
}

type oidcFixture struct {
	server *httptest.Server
	key    *rsa.PrivateKey
}

func newOIDCFixture(t *testing.T) *oidcFixture {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	f := &oidcFixture{key: key}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"issuer":                                f.server.URL,
			"jwks_uri":                              f.server.URL + "/keys",
			"authorization_endpoint":                f.server.URL + "/auth",
			"token_endpoint":                        f.server.URL + "/token",
			"id_token_signing_alg_values_supported": []string{"RS256"},
		})
	})
	mux.HandleFunc("GET /keys", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]string{{
				"kty": "RSA",
				"kid": "test",
				"alg": "RS256",
				"use": "sig",
				"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
			}},
		})
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *oidcFixture) token(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = "test"
	signed, err := tok.SignedString(f.key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestOIDCResolver(t *testing.T) {
	f := newOIDCFixture(t)
	cfg := &config.AuthConfig{Issuer: f.server.URL, ClientID: "adscreen", RoleClaim: "app_role"}

	a, err := auth.New(context.Background(), cfg, discardLogger())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	var seen auth.Identity
	h := a.Require(auth.AnalysisRead, func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	now := time.Now()
	valid := jwt.MapClaims{
		"iss":      f.server.URL,
		"aud":      "adscreen",
		"sub":      "u1",
		"iat":      now.Unix(),
		"exp":      now.Add(time.Hour).Unix(),
		"email":    "reviewer@medai.com",
		"app_role": "reviewer",
	}

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"headers ignored", "", http.StatusUnauthorized},
		{"valid token", "Bearer " + f.token(t, valid), http.StatusOK},
		{"wrong audience", "Bearer " + f.token(t, jwt.MapClaims{
			"iss": f.server.URL, "aud": "other", "exp": now.Add(time.Hour).Unix(),
			"email": "x@medai.com", "app_role": "admin",
		}), http.StatusUnauthorized},
		{"expired", "Bearer " + f.token(t, jwt.MapClaims{
			"iss": f.server.URL, "aud": "adscreen", "exp": now.Add(-time.Hour).Unix(),
			"email": "x@medai.com", "app_role": "admin",
		}), http.StatusUnauthorized},
		{"missing role claim", "Bearer " + f.token(t, jwt.MapClaims{
			"iss": f.server.URL, "aud": "adscreen", "exp": now.Add(time.Hour).Unix(),
			"email": "x@medai.com",
		}), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set(auth.HeaderEmail, "admin@medai.com")
			req.Header.Set(auth.HeaderRole, "admin")
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h(rec, req)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
		})
	}

	if seen.Email != "reviewer@medai.com" || seen.Role != auth.RoleReviewer {
		t.Errorf("identity = %+v", seen)
	}
}
