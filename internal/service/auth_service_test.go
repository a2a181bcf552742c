package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jukulab/classdesk-backend/internal/config"
	"github.com/jukulab/classdesk-backend/internal/model"
)

func testAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg, httpClient: &http.Client{Timeout: 2 * time.Second}}
}

func TestHashAndCheckPassword(t *testing.T) {
	svc := testAuthService(&config.Config{BcryptCost: 4})

	hash, err := svc.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash equals plaintext")
	}
	if err := svc.CheckPassword(hash, "s3cret"); err != nil {
		t.Errorf("CheckPassword() with correct password error = %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); err != ErrInvalidCredentials {
		t.Errorf("CheckPassword() with wrong password error = %v, want ErrInvalidCredentials", err)
	}
}

func signTestToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestValidateToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
	svc := testAuthService(cfg)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Name:      "管理者",
		Role:      model.RoleAdmin,
		LoginType: model.LoginTypeLocal,
	}

	got, err := svc.ValidateToken(signTestToken(t, cfg.JWTSecret, claims))
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	session := got.Session()
	if session.ID != "user-1" || session.Name != "管理者" || session.Role != model.RoleAdmin {
		t.Errorf("Session() = %+v", session)
	}
	if got.ID != "jti-1" {
		t.Errorf("jti = %q, want jti-1", got.ID)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	svc := testAuthService(cfg)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	if _, err := svc.ValidateToken(signTestToken(t, cfg.JWTSecret, claims)); err == nil {
		t.Error("ValidateToken() accepted an expired token")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := testAuthService(&config.Config{JWTSecret: "right"})

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	if _, err := svc.ValidateToken(signTestToken(t, "wrong", claims)); err == nil {
		t.Error("ValidateToken() accepted a token signed with another secret")
	}
}

func TestFetchExternalProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer provider-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sub":"ext-123","name":"山田先生","email":"yamada@example.com"}`))
	}))
	defer srv.Close()

	svc := testAuthService(&config.Config{ExternalUserinfoURL: srv.URL})

	profile := svc.fetchExternalProfile(context.Background(), "provider-token")
	if profile.Sub != "ext-123" || profile.Name != "山田先生" {
		t.Errorf("profile = %+v", profile)
	}

	// A rejected token yields the placeholder, not an error.
	fallback := svc.fetchExternalProfile(context.Background(), "bad-token")
	if fallback.Name != "External User" || fallback.Sub == "" {
		t.Errorf("fallback profile = %+v", fallback)
	}
}

func TestExternalLoginDisabled(t *testing.T) {
	svc := testAuthService(&config.Config{})
	if _, _, err := svc.ExternalLogin(context.Background(), "token"); err != ErrExternalLoginOff {
		t.Errorf("ExternalLogin() error = %v, want ErrExternalLoginOff", err)
	}
}
