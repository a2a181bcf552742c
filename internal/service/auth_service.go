package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jukulab/classdesk-backend/internal/config"
	"github.com/jukulab/classdesk-backend/internal/model"
	"github.com/jukulab/classdesk-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrExternalLoginOff     = errors.New("external login is not configured")
	errNoActiveSession      = errors.New("no active session")
	errSessionSuperseded    = errors.New("session invalidated")
	errInvalidTokenClaims   = errors.New("invalid token claims")
	errUnexpectedSigningAlg = errors.New("unexpected signing method")
)

// Claims extends JWT standard claims with the session fields the original
// dashboard kept in browser storage.
type Claims struct {
	jwt.RegisteredClaims
	Name      string          `json:"name"`
	Role      model.Role      `json:"role"`
	LoginType model.LoginType `json:"login_type"`
}

// Session converts claims back to the API session view.
func (c *Claims) Session() model.Session {
	return model.Session{
		ID:        c.Subject,
		Name:      c.Name,
		Role:      c.Role,
		LoginType: c.LoginType,
	}
}

// AuthService handles authentication, JWT, and session registration.
type AuthService struct {
	cfg      *config.Config
	userRepo *repository.UserRepository
	rdb      *redis.Client
	// httpClient performs the external userinfo lookup.
	httpClient *http.Client
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository, rdb *redis.Client) *AuthService {
	return &AuthService{
		cfg:        cfg,
		userRepo:   userRepo,
		rdb:        rdb,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login verifies local credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, model.Session, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		// A missing user and a wrong password are indistinguishable to the caller.
		return "", model.Session{}, ErrInvalidCredentials
	}
	if err := s.CheckPassword(user.PasswordHash, password); err != nil {
		return "", model.Session{}, ErrInvalidCredentials
	}

	session := model.Session{
		ID:        user.ID,
		Name:      user.DisplayName,
		Role:      user.Role,
		LoginType: model.LoginTypeLocal,
	}
	token, err := s.issueToken(ctx, session)
	return token, session, err
}

// externalProfile is the subset of the provider's userinfo response we use.
type externalProfile struct {
	Sub   string `json:"sub"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ExternalLogin resolves a provider access token into a session. The
// userinfo lookup is best effort: when it fails the session falls back to
// a generic placeholder profile rather than rejecting the login.
func (s *AuthService) ExternalLogin(ctx context.Context, accessToken string) (string, model.Session, error) {
	if s.cfg.ExternalUserinfoURL == "" {
		return "", model.Session{}, ErrExternalLoginOff
	}

	profile := s.fetchExternalProfile(ctx, accessToken)

	session := model.Session{
		ID:        "external:" + profile.Sub,
		Name:      profile.Name,
		Role:      model.RoleMentor,
		LoginType: model.LoginTypeExternal,
	}
	token, err := s.issueToken(ctx, session)
	return token, session, err
}

// fetchExternalProfile calls the provider's userinfo endpoint. Any failure
// yields the placeholder profile.
func (s *AuthService) fetchExternalProfile(ctx context.Context, accessToken string) externalProfile {
	placeholder := externalProfile{Sub: uuid.New().String(), Name: "External User"}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.ExternalUserinfoURL, nil)
	if err != nil {
		return placeholder
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return placeholder
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return placeholder
	}

	var profile externalProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil || profile.Sub == "" {
		return placeholder
	}
	if profile.Name == "" {
		profile.Name = profile.Email
	}
	if profile.Name == "" {
		profile.Name = "External User"
	}
	return profile
}

// Logout removes the account's active session so the token stops working.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, config.SessionKey(userID)).Err()
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", errUnexpectedSigningAlg, t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errInvalidTokenClaims
	}
	return claims, nil
}

// ValidateSession checks that the token's JTI is still the registered
// session for the account (a logout or a newer login invalidates it).
func (s *AuthService) ValidateSession(ctx context.Context, userID, jti string) error {
	stored, err := s.rdb.Get(ctx, config.SessionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return errNoActiveSession
		}
		return fmt.Errorf("check session: %w", err)
	}
	if stored != jti {
		return errSessionSuperseded
	}
	return nil
}

// issueToken signs a JWT for the session and registers it in redis.
func (s *AuthService) issueToken(ctx context.Context, session model.Session) (string, error) {
	jti := uuid.New().String()
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   session.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		Name:      session.Name,
		Role:      session.Role,
		LoginType: session.LoginType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	if err := s.rdb.Set(ctx, config.SessionKey(session.ID), jti, s.cfg.JWTExpiry).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return signed, nil
}
