package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/jukulab/classdesk-backend/internal/config"
	"github.com/jukulab/classdesk-backend/internal/model"
	"github.com/jukulab/classdesk-backend/internal/response"
	"github.com/jukulab/classdesk-backend/internal/service"
)

func wsAuthRouter(authService *service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/v1/events", RequireWSAuth(authService), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func signWSToken(t *testing.T, secret string) string {
	t.Helper()
	claims := service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Name:      "テスト",
		Role:      model.RoleAdmin,
		LoginType: model.LoginTypeLocal,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func errCodeOf(t *testing.T, w *httptest.ResponseRecorder) response.ErrCode {
	t.Helper()
	var body struct {
		Error struct {
			Code response.ErrCode `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body.Error.Code
}

func TestRequireWSAuthMissingToken(t *testing.T) {
	r := wsAuthRouter(service.NewAuthService(&config.Config{JWTSecret: "test-secret"}, nil, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws/v1/events", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if code := errCodeOf(t, w); code != response.ErrTokenRequired {
		t.Errorf("error code = %q, want %q", code, response.ErrTokenRequired)
	}
}

func TestRequireWSAuthRejectsBadSignature(t *testing.T) {
	r := wsAuthRouter(service.NewAuthService(&config.Config{JWTSecret: "right"}, nil, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws/v1/events?token="+signWSToken(t, "wrong"), nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if code := errCodeOf(t, w); code != response.ErrTokenInvalid {
		t.Errorf("error code = %q, want %q", code, response.ErrTokenInvalid)
	}
}

// A well-signed token is not enough on its own: the session store must
// confirm the JTI is still live, so logged-out tokens cannot open a
// stream.
func TestRequireWSAuthRequiresLiveSession(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	cfg := &config.Config{JWTSecret: "test-secret"}
	r := wsAuthRouter(service.NewAuthService(cfg, nil, rdb))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws/v1/events?token="+signWSToken(t, "test-secret"), nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 when the session cannot be confirmed", w.Code)
	}
	if code := errCodeOf(t, w); code != response.ErrSessionInvalidated {
		t.Errorf("error code = %q, want %q", code, response.ErrSessionInvalidated)
	}
}
