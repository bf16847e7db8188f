package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aryasetya/go-auth-api/pkg/helpers"
)

func newGuardedRouter(jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetString(CtxUserIDKey),
			"username": c.GetString(CtxUsernameKey),
			"email":    c.GetString(CtxEmailKey),
		})
	})
	return r
}

func doRequest(t *testing.T, r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_Admitted(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", "authenticator", time.Hour)
	r := newGuardedRouter(jwt)

	tok, err := jwt.Issue("user-1", "alice", "alice@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	w := doRequest(t, r, "Bearer "+tok)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{"user-1", "alice", "alice@x.com"} {
		if !strings.Contains(body, want) {
			t.Fatalf("claims not attached to context, body: %s", body)
		}
	}
}

func TestAuth_MissingOrMisshapenHeader(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", "authenticator", time.Hour)
	r := newGuardedRouter(jwt)

	tok, err := jwt.Issue("user-1", "alice", "alice@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Token abc"},
		{"scheme only", "Bearer"},
		{"empty token", "Bearer "},
		{"valid token wrong scheme", "Basic " + tok},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, r, tc.header)
			if w.Code != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", w.Code)
			}
		})
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", "authenticator", time.Hour)
	r := newGuardedRouter(jwt)

	w := doRequest(t, r, "Bearer tampered.token.value")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid token") {
		t.Fatalf("expected invalid token message, body: %s", w.Body.String())
	}
}

func TestAuth_ExpiredTokenIsDistinct(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", "authenticator", -time.Minute)
	expired, err := jwt.Issue("user-1", "alice", "alice@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	r := newGuardedRouter(jwt)

	w := doRequest(t, r, "Bearer "+expired)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "expired") {
		t.Fatalf("expired token must be reported distinctly, body: %s", w.Body.String())
	}
}
