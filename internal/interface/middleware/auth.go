package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aryasetya/go-auth-api/pkg/helpers"
	"github.com/aryasetya/go-auth-api/pkg/response"
)

// Context keys populated by Auth on admission.
const (
	CtxUserIDKey   = "userID"
	CtxUsernameKey = "userName"
	CtxEmailKey    = "userEmail"
)

// Auth guards protected routes. It extracts the bearer token from the
// Authorization header, validates it, and attaches the decoded claims to the
// Gin context. A missing or mis-shaped header is rejected before any
// validation work; expired tokens are reported distinctly from tampered ones.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error[any](c, http.StatusForbidden, "token is missing or invalid format", nil)
			c.Abort()
			return
		}
		claims, err := jwt.Validate(token)
		if err != nil {
			if errors.Is(err, helpers.ErrTokenExpired) {
				response.Error[any](c, http.StatusUnauthorized, "token has expired", nil)
			} else {
				response.Error[any](c, http.StatusUnauthorized, "invalid token", nil)
			}
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.Subject)
		c.Set(CtxUsernameKey, claims.Username)
		c.Set(CtxEmailKey, claims.Email)
		c.Next()
	}
}

// bearerToken pulls the token out of an "Authorization: Bearer <token>"
// header. Any other scheme or shape is treated as absent.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
