package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"access-scheduler/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// CancelAuthMiddleware gates the cancellation endpoint. Operators mint
// bearer tokens out of band, signed with the shared secret; the service only
// verifies them. There is no user subsystem behind this.
type CancelAuthMiddleware struct {
	secret []byte
}

func NewCancelAuthMiddleware(cfg config.Config) *CancelAuthMiddleware {
	return &CancelAuthMiddleware{secret: []byte(cfg.Auth.TokenSecret)}
}

func (m *CancelAuthMiddleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}
		token := strings.TrimSpace(authHeader[len("Bearer "):])

		if err := m.verify(token); err != nil {
			slog.Warn("Token validation failed in cancel auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (m *CancelAuthMiddleware) verify(token string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return err
	}
	if !parsed.Valid {
		return jwt.ErrTokenUnverifiable
	}
	return nil
}
