package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sellersync/backend/internal/infrastructure/auth"
	"github.com/sellersync/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Session context keys
const (
	SessionClaimsKey  = "session_claims"
	SessionSubjectKey = "session_subject"
	AuthHeaderKey     = "Authorization"
	BearerPrefix      = "Bearer "
)

// SessionVerifier validates a dashboard session token and returns its claims
type SessionVerifier interface {
	Verify(tokenString string) (*auth.SessionClaims, error)
}

// SessionAuth creates session authentication middleware for dashboard routes
func SessionAuth(verifier SessionVerifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Missing token")
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			if log != nil {
				log.Warn("Session authentication failed",
					zap.Error(err),
					zap.String("path", c.Request.URL.Path),
				)
			}
			code := dto.ErrCodeTokenInvalid
			if err == auth.ErrExpiredToken {
				code = dto.ErrCodeTokenExpired
			}
			abortUnauthorized(c, code, "Invalid or expired session")
			return
		}

		c.Set(SessionClaimsKey, claims)
		c.Set(SessionSubjectKey, claims.Subject)
		c.Next()
	}
}

// GetSessionClaims retrieves session claims from gin.Context
func GetSessionClaims(c *gin.Context) *auth.SessionClaims {
	if claims, exists := c.Get(SessionClaimsKey); exists {
		if sc, ok := claims.(*auth.SessionClaims); ok {
			return sc
		}
	}
	return nil
}

// GetSessionSubject retrieves the session subject from context
func GetSessionSubject(c *gin.Context) string {
	if subject, exists := c.Get(SessionSubjectKey); exists {
		if s, ok := subject.(string); ok {
			return s
		}
	}
	return ""
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}
