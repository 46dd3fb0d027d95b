package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/refmatch/internal/identity"
)

const (
	// Context keys set by AuthMiddleware.
	AuthSubjectKey = "auth_subject"
	AuthEmailKey   = "auth_email"
)

// AuthMiddleware verifies the bearer token against the identity gateway and
// stores the resolved subject and email in the request context.
func AuthMiddleware(gateway identity.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format. Expected: Bearer <token>"})
			return
		}

		token, err := gateway.Verify(c.Request.Context(), bearerToken[1])
		if err != nil {
			if errors.Is(err, identity.ErrUnavailable) {
				c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Identity provider unavailable"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(AuthSubjectKey, token.Subject)
		c.Set(AuthEmailKey, token.Email)
		c.Next()
	}
}

// GetSubjectFromContext extracts the authenticated subject id from the context.
func GetSubjectFromContext(c *gin.Context) (string, error) {
	v, exists := c.Get(AuthSubjectKey)
	if !exists {
		return "", errors.New("subject not found in context")
	}
	subject, ok := v.(string)
	if !ok || subject == "" {
		return "", errors.New("subject in context is empty")
	}
	return subject, nil
}

// GetEmailFromContext extracts the authenticated email, if the token carried one.
func GetEmailFromContext(c *gin.Context) string {
	v, exists := c.Get(AuthEmailKey)
	if !exists {
		return ""
	}
	email, _ := v.(string)
	return email
}
