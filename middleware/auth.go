package middleware

import (
	"context"
	"net/http"
	"strings"

	"food-ordering-api/apperrors"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

// Verifier resolves a bearer token to its account.
type Verifier interface {
	Verify(ctx context.Context, token string) (*models.User, error)
}

// AuthRequired validates the bearer token and injects the user into context
func AuthRequired(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, v, bearerToken(c.GetHeader("Authorization")))
	}
}

// WebSocketAuth is AuthRequired for upgrade requests, which cannot carry
// custom headers from a browser. The token comes from ?token= and falls
// back to the Authorization header.
func WebSocketAuth(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = bearerToken(c.GetHeader("Authorization"))
		}
		authenticate(c, v, token)
	}
}

func authenticate(c *gin.Context, v Verifier, token string) {
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrMissingToken.Message})
		return
	}
	user, err := v.Verify(c.Request.Context(), token)
	if err != nil {
		if ae, ok := apperrors.IsAuthError(err); ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ae.Message})
			return
		}
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}
	c.Set(userKey, user)
	c.Set("userID", user.ID)
	c.Next()
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// GetUser extracts the authenticated user from context. It is nil on
// routes without AuthRequired.
func GetUser(c *gin.Context) *models.User {
	val, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := val.(*models.User)
	return user
}
