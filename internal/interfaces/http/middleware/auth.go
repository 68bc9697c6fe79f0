package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/agro/backend/internal/infrastructure/auth"
	"github.com/agro/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "

	// userIDKey is the gin context key holding the authenticated user's ID
	userIDKey = "auth_user_id"
	// usernameKey is the gin context key holding the authenticated username
	usernameKey = "auth_username"
)

// Auth validates the bearer access token and stores the authenticated user
// in the request context.
func Auth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderKey)
		if header == "" {
			abortUnauthenticated(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthenticated(c, "Authorization header must use the Bearer scheme")
			return
		}

		claims, err := jwtService.ValidateAccessToken(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthenticated(c, "Access token has expired")
				return
			}
			abortUnauthenticated(c, "Invalid access token")
			return
		}

		userID, err := claims.SubjectID()
		if err != nil {
			abortUnauthenticated(c, "Invalid access token")
			return
		}

		c.Set(userIDKey, userID)
		c.Set(usernameKey, claims.Username)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}

// CurrentUserID returns the authenticated user's ID, or uuid.Nil when the
// request did not pass the Auth middleware.
func CurrentUserID(c *gin.Context) uuid.UUID {
	value, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// CurrentUsername returns the authenticated username, if any
func CurrentUsername(c *gin.Context) string {
	return c.GetString(usernameKey)
}
