package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"qual-store/api/response"
	"qual-store/internal/identity"
	"qual-store/internal/logger"
	"qual-store/internal/models"
)

type TokenParser interface {
	ParseToken(tokenString string) (identity.Caller, error)
}

type AuthMiddleware struct {
	log    *logger.Logger
	tokens TokenParser
}

func NewAuthMiddleware(log *logger.Logger, tokens TokenParser) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("Middleware", "AuthMiddleware"), tokens: tokens}
}

// RequireAuth resolves the bearer token into an identity.Caller on the request context.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearer(c)
		if tokenString == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing or invalid token"))
			return
		}
		caller, err := am.tokens.ParseToken(tokenString)
		if err != nil {
			am.log.Debug("Token rejected", "error", err)
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", err)
			return
		}
		c.Request = c.Request.WithContext(identity.WithCaller(c.Request.Context(), caller))
		c.Set("username", caller.Username)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(roles ...models.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := identity.FromContext(c.Request.Context())
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing or invalid token"))
			return
		}
		if !slices.Contains(roles, caller.Role) {
			response.AbortError(c, http.StatusForbidden, "forbidden", errors.New("forbidden"))
			return
		}
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
