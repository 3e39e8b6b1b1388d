package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"routeview/backend/internal/model"
	"routeview/backend/internal/repository"
	jwtpkg "routeview/backend/pkg/jwt"
	"routeview/backend/pkg/response"
)

const (
	ContextKeyUser   = "current_user"
	ContextKeyClaims = "user_claims"
)

// JWTAuth rejects requests without a valid bearer token whose subject
// resolves to an active user. Revoked (logged-out) tokens are rejected even
// when otherwise valid.
func JWTAuth(jwtManager *jwtpkg.Manager, userRepo repository.UserRepository, denylist repository.TokenDenylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, claims, ok := resolveUser(c, jwtManager, userRepo, denylist)
		if !ok {
			response.Unauthorized(c, "invalid or expired credentials")
			c.Abort()
			return
		}
		c.Set(ContextKeyUser, user)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// OptionalAuth resolves the bearer token when present but never rejects;
// handlers see either a user in context or none.
func OptionalAuth(jwtManager *jwtpkg.Manager, userRepo repository.UserRepository, denylist repository.TokenDenylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, claims, ok := resolveUser(c, jwtManager, userRepo, denylist); ok {
			c.Set(ContextKeyUser, user)
			c.Set(ContextKeyClaims, claims)
		}
		c.Next()
	}
}

func resolveUser(
	c *gin.Context,
	jwtManager *jwtpkg.Manager,
	userRepo repository.UserRepository,
	denylist repository.TokenDenylist,
) (*model.User, *jwtpkg.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, nil, false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, nil, false
	}

	claims, err := jwtManager.Validate(parts[1])
	if err != nil {
		return nil, nil, false
	}
	if revoked, err := denylist.IsRevoked(c.Request.Context(), claims.ID); err != nil || revoked {
		return nil, nil, false
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, nil, false
	}
	user, err := userRepo.GetActiveByID(c.Request.Context(), userID)
	if err != nil {
		return nil, nil, false
	}
	return user, claims, true
}
