package middleware

import (
	"github.com/gin-gonic/gin"

	"routeview/backend/internal/model"
	"routeview/backend/pkg/response"
)

// AdminOnly rejects non-admin users. Must be used after JWTAuth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		userVal, exists := c.Get(ContextKeyUser)
		if !exists {
			response.Unauthorized(c, "missing authentication")
			c.Abort()
			return
		}
		user, ok := userVal.(*model.User)
		if !ok {
			response.Unauthorized(c, "invalid user context")
			c.Abort()
			return
		}
		if user.Role != model.RoleAdmin {
			response.Forbidden(c, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
