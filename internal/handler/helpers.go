package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"routeview/backend/internal/handler/middleware"
	"routeview/backend/internal/model"
	"routeview/backend/internal/service"
	jwtpkg "routeview/backend/pkg/jwt"
	"routeview/backend/pkg/response"
)

var ErrNoUser = errors.New("user not found in context")

func currentUser(c *gin.Context) (*model.User, error) {
	userVal, exists := c.Get(middleware.ContextKeyUser)
	if !exists {
		return nil, ErrNoUser
	}
	user, ok := userVal.(*model.User)
	if !ok {
		return nil, ErrNoUser
	}
	return user, nil
}

// optionalUser returns nil without error when the request is unauthenticated.
func optionalUser(c *gin.Context) *model.User {
	user, err := currentUser(c)
	if err != nil {
		return nil
	}
	return user
}

func currentClaims(c *gin.Context) (*jwtpkg.Claims, error) {
	claimsVal, exists := c.Get(middleware.ContextKeyClaims)
	if !exists {
		return nil, ErrNoUser
	}
	claims, ok := claimsVal.(*jwtpkg.Claims)
	if !ok {
		return nil, ErrNoUser
	}
	return claims, nil
}

func parseUintQuery(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	return uint(id), err
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// handleServiceError maps service sentinels onto the API error taxonomy.
// Unexpected errors are logged and surfaced as a generic 500.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInviteCodeInvalid),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidRole):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrDuplicateAssignment):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserInactive):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error())
	default:
		zap.L().Error("internal error", zap.Error(err),
			zap.String("path", c.FullPath()))
		response.InternalError(c, "internal server error")
	}
}
