package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"routeview/backend/internal/model"
	"routeview/backend/internal/service"
	"routeview/backend/pkg/response"
)

// AdminHandler groups the admin-only management surface: user accounts and
// invite codes.
type AdminHandler struct {
	userService   service.UserService
	inviteService service.InviteService
}

func NewAdminHandler(userService service.UserService, inviteService service.InviteService) *AdminHandler {
	return &AdminHandler{
		userService:   userService,
		inviteService: inviteService,
	}
}

type UserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"` // required on create, optional on update
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

func (r UserRequest) toInput() service.UserInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.UserInput{
		Email:    r.Email,
		Password: r.Password,
		Name:     r.Name,
		Role:     model.Role(r.Role),
		IsActive: active,
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, users)
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.Password == "" {
		response.BadRequest(c, "password is required")
		return
	}
	user, err := h.userService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, user)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	user, err := h.userService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// DeleteUser deactivates the account; the row is kept for audit history.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.userService.Deactivate(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

type CreateInviteCodeRequest struct {
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (h *AdminHandler) CreateInviteCode(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}
	var req CreateInviteCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	code, err := h.inviteService.Create(c.Request.Context(), user.ID, req.ExpiresAt)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, code)
}

func (h *AdminHandler) ListInviteCodes(c *gin.Context) {
	codes, err := h.inviteService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, codes)
}

func (h *AdminHandler) DeleteInviteCode(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.inviteService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
