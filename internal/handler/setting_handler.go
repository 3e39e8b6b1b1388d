package handler

import (
	"github.com/gin-gonic/gin"

	"routeview/backend/internal/service"
	"routeview/backend/pkg/response"
)

type SettingHandler struct {
	settingService service.SettingService
}

func NewSettingHandler(settingService service.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

func (h *SettingHandler) List(c *gin.Context) {
	settings, err := h.settingService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, settings)
}

func (h *SettingHandler) Get(c *gin.Context) {
	setting, err := h.settingService.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, setting)
}

type SettingRequest struct {
	Value string `json:"value" binding:"required"`
}

func (h *SettingHandler) Set(c *gin.Context) {
	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	setting, err := h.settingService.Set(c.Request.Context(), c.Param("key"), req.Value)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, setting)
}

// BulkSet overwrites several settings in one atomic request.
func (h *SettingHandler) BulkSet(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	settings, err := h.settingService.SetAll(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, settings)
}
