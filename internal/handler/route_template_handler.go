package handler

import (
	"github.com/gin-gonic/gin"

	"routeview/backend/internal/service"
	"routeview/backend/pkg/response"
)

type RouteTemplateHandler struct {
	templateService service.RouteTemplateService
}

func NewRouteTemplateHandler(templateService service.RouteTemplateService) *RouteTemplateHandler {
	return &RouteTemplateHandler{templateService: templateService}
}

type RouteTemplateRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	ClientIDs      []uint   `json:"client_ids"`
	RecurrenceDays []string `json:"recurrence_days"`
}

func (r RouteTemplateRequest) toInput() service.RouteTemplateInput {
	return service.RouteTemplateInput{
		Name:           r.Name,
		Description:    r.Description,
		ClientIDs:      r.ClientIDs,
		RecurrenceDays: r.RecurrenceDays,
	}
}

func (h *RouteTemplateHandler) List(c *gin.Context) {
	tmpls, err := h.templateService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, tmpls)
}

func (h *RouteTemplateHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	tmpl, err := h.templateService.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, tmpl)
}

func (h *RouteTemplateHandler) Create(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}
	var req RouteTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	tmpl, err := h.templateService.Create(c.Request.Context(), user.ID, req.toInput())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, tmpl)
}

func (h *RouteTemplateHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req RouteTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	tmpl, err := h.templateService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, tmpl)
}

func (h *RouteTemplateHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.templateService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

type MaterializeRequest struct {
	Name string `json:"name"` // empty keeps the template/route name
}

func (h *RouteTemplateHandler) CreateRoute(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req MaterializeRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	route, err := h.templateService.CreateRoute(c.Request.Context(), id, req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, route)
}

func (h *RouteTemplateHandler) SaveRouteAsTemplate(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	user, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}
	var req MaterializeRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	tmpl, err := h.templateService.SnapshotRoute(c.Request.Context(), id, req.Name, user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, tmpl)
}
