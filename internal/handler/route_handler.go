package handler

import (
	"github.com/gin-gonic/gin"

	"routeview/backend/internal/model"
	"routeview/backend/internal/service"
	"routeview/backend/pkg/response"
)

type RouteHandler struct {
	routeService service.RouteService
}

func NewRouteHandler(routeService service.RouteService) *RouteHandler {
	return &RouteHandler{routeService: routeService}
}

// RouteRequest carries the full route state; client_ids is the complete
// ordered membership, replacing whatever was stored.
type RouteRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ClientIDs   []uint `json:"client_ids"`
}

func (h *RouteHandler) List(c *gin.Context) {
	routes, err := h.routeService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, routes)
}

func (h *RouteHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	route, err := h.routeService.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, route)
}

func (h *RouteHandler) Create(c *gin.Context) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	route, err := h.routeService.Create(c.Request.Context(), service.RouteInput{
		Name:        req.Name,
		Description: req.Description,
		ClientIDs:   req.ClientIDs,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, route)
}

func (h *RouteHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	route, err := h.routeService.Update(c.Request.Context(), id, service.RouteInput{
		Name:        req.Name,
		Description: req.Description,
		ClientIDs:   req.ClientIDs,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, route)
}

func (h *RouteHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.routeService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

type AssignRequest struct {
	UserID uint   `json:"user_id"` // zero assigns the caller
	Date   string `json:"date" binding:"required"`
}

func (h *RouteHandler) Assign(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	actor, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	assignment, err := h.routeService.Assign(c.Request.Context(), id, actor, req.UserID, req.Date)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, assignment)
}

type BatchAssignRequest struct {
	RouteID uint     `json:"route_id" binding:"required"`
	UserID  uint     `json:"user_id"`
	Dates   []string `json:"dates" binding:"required,min=1"`
}

func (h *RouteHandler) BatchAssign(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}
	var req BatchAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.routeService.BatchAssign(c.Request.Context(), req.RouteID, actor, req.UserID, req.Dates)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *RouteHandler) Schedule(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}
	start := c.Query("start_date")
	end := c.Query("end_date")
	if start == "" || end == "" {
		response.BadRequest(c, "start_date and end_date are required")
		return
	}

	var requestedUser uint
	if raw := c.Query("user_id"); raw != "" {
		id, err := parseUintQuery(raw)
		if err != nil {
			response.BadRequest(c, "invalid user_id")
			return
		}
		requestedUser = id
	}

	assignments, err := h.routeService.ListSchedule(c.Request.Context(), actor, start, end, requestedUser)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, assignments)
}

func (h *RouteHandler) MyRoutes(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}
	assignments, err := h.routeService.MyRoutes(c.Request.Context(), actor.ID, c.Query("date"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, assignments)
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *RouteHandler) UpdateAssignmentStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	actor, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	assignment, err := h.routeService.UpdateAssignmentStatus(
		c.Request.Context(), id, actor, model.AssignmentStatus(req.Status))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, assignment)
}

func (h *RouteHandler) DeleteAssignment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	actor, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}
	if err := h.routeService.DeleteAssignment(c.Request.Context(), id, actor); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
