package handler

import (
	"github.com/gin-gonic/gin"

	"routeview/backend/internal/service"
	"routeview/backend/pkg/response"
)

type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// ClientRequest is the full client state; PUT replaces every stored field
// with the request value.
// Coordinates are pointers so that "required" checks presence only; 0.0 is a
// valid latitude and longitude.
type ClientRequest struct {
	Name         string   `json:"name" binding:"required"`
	ContactName  string   `json:"contact_name"`
	ContactPhone string   `json:"contact_phone"`
	ContactEmail string   `json:"contact_email"`
	Address      string   `json:"address"`
	Latitude     *float64 `json:"latitude" binding:"required"`
	Longitude    *float64 `json:"longitude" binding:"required"`
	Notes        string   `json:"notes"`
}

func (r ClientRequest) toInput() service.ClientInput {
	return service.ClientInput{
		Name:         r.Name,
		ContactName:  r.ContactName,
		ContactPhone: r.ContactPhone,
		ContactEmail: r.ContactEmail,
		Address:      r.Address,
		Latitude:     *r.Latitude,
		Longitude:    *r.Longitude,
		Notes:        r.Notes,
	}
}

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clientService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, clients)
}

func (h *ClientHandler) ListWithStatus(c *gin.Context) {
	clients, err := h.clientService.ListWithStatus(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	client, err := h.clientService.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	client, err := h.clientService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	client, err := h.clientService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.clientService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

type VisitLogRequest struct {
	Notes string `json:"notes"`
}

func (h *ClientHandler) CreateVisitLog(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req VisitLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	var actorID *uint
	if user := optionalUser(c); user != nil {
		actorID = &user.ID
	}

	log, err := h.clientService.AddVisitLog(c.Request.Context(), id, req.Notes, actorID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, log)
}

func (h *ClientHandler) ListVisitLogs(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	logs, err := h.clientService.ListVisitLogs(c.Request.Context(), id, c.Query("search"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, logs)
}

func (h *ClientHandler) DeleteVisitLog(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.clientService.DeleteVisitLog(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
