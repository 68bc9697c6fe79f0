package handler

import (
	farmapp "github.com/agro/backend/internal/application/farm"
	"github.com/gin-gonic/gin"
)

// RainfallHandler handles rainfall record endpoints
type RainfallHandler struct {
	BaseHandler
	rainfallService *farmapp.RainfallService
}

// NewRainfallHandler creates a new RainfallHandler
func NewRainfallHandler(rainfallService *farmapp.RainfallService) *RainfallHandler {
	return &RainfallHandler{rainfallService: rainfallService}
}

// Create records rainfall on a field
func (h *RainfallHandler) Create(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req farmapp.CreateRainfallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.rainfallService.RecordRainfall(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}

// ListForField returns the rainfall records of one field
func (h *RainfallHandler) ListForField(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	fieldID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid field ID")
		return
	}

	records, err := h.rainfallService.ListRainfall(c.Request.Context(), userID, fieldID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}

// Delete removes a rainfall record
func (h *RainfallHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	recordID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid record ID")
		return
	}

	if err := h.rainfallService.DeleteRainfall(c.Request.Context(), userID, recordID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
