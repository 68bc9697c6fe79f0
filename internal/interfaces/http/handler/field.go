package handler

import (
	farmapp "github.com/agro/backend/internal/application/farm"
	"github.com/gin-gonic/gin"
)

// FieldHandler handles field CRUD and head-count history endpoints
type FieldHandler struct {
	BaseHandler
	fieldService *farmapp.FieldService
}

// NewFieldHandler creates a new FieldHandler
func NewFieldHandler(fieldService *farmapp.FieldService) *FieldHandler {
	return &FieldHandler{fieldService: fieldService}
}

// Create registers a new field for the authenticated user
func (h *FieldHandler) Create(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req farmapp.CreateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	field, err := h.fieldService.CreateField(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, field)
}

// Get returns one field
func (h *FieldHandler) Get(c *gin.Context) {
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

	field, err := h.fieldService.GetField(c.Request.Context(), userID, fieldID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, field)
}

// List returns all fields of the authenticated user
func (h *FieldHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fields, err := h.fieldService.ListFields(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fields)
}

// Update changes a field's descriptive attributes
func (h *FieldHandler) Update(c *gin.Context) {
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

	var req farmapp.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	field, err := h.fieldService.UpdateField(c.Request.Context(), userID, fieldID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, field)
}

// Delete removes a field
func (h *FieldHandler) Delete(c *gin.Context) {
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

	if err := h.fieldService.DeleteField(c.Request.Context(), userID, fieldID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// History returns the raw head-count snapshots of one field
func (h *FieldHandler) History(c *gin.Context) {
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

	points, err := h.fieldService.FieldHistory(c.Request.Context(), userID, fieldID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, points)
}

// GlobalHistory returns the aggregated head-count series across all of the
// user's fields.
func (h *FieldHandler) GlobalHistory(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	points, err := h.fieldService.GlobalHistory(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, points)
}
