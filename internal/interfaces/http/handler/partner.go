package handler

import (
	partnerapp "github.com/agro/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// PartnerHandler handles partnership invitation endpoints
type PartnerHandler struct {
	BaseHandler
	partnerService *partnerapp.Service
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(partnerService *partnerapp.Service) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

// Invite sends a partnership invitation by username
func (h *PartnerHandler) Invite(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req partnerapp.SendInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invite, err := h.partnerService.SendInvite(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invite)
}

// Accept accepts a pending invitation
func (h *PartnerHandler) Accept(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	requestID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	partner, err := h.partnerService.Accept(c.Request.Context(), userID, requestID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, partner)
}

// Decline removes an invitation or an existing partnership
func (h *PartnerHandler) Decline(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	requestID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	if err := h.partnerService.Decline(c.Request.Context(), userID, requestID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// List returns the user's invitations and partnerships
func (h *PartnerHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	partners, err := h.partnerService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, partners)
}
