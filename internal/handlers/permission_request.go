package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/squeedr/squeedr-api/internal/middleware"
	"github.com/squeedr/squeedr-api/internal/models"
	"github.com/squeedr/squeedr-api/internal/services"
	"github.com/squeedr/squeedr-api/pkg/dto"
)

type PermissionRequestHandler struct {
	requestService PermissionRequestServiceInterface
}

func NewPermissionRequestHandler(requestService PermissionRequestServiceInterface) *PermissionRequestHandler {
	return &PermissionRequestHandler{requestService: requestService}
}

func toPermissionRequestResponse(r *models.PermissionRequest) dto.PermissionRequestResponse {
	return dto.PermissionRequestResponse{
		ID:             r.ID,
		RequesterID:    r.RequesterID,
		RequesterName:  r.RequesterName,
		Permissions:    r.Permissions,
		Reason:         r.Reason,
		Status:         r.Status,
		ResponderID:    r.ResponderID,
		ResponseReason: r.ResponseReason,
	}
}

func (h *PermissionRequestHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreatePermissionRequestRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	request, err := h.requestService.Create(context.Background(), userID, req.Permissions, req.Reason)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError("failed to create permission request")
		return
	}

	_ = c.JSON(201, toPermissionRequestResponse(request))
}

func (h *PermissionRequestHandler) ListMine(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	requests, err := h.requestService.ListForUser(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to list permission requests")
		return
	}

	response := make([]dto.PermissionRequestResponse, len(requests))
	for i := range requests {
		response[i] = toPermissionRequestResponse(&requests[i])
	}
	_ = c.JSON(200, response)
}

func (h *PermissionRequestHandler) ListPending(c *drift.Context) {
	requests, err := h.requestService.ListPending(context.Background())
	if err != nil {
		c.InternalServerError("failed to list permission requests")
		return
	}

	response := make([]dto.PermissionRequestResponse, len(requests))
	for i := range requests {
		response[i] = toPermissionRequestResponse(&requests[i])
	}
	_ = c.JSON(200, response)
}

func (h *PermissionRequestHandler) Approve(c *drift.Context) {
	h.resolve(c, true)
}

func (h *PermissionRequestHandler) Deny(c *drift.Context) {
	h.resolve(c, false)
}

func (h *PermissionRequestHandler) resolve(c *drift.Context, approve bool) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid request id")
		return
	}

	var req dto.ResolvePermissionRequestRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	request, err := h.requestService.Resolve(context.Background(), requestID, userID, approve, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			c.BadRequest(err.Error())
		case errors.Is(err, services.ErrRequestNotFound):
			c.NotFound("permission request not found")
		case errors.Is(err, services.ErrRequestResolved):
			_ = c.JSON(409, map[string]string{"error": "permission request already resolved"})
		default:
			c.InternalServerError("failed to resolve permission request")
		}
		return
	}

	_ = c.JSON(200, toPermissionRequestResponse(request))
}
