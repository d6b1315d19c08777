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

type WaitlistHandler struct {
	waitlistService  WaitlistServiceInterface
	workspaceService WorkspaceServiceInterface
}

func NewWaitlistHandler(waitlistService WaitlistServiceInterface, workspaceService WorkspaceServiceInterface) *WaitlistHandler {
	return &WaitlistHandler{
		waitlistService:  waitlistService,
		workspaceService: workspaceService,
	}
}

func toWaitlistResponse(w *models.WaitlistRequest) dto.WaitlistResponse {
	return dto.WaitlistResponse{
		ID:            w.ID,
		UserID:        w.UserID,
		WorkspaceID:   w.WorkspaceID,
		WorkspaceName: w.WorkspaceName,
		Date:          w.Date,
		StartTime:     w.StartTime,
		EndTime:       w.EndTime,
		Status:        w.Status,
	}
}

func (h *WaitlistHandler) Join(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.JoinWaitlistRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.WorkspaceID == uuid.Nil {
		c.BadRequest("workspace_id is required")
		return
	}

	ctx := context.Background()

	if _, err := h.workspaceService.GetByID(ctx, req.WorkspaceID); err != nil {
		c.NotFound("workspace not found")
		return
	}

	wr, err := h.waitlistService.Join(ctx, userID, req.WorkspaceID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError("failed to join waitlist")
		return
	}

	_ = c.JSON(201, toWaitlistResponse(wr))
}

func (h *WaitlistHandler) ListMine(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	requests, err := h.waitlistService.ListForUser(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to list waitlist requests")
		return
	}

	response := make([]dto.WaitlistResponse, len(requests))
	for i := range requests {
		response[i] = toWaitlistResponse(&requests[i])
	}
	_ = c.JSON(200, response)
}

func (h *WaitlistHandler) ListForWorkspace(c *drift.Context) {
	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	requests, err := h.waitlistService.ListForWorkspace(context.Background(), workspaceID)
	if err != nil {
		c.InternalServerError("failed to list waitlist requests")
		return
	}

	response := make([]dto.WaitlistResponse, len(requests))
	for i := range requests {
		response[i] = toWaitlistResponse(&requests[i])
	}
	_ = c.JSON(200, response)
}

func (h *WaitlistHandler) Claim(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid waitlist request id")
		return
	}

	wr, err := h.waitlistService.Claim(context.Background(), requestID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWaitlistNotFound):
			c.NotFound("waitlist request not found")
		case errors.Is(err, services.ErrWaitlistNotNotified):
			_ = c.JSON(409, map[string]string{"error": "waitlist request is not claimable"})
		case errors.Is(err, services.ErrClaimWindowExpired):
			_ = c.JSON(409, map[string]string{"error": "claim window has expired"})
		default:
			c.InternalServerError("failed to claim waitlist slot")
		}
		return
	}

	_ = c.JSON(200, toWaitlistResponse(wr))
}

func (h *WaitlistHandler) Cancel(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid waitlist request id")
		return
	}

	wr, err := h.waitlistService.Cancel(context.Background(), requestID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWaitlistNotFound):
			c.NotFound("waitlist request not found")
		case errors.Is(err, services.ErrWaitlistTerminal):
			_ = c.JSON(409, map[string]string{"error": "waitlist request already resolved"})
		default:
			c.InternalServerError("failed to cancel waitlist request")
		}
		return
	}

	_ = c.JSON(200, toWaitlistResponse(wr))
}
