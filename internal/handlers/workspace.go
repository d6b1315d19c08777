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

type WorkspaceHandler struct {
	workspaceService WorkspaceServiceInterface
}

func NewWorkspaceHandler(workspaceService WorkspaceServiceInterface) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

func toWorkspaceResponse(w *models.Workspace) dto.WorkspaceResponse {
	return dto.WorkspaceResponse{
		ID:         w.ID,
		Name:       w.Name,
		Location:   w.Location,
		Capacity:   w.Capacity,
		Amenities:  w.Amenities,
		HourlyRate: w.HourlyRate,
		Available:  w.Available,
		OwnerID:    w.OwnerID,
	}
}

func (h *WorkspaceHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateWorkspaceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	ws, err := h.workspaceService.Create(context.Background(), services.CreateWorkspaceInput{
		Name:       req.Name,
		Location:   req.Location,
		Capacity:   req.Capacity,
		Amenities:  req.Amenities,
		HourlyRate: req.HourlyRate,
	}, userID)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError("failed to create workspace")
		return
	}

	_ = c.JSON(201, toWorkspaceResponse(ws))
}

func (h *WorkspaceHandler) List(c *drift.Context) {
	workspaces, err := h.workspaceService.List(context.Background())
	if err != nil {
		c.InternalServerError("failed to list workspaces")
		return
	}

	response := make([]dto.WorkspaceResponse, len(workspaces))
	for i := range workspaces {
		response[i] = toWorkspaceResponse(&workspaces[i])
	}
	_ = c.JSON(200, response)
}

func (h *WorkspaceHandler) Get(c *drift.Context) {
	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	ws, err := h.workspaceService.GetByID(context.Background(), workspaceID)
	if err != nil {
		c.NotFound("workspace not found")
		return
	}

	_ = c.JSON(200, toWorkspaceResponse(ws))
}

func (h *WorkspaceHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	ctx := context.Background()

	isOwner, err := h.workspaceService.IsOwner(ctx, workspaceID, userID)
	if err != nil || !isOwner {
		c.Forbidden("cannot modify this workspace")
		return
	}

	var req dto.UpdateWorkspaceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	ws, err := h.workspaceService.Update(ctx, workspaceID, services.UpdateWorkspaceInput{
		Name:       req.Name,
		Location:   req.Location,
		Capacity:   req.Capacity,
		Amenities:  req.Amenities,
		HourlyRate: req.HourlyRate,
		Available:  req.Available,
	})
	if err != nil {
		c.InternalServerError("failed to update workspace")
		return
	}

	_ = c.JSON(200, toWorkspaceResponse(ws))
}

func (h *WorkspaceHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	ctx := context.Background()

	isOwner, err := h.workspaceService.IsOwner(ctx, workspaceID, userID)
	if err != nil || !isOwner {
		c.Forbidden("cannot delete this workspace")
		return
	}

	if err := h.workspaceService.Delete(ctx, workspaceID); err != nil {
		c.InternalServerError("failed to delete workspace")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "workspace deleted"})
}
