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

type SessionHandler struct {
	sessionService  SessionServiceInterface
	waitlistService WaitlistServiceInterface
	hub             HubInterface
}

func NewSessionHandler(sessionService SessionServiceInterface, waitlistService WaitlistServiceInterface, hub HubInterface) *SessionHandler {
	return &SessionHandler{
		sessionService:  sessionService,
		waitlistService: waitlistService,
		hub:             hub,
	}
}

func toSessionResponse(s *models.Session) dto.SessionResponse {
	return dto.SessionResponse{
		ID:            s.ID,
		Title:         s.Title,
		ExpertID:      s.ExpertID,
		ExpertName:    s.ExpertName,
		ClientID:      s.ClientID,
		ClientName:    s.ClientName,
		WorkspaceID:   s.WorkspaceID,
		WorkspaceName: s.WorkspaceName,
		Date:          s.Date,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		Status:        s.Status,
		Price:         s.Price,
		RecordingURL:  s.RecordingURL,
		Notes:         s.Notes,
	}
}

func (h *SessionHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateSessionRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	sess, err := h.sessionService.Create(context.Background(), services.CreateSessionInput{
		Title:       req.Title,
		ExpertID:    req.ExpertID,
		ClientID:    req.ClientID,
		WorkspaceID: req.WorkspaceID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Price:       req.Price,
		Notes:       req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			c.BadRequest(err.Error())
		case errors.Is(err, services.ErrWorkspaceUnavailable):
			_ = c.JSON(409, map[string]string{"error": "workspace is not available, join the waitlist instead"})
		default:
			c.InternalServerError("failed to create session")
		}
		return
	}

	_ = c.JSON(201, toSessionResponse(sess))
}

func (h *SessionHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	sessions, err := h.sessionService.ListForUser(context.Background(), userID, middleware.GetActingRole(c))
	if err != nil {
		c.InternalServerError("failed to list sessions")
		return
	}

	response := make([]dto.SessionResponse, len(sessions))
	for i := range sessions {
		response[i] = toSessionResponse(&sessions[i])
	}
	_ = c.JSON(200, response)
}

func (h *SessionHandler) Get(c *drift.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid session id")
		return
	}

	sess, err := h.sessionService.GetByID(context.Background(), sessionID)
	if err != nil {
		c.NotFound("session not found")
		return
	}

	_ = c.JSON(200, toSessionResponse(sess))
}

func (h *SessionHandler) Transition(c *drift.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid session id")
		return
	}

	var req dto.TransitionSessionRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Status == "" {
		c.BadRequest("status is required")
		return
	}

	sess, err := h.sessionService.Transition(context.Background(), sessionID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			c.NotFound("session not found")
		case errors.Is(err, services.ErrInvalidTransition):
			_ = c.JSON(409, map[string]string{"error": err.Error()})
		default:
			c.InternalServerError("failed to update session")
		}
		return
	}

	h.hub.BroadcastSessionUpdated(sess.WorkspaceID, sess.ID, sess.Status)

	_ = c.JSON(200, toSessionResponse(sess))
}

func (h *SessionHandler) AttachRecording(c *drift.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid session id")
		return
	}

	var req dto.AttachRecordingRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	sess, err := h.sessionService.AttachRecording(context.Background(), sessionID, req.RecordingURL)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			c.NotFound("session not found")
		case errors.Is(err, services.ErrValidation):
			c.BadRequest(err.Error())
		case errors.Is(err, services.ErrInvalidTransition):
			_ = c.JSON(409, map[string]string{"error": err.Error()})
		default:
			c.InternalServerError("failed to attach recording")
		}
		return
	}

	h.hub.BroadcastSessionUpdated(sess.WorkspaceID, sess.ID, sess.Status)

	_ = c.JSON(200, toSessionResponse(sess))
}

func (h *SessionHandler) UpdateNotes(c *drift.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid session id")
		return
	}

	var req dto.UpdateSessionNotesRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	sess, err := h.sessionService.UpdateNotes(context.Background(), sessionID, req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			c.NotFound("session not found")
			return
		}
		c.InternalServerError("failed to update notes")
		return
	}

	_ = c.JSON(200, toSessionResponse(sess))
}

// Cancel frees the session's slot and kicks the waitlist for it.
func (h *SessionHandler) Cancel(c *drift.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid session id")
		return
	}

	ctx := context.Background()

	sess, err := h.sessionService.Cancel(ctx, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			c.NotFound("session not found")
		case errors.Is(err, services.ErrInvalidTransition):
			_ = c.JSON(409, map[string]string{"error": err.Error()})
		default:
			c.InternalServerError("failed to cancel session")
		}
		return
	}

	h.hub.BroadcastSessionCancelled(sess.WorkspaceID, sess.ID)

	notified, err := h.waitlistService.NotifySlotFreed(ctx, sess.WorkspaceID, sess.Date, sess.StartTime, sess.EndTime)
	if err == nil {
		for _, wr := range notified {
			h.hub.BroadcastWaitlistNotified(wr.WorkspaceID, wr.ID, wr.UserID, wr.Date, wr.StartTime, wr.EndTime)
		}
	}

	_ = c.JSON(200, toSessionResponse(sess))
}
