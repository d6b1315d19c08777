package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/squeedr/squeedr-api/internal/models"
	"github.com/squeedr/squeedr-api/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Register(ctx context.Context, email, name, passwordHash, role string) (*models.User, error)
	Invite(ctx context.Context, email, name, role string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name string, avatarURL *string) (*models.User, error)
	SetRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SwitchRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error)
}

// SessionServiceInterface defines the methods used by handlers from SessionService
type SessionServiceInterface interface {
	Create(ctx context.Context, in services.CreateSessionInput) (*models.Session, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
	ListForUser(ctx context.Context, userID uuid.UUID, actingRole string) ([]models.Session, error)
	Transition(ctx context.Context, id uuid.UUID, newStatus string) (*models.Session, error)
	AttachRecording(ctx context.Context, id uuid.UUID, url string) (*models.Session, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (*models.Session, error)
	Cancel(ctx context.Context, id uuid.UUID) (*models.Session, error)
}

// WorkspaceServiceInterface defines the methods used by handlers from WorkspaceService
type WorkspaceServiceInterface interface {
	Create(ctx context.Context, in services.CreateWorkspaceInput, ownerID uuid.UUID) (*models.Workspace, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error)
	List(ctx context.Context) ([]models.Workspace, error)
	Update(ctx context.Context, id uuid.UUID, in services.UpdateWorkspaceInput) (*models.Workspace, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IsOwner(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error)
}

// PermissionRequestServiceInterface defines the methods used by handlers from PermissionRequestService
type PermissionRequestServiceInterface interface {
	Create(ctx context.Context, requesterID uuid.UUID, perms []string, reason string) (*models.PermissionRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.PermissionRequest, error)
	ListPending(ctx context.Context) ([]models.PermissionRequest, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.PermissionRequest, error)
	Resolve(ctx context.Context, id, responderID uuid.UUID, approve bool, reason string) (*models.PermissionRequest, error)
}

// WaitlistServiceInterface defines the methods used by handlers from WaitlistService
type WaitlistServiceInterface interface {
	Join(ctx context.Context, userID, workspaceID uuid.UUID, date, start, end string) (*models.WaitlistRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.WaitlistRequest, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.WaitlistRequest, error)
	ListForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.WaitlistRequest, error)
	NotifySlotFreed(ctx context.Context, workspaceID uuid.UUID, date, start, end string) ([]models.WaitlistRequest, error)
	Claim(ctx context.Context, id, userID uuid.UUID) (*models.WaitlistRequest, error)
	Cancel(ctx context.Context, id, userID uuid.UUID) (*models.WaitlistRequest, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email, actingRole string, availableRoles []string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// HubInterface defines the methods used by handlers from the SSE Hub
type HubInterface interface {
	BroadcastWaitlistNotified(workspaceID, requestID, userID uuid.UUID, date, start, end string)
	BroadcastSessionCancelled(workspaceID, sessionID uuid.UUID)
	BroadcastSessionUpdated(workspaceID, sessionID uuid.UUID, status string)
}
