package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/squeedr/squeedr-api/internal/models"
	"github.com/squeedr/squeedr-api/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, email, name, passwordHash, role string) (*models.User, error) {
	args := m.Called(ctx, email, name, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Invite(ctx context.Context, email, name, role string) (*models.User, error) {
	args := m.Called(ctx, email, name, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id uuid.UUID, name string, avatarURL *string) (*models.User, error) {
	args := m.Called(ctx, id, name, avatarURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) SetRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*models.User, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserService) SwitchRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockSessionService mocks the SessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, in services.CreateSessionInput) (*models.Session, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionService) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionService) ListForUser(ctx context.Context, userID uuid.UUID, actingRole string) ([]models.Session, error) {
	args := m.Called(ctx, userID, actingRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Session), args.Error(1)
}

func (m *MockSessionService) Transition(ctx context.Context, id uuid.UUID, newStatus string) (*models.Session, error) {
	args := m.Called(ctx, id, newStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionService) AttachRecording(ctx context.Context, id uuid.UUID, url string) (*models.Session, error) {
	args := m.Called(ctx, id, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionService) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (*models.Session, error) {
	args := m.Called(ctx, id, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionService) Cancel(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

// MockWorkspaceService mocks the WorkspaceService
type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) Create(ctx context.Context, in services.CreateWorkspaceInput, ownerID uuid.UUID) (*models.Workspace, error) {
	args := m.Called(ctx, in, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) List(ctx context.Context) ([]models.Workspace, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) Update(ctx context.Context, id uuid.UUID, in services.UpdateWorkspaceInput) (*models.Workspace, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkspaceService) IsOwner(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, workspaceID, userID)
	return args.Bool(0), args.Error(1)
}

// MockPermissionRequestService mocks the PermissionRequestService
type MockPermissionRequestService struct {
	mock.Mock
}

func (m *MockPermissionRequestService) Create(ctx context.Context, requesterID uuid.UUID, perms []string, reason string) (*models.PermissionRequest, error) {
	args := m.Called(ctx, requesterID, perms, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PermissionRequest), args.Error(1)
}

func (m *MockPermissionRequestService) GetByID(ctx context.Context, id uuid.UUID) (*models.PermissionRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PermissionRequest), args.Error(1)
}

func (m *MockPermissionRequestService) ListPending(ctx context.Context) ([]models.PermissionRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PermissionRequest), args.Error(1)
}

func (m *MockPermissionRequestService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.PermissionRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PermissionRequest), args.Error(1)
}

func (m *MockPermissionRequestService) Resolve(ctx context.Context, id, responderID uuid.UUID, approve bool, reason string) (*models.PermissionRequest, error) {
	args := m.Called(ctx, id, responderID, approve, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PermissionRequest), args.Error(1)
}

// MockWaitlistService mocks the WaitlistService
type MockWaitlistService struct {
	mock.Mock
}

func (m *MockWaitlistService) Join(ctx context.Context, userID, workspaceID uuid.UUID, date, start, end string) (*models.WaitlistRequest, error) {
	args := m.Called(ctx, userID, workspaceID, date, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WaitlistRequest), args.Error(1)
}

func (m *MockWaitlistService) GetByID(ctx context.Context, id uuid.UUID) (*models.WaitlistRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WaitlistRequest), args.Error(1)
}

func (m *MockWaitlistService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.WaitlistRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WaitlistRequest), args.Error(1)
}

func (m *MockWaitlistService) ListForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.WaitlistRequest, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WaitlistRequest), args.Error(1)
}

func (m *MockWaitlistService) NotifySlotFreed(ctx context.Context, workspaceID uuid.UUID, date, start, end string) ([]models.WaitlistRequest, error) {
	args := m.Called(ctx, workspaceID, date, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WaitlistRequest), args.Error(1)
}

func (m *MockWaitlistService) Claim(ctx context.Context, id, userID uuid.UUID) (*models.WaitlistRequest, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WaitlistRequest), args.Error(1)
}

func (m *MockWaitlistService) Cancel(ctx context.Context, id, userID uuid.UUID) (*models.WaitlistRequest, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WaitlistRequest), args.Error(1)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockHub mocks the SSE hub broadcast surface
type MockHub struct {
	mock.Mock
}

func (m *MockHub) BroadcastWaitlistNotified(workspaceID, requestID, userID uuid.UUID, date, start, end string) {
	m.Called(workspaceID, requestID, userID, date, start, end)
}

func (m *MockHub) BroadcastSessionCancelled(workspaceID, sessionID uuid.UUID) {
	m.Called(workspaceID, sessionID)
}

func (m *MockHub) BroadcastSessionUpdated(workspaceID, sessionID uuid.UUID, status string) {
	m.Called(workspaceID, sessionID, status)
}
