package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/squeedr/squeedr-api/internal/middleware"
	"github.com/squeedr/squeedr-api/internal/models"
	"github.com/squeedr/squeedr-api/internal/services"
	"github.com/squeedr/squeedr-api/pkg/dto"
	"github.com/squeedr/squeedr-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testWorkspace(ownerID uuid.UUID) *models.Workspace {
	return &models.Workspace{
		ID:         uuid.New(),
		Name:       "Meeting Room A",
		Location:   "Floor 2",
		Capacity:   8,
		Amenities:  []string{"whiteboard", "projector"},
		HourlyRate: 40,
		Available:  true,
		OwnerID:    ownerID,
	}
}

func TestWorkspaceHandler_Create(t *testing.T) {
	mockWorkspaces := new(testutil.MockWorkspaceService)
	handler := NewWorkspaceHandler(mockWorkspaces)
	jwtSvc := newTestJWTService()

	ownerID := uuid.New()
	ws := testWorkspace(ownerID)

	mockWorkspaces.On("Create", mock.Anything, services.CreateWorkspaceInput{
		Name:       "Meeting Room A",
		Location:   "Floor 2",
		Capacity:   8,
		Amenities:  []string{"whiteboard", "projector"},
		HourlyRate: 40,
	}, ownerID).Return(ws, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/workspaces", handler.Create)

	token := generateTestToken(t, jwtSvc, ownerID, "owner@example.com", "owner", []string{"owner"})
	req := jsonRequest(t, http.MethodPost, "/workspaces", dto.CreateWorkspaceRequest{
		Name:       "Meeting Room A",
		Location:   "Floor 2",
		Capacity:   8,
		Amenities:  []string{"whiteboard", "projector"},
		HourlyRate: 40,
	})
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response dto.WorkspaceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, ws.ID, response.ID)
	assert.Equal(t, ownerID, response.OwnerID)
	assert.True(t, response.Available)

	mockWorkspaces.AssertExpectations(t)
}

func TestWorkspaceHandler_Create_ValidationError(t *testing.T) {
	mockWorkspaces := new(testutil.MockWorkspaceService)
	handler := NewWorkspaceHandler(mockWorkspaces)
	jwtSvc := newTestJWTService()

	mockWorkspaces.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, services.ErrValidation)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/workspaces", handler.Create)

	token := generateTestToken(t, jwtSvc, uuid.New(), "owner@example.com", "owner", []string{"owner"})
	req := jsonRequest(t, http.MethodPost, "/workspaces", dto.CreateWorkspaceRequest{Name: ""})
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWorkspaceHandler_List(t *testing.T) {
	mockWorkspaces := new(testutil.MockWorkspaceService)
	handler := NewWorkspaceHandler(mockWorkspaces)
	jwtSvc := newTestJWTService()

	workspaces := []models.Workspace{*testWorkspace(uuid.New()), *testWorkspace(uuid.New())}
	mockWorkspaces.On("List", mock.Anything).Return(workspaces, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/workspaces", handler.List)

	token := generateTestToken(t, jwtSvc, uuid.New(), "client@example.com", "client", []string{"client"})
	req := httptest.NewRequest(http.MethodGet, "/workspaces", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.WorkspaceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Len(t, response, 2)
}

func TestWorkspaceHandler_Get_NotFound(t *testing.T) {
	mockWorkspaces := new(testutil.MockWorkspaceService)
	handler := NewWorkspaceHandler(mockWorkspaces)
	jwtSvc := newTestJWTService()

	workspaceID := uuid.New()
	mockWorkspaces.On("GetByID", mock.Anything, workspaceID).Return(nil, services.ErrWorkspaceNotFound)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/workspaces/:workspaceId", handler.Get)

	token := generateTestToken(t, jwtSvc, uuid.New(), "client@example.com", "client", []string{"client"})
	req := httptest.NewRequest(http.MethodGet, "/workspaces/"+workspaceID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWorkspaceHandler_Update_NotOwner(t *testing.T) {
	mockWorkspaces := new(testutil.MockWorkspaceService)
	handler := NewWorkspaceHandler(mockWorkspaces)
	jwtSvc := newTestJWTService()

	workspaceID := uuid.New()
	userID := uuid.New()
	mockWorkspaces.On("IsOwner", mock.Anything, workspaceID, userID).Return(false, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Patch("/workspaces/:workspaceId", handler.Update)

	name := "Renamed Room"
	token := generateTestToken(t, jwtSvc, userID, "owner@example.com", "owner", []string{"owner"})
	req := jsonRequest(t, http.MethodPatch, "/workspaces/"+workspaceID.String(), dto.UpdateWorkspaceRequest{Name: &name})
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockWorkspaces.AssertNotCalled(t, "Update")
}

func TestWorkspaceHandler_Update_TogglesAvailability(t *testing.T) {
	mockWorkspaces := new(testutil.MockWorkspaceService)
	handler := NewWorkspaceHandler(mockWorkspaces)
	jwtSvc := newTestJWTService()

	userID := uuid.New()
	ws := testWorkspace(userID)
	ws.Available = false

	available := false
	mockWorkspaces.On("IsOwner", mock.Anything, ws.ID, userID).Return(true, nil)
	mockWorkspaces.On("Update", mock.Anything, ws.ID, services.UpdateWorkspaceInput{
		Available: &available,
	}).Return(ws, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Patch("/workspaces/:workspaceId", handler.Update)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com", "owner", []string{"owner"})
	req := jsonRequest(t, http.MethodPatch, "/workspaces/"+ws.ID.String(), dto.UpdateWorkspaceRequest{Available: &available})
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.WorkspaceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.Available)

	mockWorkspaces.AssertExpectations(t)
}

func TestWorkspaceHandler_Delete_NotOwner(t *testing.T) {
	mockWorkspaces := new(testutil.MockWorkspaceService)
	handler := NewWorkspaceHandler(mockWorkspaces)
	jwtSvc := newTestJWTService()

	workspaceID := uuid.New()
	userID := uuid.New()
	mockWorkspaces.On("IsOwner", mock.Anything, workspaceID, userID).Return(false, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Delete("/workspaces/:workspaceId", handler.Delete)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com", "owner", []string{"owner"})
	req := httptest.NewRequest(http.MethodDelete, "/workspaces/"+workspaceID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockWorkspaces.AssertNotCalled(t, "Delete")
}

func TestWorkspaceHandler_Delete(t *testing.T) {
	mockWorkspaces := new(testutil.MockWorkspaceService)
	handler := NewWorkspaceHandler(mockWorkspaces)
	jwtSvc := newTestJWTService()

	workspaceID := uuid.New()
	userID := uuid.New()
	mockWorkspaces.On("IsOwner", mock.Anything, workspaceID, userID).Return(true, nil)
	mockWorkspaces.On("Delete", mock.Anything, workspaceID).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Delete("/workspaces/:workspaceId", handler.Delete)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com", "owner", []string{"owner"})
	req := httptest.NewRequest(http.MethodDelete, "/workspaces/"+workspaceID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockWorkspaces.AssertExpectations(t)
}
