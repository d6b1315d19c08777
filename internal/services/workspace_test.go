package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/squeedr/squeedr-api/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWorkspaceService(t *testing.T) (*WorkspaceService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewWorkspaceService(db), mock
}

func workspaceRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "name", "location", "capacity", "amenities", "hourly_rate",
		"available", "owner_id", "created_at", "updated_at",
	})
}

func TestWorkspaceService_Create(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	ownerID := uuid.New()
	now := time.Now()

	in := CreateWorkspaceInput{
		Name:       "Conference Room A",
		Location:   "Floor 2",
		Capacity:   8,
		Amenities:  []string{"whiteboard", "projector"},
		HourlyRate: 45.0,
	}

	mock.ExpectQuery(`INSERT INTO workspaces`).
		WithArgs(in.Name, in.Location, in.Capacity, in.Amenities, in.HourlyRate, ownerID).
		WillReturnRows(workspaceRows().AddRow(
			workspaceID, in.Name, in.Location, in.Capacity, in.Amenities,
			in.HourlyRate, true, ownerID, now, now,
		))

	ws, err := svc.Create(ctx, in, ownerID)

	require.NoError(t, err)
	assert.Equal(t, workspaceID, ws.ID)
	assert.True(t, ws.Available)
	assert.Equal(t, ownerID, ws.OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_Create_Validation(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	ownerID := uuid.New()

	_, err := svc.Create(ctx, CreateWorkspaceInput{Capacity: 4, HourlyRate: 10}, ownerID)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, CreateWorkspaceInput{Name: "Room", Capacity: 0, HourlyRate: 10}, ownerID)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, CreateWorkspaceInput{Name: "Room", Capacity: 4, HourlyRate: -1}, ownerID)
	assert.ErrorIs(t, err, ErrValidation)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_GetByID_NotFound(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM workspaces WHERE id`).
		WithArgs(workspaceID).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetByID(ctx, workspaceID)

	assert.ErrorIs(t, err, ErrWorkspaceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_Update_PartialFields(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	ownerID := uuid.New()
	now := time.Now()

	available := false
	in := UpdateWorkspaceInput{Available: &available}

	mock.ExpectQuery(`UPDATE workspaces SET`).
		WithArgs(in.Name, in.Location, in.Capacity, in.Amenities, in.HourlyRate, in.Available, workspaceID).
		WillReturnRows(workspaceRows().AddRow(
			workspaceID, "Conference Room A", "Floor 2", 8, []string{"whiteboard"},
			45.0, false, ownerID, now, now,
		))

	ws, err := svc.Update(ctx, workspaceID, in)

	require.NoError(t, err)
	assert.False(t, ws.Available)
	assert.Equal(t, "Conference Room A", ws.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_Delete_NotFound(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()

	mock.ExpectExec(`DELETE FROM workspaces WHERE id`).
		WithArgs(workspaceID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := svc.Delete(ctx, workspaceID)

	assert.ErrorIs(t, err, ErrWorkspaceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_IsOwner(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT owner_id FROM workspaces WHERE id`).
		WithArgs(workspaceID).
		WillReturnRows(pgxmock.NewRows([]string{"owner_id"}).AddRow(ownerID))

	isOwner, err := svc.IsOwner(ctx, workspaceID, ownerID)

	require.NoError(t, err)
	assert.True(t, isOwner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_IsOwner_DifferentUser(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()

	mock.ExpectQuery(`SELECT owner_id FROM workspaces WHERE id`).
		WithArgs(workspaceID).
		WillReturnRows(pgxmock.NewRows([]string{"owner_id"}).AddRow(uuid.New()))

	isOwner, err := svc.IsOwner(ctx, workspaceID, uuid.New())

	require.NoError(t, err)
	assert.False(t, isOwner)
	assert.NoError(t, mock.ExpectationsWereMet())
}
