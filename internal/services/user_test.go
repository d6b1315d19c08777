package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/squeedr/squeedr-api/internal/database"
	"github.com/squeedr/squeedr-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserService(t *testing.T) (*UserService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewUserService(db), mock
}

func userRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "email", "name", "avatar_url", "password_hash", "status",
		"primary_role", "available_roles", "acting_role", "created_at", "updated_at",
	})
}

func TestUserService_Register(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()
	hash := "bcrypt-hash"

	// Email lookup finds nothing
	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("new@example.com").
		WillReturnError(pgx.ErrNoRows)

	actingRole := "expert"
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("new@example.com", "New User", hash, models.UserStatusActive, "expert", []string{"expert"}).
		WillReturnRows(userRows().AddRow(
			userID, "new@example.com", "New User", nil, &hash, models.UserStatusActive,
			"expert", []string{"expert"}, &actingRole, now, now,
		))

	user, err := svc.Register(ctx, "new@example.com", "New User", hash, "expert")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "expert", user.PrimaryRole)
	assert.Equal(t, []string{"expert"}, user.AvailableRoles)
	require.NotNil(t, user.ActingRole)
	assert.Equal(t, "expert", *user.ActingRole)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Register_EmailTaken(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("taken@example.com").
		WillReturnRows(userRows().AddRow(
			userID, "taken@example.com", "Existing", nil, nil, models.UserStatusActive,
			"client", []string{"client"}, nil, now, now,
		))

	_, err := svc.Register(ctx, "taken@example.com", "New User", "hash", "client")

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Invite(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("invited@example.com", "Invited User", models.UserStatusInvited, "client", []string{"client"}).
		WillReturnRows(userRows().AddRow(
			userID, "invited@example.com", "Invited User", nil, nil, models.UserStatusInvited,
			"client", []string{"client"}, nil, now, now,
		))

	user, err := svc.Invite(ctx, "invited@example.com", "Invited User", "client")

	require.NoError(t, err)
	assert.Equal(t, models.UserStatusInvited, user.Status)
	assert.Nil(t, user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_GetByID(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(userID).
		WillReturnRows(userRows().AddRow(
			userID, "test@example.com", "Test User", nil, nil, models.UserStatusActive,
			"client", []string{"client"}, nil, now, now,
		))

	user, err := svc.GetByID(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "test@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(userID).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetByID(ctx, userID)

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_SetRole_GrantsAvailability(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`UPDATE users SET`).
		WithArgs("expert", userID).
		WillReturnRows(userRows().AddRow(
			userID, "test@example.com", "Test User", nil, nil, models.UserStatusActive,
			"expert", []string{"client", "expert"}, nil, now, now,
		))

	user, err := svc.SetRole(ctx, userID, "expert")

	require.NoError(t, err)
	assert.Equal(t, "expert", user.PrimaryRole)
	assert.Contains(t, user.AvailableRoles, "expert")
	assert.Contains(t, user.AvailableRoles, "client")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectExec(`DELETE FROM users WHERE id`).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := svc.Delete(ctx, userID)

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_SwitchRole(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(userID).
		WillReturnRows(userRows().AddRow(
			userID, "multi@example.com", "Multi Role", nil, nil, models.UserStatusActive,
			"expert", []string{"expert", "client"}, nil, now, now,
		))

	actingRole := "client"
	mock.ExpectQuery(`UPDATE users SET acting_role`).
		WithArgs("client", userID).
		WillReturnRows(userRows().AddRow(
			userID, "multi@example.com", "Multi Role", nil, nil, models.UserStatusActive,
			"expert", []string{"expert", "client"}, &actingRole, now, now,
		))

	user, err := svc.SwitchRole(ctx, userID, "client")

	require.NoError(t, err)
	require.NotNil(t, user.ActingRole)
	assert.Equal(t, "client", *user.ActingRole)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_SwitchRole_NotAvailable(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(userID).
		WillReturnRows(userRows().AddRow(
			userID, "client@example.com", "Client Only", nil, nil, models.UserStatusActive,
			"client", []string{"client"}, nil, now, now,
		))

	_, err := svc.SwitchRole(ctx, userID, "owner")

	assert.ErrorIs(t, err, ErrRoleNotAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_SwitchRole_UnknownRole(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(userID).
		WillReturnRows(userRows().AddRow(
			userID, "client@example.com", "Client Only", nil, nil, models.UserStatusActive,
			"client", []string{"client"}, nil, now, now,
		))

	_, err := svc.SwitchRole(ctx, userID, "superadmin")

	assert.ErrorIs(t, err, ErrRoleNotAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveActingRole_Persisted(t *testing.T) {
	acting := "expert"
	user := &models.User{
		AvailableRoles: []string{"expert", "client"},
		ActingRole:     &acting,
	}

	role, needsSelection := ResolveActingRole(user)

	assert.Equal(t, "expert", role)
	assert.False(t, needsSelection)
}

func TestResolveActingRole_SingleRoleAutoSelects(t *testing.T) {
	user := &models.User{AvailableRoles: []string{"client"}}

	role, needsSelection := ResolveActingRole(user)

	assert.Equal(t, "client", role)
	assert.False(t, needsSelection)
}

func TestResolveActingRole_MultiRoleNeedsSelection(t *testing.T) {
	user := &models.User{AvailableRoles: []string{"expert", "client"}}

	role, needsSelection := ResolveActingRole(user)

	assert.Empty(t, role)
	assert.True(t, needsSelection)
}

func TestResolveActingRole_CorruptPersistedRole(t *testing.T) {
	acting := "superadmin"
	user := &models.User{
		AvailableRoles: []string{"expert", "client"},
		ActingRole:     &acting,
	}

	role, needsSelection := ResolveActingRole(user)

	assert.Empty(t, role)
	assert.True(t, needsSelection)
}

func TestResolveActingRole_PersistedRoleNoLongerHeld(t *testing.T) {
	acting := "owner"
	user := &models.User{
		AvailableRoles: []string{"client"},
		ActingRole:     &acting,
	}

	role, needsSelection := ResolveActingRole(user)

	assert.Equal(t, "client", role)
	assert.False(t, needsSelection)
}
