package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/squeedr/squeedr-api/internal/database"
	"github.com/squeedr/squeedr-api/internal/models"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates an active test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email:          fmt.Sprintf("user%d@example.com", f.counter),
		Name:           fmt.Sprintf("Test User %d", f.counter),
		Status:         models.UserStatusActive,
		PrimaryRole:    "client",
		AvailableRoles: []string{"client"},
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash, status, primary_role, available_roles, acting_role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, user.Email, user.Name, user.PasswordHash, user.Status, user.PrimaryRole, user.AvailableRoles, user.ActingRole).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithName sets the user's name
func WithName(name string) UserOption {
	return func(u *models.User) {
		u.Name = name
	}
}

// WithRoles sets the user's primary and available roles
func WithRoles(primary string, available ...string) UserOption {
	return func(u *models.User) {
		u.PrimaryRole = primary
		if len(available) == 0 {
			available = []string{primary}
		}
		u.AvailableRoles = available
	}
}

// WithActingRole sets the user's persisted acting role
func WithActingRole(role string) UserOption {
	return func(u *models.User) {
		u.ActingRole = &role
	}
}

// WithStatus sets the user's status
func WithStatus(status string) UserOption {
	return func(u *models.User) {
		u.Status = status
	}
}

// WithPasswordHash sets the user's password hash
func WithPasswordHash(hash string) UserOption {
	return func(u *models.User) {
		u.PasswordHash = &hash
	}
}

// CreateWorkspace creates a test workspace owned by the given user
func (f *Fixtures) CreateWorkspace(t *testing.T, owner *models.User, opts ...WorkspaceOption) *models.Workspace {
	t.Helper()
	f.counter++

	ws := &models.Workspace{
		Name:       fmt.Sprintf("Test Workspace %d", f.counter),
		Location:   "Floor 1",
		Capacity:   6,
		Amenities:  []string{"wifi"},
		HourlyRate: 25.0,
		Available:  true,
		OwnerID:    owner.ID,
	}

	for _, opt := range opts {
		opt(ws)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO workspaces (name, location, capacity, amenities, hourly_rate, available, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, ws.Name, ws.Location, ws.Capacity, ws.Amenities, ws.HourlyRate, ws.Available, ws.OwnerID).Scan(
		&ws.ID, &ws.CreatedAt, &ws.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create workspace: %v", err)
	}

	return ws
}

// WorkspaceOption configures a test workspace
type WorkspaceOption func(*models.Workspace)

// WithWorkspaceName sets the workspace name
func WithWorkspaceName(name string) WorkspaceOption {
	return func(w *models.Workspace) {
		w.Name = name
	}
}

// WithAvailability sets the workspace availability flag
func WithAvailability(available bool) WorkspaceOption {
	return func(w *models.Workspace) {
		w.Available = available
	}
}

// CreateSession books a test session between an expert and a client
func (f *Fixtures) CreateSession(t *testing.T, expert, client *models.User, workspace *models.Workspace, opts ...SessionOption) *models.Session {
	t.Helper()
	f.counter++

	sess := &models.Session{
		Title:       fmt.Sprintf("Test Session %d", f.counter),
		ExpertID:    expert.ID,
		ClientID:    client.ID,
		WorkspaceID: workspace.ID,
		Date:        time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		StartTime:   "09:00",
		EndTime:     "10:00",
		Status:      models.SessionStatusUpcoming,
		Price:       100,
	}

	for _, opt := range opts {
		opt(sess)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO sessions (title, expert_id, client_id, workspace_id, session_date, start_time, end_time, status, price, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, sess.Title, sess.ExpertID, sess.ClientID, sess.WorkspaceID, sess.Date,
		sess.StartTime, sess.EndTime, sess.Status, sess.Price, sess.Notes).Scan(
		&sess.ID, &sess.CreatedAt, &sess.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	return sess
}

// SessionOption configures a test session
type SessionOption func(*models.Session)

// WithSessionSlot sets the session's date and time range
func WithSessionSlot(date, start, end string) SessionOption {
	return func(s *models.Session) {
		s.Date = date
		s.StartTime = start
		s.EndTime = end
	}
}

// WithSessionStatus sets the session's status
func WithSessionStatus(status string) SessionOption {
	return func(s *models.Session) {
		s.Status = status
	}
}

// CreateWaitlistRequest places a user on a workspace waitlist
func (f *Fixtures) CreateWaitlistRequest(t *testing.T, user *models.User, workspace *models.Workspace, date, start, end string) *models.WaitlistRequest {
	t.Helper()

	wr := &models.WaitlistRequest{
		UserID:      user.ID,
		WorkspaceID: workspace.ID,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Status:      models.WaitlistStatusPending,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO waitlist_requests (user_id, workspace_id, slot_date, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, wr.UserID, wr.WorkspaceID, wr.Date, wr.StartTime, wr.EndTime, wr.Status).Scan(
		&wr.ID, &wr.CreatedAt, &wr.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create waitlist request: %v", err)
	}

	return wr
}

// CreatePermissionRequest opens a pending permission request for a user
func (f *Fixtures) CreatePermissionRequest(t *testing.T, requester *models.User, perms []string, reason string) *models.PermissionRequest {
	t.Helper()

	pr := &models.PermissionRequest{
		RequesterID: requester.ID,
		Permissions: perms,
		Reason:      reason,
		Status:      models.RequestStatusPending,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO permission_requests (requester_id, permissions, reason, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, pr.RequesterID, pr.Permissions, pr.Reason, pr.Status).Scan(
		&pr.ID, &pr.CreatedAt, &pr.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create permission request: %v", err)
	}

	return pr
}

// CreateRefreshToken creates a test refresh token
func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}
