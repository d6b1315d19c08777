package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/squeedr/squeedr-api/internal/database"
	"github.com/squeedr/squeedr-api/internal/models"
	"github.com/squeedr/squeedr-api/internal/permissions"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrRoleNotAvailable = errors.New("role not available for this user")
)

const userColumns = `id, email, name, avatar_url, password_hash, status, primary_role, available_roles, acting_role, created_at, updated_at`

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.AvatarURL, &user.PasswordHash,
		&user.Status, &user.PrimaryRole, &user.AvailableRoles, &user.ActingRole,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates an active user with a password. Single-role users start
// with their acting role already set.
func (s *UserService) Register(ctx context.Context, email, name, passwordHash, role string) (*models.User, error) {
	existing, err := s.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	user, err := scanUser(s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash, status, primary_role, available_roles, acting_role)
		VALUES ($1, $2, $3, $4, $5, $6, $5)
		RETURNING `+userColumns+`
	`, email, name, passwordHash, models.UserStatusActive, role, []string{role}))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Invite creates a user in invited status with no credentials yet.
func (s *UserService) Invite(ctx context.Context, email, name, role string) (*models.User, error) {
	user, err := scanUser(s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, status, primary_role, available_roles)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns+`
	`, email, name, models.UserStatusInvited, role, []string{role}))
	if err != nil {
		return nil, fmt.Errorf("failed to invite user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := scanUser(s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, email))
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+userColumns+` FROM users ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, name string, avatarURL *string) (*models.User, error) {
	user, err := scanUser(s.db.Pool.QueryRow(ctx, `
		UPDATE users SET name = $1, avatar_url = COALESCE($2, avatar_url), updated_at = NOW()
		WHERE id = $3
		RETURNING `+userColumns+`
	`, name, avatarURL, id))
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// SetRole changes a user's primary role and grants it as available. The
// acting role follows only when the old one is no longer held.
func (s *UserService) SetRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error) {
	user, err := scanUser(s.db.Pool.QueryRow(ctx, `
		UPDATE users SET
			primary_role = $1,
			available_roles = CASE WHEN $1 = ANY(available_roles) THEN available_roles ELSE array_append(available_roles, $1) END,
			updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns+`
	`, role, id))
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*models.User, error) {
	user, err := scanUser(s.db.Pool.QueryRow(ctx, `
		UPDATE users SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns+`
	`, status, id))
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SwitchRole validates the requested role against the user's available roles
// and persists it as the acting role. Unavailable roles leave state untouched.
func (s *UserService) SwitchRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !permissions.ValidRole(role) || !user.HasRole(role) {
		return nil, ErrRoleNotAvailable
	}

	updated, err := scanUser(s.db.Pool.QueryRow(ctx, `
		UPDATE users SET acting_role = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns+`
	`, role, id))
	if err != nil {
		return nil, fmt.Errorf("failed to persist acting role: %w", err)
	}
	return updated, nil
}

// ResolveActingRole derives the acting role from persisted state. A corrupt
// or unavailable persisted role is treated as absent: single-role users fall
// back to their only role, multi-role users need an explicit selection.
func ResolveActingRole(user *models.User) (actingRole string, needsSelection bool) {
	if user.ActingRole != nil && permissions.ValidRole(*user.ActingRole) && user.HasRole(*user.ActingRole) {
		return *user.ActingRole, false
	}
	if len(user.AvailableRoles) == 1 {
		return user.AvailableRoles[0], false
	}
	return "", true
}
