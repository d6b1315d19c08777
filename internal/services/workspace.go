package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/squeedr/squeedr-api/internal/database"
	"github.com/squeedr/squeedr-api/internal/models"
)

var ErrWorkspaceNotFound = errors.New("workspace not found")

const workspaceColumns = `id, name, location, capacity, amenities, hourly_rate, available, owner_id, created_at, updated_at`

type CreateWorkspaceInput struct {
	Name       string
	Location   string
	Capacity   int
	Amenities  []string
	HourlyRate float64
}

type UpdateWorkspaceInput struct {
	Name       *string
	Location   *string
	Capacity   *int
	Amenities  []string
	HourlyRate *float64
	Available  *bool
}

type WorkspaceService struct {
	db *database.DB
}

func NewWorkspaceService(db *database.DB) *WorkspaceService {
	return &WorkspaceService{db: db}
}

func scanWorkspace(row interface{ Scan(dest ...any) error }) (*models.Workspace, error) {
	var ws models.Workspace
	err := row.Scan(
		&ws.ID, &ws.Name, &ws.Location, &ws.Capacity, &ws.Amenities,
		&ws.HourlyRate, &ws.Available, &ws.OwnerID, &ws.CreatedAt, &ws.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (s *WorkspaceService) Create(ctx context.Context, in CreateWorkspaceInput, ownerID uuid.UUID) (*models.Workspace, error) {
	switch {
	case in.Name == "":
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	case in.Capacity <= 0:
		return nil, fmt.Errorf("%w: capacity must be positive", ErrValidation)
	case in.HourlyRate < 0:
		return nil, fmt.Errorf("%w: hourly rate cannot be negative", ErrValidation)
	}

	amenities := in.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	ws, err := scanWorkspace(s.db.Pool.QueryRow(ctx, `
		INSERT INTO workspaces (name, location, capacity, amenities, hourly_rate, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+workspaceColumns+`
	`, in.Name, in.Location, in.Capacity, amenities, in.HourlyRate, ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return ws, nil
}

func (s *WorkspaceService) GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error) {
	ws, err := scanWorkspace(s.db.Pool.QueryRow(ctx, `
		SELECT `+workspaceColumns+` FROM workspaces WHERE id = $1
	`, id))
	if err != nil {
		return nil, ErrWorkspaceNotFound
	}
	return ws, nil
}

func (s *WorkspaceService) List(ctx context.Context) ([]models.Workspace, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+workspaceColumns+` FROM workspaces ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workspaces []models.Workspace
	for rows.Next() {
		ws, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		workspaces = append(workspaces, *ws)
	}
	return workspaces, nil
}

func (s *WorkspaceService) Update(ctx context.Context, id uuid.UUID, in UpdateWorkspaceInput) (*models.Workspace, error) {
	ws, err := scanWorkspace(s.db.Pool.QueryRow(ctx, `
		UPDATE workspaces SET
			name = COALESCE($1, name),
			location = COALESCE($2, location),
			capacity = COALESCE($3, capacity),
			amenities = COALESCE($4, amenities),
			hourly_rate = COALESCE($5, hourly_rate),
			available = COALESCE($6, available),
			updated_at = NOW()
		WHERE id = $7
		RETURNING `+workspaceColumns+`
	`, in.Name, in.Location, in.Capacity, in.Amenities, in.HourlyRate, in.Available, id))
	if err != nil {
		return nil, ErrWorkspaceNotFound
	}
	return ws, nil
}

func (s *WorkspaceService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrWorkspaceNotFound
	}
	return nil
}

func (s *WorkspaceService) IsOwner(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	var ownerID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `SELECT owner_id FROM workspaces WHERE id = $1`, workspaceID).Scan(&ownerID)
	if err != nil {
		return false, err
	}
	return ownerID == userID, nil
}
