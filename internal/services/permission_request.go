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
	ErrRequestNotFound = errors.New("permission request not found")
	ErrRequestResolved = errors.New("permission request already resolved")
)

const requestColumns = `pr.id, pr.requester_id, u.name, pr.permissions, pr.reason, pr.status,
		       pr.responder_id, pr.response_reason, pr.created_at, pr.updated_at`

type PermissionRequestService struct {
	db *database.DB
}

func NewPermissionRequestService(db *database.DB) *PermissionRequestService {
	return &PermissionRequestService{db: db}
}

func scanRequest(row interface{ Scan(dest ...any) error }) (*models.PermissionRequest, error) {
	var req models.PermissionRequest
	err := row.Scan(
		&req.ID, &req.RequesterID, &req.RequesterName, &req.Permissions, &req.Reason,
		&req.Status, &req.ResponderID, &req.ResponseReason, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create opens a pending request. Requested permissions must belong to the
// closed permission set.
func (s *PermissionRequestService) Create(ctx context.Context, requesterID uuid.UUID, perms []string, reason string) (*models.PermissionRequest, error) {
	if len(perms) == 0 {
		return nil, fmt.Errorf("%w: at least one permission is required", ErrValidation)
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrValidation)
	}
	for _, p := range perms {
		if !knownPermission(p) {
			return nil, fmt.Errorf("%w: unknown permission %q", ErrValidation, p)
		}
	}

	var id uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO permission_requests (requester_id, permissions, reason, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, requesterID, perms, reason, models.RequestStatusPending).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create permission request: %w", err)
	}

	return s.GetByID(ctx, id)
}

func knownPermission(p string) bool {
	for _, role := range permissions.Roles() {
		if permissions.RoleHasPermission(role, permissions.Permission(p)) {
			return true
		}
	}
	return false
}

func (s *PermissionRequestService) GetByID(ctx context.Context, id uuid.UUID) (*models.PermissionRequest, error) {
	req, err := scanRequest(s.db.Pool.QueryRow(ctx, `
		SELECT `+requestColumns+`
		FROM permission_requests pr
		JOIN users u ON pr.requester_id = u.id
		WHERE pr.id = $1
	`, id))
	if err != nil {
		return nil, ErrRequestNotFound
	}
	return req, nil
}

func (s *PermissionRequestService) ListPending(ctx context.Context) ([]models.PermissionRequest, error) {
	return s.list(ctx, `WHERE pr.status = 'pending'`)
}

func (s *PermissionRequestService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.PermissionRequest, error) {
	return s.list(ctx, `WHERE pr.requester_id = $1`, userID)
}

func (s *PermissionRequestService) list(ctx context.Context, where string, args ...any) ([]models.PermissionRequest, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+requestColumns+`
		FROM permission_requests pr
		JOIN users u ON pr.requester_id = u.id
		`+where+`
		ORDER BY pr.created_at DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.PermissionRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, nil
}

// Resolve approves or denies a pending request. A response reason is
// mandatory either way; resolved requests are terminal.
func (s *PermissionRequestService) Resolve(ctx context.Context, id, responderID uuid.UUID, approve bool, reason string) (*models.PermissionRequest, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: response reason is required", ErrValidation)
	}

	req, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != models.RequestStatusPending {
		return nil, ErrRequestResolved
	}

	status := models.RequestStatusDenied
	if approve {
		status = models.RequestStatusApproved
	}

	result, err := s.db.Pool.Exec(ctx, `
		UPDATE permission_requests
		SET status = $1, responder_id = $2, response_reason = $3, updated_at = NOW()
		WHERE id = $4 AND status = $5
	`, status, responderID, reason, id, models.RequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve permission request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ErrRequestResolved
	}

	req.Status = status
	req.ResponderID = &responderID
	req.ResponseReason = &reason
	return req, nil
}
