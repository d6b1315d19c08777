package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/squeedr/squeedr-api/internal/database"
	"github.com/squeedr/squeedr-api/internal/models"
)

var (
	ErrWaitlistNotFound    = errors.New("waitlist request not found")
	ErrWaitlistTerminal    = errors.New("waitlist request already resolved")
	ErrClaimWindowExpired  = errors.New("claim window has expired")
	ErrWaitlistNotNotified = errors.New("waitlist request has not been notified")
)

const waitlistColumns = `wr.id, wr.user_id, wr.workspace_id, w.name,
		       to_char(wr.slot_date, 'YYYY-MM-DD'), wr.start_time, wr.end_time,
		       wr.status, wr.notified_at, wr.created_at, wr.updated_at`

type WaitlistService struct {
	db          *database.DB
	claimWindow time.Duration
	now         func() time.Time
}

func NewWaitlistService(db *database.DB, claimWindow time.Duration) *WaitlistService {
	return &WaitlistService{db: db, claimWindow: claimWindow, now: time.Now}
}

func scanWaitlist(row interface{ Scan(dest ...any) error }) (*models.WaitlistRequest, error) {
	var wr models.WaitlistRequest
	err := row.Scan(
		&wr.ID, &wr.UserID, &wr.WorkspaceID, &wr.WorkspaceName, &wr.Date,
		&wr.StartTime, &wr.EndTime, &wr.Status, &wr.NotifiedAt, &wr.CreatedAt, &wr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &wr, nil
}

// Join places a user on the waitlist for a workspace slot.
func (s *WaitlistService) Join(ctx context.Context, userID, workspaceID uuid.UUID, date, start, end string) (*models.WaitlistRequest, error) {
	if date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrValidation)
	}
	if err := validateTimeRange(start, end); err != nil {
		return nil, err
	}

	var id uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO waitlist_requests (user_id, workspace_id, slot_date, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, userID, workspaceID, date, start, end, models.WaitlistStatusPending).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to join waitlist: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *WaitlistService) GetByID(ctx context.Context, id uuid.UUID) (*models.WaitlistRequest, error) {
	wr, err := scanWaitlist(s.db.Pool.QueryRow(ctx, `
		SELECT `+waitlistColumns+`
		FROM waitlist_requests wr
		JOIN workspaces w ON wr.workspace_id = w.id
		WHERE wr.id = $1
	`, id))
	if err != nil {
		return nil, ErrWaitlistNotFound
	}
	return wr, nil
}

func (s *WaitlistService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.WaitlistRequest, error) {
	return s.list(ctx, `WHERE wr.user_id = $1`, userID)
}

func (s *WaitlistService) ListForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.WaitlistRequest, error) {
	return s.list(ctx, `WHERE wr.workspace_id = $1`, workspaceID)
}

func (s *WaitlistService) list(ctx context.Context, where string, args ...any) ([]models.WaitlistRequest, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+waitlistColumns+`
		FROM waitlist_requests wr
		JOIN workspaces w ON wr.workspace_id = w.id
		`+where+`
		ORDER BY wr.created_at DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.WaitlistRequest
	for rows.Next() {
		wr, err := scanWaitlist(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *wr)
	}
	return requests, nil
}

// NotifySlotFreed flips pending entries overlapping the freed slot to
// notified and returns them so the caller can push notifications.
func (s *WaitlistService) NotifySlotFreed(ctx context.Context, workspaceID uuid.UUID, date, start, end string) ([]models.WaitlistRequest, error) {
	rows, err := s.db.Pool.Query(ctx, `
		UPDATE waitlist_requests wr
		SET status = $1, notified_at = NOW(), updated_at = NOW()
		FROM workspaces w
		WHERE wr.workspace_id = w.id
		  AND wr.workspace_id = $2
		  AND wr.slot_date = $3
		  AND wr.status = $4
		  AND wr.start_time < $5
		  AND wr.end_time > $6
		RETURNING `+waitlistColumns+`
	`, models.WaitlistStatusNotified, workspaceID, date, models.WaitlistStatusPending, end, start)
	if err != nil {
		return nil, fmt.Errorf("failed to notify waitlist: %w", err)
	}
	defer rows.Close()

	var notified []models.WaitlistRequest
	for rows.Next() {
		wr, err := scanWaitlist(rows)
		if err != nil {
			return nil, err
		}
		notified = append(notified, *wr)
	}
	return notified, nil
}

// Claim fulfills a notified entry. Claims after the window expire the entry
// instead.
func (s *WaitlistService) Claim(ctx context.Context, id, userID uuid.UUID) (*models.WaitlistRequest, error) {
	wr, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wr.UserID != userID {
		return nil, ErrWaitlistNotFound
	}
	if wr.Status != models.WaitlistStatusNotified {
		return nil, ErrWaitlistNotNotified
	}

	if wr.NotifiedAt != nil && s.now().After(wr.NotifiedAt.Add(s.claimWindow)) {
		_, err = s.db.Pool.Exec(ctx, `
			UPDATE waitlist_requests SET status = $1, updated_at = NOW() WHERE id = $2
		`, models.WaitlistStatusExpired, id)
		if err != nil {
			return nil, fmt.Errorf("failed to expire waitlist request: %w", err)
		}
		return nil, ErrClaimWindowExpired
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE waitlist_requests SET status = $1, updated_at = NOW() WHERE id = $2
	`, models.WaitlistStatusFulfilled, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fulfill waitlist request: %w", err)
	}

	wr.Status = models.WaitlistStatusFulfilled
	return wr, nil
}

// Cancel withdraws a pending or notified entry.
func (s *WaitlistService) Cancel(ctx context.Context, id, userID uuid.UUID) (*models.WaitlistRequest, error) {
	wr, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wr.UserID != userID {
		return nil, ErrWaitlistNotFound
	}
	if wr.Status != models.WaitlistStatusPending && wr.Status != models.WaitlistStatusNotified {
		return nil, ErrWaitlistTerminal
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE waitlist_requests SET status = $1, updated_at = NOW() WHERE id = $2
	`, models.WaitlistStatusCancelled, id)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel waitlist request: %w", err)
	}

	wr.Status = models.WaitlistStatusCancelled
	return wr, nil
}

// ExpireStale moves notified entries whose claim window has lapsed to
// expired. Run periodically from main.
func (s *WaitlistService) ExpireStale(ctx context.Context) (int64, error) {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE waitlist_requests SET status = $1, updated_at = NOW()
		WHERE status = $2 AND notified_at < NOW() - make_interval(secs => $3)
	`, models.WaitlistStatusExpired, models.WaitlistStatusNotified, s.claimWindow.Seconds())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
