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
	ErrValidation           = errors.New("validation failed")
	ErrSessionNotFound      = errors.New("session not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrWorkspaceUnavailable = errors.New("workspace is not available")
)

// allowedTransitions guards the session lifecycle. Completed and cancelled
// are terminal.
var allowedTransitions = map[string][]string{
	models.SessionStatusUpcoming:   {models.SessionStatusInProgress, models.SessionStatusCancelled},
	models.SessionStatusInProgress: {models.SessionStatusRecording, models.SessionStatusCompleted, models.SessionStatusCancelled},
	models.SessionStatusRecording:  {models.SessionStatusCompleted, models.SessionStatusCancelled},
}

type CreateSessionInput struct {
	Title       string
	ExpertID    uuid.UUID
	ClientID    uuid.UUID
	WorkspaceID uuid.UUID
	Date        string
	StartTime   string
	EndTime     string
	Price       float64
	Notes       *string
}

const sessionColumns = `s.id, s.title, s.expert_id, e.name, s.client_id, c.name, s.workspace_id, w.name,
		       to_char(s.session_date, 'YYYY-MM-DD'), s.start_time, s.end_time, s.status, s.price, s.recording_url, s.notes,
		       s.created_at, s.updated_at`

const sessionJoins = `FROM sessions s
		JOIN users e ON s.expert_id = e.id
		JOIN users c ON s.client_id = c.id
		JOIN workspaces w ON s.workspace_id = w.id`

type SessionService struct {
	db  *database.DB
	now func() time.Time
}

func NewSessionService(db *database.DB) *SessionService {
	return &SessionService{db: db, now: time.Now}
}

// ValidateCreate checks the booking input before anything touches the
// database: required fields, HH:MM range with end after start, and a date no
// earlier than today (local, start of day).
func (s *SessionService) ValidateCreate(in CreateSessionInput) error {
	switch {
	case in.Title == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case in.ExpertID == uuid.Nil:
		return fmt.Errorf("%w: expert is required", ErrValidation)
	case in.ClientID == uuid.Nil:
		return fmt.Errorf("%w: client is required", ErrValidation)
	case in.WorkspaceID == uuid.Nil:
		return fmt.Errorf("%w: workspace is required", ErrValidation)
	case in.Date == "":
		return fmt.Errorf("%w: date is required", ErrValidation)
	case in.StartTime == "":
		return fmt.Errorf("%w: start time is required", ErrValidation)
	case in.EndTime == "":
		return fmt.Errorf("%w: end time is required", ErrValidation)
	case in.Price <= 0:
		return fmt.Errorf("%w: price is required", ErrValidation)
	}

	if err := validateTimeRange(in.StartTime, in.EndTime); err != nil {
		return err
	}

	date, err := time.ParseInLocation("2006-01-02", in.Date, time.Local)
	if err != nil {
		return fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrValidation)
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if date.Before(today) {
		return fmt.Errorf("%w: date cannot be in the past", ErrValidation)
	}

	return nil
}

// validateTimeRange enforces HH:MM format and end strictly after start.
// Comparison is lexical, so overnight ranges are rejected.
func validateTimeRange(start, end string) error {
	if _, err := time.Parse("15:04", start); err != nil {
		return fmt.Errorf("%w: invalid start time, expected HH:MM", ErrValidation)
	}
	if _, err := time.Parse("15:04", end); err != nil {
		return fmt.Errorf("%w: invalid end time, expected HH:MM", ErrValidation)
	}
	if end <= start {
		return fmt.Errorf("%w: end time must be after start time", ErrValidation)
	}
	return nil
}

func (s *SessionService) Create(ctx context.Context, in CreateSessionInput) (*models.Session, error) {
	if err := s.ValidateCreate(in); err != nil {
		return nil, err
	}

	var available bool
	err := s.db.Pool.QueryRow(ctx, `SELECT available FROM workspaces WHERE id = $1`, in.WorkspaceID).Scan(&available)
	if err != nil {
		return nil, fmt.Errorf("workspace lookup failed: %w", err)
	}
	if !available {
		return nil, ErrWorkspaceUnavailable
	}

	var id uuid.UUID
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO sessions (title, expert_id, client_id, workspace_id, session_date, start_time, end_time, status, price, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, in.Title, in.ExpertID, in.ClientID, in.WorkspaceID, in.Date, in.StartTime, in.EndTime,
		models.SessionStatusUpcoming, in.Price, in.Notes).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.GetByID(ctx, id)
}

func scanSession(row interface{ Scan(dest ...any) error }) (*models.Session, error) {
	var sess models.Session
	err := row.Scan(
		&sess.ID, &sess.Title, &sess.ExpertID, &sess.ExpertName, &sess.ClientID, &sess.ClientName,
		&sess.WorkspaceID, &sess.WorkspaceName, &sess.Date, &sess.StartTime, &sess.EndTime,
		&sess.Status, &sess.Price, &sess.RecordingURL, &sess.Notes, &sess.CreatedAt, &sess.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionService) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	sess, err := scanSession(s.db.Pool.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		`+sessionJoins+`
		WHERE s.id = $1
	`, id))
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// ListForUser scopes sessions by acting role: owners see everything, experts
// and clients see their own.
func (s *SessionService) ListForUser(ctx context.Context, userID uuid.UUID, actingRole string) ([]models.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		` + sessionJoins + `
		WHERE s.expert_id = $1 OR s.client_id = $1
		ORDER BY s.session_date DESC, s.start_time DESC`
	args := []any{userID}

	if actingRole == "owner" {
		query = `
		SELECT ` + sessionColumns + `
		` + sessionJoins + `
		ORDER BY s.session_date DESC, s.start_time DESC`
		args = nil
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, nil
}

// Transition moves a session along its lifecycle, rejecting moves the table
// does not allow.
func (s *SessionService) Transition(ctx context.Context, id uuid.UUID, newStatus string) (*models.Session, error) {
	sess, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(sess.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, sess.Status, newStatus)
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE sessions SET status = $1, updated_at = NOW() WHERE id = $2
	`, newStatus, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update session status: %w", err)
	}

	sess.Status = newStatus
	return sess, nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AttachRecording stores the recording URL and completes the session.
func (s *SessionService) AttachRecording(ctx context.Context, id uuid.UUID, url string) (*models.Session, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: recording url is required", ErrValidation)
	}

	sess, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if sess.Status == models.SessionStatusCancelled {
		return nil, fmt.Errorf("%w: cannot attach recording to a cancelled session", ErrInvalidTransition)
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE sessions SET recording_url = $1, status = $2, updated_at = NOW() WHERE id = $3
	`, url, models.SessionStatusCompleted, id)
	if err != nil {
		return nil, fmt.Errorf("failed to attach recording: %w", err)
	}

	sess.RecordingURL = &url
	sess.Status = models.SessionStatusCompleted
	return sess, nil
}

func (s *SessionService) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (*models.Session, error) {
	sess, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE sessions SET notes = $1, updated_at = NOW() WHERE id = $2
	`, notes, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update notes: %w", err)
	}

	sess.Notes = &notes
	return sess, nil
}

// Cancel is the only removal path for sessions. The freed slot is returned so
// the caller can kick the waitlist.
func (s *SessionService) Cancel(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	sess, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if sess.IsTerminal() {
		return nil, fmt.Errorf("%w: session is already %s", ErrInvalidTransition, sess.Status)
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE sessions SET status = $1, updated_at = NOW() WHERE id = $2
	`, models.SessionStatusCancelled, id)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel session: %w", err)
	}

	sess.Status = models.SessionStatusCancelled
	return sess, nil
}
