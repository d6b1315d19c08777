package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionStatusUpcoming   = "upcoming"
	SessionStatusInProgress = "in-progress"
	SessionStatusCompleted  = "completed"
	SessionStatusCancelled  = "cancelled"
	SessionStatusRecording  = "recording"
)

// Session is a booked meeting between an expert and a client in a workspace.
// Date is YYYY-MM-DD, times are HH:MM wall clock. Sessions are never hard
// deleted, only cancelled.
type Session struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	ExpertID      uuid.UUID  `json:"expert_id"`
	ExpertName    string     `json:"expert_name,omitempty"`
	ClientID      uuid.UUID  `json:"client_id"`
	ClientName    string     `json:"client_name,omitempty"`
	WorkspaceID   uuid.UUID  `json:"workspace_id"`
	WorkspaceName string     `json:"workspace_name,omitempty"`
	Date          string     `json:"date"`
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	Status        string     `json:"status"`
	Price         float64    `json:"price"`
	RecordingURL  *string    `json:"recording_url,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (s *Session) IsTerminal() bool {
	return s.Status == SessionStatusCancelled || s.Status == SessionStatusCompleted
}
