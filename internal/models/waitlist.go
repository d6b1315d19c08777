package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	WaitlistStatusPending   = "pending"
	WaitlistStatusNotified  = "notified"
	WaitlistStatusFulfilled = "fulfilled"
	WaitlistStatusExpired   = "expired"
	WaitlistStatusCancelled = "cancelled"
)

// WaitlistRequest tracks a user waiting for a booked workspace slot.
// pending -> notified -> fulfilled/expired; pending/notified -> cancelled.
type WaitlistRequest struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	WorkspaceID   uuid.UUID  `json:"workspace_id"`
	WorkspaceName string     `json:"workspace_name,omitempty"`
	Date          string     `json:"date"`
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	Status        string     `json:"status"`
	NotifiedAt    *time.Time `json:"notified_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
