package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusDenied   = "denied"
)

// PermissionRequest is a user's ask for additional permissions. Once approved
// or denied it is terminal.
type PermissionRequest struct {
	ID             uuid.UUID  `json:"id"`
	RequesterID    uuid.UUID  `json:"requester_id"`
	RequesterName  string     `json:"requester_name,omitempty"`
	Permissions    []string   `json:"permissions"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	ResponderID    *uuid.UUID `json:"responder_id,omitempty"`
	ResponseReason *string    `json:"response_reason,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
