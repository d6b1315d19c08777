package dto

import "github.com/google/uuid"

type CreatePermissionRequestRequest struct {
	Permissions []string `json:"permissions"`
	Reason      string   `json:"reason"`
}

type ResolvePermissionRequestRequest struct {
	Reason string `json:"reason"`
}

type PermissionRequestResponse struct {
	ID             uuid.UUID  `json:"id"`
	RequesterID    uuid.UUID  `json:"requester_id"`
	RequesterName  string     `json:"requester_name"`
	Permissions    []string   `json:"permissions"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	ResponderID    *uuid.UUID `json:"responder_id,omitempty"`
	ResponseReason *string    `json:"response_reason,omitempty"`
}

type JoinWaitlistRequest struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
}

type WaitlistResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	WorkspaceID   uuid.UUID `json:"workspace_id"`
	WorkspaceName string    `json:"workspace_name"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
}
