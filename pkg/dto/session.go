package dto

import "github.com/google/uuid"

type CreateSessionRequest struct {
	Title       string    `json:"title"`
	ExpertID    uuid.UUID `json:"expert_id"`
	ClientID    uuid.UUID `json:"client_id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Price       float64   `json:"price"`
	Notes       *string   `json:"notes,omitempty"`
}

type TransitionSessionRequest struct {
	Status string `json:"status"`
}

type AttachRecordingRequest struct {
	RecordingURL string `json:"recording_url"`
}

type UpdateSessionNotesRequest struct {
	Notes string `json:"notes"`
}

type SessionResponse struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	ExpertID      uuid.UUID `json:"expert_id"`
	ExpertName    string    `json:"expert_name"`
	ClientID      uuid.UUID `json:"client_id"`
	ClientName    string    `json:"client_name"`
	WorkspaceID   uuid.UUID `json:"workspace_id"`
	WorkspaceName string    `json:"workspace_name"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
	Price         float64   `json:"price"`
	RecordingURL  *string   `json:"recording_url,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
}
