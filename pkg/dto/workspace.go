package dto

import "github.com/google/uuid"

type CreateWorkspaceRequest struct {
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	Capacity   int      `json:"capacity"`
	Amenities  []string `json:"amenities"`
	HourlyRate float64  `json:"hourly_rate"`
}

type UpdateWorkspaceRequest struct {
	Name       *string  `json:"name,omitempty"`
	Location   *string  `json:"location,omitempty"`
	Capacity   *int     `json:"capacity,omitempty"`
	Amenities  []string `json:"amenities,omitempty"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
	Available  *bool    `json:"available,omitempty"`
}

type WorkspaceResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	Capacity   int       `json:"capacity"`
	Amenities  []string  `json:"amenities"`
	HourlyRate float64   `json:"hourly_rate"`
	Available  bool      `json:"available"`
	OwnerID    uuid.UUID `json:"owner_id"`
}
