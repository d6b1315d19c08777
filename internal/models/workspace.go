package models

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is a bookable room. Sessions and waitlist entries reference it by
// id; the name is display-only.
type Workspace struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	Capacity   int       `json:"capacity"`
	Amenities  []string  `json:"amenities"`
	HourlyRate float64   `json:"hourly_rate"`
	Available  bool      `json:"available"`
	OwnerID    uuid.UUID `json:"owner_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
