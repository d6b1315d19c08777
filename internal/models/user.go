package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	UserStatusActive    = "active"
	UserStatusInvited   = "invited"
	UserStatusSuspended = "suspended"
)

type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	AvatarURL      *string    `json:"avatar_url,omitempty"`
	PasswordHash   *string    `json:"-"`
	Status         string     `json:"status"`
	PrimaryRole    string     `json:"primary_role"`
	AvailableRoles []string   `json:"available_roles"`
	ActingRole     *string    `json:"acting_role,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.AvailableRoles {
		if r == role {
			return true
		}
	}
	return false
}
