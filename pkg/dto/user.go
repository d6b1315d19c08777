package dto

import "github.com/google/uuid"

type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	AvatarURL      *string   `json:"avatar_url,omitempty"`
	Status         string    `json:"status"`
	PrimaryRole    string    `json:"primary_role"`
	AvailableRoles []string  `json:"available_roles"`
	ActingRole     *string   `json:"acting_role,omitempty"`
}

type InviteUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type UpdateProfileRequest struct {
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type SetUserRoleRequest struct {
	Role string `json:"role"`
}

type SetUserStatusRequest struct {
	Status string `json:"status"`
}

type ImportUsersRequest struct {
	CSV string `json:"csv"`
}

type ImportUsersResponse struct {
	Imported int            `json:"imported"`
	Skipped  int            `json:"skipped"`
	Users    []UserResponse `json:"users"`
}

type ExportUsersResponse struct {
	CSV string `json:"csv"`
}
