package dto

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken        string       `json:"access_token"`
	RefreshToken       string       `json:"refresh_token"`
	ExpiresIn          int64        `json:"expires_in"`
	User               UserResponse `json:"user"`
	ActingRole         string       `json:"acting_role,omitempty"`
	AvailableRoles     []string     `json:"available_roles"`
	NeedsRoleSelection bool         `json:"needs_role_selection"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SelectRoleRequest struct {
	Role string `json:"role"`
}
