package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/squeedr/squeedr-api/internal/middleware"
	"github.com/squeedr/squeedr-api/internal/models"
	"github.com/squeedr/squeedr-api/internal/permissions"
	"github.com/squeedr/squeedr-api/internal/services"
	"github.com/squeedr/squeedr-api/pkg/dto"
)

type UserHandler struct {
	userService UserServiceInterface
}

func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		AvatarURL:      u.AvatarURL,
		Status:         u.Status,
		PrimaryRole:    u.PrimaryRole,
		AvailableRoles: u.AvailableRoles,
		ActingRole:     u.ActingRole,
	}
}

func (h *UserHandler) GetMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	user, err := h.userService.GetByID(context.Background(), userID)
	if err != nil {
		c.NotFound("user not found")
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}

func (h *UserHandler) UpdateMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	user, err := h.userService.UpdateProfile(context.Background(), userID, req.Name, req.AvatarURL)
	if err != nil {
		c.InternalServerError("failed to update profile")
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}

func (h *UserHandler) List(c *drift.Context) {
	users, err := h.userService.List(context.Background())
	if err != nil {
		c.InternalServerError("failed to list users")
		return
	}

	response := make([]dto.UserResponse, len(users))
	for i := range users {
		response[i] = toUserResponse(&users[i])
	}
	_ = c.JSON(200, response)
}

func (h *UserHandler) Invite(c *drift.Context) {
	var req dto.InviteUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.Name == "" {
		c.BadRequest("email and name are required")
		return
	}

	role := req.Role
	if role == "" {
		role = string(permissions.RoleClient)
	}
	if !permissions.ValidRole(role) {
		c.BadRequest("unknown role: " + role)
		return
	}

	user, err := h.userService.Invite(context.Background(), req.Email, req.Name, role)
	if err != nil {
		c.InternalServerError("failed to invite user")
		return
	}

	_ = c.JSON(201, toUserResponse(user))
}

func (h *UserHandler) SetRole(c *drift.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	var req dto.SetUserRoleRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if !permissions.ValidRole(req.Role) {
		c.BadRequest("unknown role: " + req.Role)
		return
	}

	user, err := h.userService.SetRole(context.Background(), targetID, req.Role)
	if err != nil {
		c.NotFound("user not found")
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}

func (h *UserHandler) SetStatus(c *drift.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	var req dto.SetUserStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	switch req.Status {
	case models.UserStatusActive, models.UserStatusInvited, models.UserStatusSuspended:
	default:
		c.BadRequest("unknown status: " + req.Status)
		return
	}

	user, err := h.userService.SetStatus(context.Background(), targetID, req.Status)
	if err != nil {
		c.NotFound("user not found")
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}

func (h *UserHandler) Delete(c *drift.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	if targetID == middleware.GetUserID(c) {
		c.BadRequest("cannot delete your own account")
		return
	}

	if err := h.userService.Delete(context.Background(), targetID); err != nil {
		c.NotFound("user not found")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "user deleted"})
}

// Export renders the user list as CSV.
func (h *UserHandler) Export(c *drift.Context) {
	users, err := h.userService.List(context.Background())
	if err != nil {
		c.InternalServerError("failed to list users")
		return
	}

	csvData, err := services.UsersToCSV(users)
	if err != nil {
		c.InternalServerError("failed to generate CSV")
		return
	}

	_ = c.JSON(200, dto.ExportUsersResponse{CSV: csvData})
}

// Import creates invited users from CSV rows. Rows whose email already
// exists are skipped.
func (h *UserHandler) Import(c *drift.Context) {
	var req dto.ImportUsersRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.CSV == "" {
		c.BadRequest("csv is required")
		return
	}

	rows, err := services.UsersFromCSV(req.CSV)
	if err != nil {
		c.BadRequest("invalid CSV: " + err.Error())
		return
	}

	ctx := context.Background()
	var imported []dto.UserResponse
	skipped := 0

	for _, row := range rows {
		if _, err := h.userService.GetByEmail(ctx, row.Email); err == nil {
			skipped++
			continue
		}
		user, err := h.userService.Invite(ctx, row.Email, row.Name, row.Role)
		if err != nil {
			skipped++
			continue
		}
		imported = append(imported, toUserResponse(user))
	}

	_ = c.JSON(200, dto.ImportUsersResponse{
		Imported: len(imported),
		Skipped:  skipped,
		Users:    imported,
	})
}
