package handlers

import (
	"context"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/squeedr/squeedr-api/internal/middleware"
	"github.com/squeedr/squeedr-api/internal/models"
	"github.com/squeedr/squeedr-api/internal/permissions"
	"github.com/squeedr/squeedr-api/internal/services"
	"github.com/squeedr/squeedr-api/pkg/dto"
	"github.com/google/uuid"
)

type AuthHandler struct {
	userService  UserServiceInterface
	tokenService TokenServiceInterface
	jwtService   JWTServiceInterface
}

func NewAuthHandler(userService UserServiceInterface, tokenService TokenServiceInterface, jwtService JWTServiceInterface) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		jwtService:   jwtService,
	}
}

func (h *AuthHandler) Register(c *drift.Context) {
	var req dto.RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.Name == "" || req.Password == "" {
		c.BadRequest("email, name and password are required")
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

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		c.InternalServerError("failed to process password")
		return
	}

	ctx := context.Background()

	user, err := h.userService.Register(ctx, req.Email, req.Name, hash, role)
	if err != nil {
		if err == services.ErrEmailTaken {
			c.BadRequest("email already registered")
			return
		}
		c.InternalServerError("failed to register user")
		return
	}

	h.respondWithTokens(c, 201, user)
}

func (h *AuthHandler) Login(c *drift.Context) {
	var req dto.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		c.BadRequest("email and password are required")
		return
	}

	ctx := context.Background()

	user, err := h.userService.GetByEmail(ctx, req.Email)
	if err != nil || user.PasswordHash == nil || !services.CheckPassword(*user.PasswordHash, req.Password) {
		c.Unauthorized("invalid credentials")
		return
	}

	if user.Status == models.UserStatusSuspended {
		c.Forbidden("account suspended")
		return
	}

	h.respondWithTokens(c, 200, user)
}

// respondWithTokens issues a token pair for the user's resolved acting role.
// Multi-role users without a selection get a token with no acting role and
// needs_role_selection set.
func (h *AuthHandler) respondWithTokens(c *drift.Context, status int, user *models.User) {
	actingRole, needsSelection := services.ResolveActingRole(user)

	tokenPair, err := h.jwtService.GenerateTokenPair(user.ID, user.Email, actingRole, user.AvailableRoles)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}

	tokenHash := services.HashToken(tokenPair.RefreshToken)
	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())
	if err := h.tokenService.StoreRefreshToken(context.Background(), user.ID, tokenHash, expiresAt); err != nil {
		c.InternalServerError("failed to store refresh token")
		return
	}

	_ = c.JSON(status, dto.LoginResponse{
		AccessToken:        tokenPair.AccessToken,
		RefreshToken:       tokenPair.RefreshToken,
		ExpiresIn:          tokenPair.ExpiresIn,
		User:               toUserResponse(user),
		ActingRole:         actingRole,
		AvailableRoles:     user.AvailableRoles,
		NeedsRoleSelection: needsSelection,
	})
}

// SelectRole activates one of the user's available roles. SwitchRole is the
// same operation under a different route.
func (h *AuthHandler) SelectRole(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.SelectRoleRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Role == "" {
		c.BadRequest("role is required")
		return
	}

	ctx := context.Background()

	user, err := h.userService.SwitchRole(ctx, userID, req.Role)
	if err != nil {
		if err == services.ErrRoleNotAvailable {
			c.Forbidden("role not available for this user")
			return
		}
		c.InternalServerError("failed to switch role")
		return
	}

	h.respondWithTokens(c, 200, user)
}

func (h *AuthHandler) RefreshToken(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken == "" {
		c.BadRequest("refresh_token is required")
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.Unauthorized("invalid refresh token")
		return
	}

	ctx := context.Background()

	tokenHash := services.HashToken(req.RefreshToken)
	storedUserID, err := h.tokenService.ValidateRefreshToken(ctx, tokenHash)
	if err != nil || storedUserID != userID {
		c.Unauthorized("refresh token revoked or expired")
		return
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		c.Unauthorized("user not found")
		return
	}

	// Rotate: the old token is revoked before the new pair is issued.
	if err := h.tokenService.RevokeRefreshToken(ctx, tokenHash); err != nil {
		c.InternalServerError("failed to rotate refresh token")
		return
	}

	h.respondWithTokens(c, 200, user)
}

func (h *AuthHandler) Logout(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken == "" {
		c.BadRequest("refresh_token is required")
		return
	}

	tokenHash := services.HashToken(req.RefreshToken)
	if err := h.tokenService.RevokeRefreshToken(context.Background(), tokenHash); err != nil {
		c.InternalServerError("failed to revoke token")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) LogoutAll(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	if err := h.tokenService.RevokeAllUserTokens(context.Background(), userID); err != nil {
		c.InternalServerError("failed to revoke tokens")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "logged out everywhere"})
}
