package handler

import (
	"go-boutique-ws/internal/apierror"
	"go-boutique-ws/internal/model"
	"go-boutique-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest represents the change password request body
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ValidateTokenRequest represents the validate token request body
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// Login handles owner authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apierror.BadRequest(c, "Invalid JSON")
	}

	if req.Email == "" || req.Password == "" {
		return apierror.BadRequest(c, "Email and password are required")
	}

	response, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return apierror.Respond(c, err)
	}

	return c.JSON(response)
}

// ValidateToken handles JWT token validation
// POST /api/v1/auth/validate-token
func (h *AuthHandler) ValidateToken(c *fiber.Ctx) error {
	var req ValidateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apierror.BadRequest(c, "Invalid JSON")
	}

	if req.Token == "" {
		return apierror.BadRequest(c, "Token is required")
	}

	profil, err := h.authService.ValidateToken(c.UserContext(), req.Token)
	if err != nil {
		return apierror.Respond(c, err)
	}

	return c.JSON(fiber.Map{"profil": profil})
}

// ChangePassword handles password change of the logged in owner
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apierror.BadRequest(c, "Invalid JSON")
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		return apierror.BadRequest(c, "old_password and new_password are required")
	}

	if err := h.authService.ChangePassword(c.UserContext(), req.OldPassword, req.NewPassword); err != nil {
		return apierror.Respond(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// GET /api/v1/profil
func (h *AuthHandler) GetProfil(c *fiber.Ctx) error {
	profil, err := h.authService.GetProfil(c.UserContext())
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(profil)
}

// PUT /api/v1/profil
func (h *AuthHandler) UpdateProfil(c *fiber.Ctx) error {
	var req model.Profil
	if err := c.BodyParser(&req); err != nil {
		return apierror.BadRequest(c, "Invalid JSON")
	}

	profil, err := h.authService.UpdateProfil(c.UserContext(), &req)
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Profil updated", "data": profil})
}
