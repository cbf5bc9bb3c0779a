package middleware

import (
	"strings"

	"go-boutique-ws/internal/apierror"
	"go-boutique-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token against the stored session and sets
// the owner info in context
func RequireAuth(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(apierror.New("Missing authorization token"))
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(apierror.New("Invalid authorization format. Use: Bearer <token>"))
		}

		profil, err := authService.ValidateToken(c.UserContext(), parts[1])
		if err != nil {
			return apierror.Respond(c, err)
		}

		c.Locals("profil_id", profil.ID)
		c.Locals("profil_email", profil.Email)
		c.Locals("profil_name", profil.Nom)

		return c.Next()
	}
}
