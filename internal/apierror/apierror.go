// Package apierror turns service errors into HTTP responses. Internal errors
// are logged and reported without their details.
package apierror

import (
	"errors"

	"go-boutique-ws/internal/service"
	"go-boutique-ws/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// APIError is the error envelope of every 4xx/5xx response.
type APIError struct {
	Error    string `json:"error"`
	Category string `json:"category,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Error: msg}
}

// Status maps an error to its HTTP status.
func Status(err error) int {
	if errors.Is(err, jwt.ErrInvalidToken) || errors.Is(err, jwt.ErrMissingToken) {
		return fiber.StatusUnauthorized
	}
	switch service.CategoryOf(err) {
	case service.CategoryValidation:
		return fiber.StatusBadRequest
	case service.CategoryNotFound:
		return fiber.StatusNotFound
	case service.CategoryConflict:
		return fiber.StatusConflict
	case service.CategoryAuth:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// Respond writes err with its status. Unexpected errors are logged and
// become a generic 500.
func Respond(c *fiber.Ctx, err error) error {
	status := Status(err)
	category := service.CategoryOf(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
		if category == "" {
			return c.Status(status).JSON(New("Internal server error"))
		}
	}
	return c.Status(status).JSON(APIError{Error: err.Error(), Category: string(category)})
}

// BadRequest reports a malformed request body or parameter.
func BadRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(APIError{Error: msg, Category: string(service.CategoryValidation)})
}
