package handler

import (
	"go-boutique-ws/internal/apierror"
	"go-boutique-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ImportHandler struct {
	service service.ImportService
}

func NewImportHandler(s service.ImportService) *ImportHandler {
	return &ImportHandler{service: s}
}

// Import bulk-loads a JSON array into one collection
// POST /api/v1/import/:collection
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	n, err := h.service.Import(c.UserContext(), c.Params("collection"), c.Body())
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Import finished", "data": fiber.Map{"collection": c.Params("collection"), "imported": n}})
}
