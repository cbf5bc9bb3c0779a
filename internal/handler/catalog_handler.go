package handler

import (
	"go-boutique-ws/internal/apierror"
	"go-boutique-ws/internal/model"
	"go-boutique-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// --- clients ---

func (h *CatalogHandler) CreateClient(c *fiber.Ctx) error {
	var client model.Client
	if err := c.BodyParser(&client); err != nil {
		return apierror.BadRequest(c, "Invalid JSON")
	}

	if err := h.service.CreateClient(c.UserContext(), &client); err != nil {
		return apierror.Respond(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Client created", "data": client})
}

func (h *CatalogHandler) GetClients(c *fiber.Ctx) error {
	clients, err := h.service.ListClients(c.UserContext())
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(clients)
}

func (h *CatalogHandler) GetClient(c *fiber.Ctx) error {
	client, err := h.service.GetClient(c.UserContext(), c.Params("id"))
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(client)
}

func (h *CatalogHandler) UpdateClient(c *fiber.Ctx) error {
	var req model.Client
	if err := c.BodyParser(&req); err != nil {
		return apierror.BadRequest(c, "Invalid JSON")
	}

	client, err := h.service.UpdateClient(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Client updated", "data": client})
}

func (h *CatalogHandler) DeleteClient(c *fiber.Ctx) error {
	if err := h.service.DeleteClient(c.UserContext(), c.Params("id")); err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Client deleted"})
}

// --- produits ---

func (h *CatalogHandler) CreateProduit(c *fiber.Ctx) error {
	var produit model.Produit
	if err := c.BodyParser(&produit); err != nil {
		return apierror.BadRequest(c, "Invalid JSON")
	}

	if err := h.service.CreateProduit(c.UserContext(), &produit); err != nil {
		return apierror.Respond(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Produit created", "data": produit})
}

func (h *CatalogHandler) GetProduits(c *fiber.Ctx) error {
	produits, err := h.service.ListProduits(c.UserContext())
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(produits)
}

func (h *CatalogHandler) GetProduit(c *fiber.Ctx) error {
	produit, err := h.service.GetProduit(c.UserContext(), c.Params("id"))
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(produit)
}

func (h *CatalogHandler) UpdateProduit(c *fiber.Ctx) error {
	var req model.Produit
	if err := c.BodyParser(&req); err != nil {
		return apierror.BadRequest(c, "Invalid JSON")
	}

	produit, err := h.service.UpdateProduit(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Produit updated", "data": produit})
}

func (h *CatalogHandler) DeleteProduit(c *fiber.Ctx) error {
	if err := h.service.DeleteProduit(c.UserContext(), c.Params("id")); err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Produit deleted"})
}

// GET /api/v1/produits/:id/availability
func (h *CatalogHandler) GetAvailability(c *fiber.Ctx) error {
	av, err := h.service.Availability(c.UserContext(), c.Params("id"))
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(av)
}

// --- stock ---

func (h *CatalogHandler) CreateStock(c *fiber.Ctx) error {
	var stock model.Stock
	if err := c.BodyParser(&stock); err != nil {
		return apierror.BadRequest(c, "Invalid JSON")
	}

	if err := h.service.CreateStock(c.UserContext(), &stock); err != nil {
		return apierror.Respond(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Stock created", "data": stock})
}

// GetStocks lists intakes. Query params: produit (optional)
func (h *CatalogHandler) GetStocks(c *fiber.Ctx) error {
	stocks, err := h.service.ListStocks(c.UserContext(), c.Query("produit"))
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(stocks)
}

func (h *CatalogHandler) GetStock(c *fiber.Ctx) error {
	stock, err := h.service.GetStock(c.UserContext(), c.Params("id"))
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(stock)
}

func (h *CatalogHandler) UpdateStock(c *fiber.Ctx) error {
	var req model.Stock
	if err := c.BodyParser(&req); err != nil {
		return apierror.BadRequest(c, "Invalid JSON")
	}

	stock, err := h.service.UpdateStock(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock updated", "data": stock})
}

func (h *CatalogHandler) DeleteStock(c *fiber.Ctx) error {
	if err := h.service.DeleteStock(c.UserContext(), c.Params("id")); err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock deleted"})
}
