package handler

import (
	"bytes"
	"errors"
	"strconv"

	"go-boutique-ws/internal/apierror"
	"go-boutique-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type PanierHandler struct {
	paniers  service.PanierService
	nacash   service.NaCashService
	receipts service.ReceiptService
}

func NewPanierHandler(paniers service.PanierService, nacash service.NaCashService, receipts service.ReceiptService) *PanierHandler {
	return &PanierHandler{paniers: paniers, nacash: nacash, receipts: receipts}
}

// AddItemRequest represents the add item request body
type AddItemRequest struct {
	Produit  string `json:"produit"`
	Quantite int    `json:"quantite"`
}

// PaymentRequest represents a manual payment
type PaymentRequest struct {
	Montant decimal.Decimal `json:"montant"`
	Par     string          `json:"par"`
}

type DeliveredRequest struct {
	Delivered bool `json:"delivered"`
}

type RedeemRequest struct {
	Code string `json:"code"`
}

// GetClientPaniers lists every panier of a client
// GET /api/v1/clients/:id/paniers
func (h *PanierHandler) GetClientPaniers(c *fiber.Ctx) error {
	paniers, err := h.paniers.ListByClient(c.UserContext(), c.Params("id"))
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(paniers)
}

// OpenPanier returns the open panier of a client, creating it when needed
// POST /api/v1/clients/:id/paniers/open
func (h *PanierHandler) OpenPanier(c *fiber.Ctx) error {
	p, err := h.paniers.Open(c.UserContext(), c.Params("id"))
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(p)
}

// CreatePanier starts a new panier for a client
// POST /api/v1/clients/:id/paniers
func (h *PanierHandler) CreatePanier(c *fiber.Ctx) error {
	p, err := h.paniers.CreateFor(c.UserContext(), c.Params("id"))
	if errors.Is(err, service.ErrPanierAlreadyOpen) {
		return c.Status(409).JSON(fiber.Map{"error": err.Error(), "category": string(service.CategoryConflict), "data": p})
	}
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Panier created", "data": p})
}

func (h *PanierHandler) GetPanier(c *fiber.Ctx) error {
	p, err := h.paniers.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(p)
}

func (h *PanierHandler) DeletePanier(c *fiber.Ctx) error {
	if err := h.paniers.Delete(c.UserContext(), c.Params("id")); err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Panier deleted"})
}

// AddItem puts a produit in the panier
// POST /api/v1/paniers/:id/items
func (h *PanierHandler) AddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apierror.BadRequest(c, "Invalid JSON")
	}
	if req.Produit == "" {
		return apierror.BadRequest(c, "produit is required")
	}

	p, err := h.paniers.AddItem(c.UserContext(), c.Params("id"), req.Produit, req.Quantite)
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Item added", "data": p})
}

func (h *PanierHandler) RemoveItem(c *fiber.Ctx) error {
	p, err := h.paniers.RemoveItem(c.UserContext(), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item removed", "data": p})
}

// SetDelivered flags an item as handed over (or not)
// PUT /api/v1/paniers/:id/items/:itemId/delivered
func (h *PanierHandler) SetDelivered(c *fiber.Ctx) error {
	var req DeliveredRequest
	if err := c.BodyParser(&req); err != nil {
		return apierror.BadRequest(c, "Invalid JSON")
	}

	p, err := h.paniers.SetDelivered(c.UserContext(), c.Params("id"), c.Params("itemId"), req.Delivered)
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item updated", "data": p})
}

// GetPaiements lists the ledger of a panier after syncing its totals
func (h *PanierHandler) GetPaiements(c *fiber.Ctx) error {
	pays, err := h.paniers.Payments(c.UserContext(), c.Params("id"))
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(pays)
}

// CreatePaiement records a manual payment
// POST /api/v1/paniers/:id/paiements
func (h *PanierHandler) CreatePaiement(c *fiber.Ctx) error {
	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apierror.BadRequest(c, "Invalid JSON")
	}

	par := req.Par
	if par == "" {
		if name, ok := c.Locals("profil_name").(string); ok {
			par = name
		}
	}

	pay, p, err := h.paniers.ApplyPayment(c.UserContext(), c.Params("id"), req.Montant, par)
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Paiement recorded", "data": fiber.Map{"paiement": pay, "panier": p}})
}

func (h *PanierHandler) CancelPaiement(c *fiber.Ctx) error {
	p, err := h.paniers.CancelPayment(c.UserContext(), c.Params("id"), c.Params("paiementId"))
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Paiement cancelled", "data": p})
}

// Sync recomputes paye and reste from the ledger
func (h *PanierHandler) Sync(c *fiber.Ctx) error {
	p, err := h.paniers.Sync(c.UserContext(), c.Params("id"))
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(p)
}

// Redeem settles the panier with a NaCash transaction code
// POST /api/v1/paniers/:id/nacash
func (h *PanierHandler) Redeem(c *fiber.Ctx) error {
	var req RedeemRequest
	if err := c.BodyParser(&req); err != nil {
		return apierror.BadRequest(c, "Invalid JSON")
	}

	r, err := h.nacash.Redeem(c.UserContext(), c.Params("id"), req.Code)
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "NaCash paiement recorded", "data": r})
}

// GetReceipt renders the panier as a PDF
func (h *PanierHandler) GetReceipt(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.receipts.Render(c.UserContext(), c.Params("id"), &buf); err != nil {
		return apierror.Respond(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "inline; filename=\"panier-"+c.Params("id")+".pdf\"")
	return c.Send(buf.Bytes())
}

// GetLivraisons lists items with their delivery state
// Query params: client, delivered (true/false)
func (h *PanierHandler) GetLivraisons(c *fiber.Ctx) error {
	filter := service.DeliveryFilter{ClientID: c.Query("client")}
	if raw := c.Query("delivered"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return apierror.BadRequest(c, "Invalid delivered filter")
		}
		filter.Delivered = &v
	}

	deliveries, err := h.paniers.Deliveries(c.UserContext(), filter)
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(deliveries)
}
