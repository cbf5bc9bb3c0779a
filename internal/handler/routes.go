package handler

import (
	"github.com/gofiber/fiber/v2"
)

// Handlers groups every HTTP handler of the API.
type Handlers struct {
	Auth      *AuthHandler
	Catalog   *CatalogHandler
	Panier    *PanierHandler
	NaCash    *NaCashHandler
	Import    *ImportHandler
	Dashboard *DashboardHandler
}

// Register mounts the API under api. requireAuth guards everything except
// login and token validation.
func (h *Handlers) Register(api fiber.Router, requireAuth fiber.Handler) {
	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Post("/validate-token", h.Auth.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", requireAuth)

	protected.Post("/auth/change-password", h.Auth.ChangePassword)
	protected.Get("/profil", h.Auth.GetProfil)
	protected.Put("/profil", h.Auth.UpdateProfil)

	// Clients
	protected.Get("/clients", h.Catalog.GetClients)
	protected.Post("/clients", h.Catalog.CreateClient)
	protected.Get("/clients/:id", h.Catalog.GetClient)
	protected.Put("/clients/:id", h.Catalog.UpdateClient)
	protected.Delete("/clients/:id", h.Catalog.DeleteClient)
	protected.Get("/clients/:id/paniers", h.Panier.GetClientPaniers)
	protected.Post("/clients/:id/paniers", h.Panier.CreatePanier)
	protected.Post("/clients/:id/paniers/open", h.Panier.OpenPanier)

	// Produits
	protected.Get("/produits", h.Catalog.GetProduits)
	protected.Post("/produits", h.Catalog.CreateProduit)
	protected.Get("/produits/:id", h.Catalog.GetProduit)
	protected.Put("/produits/:id", h.Catalog.UpdateProduit)
	protected.Delete("/produits/:id", h.Catalog.DeleteProduit)
	protected.Get("/produits/:id/availability", h.Catalog.GetAvailability)

	// Stock intakes
	protected.Get("/stocks", h.Catalog.GetStocks)
	protected.Post("/stocks", h.Catalog.CreateStock)
	protected.Get("/stocks/:id", h.Catalog.GetStock)
	protected.Put("/stocks/:id", h.Catalog.UpdateStock)
	protected.Delete("/stocks/:id", h.Catalog.DeleteStock)

	// Paniers
	protected.Get("/paniers/:id", h.Panier.GetPanier)
	protected.Delete("/paniers/:id", h.Panier.DeletePanier)
	protected.Post("/paniers/:id/items", h.Panier.AddItem)
	protected.Delete("/paniers/:id/items/:itemId", h.Panier.RemoveItem)
	protected.Put("/paniers/:id/items/:itemId/delivered", h.Panier.SetDelivered)
	protected.Get("/paniers/:id/paiements", h.Panier.GetPaiements)
	protected.Post("/paniers/:id/paiements", h.Panier.CreatePaiement)
	protected.Delete("/paniers/:id/paiements/:paiementId", h.Panier.CancelPaiement)
	protected.Post("/paniers/:id/sync", h.Panier.Sync)
	protected.Post("/paniers/:id/nacash", h.Panier.Redeem)
	protected.Get("/paniers/:id/receipt", h.Panier.GetReceipt)
	protected.Get("/livraisons", h.Panier.GetLivraisons)

	// NaCash ledger
	protected.Get("/natcash", h.NaCash.GetTransactions)
	protected.Post("/natcash/import", h.NaCash.Import)
	protected.Get("/natcash/:code", h.NaCash.GetTransaction)

	protected.Post("/import/:collection", h.Import.Import)

	// Dashboard
	protected.Get("/dashboard/summary", h.Dashboard.GetSummary)
	protected.Get("/dashboard/expenses", h.Dashboard.GetExpenses)
	protected.Get("/dashboard/sales", h.Dashboard.GetSales)
	protected.Get("/dashboard/profits", h.Dashboard.GetProfits)
}
