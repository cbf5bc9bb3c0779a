package service

import (
	"context"
	"errors"

	"go-boutique-ws/internal/eventbus"
	"go-boutique-ws/internal/model"
	"go-boutique-ws/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CatalogService interface {
	CreateClient(ctx context.Context, c *model.Client) error
	UpdateClient(ctx context.Context, id string, req *model.Client) (*model.Client, error)
	GetClient(ctx context.Context, id string) (*model.Client, error)
	ListClients(ctx context.Context) ([]model.Client, error)
	DeleteClient(ctx context.Context, id string) error

	CreateProduit(ctx context.Context, p *model.Produit) error
	UpdateProduit(ctx context.Context, id string, req *model.Produit) (*model.Produit, error)
	GetProduit(ctx context.Context, id string) (*model.Produit, error)
	ListProduits(ctx context.Context) ([]model.Produit, error)
	DeleteProduit(ctx context.Context, id string) error
	Availability(ctx context.Context, produitID string) (*model.Availability, error)

	CreateStock(ctx context.Context, s *model.Stock) error
	UpdateStock(ctx context.Context, id string, req *model.Stock) (*model.Stock, error)
	GetStock(ctx context.Context, id string) (*model.Stock, error)
	ListStocks(ctx context.Context, produitID string) ([]model.Stock, error)
	DeleteStock(ctx context.Context, id string) error
}

type catalogService struct {
	base
}

func NewCatalogService(db *gorm.DB, events eventbus.Publisher, now Clock) CatalogService {
	return &catalogService{base: newBase(db, events, now)}
}

func (s *catalogService) changed(ctx context.Context, kind, action, id string) {
	s.publish(ctx, eventbus.CatalogChanged, map[string]string{"kind": kind, "action": action, "id": id})
}

// duplicate maps a key collision to ErrDuplicate.
func duplicate(err error) error {
	if errors.Is(err, repository.ErrAlreadyExists) {
		return ErrDuplicate
	}
	return err
}

// --- clients ---

func (s *catalogService) CreateClient(ctx context.Context, c *model.Client) error {
	if err := validate(c); err != nil {
		return err
	}
	c.CreatedAt = s.now()
	if err := s.stores.Clients.Add(ctx, c); err != nil {
		return duplicate(err)
	}
	s.changed(ctx, "client", "created", c.ID)
	return nil
}

// UpdateClient edits the fields of a client. The key keeps its original value.
func (s *catalogService) UpdateClient(ctx context.Context, id string, req *model.Client) (*model.Client, error) {
	c, err := s.stores.Clients.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrClientNotFound)
	}
	c.Nom = req.Nom
	c.Prenom = req.Prenom
	c.Telephone = req.Telephone
	c.Ninu = req.Ninu
	c.Adresse = req.Adresse
	if err := validate(c); err != nil {
		return nil, err
	}
	if err := s.stores.Clients.Put(ctx, c); err != nil {
		return nil, err
	}
	s.changed(ctx, "client", "updated", c.ID)
	return c, nil
}

func (s *catalogService) GetClient(ctx context.Context, id string) (*model.Client, error) {
	c, err := s.stores.Clients.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrClientNotFound)
	}
	return c, nil
}

func (s *catalogService) ListClients(ctx context.Context) ([]model.Client, error) {
	return s.stores.Clients.All(ctx)
}

// DeleteClient refuses while the client owns a panier with items. Its empty
// paniers go with it.
func (s *catalogService) DeleteClient(ctx context.Context, id string) error {
	err := s.inTx(ctx, func(st repository.Stores) error {
		if _, err := st.Clients.Get(ctx, id); err != nil {
			return notFound(err, ErrClientNotFound)
		}
		paniers, err := st.Paniers.ByClient(ctx, id)
		if err != nil {
			return err
		}
		for _, p := range paniers {
			if len(p.Items) > 0 {
				return ErrClientHasPanier
			}
		}
		for _, p := range paniers {
			pays, err := st.Paiements.ByPanier(ctx, p.ID)
			if err != nil {
				return err
			}
			for _, pay := range pays {
				if err := st.Paiements.Delete(ctx, pay.ID); err != nil {
					return err
				}
			}
			if err := st.Paniers.Delete(ctx, p.ID); err != nil {
				return err
			}
		}
		return st.Clients.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.changed(ctx, "client", "deleted", id)
	return nil
}

// --- produits ---

func (s *catalogService) CreateProduit(ctx context.Context, p *model.Produit) error {
	if err := validate(p); err != nil {
		return err
	}
	p.CreatedAt = s.now()
	if err := s.stores.Produits.Add(ctx, p); err != nil {
		return duplicate(err)
	}
	s.changed(ctx, "produit", "created", p.ID)
	return nil
}

// UpdateProduit edits designation and price. Items already in a panier keep
// the price they were added at.
func (s *catalogService) UpdateProduit(ctx context.Context, id string, req *model.Produit) (*model.Produit, error) {
	p, err := s.stores.Produits.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrProduitNotFound)
	}
	p.Designation = req.Designation
	p.PU = req.PU
	if err := validate(p); err != nil {
		return nil, err
	}
	if err := s.stores.Produits.Put(ctx, p); err != nil {
		return nil, err
	}
	s.changed(ctx, "produit", "updated", p.ID)
	return p, nil
}

func (s *catalogService) GetProduit(ctx context.Context, id string) (*model.Produit, error) {
	p, err := s.stores.Produits.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrProduitNotFound)
	}
	return p, nil
}

func (s *catalogService) ListProduits(ctx context.Context) ([]model.Produit, error) {
	return s.stores.Produits.All(ctx)
}

// DeleteProduit refuses once the produit has any stock intake.
func (s *catalogService) DeleteProduit(ctx context.Context, id string) error {
	err := s.inTx(ctx, func(st repository.Stores) error {
		if _, err := st.Produits.Get(ctx, id); err != nil {
			return notFound(err, ErrProduitNotFound)
		}
		stocks, err := st.Stocks.ByProduit(ctx, id)
		if err != nil {
			return err
		}
		if len(stocks) > 0 {
			return ErrProduitInStock
		}
		return st.Produits.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.changed(ctx, "produit", "deleted", id)
	return nil
}

func (s *catalogService) Availability(ctx context.Context, produitID string) (*model.Availability, error) {
	if _, err := s.stores.Produits.Get(ctx, produitID); err != nil {
		return nil, notFound(err, ErrProduitNotFound)
	}
	return availability(ctx, s.stores, produitID)
}

// --- stock ---

func (s *catalogService) CreateStock(ctx context.Context, st *model.Stock) error {
	if err := validate(st); err != nil {
		return err
	}
	if _, err := s.stores.Produits.Get(ctx, st.ProduitID); err != nil {
		return notFound(err, ErrProduitNotFound)
	}
	st.CreatedAt = s.now()
	if err := s.stores.Stocks.Add(ctx, st); err != nil {
		return duplicate(err)
	}
	log.Info().Str("produit", st.ProduitID).Int("quantite", st.Quantite).Msg("stock intake recorded")
	s.changed(ctx, "stock", "created", st.ID)
	return nil
}

// UpdateStock edits an intake. The quantity may not drop below what paniers
// already hold of the produit.
func (s *catalogService) UpdateStock(ctx context.Context, id string, req *model.Stock) (*model.Stock, error) {
	var out *model.Stock
	err := s.inTx(ctx, func(st repository.Stores) error {
		cur, err := st.Stocks.Get(ctx, id)
		if err != nil {
			return notFound(err, ErrStockNotFound)
		}
		av, err := availability(ctx, st, cur.ProduitID)
		if err != nil {
			return err
		}
		if av.Disponible-cur.Quantite+req.Quantite < 0 {
			return ErrInsufficientStock
		}
		cur.Quantite = req.Quantite
		cur.Prix = req.Prix
		if err := validate(cur); err != nil {
			return err
		}
		if err := st.Stocks.Put(ctx, cur); err != nil {
			return err
		}
		out = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.changed(ctx, "stock", "updated", id)
	return out, nil
}

func (s *catalogService) GetStock(ctx context.Context, id string) (*model.Stock, error) {
	st, err := s.stores.Stocks.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrStockNotFound)
	}
	return st, nil
}

// ListStocks lists every intake, or those of one produit.
func (s *catalogService) ListStocks(ctx context.Context, produitID string) ([]model.Stock, error) {
	if produitID != "" {
		return s.stores.Stocks.ByProduit(ctx, produitID)
	}
	return s.stores.Stocks.All(ctx)
}

// DeleteStock refuses while the produit of the intake sits in any panier.
func (s *catalogService) DeleteStock(ctx context.Context, id string) error {
	err := s.inTx(ctx, func(st repository.Stores) error {
		cur, err := st.Stocks.Get(ctx, id)
		if err != nil {
			return notFound(err, ErrStockNotFound)
		}
		av, err := availability(ctx, st, cur.ProduitID)
		if err != nil {
			return err
		}
		if av.Engage > 0 {
			return ErrStockCommitted
		}
		return st.Stocks.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.changed(ctx, "stock", "deleted", id)
	return nil
}
