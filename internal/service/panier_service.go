package service

import (
	"context"
	"errors"

	"go-boutique-ws/internal/eventbus"
	"go-boutique-ws/internal/model"
	"go-boutique-ws/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PanierService interface {
	Open(ctx context.Context, clientID string) (*model.Panier, error)
	CreateFor(ctx context.Context, clientID string) (*model.Panier, error)
	Get(ctx context.Context, id string) (*model.Panier, error)
	ListByClient(ctx context.Context, clientID string) ([]model.Panier, error)
	Delete(ctx context.Context, id string) error

	AddItem(ctx context.Context, panierID, produitID string, quantite int) (*model.Panier, error)
	RemoveItem(ctx context.Context, panierID, itemID string) (*model.Panier, error)
	SetDelivered(ctx context.Context, panierID, itemID string, delivered bool) (*model.Panier, error)

	ApplyPayment(ctx context.Context, panierID string, montant decimal.Decimal, par string) (*model.Paiement, *model.Panier, error)
	CancelPayment(ctx context.Context, panierID, paiementID string) (*model.Panier, error)
	Sync(ctx context.Context, panierID string) (*model.Panier, error)
	Payments(ctx context.Context, panierID string) ([]model.Paiement, error)

	Deliveries(ctx context.Context, filter DeliveryFilter) ([]model.Delivery, error)
}

// DeliveryFilter narrows the delivery list. Zero value lists everything.
type DeliveryFilter struct {
	ClientID  string
	Delivered *bool
}

type panierService struct {
	base
}

func NewPanierService(db *gorm.DB, events eventbus.Publisher, now Clock) PanierService {
	return &panierService{base: newBase(db, events, now)}
}

// Open returns the client's open panier, creating an empty one when none is open.
func (s *panierService) Open(ctx context.Context, clientID string) (*model.Panier, error) {
	var (
		out     *model.Panier
		created bool
	)
	err := s.inTx(ctx, func(st repository.Stores) error {
		open, err := openPanierOf(ctx, st, clientID)
		if err != nil {
			return err
		}
		if open != nil {
			out = open
			return nil
		}
		out, err = s.create(ctx, st, clientID)
		created = err == nil
		return err
	})
	if err != nil {
		return nil, err
	}
	if created {
		s.publish(ctx, eventbus.PanierUpdated, out)
	}
	return out, nil
}

// CreateFor starts a new panier. When the client already has an open one it
// is returned together with ErrPanierAlreadyOpen.
func (s *panierService) CreateFor(ctx context.Context, clientID string) (*model.Panier, error) {
	var out *model.Panier
	err := s.inTx(ctx, func(st repository.Stores) error {
		open, err := openPanierOf(ctx, st, clientID)
		if err != nil {
			return err
		}
		if open != nil {
			out = open
			return ErrPanierAlreadyOpen
		}
		out, err = s.create(ctx, st, clientID)
		return err
	})
	if errors.Is(err, ErrPanierAlreadyOpen) {
		return out, err
	}
	if err != nil {
		return nil, err
	}
	s.publish(ctx, eventbus.PanierUpdated, out)
	return out, nil
}

// openPanierOf checks the client and returns its first panier with reste > 0, or nil.
func openPanierOf(ctx context.Context, st repository.Stores, clientID string) (*model.Panier, error) {
	if _, err := st.Clients.Get(ctx, clientID); err != nil {
		return nil, notFound(err, ErrClientNotFound)
	}
	paniers, err := st.Paniers.ByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	for i := range paniers {
		if paniers[i].IsOpen() {
			return &paniers[i], nil
		}
	}
	return nil, nil
}

// create adds an empty panier. Two paniers for one client inside the same
// minute share a key: an existing empty one is handed back, anything else is
// a conflict.
func (s *panierService) create(ctx context.Context, st repository.Stores, clientID string) (*model.Panier, error) {
	p := &model.Panier{ClientID: clientID, Items: []model.PanierItem{}}
	p.CreatedAt = s.now()
	err := st.Paniers.Add(ctx, p)
	if errors.Is(err, repository.ErrAlreadyExists) {
		existing, err := st.Paniers.Get(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if len(existing.Items) > 0 {
			return nil, ErrDuplicate
		}
		log.Warn().Str("panier", p.ID).Str("client", clientID).Msg("panier key already taken in this minute, reusing the empty one")
		return existing, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *panierService) Get(ctx context.Context, id string) (*model.Panier, error) {
	p, err := s.stores.Paniers.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrPanierNotFound)
	}
	return p, nil
}

func (s *panierService) ListByClient(ctx context.Context, clientID string) ([]model.Panier, error) {
	return s.stores.Paniers.ByClient(ctx, clientID)
}

// Delete removes an empty panier and whatever paiements still point at it.
func (s *panierService) Delete(ctx context.Context, id string) error {
	err := s.inTx(ctx, func(st repository.Stores) error {
		p, err := st.Paniers.GetForUpdate(ctx, id)
		if err != nil {
			return notFound(err, ErrPanierNotFound)
		}
		if len(p.Items) > 0 {
			return ErrPanierNotEmpty
		}
		pays, err := st.Paiements.ByPanier(ctx, id)
		if err != nil {
			return err
		}
		for _, pay := range pays {
			if err := st.Paiements.Delete(ctx, pay.ID); err != nil {
				return err
			}
		}
		return st.Paniers.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, eventbus.PanierDeleted, map[string]string{"id": id})
	return nil
}

// AddItem puts quantite units of a produit in the panier, merging with an
// existing line for the same produit. Price and designation are captured now.
func (s *panierService) AddItem(ctx context.Context, panierID, produitID string, quantite int) (*model.Panier, error) {
	if quantite <= 0 {
		return nil, ErrInvalidQuantity
	}

	var out *model.Panier
	err := s.inTx(ctx, func(st repository.Stores) error {
		p, err := st.Paniers.GetForUpdate(ctx, panierID)
		if err != nil {
			return notFound(err, ErrPanierNotFound)
		}
		produit, err := st.Produits.Get(ctx, produitID)
		if err != nil {
			return notFound(err, ErrProduitNotFound)
		}
		av, err := availability(ctx, st, produitID)
		if err != nil {
			return err
		}
		if quantite > av.Disponible {
			return ErrInsufficientStock
		}

		if it := p.ItemFor(produitID); it != nil {
			it.Quantite += quantite
		} else {
			p.Items = append(p.Items, model.PanierItem{
				ID:          uuid.NewString(),
				ProduitID:   produit.ID,
				Designation: produit.Designation,
				Prix:        produit.PU,
				Quantite:    quantite,
				CreatedAt:   s.now(),
			})
		}

		if err := rederive(ctx, st, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, eventbus.PanierUpdated, out)
	return out, nil
}

// RemoveItem drops an undelivered item.
func (s *panierService) RemoveItem(ctx context.Context, panierID, itemID string) (*model.Panier, error) {
	var out *model.Panier
	err := s.inTx(ctx, func(st repository.Stores) error {
		p, err := st.Paniers.GetForUpdate(ctx, panierID)
		if err != nil {
			return notFound(err, ErrPanierNotFound)
		}
		it := p.Item(itemID)
		if it == nil {
			return ErrItemNotFound
		}
		if it.Delivered {
			return ErrItemDelivered
		}
		p.RemoveItem(itemID)
		if err := rederive(ctx, st, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, eventbus.PanierUpdated, out)
	return out, nil
}

// SetDelivered flags an item and stamps or clears its delivery time.
// Totals are not touched.
func (s *panierService) SetDelivered(ctx context.Context, panierID, itemID string, delivered bool) (*model.Panier, error) {
	var out *model.Panier
	err := s.inTx(ctx, func(st repository.Stores) error {
		p, err := st.Paniers.GetForUpdate(ctx, panierID)
		if err != nil {
			return notFound(err, ErrPanierNotFound)
		}
		it := p.Item(itemID)
		if it == nil {
			return ErrItemNotFound
		}
		it.Delivered = delivered
		if delivered {
			at := s.now()
			it.DeliveredAt = &at
		} else {
			it.DeliveredAt = nil
		}
		if err := st.Paniers.Put(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, eventbus.PanierUpdated, out)
	return out, nil
}

// ApplyPayment records a paiement of montant, which may not exceed what remains due.
func (s *panierService) ApplyPayment(ctx context.Context, panierID string, montant decimal.Decimal, par string) (*model.Paiement, *model.Panier, error) {
	if !montant.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}

	var (
		pay *model.Paiement
		out *model.Panier
	)
	err := s.inTx(ctx, func(st repository.Stores) error {
		p, err := st.Paniers.GetForUpdate(ctx, panierID)
		if err != nil {
			return notFound(err, ErrPanierNotFound)
		}
		paye, err := ledgerSum(ctx, st, panierID)
		if err != nil {
			return err
		}
		p.ApplyLedger(paye)
		if montant.GreaterThan(p.Reste) {
			return ErrAmountExceedsReste
		}

		pay = &model.Paiement{PanierID: panierID, Montant: montant, Par: par}
		pay.CreatedAt = s.now()
		if err := st.Paiements.Add(ctx, pay); err != nil {
			if errors.Is(err, repository.ErrAlreadyExists) {
				return ErrDuplicate
			}
			return err
		}

		if err := rederive(ctx, st, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	log.Info().Str("panier", panierID).Str("montant", montant.String()).Str("par", par).Msg("payment recorded")
	s.publish(ctx, eventbus.PaiementCreated, pay)
	s.publish(ctx, eventbus.PanierUpdated, out)
	return pay, out, nil
}

// CancelPayment deletes a paiement made today and re-derives the panier from
// what is left in the ledger.
func (s *panierService) CancelPayment(ctx context.Context, panierID, paiementID string) (*model.Panier, error) {
	var out *model.Panier
	err := s.inTx(ctx, func(st repository.Stores) error {
		p, err := st.Paniers.GetForUpdate(ctx, panierID)
		if err != nil {
			return notFound(err, ErrPanierNotFound)
		}
		pay, err := st.Paiements.Get(ctx, paiementID)
		if err != nil {
			return notFound(err, ErrPaiementNotFound)
		}
		if pay.PanierID != panierID {
			return ErrPaiementNotFound
		}
		if !pay.SameDay(s.now()) {
			return ErrPaymentNotToday
		}
		if err := st.Paiements.Delete(ctx, paiementID); err != nil {
			return err
		}
		if err := rederive(ctx, st, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("panier", panierID).Str("paiement", paiementID).Msg("payment cancelled")
	s.publish(ctx, eventbus.PaiementCancelled, map[string]string{"id": paiementID, "panier": panierID})
	s.publish(ctx, eventbus.PanierUpdated, out)
	return out, nil
}

// Sync rewrites paye and reste from the ledger. Running it twice changes nothing.
func (s *panierService) Sync(ctx context.Context, panierID string) (*model.Panier, error) {
	var (
		out     *model.Panier
		changed bool
	)
	err := s.inTx(ctx, func(st repository.Stores) error {
		p, err := st.Paniers.GetForUpdate(ctx, panierID)
		if err != nil {
			return notFound(err, ErrPanierNotFound)
		}
		before := [3]decimal.Decimal{p.Total, p.Paye, p.Reste}
		if err := rederive(ctx, st, p); err != nil {
			return err
		}
		changed = !before[0].Equal(p.Total) || !before[1].Equal(p.Paye) || !before[2].Equal(p.Reste)
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		log.Info().Str("panier", panierID).Str("paye", out.Paye.String()).Str("reste", out.Reste.String()).Msg("panier re-synced from ledger")
		s.publish(ctx, eventbus.PanierUpdated, out)
	}
	return out, nil
}

// Payments re-syncs the panier, then lists its paiements oldest first.
func (s *panierService) Payments(ctx context.Context, panierID string) ([]model.Paiement, error) {
	if _, err := s.Sync(ctx, panierID); err != nil {
		return nil, err
	}
	return s.stores.Paiements.ByPanier(ctx, panierID)
}

// Deliveries flattens the items of every panier into delivery lines.
func (s *panierService) Deliveries(ctx context.Context, filter DeliveryFilter) ([]model.Delivery, error) {
	var (
		paniers []model.Panier
		err     error
	)
	if filter.ClientID != "" {
		paniers, err = s.stores.Paniers.ByClient(ctx, filter.ClientID)
	} else {
		paniers, err = s.stores.Paniers.All(ctx)
	}
	if err != nil {
		return nil, err
	}

	out := []model.Delivery{}
	for _, p := range paniers {
		for _, it := range p.Items {
			if filter.Delivered != nil && it.Delivered != *filter.Delivered {
				continue
			}
			out = append(out, model.Delivery{
				PanierID:    p.ID,
				ClientID:    p.ClientID,
				ItemID:      it.ID,
				Designation: it.Designation,
				Quantite:    it.Quantite,
				Delivered:   it.Delivered,
				DeliveredAt: it.DeliveredAt,
			})
		}
	}
	return out, nil
}
