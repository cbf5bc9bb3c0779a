package service

import (
	"context"

	"go-boutique-ws/internal/eventbus"
	"go-boutique-ws/internal/model"
	"go-boutique-ws/internal/repository"
	"go-boutique-ws/pkg/ident"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Redemption is the outcome of a successful NaCash redemption.
type Redemption struct {
	Transaction *model.NaCashTransaction `json:"transaction"`
	Paiement    *model.Paiement          `json:"paiement"`
	Panier      *model.Panier            `json:"panier"`
}

type NaCashService interface {
	Redeem(ctx context.Context, panierID, code string) (*Redemption, error)
}

type nacashService struct {
	base
}

func NewNaCashService(db *gorm.DB, events eventbus.Publisher, now Clock) NaCashService {
	return &nacashService{base: newBase(db, events, now)}
}

// Redeem settles a panier with a mobile-money transaction. Claiming the code,
// writing the paiement and re-deriving the panier happen in one transaction,
// so a code is never left used without a paiement, nor paid and reusable.
// A panier with nothing left to pay is refused with ErrPanierAlreadyPaid and
// the code stays unused.
func (s *nacashService) Redeem(ctx context.Context, panierID, code string) (*Redemption, error) {
	var out Redemption
	err := s.inTx(ctx, func(st repository.Stores) error {
		txn, err := st.NaCash.GetForUpdate(ctx, code)
		if err != nil {
			return notFound(err, ErrInvalidCode)
		}
		if txn.Used {
			return ErrCodeAlreadyUsed
		}

		p, err := st.Paniers.GetForUpdate(ctx, panierID)
		if err != nil {
			return notFound(err, ErrPanierNotFound)
		}
		paye, err := ledgerSum(ctx, st, panierID)
		if err != nil {
			return err
		}
		p.ApplyLedger(paye)
		if !p.Reste.IsPositive() {
			return ErrPanierAlreadyPaid
		}
		if txn.Montant.LessThan(p.Reste) {
			return ErrInsufficientAmount
		}

		claimed, err := st.NaCash.Claim(ctx, code)
		if err != nil {
			return err
		}
		if !claimed {
			return ErrCodeAlreadyUsed
		}
		txn.Used = true

		now := s.now()
		pay := &model.Paiement{PanierID: panierID, Montant: txn.Montant, Par: code}
		pay.ID = ident.NaCashPaiementID(panierID, now)
		pay.CreatedAt = now
		if err := st.Paiements.Create(ctx, pay); err != nil {
			return err
		}

		if err := rederive(ctx, st, p); err != nil {
			return err
		}
		out = Redemption{Transaction: txn, Paiement: pay, Panier: p}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("panier", panierID).Str("code", code).Str("montant", out.Transaction.Montant.String()).Msg("nacash redeemed")
	s.publish(ctx, eventbus.NaCashRedeemed, out)
	s.publish(ctx, eventbus.PanierUpdated, out.Panier)
	return &out, nil
}
