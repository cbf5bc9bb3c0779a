package repository

import (
	"context"

	"go-boutique-ws/internal/model"

	"gorm.io/gorm"
)

type PanierRepository interface {
	WithTx(tx *gorm.DB) PanierRepository
	Add(ctx context.Context, p *model.Panier) error
	Put(ctx context.Context, p *model.Panier) error
	Get(ctx context.Context, id string) (*model.Panier, error)
	// GetForUpdate locks the panier row for the rest of the transaction.
	GetForUpdate(ctx context.Context, id string) (*model.Panier, error)
	All(ctx context.Context) ([]model.Panier, error)
	ByClient(ctx context.Context, clientID string) ([]model.Panier, error)
	Delete(ctx context.Context, id string) error
}

type panierRepo struct {
	table[model.Panier]
}

func NewPanierRepo(db *gorm.DB) PanierRepository {
	return &panierRepo{table[model.Panier]{db}}
}

func (r *panierRepo) WithTx(tx *gorm.DB) PanierRepository { return NewPanierRepo(tx) }

func (r *panierRepo) Add(ctx context.Context, p *model.Panier) error {
	if err := AssignID(p); err != nil {
		return err
	}
	if p.Items == nil {
		p.Items = []model.PanierItem{}
	}
	return r.add(ctx, p)
}

func (r *panierRepo) Put(ctx context.Context, p *model.Panier) error {
	return r.put(ctx, p)
}

func (r *panierRepo) Get(ctx context.Context, id string) (*model.Panier, error) {
	return r.get(ctx, id)
}

func (r *panierRepo) GetForUpdate(ctx context.Context, id string) (*model.Panier, error) {
	return r.getForUpdate(ctx, id)
}

func (r *panierRepo) All(ctx context.Context) ([]model.Panier, error) {
	return r.all(ctx)
}

func (r *panierRepo) ByClient(ctx context.Context, clientID string) ([]model.Panier, error) {
	return r.all(ctx, "client_id = ?", clientID)
}

func (r *panierRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

type PaiementRepository interface {
	WithTx(tx *gorm.DB) PaiementRepository
	// Add derives the key from the panier and the minute bucket.
	Add(ctx context.Context, p *model.Paiement) error
	// Create inserts with the key already set (NaCash path).
	Create(ctx context.Context, p *model.Paiement) error
	Get(ctx context.Context, id string) (*model.Paiement, error)
	All(ctx context.Context) ([]model.Paiement, error)
	ByPanier(ctx context.Context, panierID string) ([]model.Paiement, error)
	Delete(ctx context.Context, id string) error
}

type paiementRepo struct {
	table[model.Paiement]
}

func NewPaiementRepo(db *gorm.DB) PaiementRepository {
	return &paiementRepo{table[model.Paiement]{db}}
}

func (r *paiementRepo) WithTx(tx *gorm.DB) PaiementRepository { return NewPaiementRepo(tx) }

func (r *paiementRepo) Add(ctx context.Context, p *model.Paiement) error {
	if err := AssignID(p); err != nil {
		return err
	}
	return r.add(ctx, p)
}

func (r *paiementRepo) Create(ctx context.Context, p *model.Paiement) error {
	return r.add(ctx, p)
}

func (r *paiementRepo) Get(ctx context.Context, id string) (*model.Paiement, error) {
	return r.get(ctx, id)
}

func (r *paiementRepo) All(ctx context.Context) ([]model.Paiement, error) {
	return r.all(ctx)
}

func (r *paiementRepo) ByPanier(ctx context.Context, panierID string) ([]model.Paiement, error) {
	return r.all(ctx, "panier_id = ?", panierID)
}

func (r *paiementRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}
