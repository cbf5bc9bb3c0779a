package repository

import (
	"context"

	"go-boutique-ws/internal/model"

	"gorm.io/gorm"
)

type ClientRepository interface {
	WithTx(tx *gorm.DB) ClientRepository
	Add(ctx context.Context, c *model.Client) error
	Put(ctx context.Context, c *model.Client) error
	Get(ctx context.Context, id string) (*model.Client, error)
	All(ctx context.Context) ([]model.Client, error)
	Delete(ctx context.Context, id string) error
}

type clientRepo struct {
	table[model.Client]
}

func NewClientRepo(db *gorm.DB) ClientRepository {
	return &clientRepo{table[model.Client]{db}}
}

func (r *clientRepo) WithTx(tx *gorm.DB) ClientRepository { return NewClientRepo(tx) }

func (r *clientRepo) Add(ctx context.Context, c *model.Client) error {
	if err := AssignID(c); err != nil {
		return err
	}
	return r.add(ctx, c)
}

func (r *clientRepo) Put(ctx context.Context, c *model.Client) error {
	return r.put(ctx, c)
}

func (r *clientRepo) Get(ctx context.Context, id string) (*model.Client, error) {
	return r.get(ctx, id)
}

func (r *clientRepo) All(ctx context.Context) ([]model.Client, error) {
	return r.all(ctx)
}

func (r *clientRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

type ProduitRepository interface {
	WithTx(tx *gorm.DB) ProduitRepository
	Add(ctx context.Context, p *model.Produit) error
	Put(ctx context.Context, p *model.Produit) error
	Get(ctx context.Context, id string) (*model.Produit, error)
	All(ctx context.Context) ([]model.Produit, error)
	Delete(ctx context.Context, id string) error
}

type produitRepo struct {
	table[model.Produit]
}

func NewProduitRepo(db *gorm.DB) ProduitRepository {
	return &produitRepo{table[model.Produit]{db}}
}

func (r *produitRepo) WithTx(tx *gorm.DB) ProduitRepository { return NewProduitRepo(tx) }

func (r *produitRepo) Add(ctx context.Context, p *model.Produit) error {
	if err := AssignID(p); err != nil {
		return err
	}
	return r.add(ctx, p)
}

func (r *produitRepo) Put(ctx context.Context, p *model.Produit) error {
	return r.put(ctx, p)
}

func (r *produitRepo) Get(ctx context.Context, id string) (*model.Produit, error) {
	return r.get(ctx, id)
}

func (r *produitRepo) All(ctx context.Context) ([]model.Produit, error) {
	return r.all(ctx)
}

func (r *produitRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

type StockRepository interface {
	WithTx(tx *gorm.DB) StockRepository
	Add(ctx context.Context, s *model.Stock) error
	Put(ctx context.Context, s *model.Stock) error
	Get(ctx context.Context, id string) (*model.Stock, error)
	All(ctx context.Context) ([]model.Stock, error)
	ByProduit(ctx context.Context, produitID string) ([]model.Stock, error)
	Delete(ctx context.Context, id string) error
}

type stockRepo struct {
	table[model.Stock]
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{table[model.Stock]{db}}
}

func (r *stockRepo) WithTx(tx *gorm.DB) StockRepository { return NewStockRepo(tx) }

func (r *stockRepo) Add(ctx context.Context, s *model.Stock) error {
	if err := AssignID(s); err != nil {
		return err
	}
	return r.add(ctx, s)
}

func (r *stockRepo) Put(ctx context.Context, s *model.Stock) error {
	return r.put(ctx, s)
}

func (r *stockRepo) Get(ctx context.Context, id string) (*model.Stock, error) {
	return r.get(ctx, id)
}

func (r *stockRepo) All(ctx context.Context) ([]model.Stock, error) {
	return r.all(ctx)
}

func (r *stockRepo) ByProduit(ctx context.Context, produitID string) ([]model.Stock, error) {
	return r.all(ctx, "produit_id = ?", produitID)
}

func (r *stockRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}
