package repository

import "gorm.io/gorm"

// Stores bundles every collection so a service can rebind all of them to one transaction.
type Stores struct {
	Clients   ClientRepository
	Produits  ProduitRepository
	Stocks    StockRepository
	Paniers   PanierRepository
	Paiements PaiementRepository
	NaCash    NaCashRepository
}

func NewStores(db *gorm.DB) Stores {
	return Stores{
		Clients:   NewClientRepo(db),
		Produits:  NewProduitRepo(db),
		Stocks:    NewStockRepo(db),
		Paniers:   NewPanierRepo(db),
		Paiements: NewPaiementRepo(db),
		NaCash:    NewNaCashRepo(db),
	}
}

// WithTx returns the same stores bound to tx.
func (s Stores) WithTx(tx *gorm.DB) Stores {
	return Stores{
		Clients:   s.Clients.WithTx(tx),
		Produits:  s.Produits.WithTx(tx),
		Stocks:    s.Stocks.WithTx(tx),
		Paniers:   s.Paniers.WithTx(tx),
		Paiements: s.Paiements.WithTx(tx),
		NaCash:    s.NaCash.WithTx(tx),
	}
}
