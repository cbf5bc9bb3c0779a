package model

import (
	"github.com/shopspring/decimal"

	"go-boutique-ws/pkg/ident"
)

// Client is keyed by its phone number: two clients cannot share a phone.
type Client struct {
	BaseModel
	Nom       string `gorm:"type:varchar(100);not null" json:"nom" validate:"required"`
	Prenom    string `gorm:"type:varchar(100)" json:"prenom" validate:"required"`
	Telephone string `gorm:"type:varchar(20);not null" json:"telephone" validate:"required,phone"`
	Ninu      string `gorm:"type:varchar(30)" json:"ninu,omitempty"`
	Adresse   string `gorm:"type:varchar(255)" json:"adresse,omitempty"`
}

func (Client) TableName() string { return "client" }
func (Client) Kind() ident.Kind { return ident.KindClient }
func (c *Client) IdentityAttrs() ident.Attrs {
	return ident.Attrs{Telephone: c.Telephone}
}

// Produit is keyed by designation+price, so a new price is a new produit.
type Produit struct {
	BaseModel
	Designation string          `gorm:"type:varchar(255);not null" json:"designation" validate:"required"`
	PU          decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"pu" validate:"decimal_gt0"`
}

func (Produit) TableName() string { return "produit" }
func (Produit) Kind() ident.Kind { return ident.KindProduit }
func (p *Produit) IdentityAttrs() ident.Attrs {
	return ident.Attrs{Designation: p.Designation, PU: p.PU.String()}
}

// Stock is one intake batch. Stock of a produit = sum of its batches.
type Stock struct {
	BaseModel
	ProduitID string          `gorm:"type:varchar(64);not null;index" json:"produit" validate:"required"`
	Quantite  int             `gorm:"not null" json:"quantite" validate:"required,gt=0"`
	Prix      decimal.Decimal `gorm:"type:numeric(14,2)" json:"prix"` // purchase price
}

func (Stock) TableName() string { return "stock" }
func (Stock) Kind() ident.Kind { return ident.KindStock }
func (s *Stock) IdentityAttrs() ident.Attrs {
	return ident.Attrs{Produit: s.ProduitID}
}

// Cost is quantite * prix of the batch.
func (s *Stock) Cost() decimal.Decimal {
	return s.Prix.Mul(decimal.NewFromInt(int64(s.Quantite)))
}

// Availability is the engagé/disponible view of one produit.
type Availability struct {
	ProduitID  string `json:"produit"`
	Stock      int    `json:"stock"`
	Engage     int    `json:"engage"`
	Disponible int    `json:"disponible"`
}
