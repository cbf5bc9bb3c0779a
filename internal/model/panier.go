package model

import (
	"time"

	"github.com/shopspring/decimal"

	"go-boutique-ws/pkg/ident"
)

// Panier is a client's basket. Total is derived from Items; Paye and Reste
// are a projection of the paiements ledger and are only written by a re-sync.
type Panier struct {
	BaseModel
	ClientID string          `gorm:"type:varchar(64);not null;index" json:"client"`
	Total    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total"`
	Paye     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"paye"`
	Reste    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"reste"`
	Items    []PanierItem    `gorm:"type:text;serializer:json" json:"items"`
}

func (Panier) TableName() string { return "panier" }
func (Panier) Kind() ident.Kind { return ident.KindPanier }
func (p *Panier) IdentityAttrs() ident.Attrs {
	return ident.Attrs{Client: p.ClientID}
}

// PanierItem lives only inside its panier. Designation and Prix are copied
// from the produit when the item is added.
type PanierItem struct {
	ID          string          `json:"id"`
	ProduitID   string          `json:"produit"`
	Designation string          `json:"designation"`
	Prix        decimal.Decimal `json:"prix"`
	Quantite    int             `json:"quantite"`
	Delivered   bool            `json:"delivered"`
	DeliveredAt *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Subtotal is quantite * prix.
func (i *PanierItem) Subtotal() decimal.Decimal {
	return i.Prix.Mul(decimal.NewFromInt(int64(i.Quantite)))
}

// IsOpen reports whether something remains to be paid.
func (p *Panier) IsOpen() bool {
	return p.Reste.IsPositive()
}

// ComputeTotal sums the item subtotals.
func (p *Panier) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range p.Items {
		total = total.Add(p.Items[i].Subtotal())
	}
	return total
}

// ApplyLedger sets Total from the items and Paye/Reste from the ledger sum.
// Reste never goes below zero.
func (p *Panier) ApplyLedger(paye decimal.Decimal) {
	p.Total = p.ComputeTotal()
	p.Paye = paye
	p.Reste = decimal.Max(decimal.Zero, p.Total.Sub(p.Paye))
}

// Item returns the item with the given id, or nil.
func (p *Panier) Item(id string) *PanierItem {
	for i := range p.Items {
		if p.Items[i].ID == id {
			return &p.Items[i]
		}
	}
	return nil
}

// ItemFor returns the item holding produitID, or nil.
func (p *Panier) ItemFor(produitID string) *PanierItem {
	for i := range p.Items {
		if p.Items[i].ProduitID == produitID {
			return &p.Items[i]
		}
	}
	return nil
}

// RemoveItem drops the item with the given id and reports whether it existed.
func (p *Panier) RemoveItem(id string) bool {
	for i := range p.Items {
		if p.Items[i].ID == id {
			p.Items = append(p.Items[:i], p.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Quantite returns how many units of produitID this panier holds.
func (p *Panier) Quantite(produitID string) int {
	n := 0
	for _, it := range p.Items {
		if it.ProduitID == produitID {
			n += it.Quantite
		}
	}
	return n
}

// Paiement is one payment row. It is the source of truth for Panier.Paye.
type Paiement struct {
	BaseModel
	PanierID string          `gorm:"type:varchar(64);not null;index" json:"panier"`
	Montant  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"montant"`
	Par      string          `gorm:"type:varchar(255)" json:"par"`
}

func (Paiement) TableName() string { return "paiements" }
func (Paiement) Kind() ident.Kind { return ident.KindPaiements }
func (p *Paiement) IdentityAttrs() ident.Attrs {
	return ident.Attrs{Panier: p.PanierID}
}

// SameDay reports whether the paiement was created on the calendar day of now,
// in now's location.
func (p *Paiement) SameDay(now time.Time) bool {
	y1, m1, d1 := p.CreatedAt.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Delivery is one item line of the delivery list.
type Delivery struct {
	PanierID    string     `json:"panier"`
	ClientID    string     `json:"client"`
	ItemID      string     `json:"item"`
	Designation string     `json:"designation"`
	Quantite    int        `json:"quantite"`
	Delivered   bool       `json:"delivered"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
}
