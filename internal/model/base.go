package model

import (
	"time"

	"go-boutique-ws/pkg/ident"
)

// BaseModel handles the derived string ID and the audit timestamps.
// IDs are never generated by the database: see pkg/ident.
type BaseModel struct {
	ID        string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Identifiable is implemented by every record whose key is derived from its content.
type Identifiable interface {
	Kind() ident.Kind
	IdentityAttrs() ident.Attrs
	SetID(id string)
	CreatedTime() time.Time
}

func (b *BaseModel) SetID(id string) { b.ID = id }

func (b *BaseModel) CreatedTime() time.Time { return b.CreatedAt }

// All returns every persisted model, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Client{}, &Produit{}, &Stock{}, &Panier{}, &Paiement{}, &NaCashTransaction{}, &Profil{},
	}
}
