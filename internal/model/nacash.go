package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// NaCashTransaction is a mobile-money payment notification parsed from an SMS.
// ID is the transaction code. A code is inserted once and used once.
type NaCashTransaction struct {
	ID        string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	De        string          `gorm:"type:varchar(255)" json:"de"`
	Numero    *string         `gorm:"type:varchar(20)" json:"numero"`
	A         string          `gorm:"type:varchar(20)" json:"a"` // YYYY-MM-DD HH:MM
	Montant   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"montant"`
	Used      bool            `gorm:"not null;default:false" json:"used"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (NaCashTransaction) TableName() string { return "natcash" }
