package model

import (
	"golang.org/x/crypto/bcrypt"
)

// ProfilID is the key of the single shop profile row.
const ProfilID = "profil"

// Profil is the shop identity and the owner's credentials.
type Profil struct {
	BaseModel
	Nom          string `gorm:"type:varchar(255)" json:"nom"`
	Adresse      string `gorm:"type:varchar(255)" json:"adresse"`
	Telephone    string `gorm:"type:varchar(20)" json:"telephone"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	NIF          string `gorm:"type:varchar(50)" json:"nif"`
	DG           string `gorm:"type:varchar(255)" json:"dg"`
	Description  string `gorm:"type:text" json:"description"`
	Password     string `gorm:"type:varchar(255);not null" json:"-"`
	TokenVersion string `gorm:"type:varchar(255);default:''" json:"-"` // single session enforcement
}

func (Profil) TableName() string { return "profil" }

// SetPassword hashes and sets the owner's password
func (p *Profil) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Password = string(hashed)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (p *Profil) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(password)) == nil
}
