package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPanier_ApplyLedger(t *testing.T) {
	tests := []struct {
		name      string
		items     []PanierItem
		paye      string
		wantTotal string
		wantReste string
		wantOpen  bool
	}{
		{"empty basket is closed", nil, "0", "0", "0", false},
		{"partially paid", []PanierItem{{Prix: d("250"), Quantite: 2}, {Prix: d("12.5"), Quantite: 4}}, "100", "550", "450", true},
		{"fully paid", []PanierItem{{Prix: d("100"), Quantite: 3}}, "300", "300", "0", false},
		{"overpaid clamps to zero", []PanierItem{{Prix: d("100"), Quantite: 1}}, "150", "100", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Panier{Items: tt.items}
			p.ApplyLedger(d(tt.paye))
			assert.True(t, p.Total.Equal(d(tt.wantTotal)), "total = %s", p.Total)
			assert.True(t, p.Reste.Equal(d(tt.wantReste)), "reste = %s", p.Reste)
			assert.Equal(t, tt.wantOpen, p.IsOpen())
		})
	}
}

func TestPanier_Items(t *testing.T) {
	p := &Panier{Items: []PanierItem{
		{ID: "a", ProduitID: "p1", Quantite: 2},
		{ID: "b", ProduitID: "p2", Quantite: 5},
	}}

	assert.Equal(t, "b", p.ItemFor("p2").ID)
	assert.Nil(t, p.ItemFor("p3"))
	assert.Equal(t, 5, p.Quantite("p2"))
	assert.Equal(t, 0, p.Quantite("p3"))

	p.Item("a").Quantite += 3
	assert.Equal(t, 5, p.Quantite("p1"))

	assert.True(t, p.RemoveItem("a"))
	assert.False(t, p.RemoveItem("a"))
	assert.Len(t, p.Items, 1)
}

func TestPaiement_SameDay(t *testing.T) {
	loc := time.FixedZone("HT", -5*60*60)
	now := time.Date(2025, time.March, 11, 9, 0, 0, 0, loc)

	today := &Paiement{BaseModel: BaseModel{CreatedAt: now.Add(-8 * time.Hour)}}
	yesterday := &Paiement{BaseModel: BaseModel{CreatedAt: now.Add(-10 * time.Hour)}}

	assert.True(t, today.SameDay(now))
	assert.False(t, yesterday.SameDay(now))
}

func TestStock_Cost(t *testing.T) {
	s := &Stock{Quantite: 12, Prix: d("37.5")}
	assert.True(t, s.Cost().Equal(d("450")))
}

func TestProduit_IdentityAttrs(t *testing.T) {
	p := &Produit{Designation: "Savon", PU: d("250.00")}
	assert.Equal(t, "250", p.IdentityAttrs().PU)

	p.PU = d("12.50")
	assert.Equal(t, "12.5", p.IdentityAttrs().PU)
}

func TestProfil_Password(t *testing.T) {
	p := &Profil{}
	assert.NoError(t, p.SetPassword("secret1"))
	assert.True(t, p.CheckPassword("secret1"))
	assert.False(t, p.CheckPassword("wrong"))
}
