package repository

import (
	"context"
	"testing"
	"time"

	"go-boutique-ws/internal/model"
	"go-boutique-ws/internal/testdb"
	"go-boutique-ws/pkg/ident"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRepo_AddDerivesPhoneKey(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepo(testdb.Open(t))

	c := &model.Client{Nom: "Pierre", Prenom: "Jean", Telephone: "50912345678"}
	require.NoError(t, repo.Add(ctx, c))
	assert.Equal(t, "50912345678", c.ID)

	dup := &model.Client{Nom: "Autre", Prenom: "X", Telephone: "50912345678"}
	assert.ErrorIs(t, repo.Add(ctx, dup), ErrAlreadyExists)

	got, err := repo.Get(ctx, "50912345678")
	require.NoError(t, err)
	assert.Equal(t, "Pierre", got.Nom)
}

func TestProduitRepo_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewProduitRepo(testdb.Open(t))

	p := &model.Produit{Designation: "Savon", PU: decimal.NewFromInt(250)}
	require.NoError(t, repo.Add(ctx, p))
	assert.Equal(t, ident.Hash("Savon250"), p.ID)

	p.Designation = "Savon bleu"
	require.NoError(t, repo.Put(ctx, p))

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Savon bleu", got.Designation)
	assert.True(t, got.PU.Equal(decimal.NewFromInt(250)))

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), ErrNotFound)
}

func TestStockRepo_SameMinuteCollides(t *testing.T) {
	ctx := context.Background()
	repo := NewStockRepo(testdb.Open(t))
	at := time.Date(2025, time.March, 11, 14, 32, 0, 0, time.Local)

	first := &model.Stock{ProduitID: "p1", Quantite: 10, BaseModel: model.BaseModel{CreatedAt: at}}
	second := &model.Stock{ProduitID: "p1", Quantite: 5, BaseModel: model.BaseModel{CreatedAt: at.Add(30 * time.Second)}}
	require.NoError(t, repo.Add(ctx, first))
	assert.ErrorIs(t, repo.Add(ctx, second), ErrAlreadyExists)

	third := &model.Stock{ProduitID: "p1", Quantite: 5, BaseModel: model.BaseModel{CreatedAt: at.Add(time.Minute)}}
	require.NoError(t, repo.Add(ctx, third))

	rows, err := repo.ByProduit(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestPanierRepo_ItemsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewPanierRepo(testdb.Open(t))

	p := &model.Panier{ClientID: "50912345678"}
	require.NoError(t, repo.Add(ctx, p))
	assert.NotEmpty(t, p.ID)

	p.Items = append(p.Items, model.PanierItem{ID: "i1", ProduitID: "p1", Designation: "Savon", Prix: decimal.NewFromInt(250), Quantite: 2})
	p.ApplyLedger(decimal.Zero)
	require.NoError(t, repo.Put(ctx, p))

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Savon", got.Items[0].Designation)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(500)))

	byClient, err := repo.ByClient(ctx, "50912345678")
	require.NoError(t, err)
	assert.Len(t, byClient, 1)
}

func TestNaCashRepo_InsertOnceClaimOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewNaCashRepo(testdb.Open(t))

	rec := &model.NaCashTransaction{ID: "ABC123", De: "Jean Pierre", Montant: decimal.NewFromInt(500)}
	added, err := repo.Insert(ctx, rec)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.Insert(ctx, &model.NaCashTransaction{ID: "ABC123", Montant: decimal.NewFromInt(1)})
	require.NoError(t, err)
	assert.False(t, added)

	claimed, err := repo.Claim(ctx, "ABC123")
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.Claim(ctx, "ABC123")
	require.NoError(t, err)
	assert.False(t, claimed)

	ok, err := repo.MarkUsed(ctx, "NOPE")
	require.NoError(t, err)
	assert.False(t, ok)

	unused, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, unused)

	got, err := repo.Get(ctx, "ABC123")
	require.NoError(t, err)
	assert.True(t, got.Used)
	assert.True(t, got.Montant.Equal(decimal.NewFromInt(500)))
}
