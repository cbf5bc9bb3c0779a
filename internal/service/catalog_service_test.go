package service

import (
	"testing"
	"time"

	"go-boutique-ws/internal/model"
	"go-boutique-ws/pkg/ident"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Clients(t *testing.T) {
	f := newFixture(t)

	c := f.client(t, phoneA)
	assert.Equal(t, phoneA, c.ID)

	err := f.catalog.CreateClient(f.ctx, &model.Client{Nom: "Autre", Prenom: "X", Telephone: phoneA})
	assert.ErrorIs(t, err, ErrDuplicate)

	err = f.catalog.CreateClient(f.ctx, &model.Client{Nom: "Bad", Prenom: "Phone", Telephone: "12ab"})
	assert.Equal(t, CategoryValidation, CategoryOf(err))

	updated, err := f.catalog.UpdateClient(f.ctx, phoneA, &model.Client{Nom: "Joseph", Prenom: "Anne", Telephone: phoneA, Adresse: "Delmas 33"})
	require.NoError(t, err)
	assert.Equal(t, "Anne", updated.Prenom)
	assert.Equal(t, phoneA, updated.ID)

	_, err = f.catalog.GetClient(f.ctx, "nope")
	assert.ErrorIs(t, err, ErrClientNotFound)

	all, err := f.catalog.ListClients(f.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCatalog_DeleteClientGuard(t *testing.T) {
	f := newFixture(t)
	savon := f.produit(t, "Savon", "250", 10)
	p := f.panierWith(t, phoneA, savon, 1)

	err := f.catalog.DeleteClient(f.ctx, phoneA)
	assert.ErrorIs(t, err, ErrClientHasPanier)

	_, err = f.paniers.RemoveItem(f.ctx, p.ID, p.Items[0].ID)
	require.NoError(t, err)
	require.NoError(t, f.catalog.DeleteClient(f.ctx, phoneA))

	_, err = f.paniers.Get(f.ctx, p.ID)
	assert.ErrorIs(t, err, ErrPanierNotFound, "empty paniers go with their client")
}

func TestCatalog_Produits(t *testing.T) {
	f := newFixture(t)

	p := &model.Produit{Designation: "Savon", PU: dec("250.00")}
	require.NoError(t, f.catalog.CreateProduit(f.ctx, p))
	assert.Equal(t, ident.Hash("Savon250"), p.ID)

	err := f.catalog.CreateProduit(f.ctx, &model.Produit{Designation: "Savon", PU: dec("250")})
	assert.ErrorIs(t, err, ErrDuplicate)

	err = f.catalog.CreateProduit(f.ctx, &model.Produit{Designation: "Gratis", PU: dec("0")})
	assert.Equal(t, CategoryValidation, CategoryOf(err))

	require.NoError(t, f.catalog.CreateStock(f.ctx, &model.Stock{ProduitID: p.ID, Quantite: 3, Prix: dec("100")}))
	err = f.catalog.DeleteProduit(f.ctx, p.ID)
	assert.ErrorIs(t, err, ErrProduitInStock)

	lone := f.produit(t, "Lone", "10", 0)
	require.NoError(t, f.catalog.DeleteProduit(f.ctx, lone.ID))
	_, err = f.catalog.GetProduit(f.ctx, lone.ID)
	assert.ErrorIs(t, err, ErrProduitNotFound)
}

func TestCatalog_Stock(t *testing.T) {
	f := newFixture(t)
	savon := f.produit(t, "Savon", "250", 0)

	err := f.catalog.CreateStock(f.ctx, &model.Stock{ProduitID: "nope", Quantite: 1, Prix: dec("1")})
	assert.ErrorIs(t, err, ErrProduitNotFound)
	err = f.catalog.CreateStock(f.ctx, &model.Stock{ProduitID: savon.ID, Quantite: 0, Prix: dec("1")})
	assert.Equal(t, CategoryValidation, CategoryOf(err))

	first := &model.Stock{ProduitID: savon.ID, Quantite: 4, Prix: dec("100")}
	require.NoError(t, f.catalog.CreateStock(f.ctx, first))

	// same produit, same minute: same key
	err = f.catalog.CreateStock(f.ctx, &model.Stock{ProduitID: savon.ID, Quantite: 1, Prix: dec("100")})
	assert.ErrorIs(t, err, ErrDuplicate)

	f.clock.Advance(time.Minute)
	second := &model.Stock{ProduitID: savon.ID, Quantite: 6, Prix: dec("90")}
	require.NoError(t, f.catalog.CreateStock(f.ctx, second))

	list, err := f.catalog.ListStocks(f.ctx, savon.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	p := f.panierWith(t, phoneA, savon, 8)

	_, err = f.catalog.UpdateStock(f.ctx, second.ID, &model.Stock{Quantite: 3, Prix: dec("90")})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	updated, err := f.catalog.UpdateStock(f.ctx, second.ID, &model.Stock{Quantite: 5, Prix: dec("95")})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantite)

	err = f.catalog.DeleteStock(f.ctx, first.ID)
	assert.ErrorIs(t, err, ErrStockCommitted)

	_, err = f.paniers.RemoveItem(f.ctx, p.ID, p.Items[0].ID)
	require.NoError(t, err)
	require.NoError(t, f.catalog.DeleteStock(f.ctx, first.ID))

	av, err := f.catalog.Availability(f.ctx, savon.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, av.Disponible)
}
