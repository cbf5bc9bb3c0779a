package service

import (
	"testing"

	"go-boutique-ws/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport(t *testing.T) {
	f := newFixture(t)
	svc := NewImportService(f.db, f.events, f.clock.Now)

	n, err := svc.Import(f.ctx, "client", []byte(`[
		{"nom":"Joseph","prenom":"Marie","telephone":"50912345678"},
		{"nom":"Pierre","prenom":"Jean","telephone":"50912345678"}
	]`))
	require.NoError(t, err)
	assert.Equal(t, 2, n, "imported rows get random keys, so equal phones do not collide")

	clients, err := f.catalog.ListClients(f.ctx)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.NotEqual(t, clients[0].ID, clients[1].ID)

	n, err = svc.Import(f.ctx, "natcash", []byte(`[{"id":"ABC123","de":"Jean","montant":500}]`))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	rec, err := f.ledger.Get(f.ctx, "ABC123")
	require.NoError(t, err)
	require.NotNil(t, rec)

	n, err = svc.Import(f.ctx, "panier", []byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestImport_Rejections(t *testing.T) {
	f := newFixture(t)
	svc := NewImportService(f.db, f.events, f.clock.Now)

	_, err := svc.Import(f.ctx, "transaction", []byte(`[]`))
	assert.Equal(t, CategoryConfig, CategoryOf(err))

	_, err = svc.Import(f.ctx, "produit", []byte(`{"not":"an array"}`))
	assert.ErrorIs(t, err, ErrInvalidPayload)

	var count int64
	require.NoError(t, f.db.Model(&model.Produit{}).Count(&count).Error)
	assert.Zero(t, count)
}
