package service

import (
	"bytes"
	"testing"

	"go-boutique-ws/internal/model"
	"go-boutique-ws/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceipt_Render(t *testing.T) {
	f := newFixture(t)
	savon := f.produit(t, "Savon à lessive", "250", 10)
	p := f.panierWith(t, phoneA, savon, 2)
	_, _, err := f.paniers.ApplyPayment(f.ctx, p.ID, dec("200"), "cash")
	require.NoError(t, err)

	shop := &model.Profil{Nom: "Boutik Lakay", Email: "owner@boutik.ht", Adresse: "Pétion-Ville"}
	require.NoError(t, shop.SetPassword("secret1"))
	require.NoError(t, repository.NewProfilRepo(f.db).Put(f.ctx, shop))

	svc := NewReceiptService(f.db, "Boutique", f.clock.Now)
	var buf bytes.Buffer
	require.NoError(t, svc.Render(f.ctx, p.ID, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 300)

	err = svc.Render(f.ctx, "nope", &buf)
	assert.ErrorIs(t, err, ErrPanierNotFound)
}
