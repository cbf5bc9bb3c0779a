package service

import (
	"testing"
	"time"

	"go-boutique-ws/internal/eventbus"
	"go-boutique-ws/internal/model"
	"go-boutique-ws/internal/repository"
	"go-boutique-ws/pkg/ident"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) txn(t *testing.T, code, montant string) {
	t.Helper()
	added, err := f.ledger.Add(f.ctx, &model.NaCashTransaction{ID: code, De: "Jean", A: "2025-03-11 09:00", Montant: dec(montant)})
	require.NoError(t, err)
	require.True(t, added)
}

func TestNaCash_Redeem(t *testing.T) {
	f := newFixture(t)
	savon := f.produit(t, "Savon", "250", 10)
	p := f.panierWith(t, phoneA, savon, 2) // 500
	_, _, err := f.paniers.ApplyPayment(f.ctx, p.ID, dec("100"), "cash")
	require.NoError(t, err)
	f.clock.Advance(time.Minute)

	f.txn(t, "ABC123", "450")

	r, err := f.nacash.Redeem(f.ctx, p.ID, "ABC123")
	require.NoError(t, err)
	assert.True(t, r.Transaction.Used)
	assert.Equal(t, ident.NaCashPaiementID(p.ID, f.clock.Now()), r.Paiement.ID)
	assert.Equal(t, "ABC123", r.Paiement.Par)
	requireDec(t, "450", r.Paiement.Montant)
	requireDec(t, "550", r.Panier.Paye)
	requireDec(t, "0", r.Panier.Reste)

	rec, err := f.ledger.Get(f.ctx, "ABC123")
	require.NoError(t, err)
	assert.True(t, rec.Used)
	assert.Contains(t, f.events.Types(), eventbus.NaCashRedeemed)

	_, err = f.nacash.Redeem(f.ctx, p.ID, "ABC123")
	assert.ErrorIs(t, err, ErrCodeAlreadyUsed)
}

func TestNaCash_RedeemRejections(t *testing.T) {
	f := newFixture(t)
	savon := f.produit(t, "Savon", "250", 10)
	p := f.panierWith(t, phoneA, savon, 2) // 500
	f.txn(t, "SMALL", "499.99")
	f.txn(t, "BIG", "1000")

	_, err := f.nacash.Redeem(f.ctx, p.ID, "UNKNOWN")
	assert.ErrorIs(t, err, ErrInvalidCode)

	_, err = f.nacash.Redeem(f.ctx, "nope", "BIG")
	assert.ErrorIs(t, err, ErrPanierNotFound)

	_, err = f.nacash.Redeem(f.ctx, p.ID, "SMALL")
	assert.ErrorIs(t, err, ErrInsufficientAmount)

	f.client(t, phoneB)
	empty, err := f.paniers.Open(f.ctx, phoneB)
	require.NoError(t, err)
	_, err = f.nacash.Redeem(f.ctx, empty.ID, "BIG")
	assert.ErrorIs(t, err, ErrPanierAlreadyPaid)

	for _, code := range []string{"SMALL", "BIG"} {
		rec, err := f.ledger.Get(f.ctx, code)
		require.NoError(t, err)
		assert.False(t, rec.Used, "%s must stay unused after a rejection", code)
	}
}

func TestNaCash_RedeemRollsBack(t *testing.T) {
	f := newFixture(t)
	savon := f.produit(t, "Savon", "250", 10)
	p := f.panierWith(t, phoneA, savon, 2)
	f.txn(t, "ABC123", "500")

	// occupy the key the redemption paiement will need
	blocker := &model.Paiement{PanierID: "elsewhere", Montant: dec("1")}
	blocker.ID = ident.NaCashPaiementID(p.ID, f.clock.Now())
	require.NoError(t, repository.NewPaiementRepo(f.db).Create(f.ctx, blocker))

	_, err := f.nacash.Redeem(f.ctx, p.ID, "ABC123")
	require.Error(t, err)

	rec, err := f.ledger.Get(f.ctx, "ABC123")
	require.NoError(t, err)
	assert.False(t, rec.Used, "a failed redemption must not burn the code")

	got, err := f.paniers.Get(f.ctx, p.ID)
	require.NoError(t, err)
	requireDec(t, "0", got.Paye)
	requireDec(t, "500", got.Reste)
}
