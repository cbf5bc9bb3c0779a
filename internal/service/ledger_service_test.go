package service

import (
	"testing"

	"go-boutique-ws/internal/model"
	"go-boutique-ws/internal/sms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_AddOnce(t *testing.T) {
	f := newFixture(t)

	rec := &model.NaCashTransaction{ID: "ABC123", De: "Jean", Montant: dec("500"), Used: true}
	added, err := f.ledger.Add(f.ctx, rec)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = f.ledger.Add(f.ctx, &model.NaCashTransaction{ID: "ABC123", De: "Other", Montant: dec("1")})
	require.NoError(t, err)
	assert.False(t, added)

	got, err := f.ledger.Get(f.ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, "Jean", got.De)
	assert.False(t, got.Used, "new records always start unused")

	missing, err := f.ledger.Get(f.ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLedger_MarkUsedAndList(t *testing.T) {
	f := newFixture(t)
	f.txn(t, "A1", "10")
	f.txn(t, "B2", "20")

	ok, err := f.ledger.MarkUsed(f.ctx, "A1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = f.ledger.MarkUsed(f.ctx, "NOPE")
	require.NoError(t, err)
	assert.False(t, ok)

	unused, err := f.ledger.List(f.ctx, true)
	require.NoError(t, err)
	require.Len(t, unused, 1)
	assert.Equal(t, "B2", unused[0].ID)

	all, err := f.ledger.List(f.ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLedger_Ingest(t *testing.T) {
	f := newFixture(t)
	msgs := []sms.Message{
		{Body: "Ou resevwa 500.00 HTG de Jean Pierre 50912345678 a 14:32 11/03/2025 TransCode: ABC123", Date: 1741703520123},
		{Body: "Ou resevwa 500.00 HTG de Jean Pierre 50912345678 a 14:32 11/03/2025 TransCode: ABC123", Date: 1741703520999},
		{Body: "Vous avez encaissé 750 HTG a 08:10 05/04/2025 de Paul, 50938765432. TransCode: XY9", Date: 1743840600000},
		{Body: "Bonjou", Date: 1},
		{Body: "", Date: 2},
	}

	report, err := f.ledger.Ingest(f.ctx, msgs)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 2, report.Added)
	assert.Equal(t, 1, report.Duplicates)
	assert.Equal(t, 1, report.Skipped[sms.SkipNoPattern])
	assert.Equal(t, 1, report.Skipped[sms.SkipEmptyBody])

	rec, err := f.ledger.Get(f.ctx, "ABC123")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Jean Pierre", rec.De)
	require.NotNil(t, rec.Numero)
	assert.Equal(t, "50912345678", *rec.Numero)
	assert.Equal(t, "2025-03-11 14:32", rec.A)
	requireDec(t, "500", rec.Montant)

	again, err := f.ledger.Ingest(f.ctx, msgs)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Added)
	assert.Equal(t, 3, again.Duplicates)
}
