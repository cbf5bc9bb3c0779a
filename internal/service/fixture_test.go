package service

import (
	"context"
	"testing"
	"time"

	"go-boutique-ws/internal/eventbus"
	"go-boutique-ws/internal/model"
	"go-boutique-ws/internal/sms"
	"go-boutique-ws/internal/testdb"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var haiti = time.FixedZone("HT", -4*60*60)

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	ctx     context.Context
	db      *gorm.DB
	clock   *testClock
	events  *eventbus.Recorder
	catalog CatalogService
	paniers PanierService
	nacash  NaCashService
	ledger  LedgerService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.Open(t)
	clock := &testClock{t: time.Date(2025, time.March, 11, 10, 0, 0, 0, haiti)}
	events := &eventbus.Recorder{}
	return &fixture{
		ctx:     context.Background(),
		db:      db,
		clock:   clock,
		events:  events,
		catalog: NewCatalogService(db, events, clock.Now),
		paniers: NewPanierService(db, events, clock.Now),
		nacash:  NewNaCashService(db, events, clock.Now),
		ledger:  NewLedgerService(db, sms.NewParser(haiti), events),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (f *fixture) client(t *testing.T, phone string) *model.Client {
	t.Helper()
	c := &model.Client{Nom: "Joseph", Prenom: "Marie", Telephone: phone}
	require.NoError(t, f.catalog.CreateClient(f.ctx, c))
	return c
}

// produit creates a produit with one stock intake of qty units.
func (f *fixture) produit(t *testing.T, designation, pu string, qty int) *model.Produit {
	t.Helper()
	p := &model.Produit{Designation: designation, PU: dec(pu)}
	require.NoError(t, f.catalog.CreateProduit(f.ctx, p))
	if qty > 0 {
		require.NoError(t, f.catalog.CreateStock(f.ctx, &model.Stock{ProduitID: p.ID, Quantite: qty, Prix: dec(pu).Div(dec("2"))}))
	}
	return p
}

// panierWith opens a panier for phone holding qty units of produit.
func (f *fixture) panierWith(t *testing.T, phone string, produit *model.Produit, qty int) *model.Panier {
	t.Helper()
	f.client(t, phone)
	p, err := f.paniers.Open(f.ctx, phone)
	require.NoError(t, err)
	p, err = f.paniers.AddItem(f.ctx, p.ID, produit.ID, qty)
	require.NoError(t, err)
	return p
}

func requireDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, got.Equal(dec(want)), "want %s got %s", want, got.String())
}
