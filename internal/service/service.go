package service

import (
	"context"
	"time"

	"go-boutique-ws/internal/eventbus"
	"go-boutique-ws/internal/model"
	"go-boutique-ws/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Clock returns the current time in the shop's location.
type Clock func() time.Time

// base holds what every transactional service needs.
type base struct {
	db     *gorm.DB
	stores repository.Stores
	events eventbus.Publisher
	now    Clock
}

func newBase(db *gorm.DB, events eventbus.Publisher, now Clock) base {
	if events == nil {
		events = eventbus.Nop{}
	}
	if now == nil {
		now = time.Now
	}
	return base{db: db, stores: repository.NewStores(db), events: events, now: now}
}

// inTx runs fn in one database transaction. Any error rolls back every write.
func (b *base) inTx(ctx context.Context, fn func(st repository.Stores) error) error {
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(b.stores.WithTx(tx))
	})
}

func (b *base) publish(ctx context.Context, eventType string, payload interface{}) {
	ev := eventbus.New(eventType, payload)
	ev.At = b.now()
	b.events.Publish(ctx, ev)
}

// ledgerSum is the authoritative paye of a panier: the sum of its paiements.
func ledgerSum(ctx context.Context, st repository.Stores, panierID string) (decimal.Decimal, error) {
	pays, err := st.Paiements.ByPanier(ctx, panierID)
	if err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, p := range pays {
		sum = sum.Add(p.Montant)
	}
	return sum, nil
}

// rederive recomputes total from the items and paye/reste from the ledger,
// then persists the panier. It is the only writer of paye and reste.
func rederive(ctx context.Context, st repository.Stores, p *model.Panier) error {
	paye, err := ledgerSum(ctx, st, p.ID)
	if err != nil {
		return err
	}
	p.ApplyLedger(paye)
	return st.Paniers.Put(ctx, p)
}

// availability counts stock of a produit against what every panier holds,
// paid or not.
func availability(ctx context.Context, st repository.Stores, produitID string) (*model.Availability, error) {
	stocks, err := st.Stocks.ByProduit(ctx, produitID)
	if err != nil {
		return nil, err
	}
	paniers, err := st.Paniers.All(ctx)
	if err != nil {
		return nil, err
	}

	av := &model.Availability{ProduitID: produitID}
	for _, s := range stocks {
		av.Stock += s.Quantite
	}
	for i := range paniers {
		av.Engage += paniers[i].Quantite(produitID)
	}
	av.Disponible = av.Stock - av.Engage
	return av, nil
}
