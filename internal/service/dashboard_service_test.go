package service

import (
	"testing"
	"time"

	"go-boutique-ws/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodsOf(t *testing.T) {
	// Tuesday
	now := time.Date(2025, time.March, 11, 10, 0, 0, 0, haiti)

	tests := []struct {
		name string
		at   time.Time
		want []string
	}{
		{"earlier today", now.Add(-time.Hour), []string{PeriodAll, PeriodToday, PeriodWeek, PeriodMonth}},
		{"monday of this week", time.Date(2025, time.March, 10, 0, 0, 0, 0, haiti), []string{PeriodAll, PeriodWeek, PeriodMonth}},
		{"sunday before", time.Date(2025, time.March, 9, 23, 59, 0, 0, haiti), []string{PeriodAll, PeriodMonth}},
		{"last month", time.Date(2025, time.February, 28, 12, 0, 0, 0, haiti), []string{PeriodAll, PeriodLastMonth}},
		{"last year", time.Date(2024, time.March, 11, 10, 0, 0, 0, haiti), []string{PeriodAll}},
		{"utc instant late on the previous local day", time.Date(2025, time.March, 11, 3, 59, 0, 0, time.UTC), []string{PeriodAll, PeriodWeek, PeriodMonth}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, periodsOf(tt.at, now))
		})
	}
}

func TestPeriodsOf_SundayClosesTheWeek(t *testing.T) {
	sunday := time.Date(2025, time.March, 16, 20, 0, 0, 0, haiti)
	monday := time.Date(2025, time.March, 10, 8, 0, 0, 0, haiti)
	assert.Contains(t, periodsOf(monday, sunday), PeriodWeek)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	dash := NewDashboardService(f.db, f.clock.Now)

	savon := f.produit(t, "Savon", "250", 10) // intake costs 10 * 125
	p := f.panierWith(t, phoneA, savon, 4)    // 1000
	_, _, err := f.paniers.ApplyPayment(f.ctx, p.ID, dec("300"), "cash")
	require.NoError(t, err)

	summary, err := dash.Summary(f.ctx)
	require.NoError(t, err)
	for _, period := range []string{PeriodToday, PeriodWeek, PeriodMonth, PeriodAll} {
		requireDec(t, "1000", summary[period].Vente)
		requireDec(t, "300", summary[period].Paye)
		requireDec(t, "700", summary[period].Reste)
	}
	requireDec(t, "0", summary[PeriodLastMonth].Vente)

	expenses, err := dash.Expenses(f.ctx)
	require.NoError(t, err)
	requireDec(t, "1250", expenses[2025]["mar"])
	requireDec(t, "0", expenses[2025]["jan"])

	sales, err := dash.Sales(f.ctx)
	require.NoError(t, err)
	requireDec(t, "1000", sales[2025]["mar"])

	profits, err := dash.Profits(f.ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 2025, profits.Annee)
	require.Len(t, profits.Profits, 12)
	assert.Equal(t, "mar", profits.Profits[2].Mois)
	requireDec(t, "-250", profits.Profits[2].Profit)
	requireDec(t, "-250", profits.TotalAnnuel)

	empty, err := dash.Profits(f.ctx, 2019)
	require.NoError(t, err)
	requireDec(t, "0", empty.TotalAnnuel)
}

func TestDashboard_ExpensesSkipIncompleteIntakes(t *testing.T) {
	f := newFixture(t)
	dash := NewDashboardService(f.db, f.clock.Now)
	savon := f.produit(t, "Savon", "250", 0)
	require.NoError(t, f.catalog.CreateStock(f.ctx, &model.Stock{ProduitID: savon.ID, Quantite: 3}))

	expenses, err := dash.Expenses(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, expenses)
}
