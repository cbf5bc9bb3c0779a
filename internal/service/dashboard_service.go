package service

import (
	"context"
	"time"

	"go-boutique-ws/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Months are the short month keys used by the dashboard, January first.
var Months = [12]string{"jan", "fev", "mar", "avr", "mai", "jun", "jul", "aou", "sep", "oct", "nov", "dec"}

// Period names of the summary.
const (
	PeriodToday     = "today"
	PeriodWeek      = "week"
	PeriodMonth     = "month"
	PeriodLastMonth = "lastmonth"
	PeriodAll       = "all"
)

type PeriodStats struct {
	Vente decimal.Decimal `json:"vente"`
	Paye  decimal.Decimal `json:"paye"`
	Reste decimal.Decimal `json:"reste"`
}

// MonthlyAmounts is year -> month key -> amount.
type MonthlyAmounts map[int]map[string]decimal.Decimal

type MonthProfit struct {
	Mois   string          `json:"mois"`
	Profit decimal.Decimal `json:"profit"`
}

type ProfitReport struct {
	Annee       int             `json:"annee"`
	Profits     []MonthProfit   `json:"profits"`
	TotalAnnuel decimal.Decimal `json:"totalAnnuel"`
}

type DashboardService interface {
	Summary(ctx context.Context) (map[string]*PeriodStats, error)
	Expenses(ctx context.Context) (MonthlyAmounts, error)
	Sales(ctx context.Context) (MonthlyAmounts, error)
	Profits(ctx context.Context, year int) (*ProfitReport, error)
}

type dashboardService struct {
	stores repository.Stores
	now    Clock
}

func NewDashboardService(db *gorm.DB, now Clock) DashboardService {
	if now == nil {
		now = time.Now
	}
	return &dashboardService{stores: repository.NewStores(db), now: now}
}

// periodsOf returns the periods a time falls in. Weeks run Monday to Sunday.
func periodsOf(t, now time.Time) []string {
	loc := now.Location()
	t = t.In(loc)
	y, m, d := now.Date()

	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	startWeek := today.AddDate(0, 0, -(weekday - 1))
	startMonth := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	startLastMonth := startMonth.AddDate(0, -1, 0)

	in := func(from, to time.Time) bool { return !t.Before(from) && t.Before(to) }

	out := []string{PeriodAll}
	if in(today, today.AddDate(0, 0, 1)) {
		out = append(out, PeriodToday)
	}
	if in(startWeek, startWeek.AddDate(0, 0, 7)) {
		out = append(out, PeriodWeek)
	}
	if in(startMonth, startMonth.AddDate(0, 1, 0)) {
		out = append(out, PeriodMonth)
	}
	if in(startLastMonth, startMonth) {
		out = append(out, PeriodLastMonth)
	}
	return out
}

// Summary sums basket totals and balances by basket creation date, and
// paiements by payment date.
func (s *dashboardService) Summary(ctx context.Context) (map[string]*PeriodStats, error) {
	paniers, err := s.stores.Paniers.All(ctx)
	if err != nil {
		return nil, err
	}
	paiements, err := s.stores.Paiements.All(ctx)
	if err != nil {
		return nil, err
	}

	out := map[string]*PeriodStats{}
	for _, name := range []string{PeriodToday, PeriodWeek, PeriodMonth, PeriodLastMonth, PeriodAll} {
		out[name] = &PeriodStats{Vente: decimal.Zero, Paye: decimal.Zero, Reste: decimal.Zero}
	}

	now := s.now()
	for _, p := range paniers {
		for _, name := range periodsOf(p.CreatedAt, now) {
			out[name].Vente = out[name].Vente.Add(p.Total)
			out[name].Reste = out[name].Reste.Add(p.Reste)
		}
	}
	for _, p := range paiements {
		for _, name := range periodsOf(p.CreatedAt, now) {
			out[name].Paye = out[name].Paye.Add(p.Montant)
		}
	}
	return out, nil
}

func (s *dashboardService) monthly(t time.Time, amount decimal.Decimal, into MonthlyAmounts) {
	t = t.In(s.now().Location())
	year := t.Year()
	if into[year] == nil {
		into[year] = map[string]decimal.Decimal{}
		for _, m := range Months {
			into[year][m] = decimal.Zero
		}
	}
	key := Months[t.Month()-1]
	into[year][key] = into[year][key].Add(amount)
}

// Expenses is what stock intakes cost, quantite * prix, per month.
func (s *dashboardService) Expenses(ctx context.Context) (MonthlyAmounts, error) {
	stocks, err := s.stores.Stocks.All(ctx)
	if err != nil {
		return nil, err
	}
	out := MonthlyAmounts{}
	for i := range stocks {
		if stocks[i].CreatedAt.IsZero() || stocks[i].Quantite == 0 || stocks[i].Prix.IsZero() {
			continue
		}
		s.monthly(stocks[i].CreatedAt, stocks[i].Cost(), out)
	}
	return out, nil
}

// Sales is the total of the paniers created each month.
func (s *dashboardService) Sales(ctx context.Context) (MonthlyAmounts, error) {
	paniers, err := s.stores.Paniers.All(ctx)
	if err != nil {
		return nil, err
	}
	out := MonthlyAmounts{}
	for _, p := range paniers {
		s.monthly(p.CreatedAt, p.Total, out)
	}
	return out, nil
}

// Profits is sales minus expenses for each month of year. Zero year means the current one.
func (s *dashboardService) Profits(ctx context.Context, year int) (*ProfitReport, error) {
	if year == 0 {
		year = s.now().Year()
	}
	sales, err := s.Sales(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.Expenses(ctx)
	if err != nil {
		return nil, err
	}

	report := &ProfitReport{Annee: year, Profits: make([]MonthProfit, 0, len(Months)), TotalAnnuel: decimal.Zero}
	for _, m := range Months {
		profit := sales[year][m].Sub(expenses[year][m])
		report.Profits = append(report.Profits, MonthProfit{Mois: m, Profit: profit})
		report.TotalAnnuel = report.TotalAnnuel.Add(profit)
	}
	return report, nil
}
