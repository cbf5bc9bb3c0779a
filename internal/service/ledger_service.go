package service

import (
	"context"
	"errors"

	"go-boutique-ws/internal/eventbus"
	"go-boutique-ws/internal/model"
	"go-boutique-ws/internal/repository"
	"go-boutique-ws/internal/sms"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ImportReport summarises one SMS ingestion run.
type ImportReport struct {
	Total      int                    `json:"total"`
	Added      int                    `json:"added"`
	Duplicates int                    `json:"duplicates"`
	Skipped    map[sms.SkipReason]int `json:"skipped"`
}

type LedgerService interface {
	Add(ctx context.Context, rec *model.NaCashTransaction) (bool, error)
	Get(ctx context.Context, code string) (*model.NaCashTransaction, error)
	MarkUsed(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, onlyUnused bool) ([]model.NaCashTransaction, error)
	Ingest(ctx context.Context, msgs []sms.Message) (*ImportReport, error)
}

type ledgerService struct {
	repo   repository.NaCashRepository
	parser *sms.Parser
	events eventbus.Publisher
}

func NewLedgerService(db *gorm.DB, parser *sms.Parser, events eventbus.Publisher) LedgerService {
	if events == nil {
		events = eventbus.Nop{}
	}
	return &ledgerService{repo: repository.NewNaCashRepo(db), parser: parser, events: events}
}

// Add inserts rec unless its code is already known. A duplicate is reported
// as added == false, not as an error. Used is always reset to false.
func (s *ledgerService) Add(ctx context.Context, rec *model.NaCashTransaction) (bool, error) {
	rec.Used = false
	return s.repo.Insert(ctx, rec)
}

// Get returns nil, nil when the code is unknown.
func (s *ledgerService) Get(ctx context.Context, code string) (*model.NaCashTransaction, error) {
	rec, err := s.repo.Get(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return rec, err
}

func (s *ledgerService) MarkUsed(ctx context.Context, code string) (bool, error) {
	return s.repo.MarkUsed(ctx, code)
}

func (s *ledgerService) List(ctx context.Context, onlyUnused bool) ([]model.NaCashTransaction, error) {
	return s.repo.List(ctx, onlyUnused)
}

// Ingest parses and adds messages one after the other. Unparseable messages
// are counted and skipped; a store failure stops the run.
func (s *ledgerService) Ingest(ctx context.Context, msgs []sms.Message) (*ImportReport, error) {
	report := &ImportReport{Total: len(msgs), Skipped: map[sms.SkipReason]int{}}

	for _, m := range msgs {
		res := s.parser.Parse(m.Body, m.Date)
		if res.Record == nil {
			report.Skipped[res.Skipped]++
			continue
		}
		added, err := s.Add(ctx, res.Record)
		if err != nil {
			log.Error().Err(err).Str("code", res.Record.ID).Msg("ledger ingest aborted")
			return report, err
		}
		if added {
			report.Added++
		} else {
			report.Duplicates++
		}
	}

	log.Info().
		Int("total", report.Total).
		Int("added", report.Added).
		Int("duplicates", report.Duplicates).
		Msg("sms ingest finished")
	if report.Added > 0 {
		s.events.Publish(ctx, eventbus.New(eventbus.NaCashImported, report))
	}
	return report, nil
}
