package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-boutique-ws/internal/eventbus"
	"go-boutique-ws/internal/model"
	"go-boutique-ws/pkg/ident"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ImportService interface {
	Import(ctx context.Context, collection string, raw []byte) (int, error)
}

type importService struct {
	base
}

func NewImportService(db *gorm.DB, events eventbus.Publisher, now Clock) ImportService {
	return &importService{base: newBase(db, events, now)}
}

// Import bulk-loads a JSON array into a collection. Every row gets a fresh
// random key, so imported rows never collide with derived ones. All rows are
// written in one transaction.
func (s *importService) Import(ctx context.Context, collection string, raw []byte) (int, error) {
	kind, err := ident.ParseKind(collection)
	if err != nil {
		return 0, err
	}

	now := s.now()
	var n int
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch kind {
		case ident.KindClient:
			n, err = importRows(tx, raw, func(r *model.Client) { stamp(&r.BaseModel, now) })
		case ident.KindProduit:
			n, err = importRows(tx, raw, func(r *model.Produit) { stamp(&r.BaseModel, now) })
		case ident.KindStock:
			n, err = importRows(tx, raw, func(r *model.Stock) { stamp(&r.BaseModel, now) })
		case ident.KindPanier:
			n, err = importRows(tx, raw, func(r *model.Panier) {
				stamp(&r.BaseModel, now)
				if r.Items == nil {
					r.Items = []model.PanierItem{}
				}
			})
		case ident.KindPaiements:
			n, err = importRows(tx, raw, func(r *model.Paiement) { stamp(&r.BaseModel, now) })
		case ident.KindNaCash:
			n, err = importRows(tx, raw, func(r *model.NaCashTransaction) {
				if r.ID == "" {
					r.ID = uuid.NewString()
				}
				if r.CreatedAt.IsZero() {
					r.CreatedAt = now
				}
			})
		default:
			err = fmt.Errorf("%w: %q", ident.ErrUnknownKind, collection)
		}
		return err
	})
	if err != nil {
		return 0, err
	}

	log.Info().Str("collection", collection).Int("rows", n).Msg("bulk import finished")
	if n > 0 {
		s.publish(ctx, eventbus.CatalogChanged, map[string]interface{}{"kind": collection, "action": "imported", "rows": n})
	}
	return n, nil
}

func stamp(b *model.BaseModel, now time.Time) {
	b.ID = uuid.NewString()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
}

func importRows[T any](tx *gorm.DB, raw []byte, prep func(*T)) (int, error) {
	var rows []T
	if err := json.Unmarshal(raw, &rows); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	for i := range rows {
		prep(&rows[i])
	}
	if err := tx.Create(&rows).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}
