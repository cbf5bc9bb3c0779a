package repository

import (
	"context"
	"errors"
	"time"

	"go-boutique-ws/internal/model"
	"go-boutique-ws/pkg/ident"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// table is the generic add/put/get/all/delete surface shared by every collection.
type table[T any] struct {
	db *gorm.DB
}

func (t table[T]) conn(ctx context.Context) *gorm.DB {
	return t.db.WithContext(ctx)
}

// add inserts rec and reports ErrAlreadyExists when the key is taken.
func (t table[T]) add(ctx context.Context, rec *T) error {
	res := t.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

// put upserts rec by primary key.
func (t table[T]) put(ctx context.Context, rec *T) error {
	return t.conn(ctx).Save(rec).Error
}

func (t table[T]) get(ctx context.Context, id string) (*T, error) {
	var rec T
	if err := t.conn(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// getForUpdate loads rec with a row lock. Drivers without row locks ignore it.
func (t table[T]) getForUpdate(ctx context.Context, id string) (*T, error) {
	var rec T
	err := t.conn(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&rec, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (t table[T]) all(ctx context.Context, where ...interface{}) ([]T, error) {
	var recs []T
	q := t.conn(ctx).Order("created_at ASC")
	if len(where) > 0 {
		q = q.Where(where[0], where[1:]...)
	}
	err := q.Find(&recs).Error
	return recs, err
}

func (t table[T]) delete(ctx context.Context, id string) error {
	var rec T
	res := t.conn(ctx).Delete(&rec, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AssignID derives rec's key from its content and creation time.
func AssignID(rec model.Identifiable) error {
	now := rec.CreatedTime()
	if now.IsZero() {
		now = time.Now()
	}
	id, err := ident.Derive(rec.Kind(), rec.IdentityAttrs(), now)
	if err != nil {
		return err
	}
	rec.SetID(id)
	return nil
}
