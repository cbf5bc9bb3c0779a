package repository

import (
	"context"
	"errors"

	"go-boutique-ws/internal/model"

	"gorm.io/gorm"
)

// NaCashRepository is the natcash ledger keyed by transaction code.
type NaCashRepository interface {
	WithTx(tx *gorm.DB) NaCashRepository
	// Insert adds rec unless its code exists; added is false for a duplicate.
	Insert(ctx context.Context, rec *model.NaCashTransaction) (added bool, err error)
	Get(ctx context.Context, code string) (*model.NaCashTransaction, error)
	GetForUpdate(ctx context.Context, code string) (*model.NaCashTransaction, error)
	List(ctx context.Context, onlyUnused bool) ([]model.NaCashTransaction, error)
	// MarkUsed sets used=true; false when the code does not exist.
	MarkUsed(ctx context.Context, code string) (bool, error)
	// Claim flips used false->true; false when the code is absent or already used.
	Claim(ctx context.Context, code string) (bool, error)
}

type nacashRepo struct {
	table[model.NaCashTransaction]
}

func NewNaCashRepo(db *gorm.DB) NaCashRepository {
	return &nacashRepo{table[model.NaCashTransaction]{db}}
}

func (r *nacashRepo) WithTx(tx *gorm.DB) NaCashRepository { return NewNaCashRepo(tx) }

func (r *nacashRepo) Insert(ctx context.Context, rec *model.NaCashTransaction) (bool, error) {
	err := r.add(ctx, rec)
	if errors.Is(err, ErrAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *nacashRepo) Get(ctx context.Context, code string) (*model.NaCashTransaction, error) {
	return r.get(ctx, code)
}

func (r *nacashRepo) GetForUpdate(ctx context.Context, code string) (*model.NaCashTransaction, error) {
	return r.getForUpdate(ctx, code)
}

func (r *nacashRepo) List(ctx context.Context, onlyUnused bool) ([]model.NaCashTransaction, error) {
	if onlyUnused {
		return r.all(ctx, "used = ?", false)
	}
	return r.all(ctx)
}

func (r *nacashRepo) MarkUsed(ctx context.Context, code string) (bool, error) {
	res := r.conn(ctx).Model(&model.NaCashTransaction{}).Where("id = ?", code).Update("used", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *nacashRepo) Claim(ctx context.Context, code string) (bool, error) {
	res := r.conn(ctx).Model(&model.NaCashTransaction{}).
		Where("id = ? AND used = ?", code, false).
		Update("used", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
