package repository

import (
	"context"
	"errors"

	"go-boutique-ws/internal/model"

	"gorm.io/gorm"
)

type ProfilRepository interface {
	Get(ctx context.Context) (*model.Profil, error)
	FindByEmail(ctx context.Context, email string) (*model.Profil, error)
	Put(ctx context.Context, p *model.Profil) error
	UpdatePassword(ctx context.Context, hashedPassword string) error
	UpdateTokenVersion(ctx context.Context, version string) error
}

type profilRepo struct {
	table[model.Profil]
}

func NewProfilRepo(db *gorm.DB) ProfilRepository {
	return &profilRepo{table[model.Profil]{db}}
}

func (r *profilRepo) Get(ctx context.Context) (*model.Profil, error) {
	return r.get(ctx, model.ProfilID)
}

func (r *profilRepo) FindByEmail(ctx context.Context, email string) (*model.Profil, error) {
	var p model.Profil
	if err := r.conn(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profilRepo) Put(ctx context.Context, p *model.Profil) error {
	p.ID = model.ProfilID
	return r.put(ctx, p)
}

func (r *profilRepo) UpdatePassword(ctx context.Context, hashedPassword string) error {
	return r.conn(ctx).Model(&model.Profil{}).Where("id = ?", model.ProfilID).Update("password", hashedPassword).Error
}

func (r *profilRepo) UpdateTokenVersion(ctx context.Context, version string) error {
	return r.conn(ctx).Model(&model.Profil{}).Where("id = ?", model.ProfilID).Update("token_version", version).Error
}
