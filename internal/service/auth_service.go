package service

import (
	"context"
	"errors"
	"strings"

	"go-boutique-ws/internal/model"
	"go-boutique-ws/internal/repository"
	"go-boutique-ws/pkg/jwt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const minPasswordLength = 6

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (*model.Profil, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	ResetPassword(ctx context.Context, newPassword string) error
	GetProfil(ctx context.Context) (*model.Profil, error)
	UpdateProfil(ctx context.Context, req *model.Profil) (*model.Profil, error)
	EnsureProfil(ctx context.Context, email, password string) error
}

type LoginResponse struct {
	Token  string        `json:"token"`
	Profil *model.Profil `json:"profil"`
}

type authService struct {
	profilRepo repository.ProfilRepository
	signer     *jwt.Signer
}

func NewAuthService(profilRepo repository.ProfilRepository, signer *jwt.Signer) AuthService {
	return &authService{
		profilRepo: profilRepo,
		signer:     signer,
	}
}

// Login checks the owner's credentials and starts a new session. Any older
// token stops validating.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	p, err := s.profilRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !p.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// Single session: a new version per login
	version := uuid.New().String()
	if err := s.profilRepo.UpdateTokenVersion(ctx, version); err != nil {
		return nil, err
	}
	p.TokenVersion = version

	token, err := s.signer.GenerateToken(p.ID, p.Email, p.Nom, version)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	log.Info().Str("email", p.Email).Msg("profil logged in")
	return &LoginResponse{Token: token, Profil: p}, nil
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*model.Profil, error) {
	claims, err := s.signer.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	p, err := s.profilRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if p.TokenVersion != claims.TokenVersion {
		return nil, ErrSessionExpired
	}
	return p, nil
}

// ChangePassword replaces the password after checking the current one and
// ends every open session.
func (s *authService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	p, err := s.profilRepo.Get(ctx)
	if err != nil {
		return err
	}
	if !p.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}
	if err := s.ResetPassword(ctx, newPassword); err != nil {
		return err
	}
	return s.profilRepo.UpdateTokenVersion(ctx, uuid.New().String())
}

// ResetPassword sets the password without checking the old one.
func (s *authService) ResetPassword(ctx context.Context, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}
	p := &model.Profil{}
	if err := p.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}
	return s.profilRepo.UpdatePassword(ctx, p.Password)
}

func (s *authService) GetProfil(ctx context.Context) (*model.Profil, error) {
	return s.profilRepo.Get(ctx)
}

// UpdateProfil edits the shop identity. Password and session are untouched.
func (s *authService) UpdateProfil(ctx context.Context, req *model.Profil) (*model.Profil, error) {
	p, err := s.profilRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	p.Nom = req.Nom
	p.Adresse = req.Adresse
	p.Telephone = req.Telephone
	p.Email = strings.TrimSpace(req.Email)
	p.NIF = req.NIF
	p.DG = req.DG
	p.Description = req.Description
	if err := validate(p); err != nil {
		return nil, err
	}
	if err := s.profilRepo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// EnsureProfil creates the profile row on first start.
func (s *authService) EnsureProfil(ctx context.Context, email, password string) error {
	_, err := s.profilRepo.Get(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	p := &model.Profil{Nom: "Boutique", Email: email}
	if err := p.SetPassword(password); err != nil {
		return err
	}
	if err := s.profilRepo.Put(ctx, p); err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("profil created")
	return nil
}
