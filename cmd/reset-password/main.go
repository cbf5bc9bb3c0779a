package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go-boutique-ws/internal/config"
	"go-boutique-ws/internal/repository"
	"go-boutique-ws/internal/service"
	"go-boutique-ws/pkg/database"
	"go-boutique-ws/pkg/jwt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	password := flag.String("password", os.Getenv("NEW_PASSWORD"), "new owner password (default $NEW_PASSWORD)")
	flag.Parse()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on system env")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	cfg.SetupLogger()

	if *password == "" {
		log.Fatal().Msg("Provide the new password with -password or NEW_PASSWORD")
	}

	// 2. Setup Database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	signer := jwt.NewSigner(cfg.JWTSecret, time.Duration(cfg.JWTExpirationHours)*time.Hour)
	authService := service.NewAuthService(repository.NewProfilRepo(db), signer)

	// 3. Reset, every open session ends with it
	if err := authService.ResetPassword(context.Background(), *password); err != nil {
		log.Fatal().Err(err).Msg("Failed to reset password")
	}

	log.Info().Msg("Owner password has been reset")
}
