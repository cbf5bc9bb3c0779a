package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-boutique-ws/internal/config"
	"go-boutique-ws/internal/eventbus"
	"go-boutique-ws/internal/handler"
	"go-boutique-ws/internal/middleware"
	"go-boutique-ws/internal/repository"
	"go-boutique-ws/internal/service"
	"go-boutique-ws/internal/sms"
	"go-boutique-ws/internal/ws"
	"go-boutique-ws/pkg/database"
	"go-boutique-ws/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on system env")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	cfg.SetupLogger()

	loc := cfg.Location()
	now := func() time.Time { return time.Now().In(loc) }

	// 2. Setup Database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// 3. Setup WebSocket Hub and event fan-out
	wsHub := ws.NewHub()
	go wsHub.Run()

	events := eventbus.Multi{wsHub}
	if cfg.RabbitMQURL != "" {
		rabbit, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			log.Error().Err(err).Msg("RabbitMQ unavailable, events stay local")
		} else {
			defer rabbit.Close()
			events = append(events, rabbit)
		}
	}

	// 4. Dependency Injection (Wiring Layers)
	signer := jwt.NewSigner(cfg.JWTSecret, time.Duration(cfg.JWTExpirationHours)*time.Hour)
	authService := service.NewAuthService(repository.NewProfilRepo(db), signer)
	catalogService := service.NewCatalogService(db, events, now)
	panierService := service.NewPanierService(db, events, now)
	nacashService := service.NewNaCashService(db, events, now)
	ledgerService := service.NewLedgerService(db, sms.NewParser(loc), events)
	importService := service.NewImportService(db, events, now)
	dashService := service.NewDashboardService(db, now)
	receiptService := service.NewReceiptService(db, cfg.ReceiptTitle, now)

	// 5. Seed the owner profile
	if err := authService.EnsureProfil(context.Background(), cfg.ProfilEmail, cfg.ProfilPassword); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed profil")
	}

	drive := sms.NewDriveSource(cfg.SMSDriveFileID, cfg.SMSDriveAPIKey)
	ingestAtBoot(cfg, drive, ledgerService)

	handlers := &handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Panier:    handler.NewPanierHandler(panierService, nacashService, receiptService),
		NaCash:    handler.NewNaCashHandler(ledgerService, drive),
		Import:    handler.NewImportHandler(importService),
		Dashboard: handler.NewDashboardHandler(dashService),
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:   cfg.AppName,
		BodyLimit: 16 * 1024 * 1024, // SMS backups
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")
	handlers.Register(api, middleware.RequireAuth(authService))

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		if !wsHub.Join(c) {
			return
		}
		defer wsHub.Leave(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic().Err(err).Msg("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	wsHub.Stop()

	log.Info().Msg("Server exited")
}

// ingestAtBoot loads the configured SMS backup into the ledger. Failures are
// logged; the server starts regardless.
func ingestAtBoot(cfg *config.Config, drive *sms.DriveSource, ledger service.LedgerService) {
	var (
		msgs []sms.Message
		err  error
	)
	switch {
	case cfg.SMSBackupPath != "":
		f, openErr := os.Open(cfg.SMSBackupPath)
		if openErr != nil {
			log.Warn().Err(openErr).Str("path", cfg.SMSBackupPath).Msg("SMS backup not readable")
			return
		}
		defer f.Close()
		msgs, err = sms.ReadBackup(f)
	case drive.Ready():
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		msgs, err = drive.Fetch(ctx)
	default:
		return
	}
	if err != nil {
		log.Warn().Err(err).Msg("SMS backup not loaded")
		return
	}

	if _, err := ledger.Ingest(context.Background(), msgs); err != nil {
		log.Error().Err(err).Msg("SMS ingest failed")
	}
}
