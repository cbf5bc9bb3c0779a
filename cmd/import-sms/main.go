// Command import-sms loads a NaCash SMS backup into the transaction ledger.
//
//	import-sms -file sms-backup.xml
//	import-sms -drive   # uses SMS_DRIVE_FILE_ID / SMS_DRIVE_API_KEY
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"go-boutique-ws/internal/config"
	"go-boutique-ws/internal/eventbus"
	"go-boutique-ws/internal/service"
	"go-boutique-ws/internal/sms"
	"go-boutique-ws/pkg/database"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	file := flag.String("file", "", "path of the SMS backup XML")
	fromDrive := flag.Bool("drive", false, "download the backup from Google Drive")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on system env")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	cfg.SetupLogger()

	if *file == "" {
		*file = cfg.SMSBackupPath
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var msgs []sms.Message
	switch {
	case *fromDrive:
		msgs, err = sms.NewDriveSource(cfg.SMSDriveFileID, cfg.SMSDriveAPIKey).Fetch(ctx)
	case *file != "":
		var f *os.File
		f, err = os.Open(*file)
		if err == nil {
			defer f.Close()
			msgs, err = sms.ReadBackup(f)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read SMS backup")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	var events eventbus.Publisher = eventbus.Nop{}
	if cfg.RabbitMQURL != "" {
		rabbit, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable, import event not published")
		} else {
			defer rabbit.Close()
			events = rabbit
		}
	}

	ledger := service.NewLedgerService(db, sms.NewParser(cfg.Location()), events)
	report, err := ledger.Ingest(ctx, msgs)
	if err != nil {
		log.Fatal().Err(err).Msg("Import aborted")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Fatal().Err(err).Msg("Failed to print report")
	}
}
