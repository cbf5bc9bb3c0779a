package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables
// (and an optional .env file in the working directory).
type Config struct {
	AppName  string `mapstructure:"APP_NAME"`
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"APP_ENV"` // development | production
	LogLevel string `mapstructure:"LOG_LEVEL"`
	Timezone string `mapstructure:"TIMEZONE"`

	// Database
	DBDriver    string `mapstructure:"DB_DRIVER"` // postgres | sqlite
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	SQLitePath  string `mapstructure:"SQLITE_PATH"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
	ProfilEmail        string `mapstructure:"PROFIL_EMAIL"`
	ProfilPassword     string `mapstructure:"PROFIL_PASSWORD"`

	// NaCash SMS source
	SMSBackupPath  string `mapstructure:"SMS_BACKUP_PATH"`
	SMSDriveFileID string `mapstructure:"SMS_DRIVE_FILE_ID"`
	SMSDriveAPIKey string `mapstructure:"SMS_DRIVE_API_KEY"`

	// Events
	RabbitMQURL      string `mapstructure:"RABBITMQ_URL"`
	RabbitMQExchange string `mapstructure:"RABBITMQ_EXCHANGE"`

	// Receipts
	ReceiptTitle string `mapstructure:"RECEIPT_TITLE"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "Boutique Manager")
	v.SetDefault("PORT", "3000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TIMEZONE", "America/Port-au-Prince")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "boutique")
	v.SetDefault("SQLITE_PATH", "boutique.db")
	v.SetDefault("JWT_SECRET", "your-super-secret-key-change-in-production")
	v.SetDefault("JWT_EXPIRATION_HOURS", 24)
	v.SetDefault("PROFIL_EMAIL", "admin@example.com")
	v.SetDefault("PROFIL_PASSWORD", "admin123")
	v.SetDefault("SMS_BACKUP_PATH", "")
	v.SetDefault("SMS_DRIVE_FILE_ID", "")
	v.SetDefault("SMS_DRIVE_API_KEY", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "boutique.events")
	v.SetDefault("RECEIPT_TITLE", "Boutique")

	// Optional .env file for local development, missing is fine
	if err := v.ReadInConfig(); err == nil {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Using config file")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location resolves the configured timezone, falling back to the local zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Warn().Str("timezone", c.Timezone).Err(err).Msg("unknown timezone, using local")
		return time.Local
	}
	return loc
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
