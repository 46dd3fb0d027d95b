package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	App struct {
		Env         string
		Port        string
		FrontendURL string
	}
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}
	Identity struct {
		// Provider selects the identity gateway implementation:
		// "firebase" in production, "local" for development and tests.
		Provider        string
		ProjectID       string
		CredentialsFile string
		LocalSecret     string
	}
	Stripe struct {
		SecretKey      string
		PublishableKey string
		WebhookSecret  string
		PriceIDCoach   string
		PriceID1To4    string
		PriceID5To9    string
		PriceID10Plus  string
	}
}

// Load reads configuration from the environment into a Config struct.
// A missing .env file is fine; production sets env vars directly.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on system environment variables.")
	}

	cfg := &Config{}

	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8088")
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")

	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "password")
	cfg.DB.Name = getEnv("DB_NAME", "refmatch_db")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Identity.Provider = getEnv("IDENTITY_PROVIDER", "firebase")
	cfg.Identity.ProjectID = getEnv("FIREBASE_PROJECT_ID", "")
	cfg.Identity.CredentialsFile = getEnv("FIREBASE_CREDENTIALS_FILE", "")
	cfg.Identity.LocalSecret = getEnv("IDENTITY_LOCAL_SECRET", "local-dev-secret")

	cfg.Stripe.SecretKey = getEnv("STRIPE_SECRET_KEY", "")
	cfg.Stripe.PublishableKey = getEnv("STRIPE_PUBLISHABLE_KEY", "")
	cfg.Stripe.WebhookSecret = getEnv("STRIPE_WEBHOOK_SECRET", "")
	cfg.Stripe.PriceIDCoach = getEnv("STRIPE_PRICE_ID_COACH", "")
	cfg.Stripe.PriceID1To4 = getEnv("STRIPE_PRICE_ID_1_4", "")
	cfg.Stripe.PriceID5To9 = getEnv("STRIPE_PRICE_ID_5_9", "")
	cfg.Stripe.PriceID10Plus = getEnv("STRIPE_PRICE_ID_10_PLUS", "")

	if cfg.App.Env == "production" {
		if cfg.Stripe.SecretKey == "" || cfg.Stripe.WebhookSecret == "" {
			log.Println("WARNING: Stripe keys are not configured; payment endpoints will fail.")
		}
		if cfg.Identity.Provider == "local" {
			log.Println("WARNING: local identity provider enabled in production.")
		}
	}

	return cfg, nil
}

// ConnectDB opens the Postgres connection described by cfg.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
	)

	gormConfig := &gorm.Config{}
	if cfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
