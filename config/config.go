package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	AppURL      string
	// Remote relational store (Turso/libsql). When set, takes precedence
	// over the local sqlite file.
	TursoDatabaseURL string
	TursoAuthToken   string
	// Document store (MongoDB). Empty URI means the in-memory store.
	MongoURI      string
	MongoDatabase string
	// Blob store (DigitalOcean Spaces, S3-compatible)
	SpaceRegion    string
	SpaceName      string
	SpaceAccessKey string
	SpaceSecretKey string
	SpaceEndpoint  string
	UploadDir      string
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // When true, emails are logged to console instead of sent
	// Two-factor auth
	TOTPIssuer string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	spaceRegion := getEnv("DO_SPACE_REGION", "nyc3")

	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		DBPath:           getEnv("DB_PATH", "db/app.db"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		AppURL:           getEnv("APP_URL", "http://localhost:8080"),
		TursoDatabaseURL: getEnv("TURSO_DATABASE_URL", ""),
		TursoAuthToken:   getEnv("TURSO_AUTH_TOKEN", ""),
		MongoURI:         getEnv("MONGO_URI", ""),
		MongoDatabase:    getEnv("MONGO_DATABASE", "law_firm"),
		SpaceRegion:      spaceRegion,
		SpaceName:        getEnv("DO_SPACE_NAME", "law-firm-documenting-storage"),
		SpaceAccessKey:   getEnv("DO_SPACE_ACCESS_KEY", ""),
		SpaceSecretKey:   getEnv("DO_SPACE_SECRET_KEY", ""),
		SpaceEndpoint:    getEnv("DO_SPACE_ENDPOINT", fmt.Sprintf("https://%s.digitaloceanspaces.com", spaceRegion)),
		UploadDir:        getEnv("UPLOAD_DIR", "static/uploads"),
		ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
		EmailFrom:        getEnv("EMAIL_FROM", "noreply@securelawfirm.org"),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "SecureLawFirm"),
		EmailTestMode:    getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		TOTPIssuer:       getEnv("TOTP_ISSUER", "SecureLawFirm"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}
