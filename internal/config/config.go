package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultJWTSecret is only meant for local development
const DefaultJWTSecret = "jangja-school-secret-key"

// Config holds all configuration for the application
type Config struct {
	AppMode        string `env:"APP_MODE" envDefault:"dev"`
	Port           string `env:"PORT" envDefault:"3000"`
	AccountsFile   string `env:"ACCOUNTS_FILE"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	JWT       JWTConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
	Database  DatabaseConfig `envPrefix:"DB_"`
	Redis     RedisConfig    `envPrefix:"REDIS_"`
	MinIO     MinIOConfig    `envPrefix:"MINIO_"`
	Backup    BackupConfig   `envPrefix:"BACKUP_"`
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret string        `env:"JWT_SECRET" envDefault:"jangja-school-secret-key"`
	Issuer string        `env:"JWT_ISSUER" envDefault:"jangja-school"`
	TTL    time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

// StorageConfig holds data document and upload locations
type StorageConfig struct {
	DataDir         string `env:"DATA_DIR" envDefault:"data"`
	PublicDir       string `env:"PUBLIC_DIR" envDefault:"public"`
	UploadDir       string `env:"UPLOAD_DIR"`
	UploadURLPrefix string `env:"UPLOAD_URL_PREFIX" envDefault:"/images/uploads"`
	MaxFileSize     int64  `env:"UPLOAD_MAX_FILE_SIZE" envDefault:"5242880"`
	MaxFiles        int    `env:"UPLOAD_MAX_FILES" envDefault:"10"`
}

// GalleryFile returns the gallery document path
func (s StorageConfig) GalleryFile() string {
	return filepath.Join(s.DataDir, "gallery.json")
}

// NoticesFile returns the notices document path
func (s StorageConfig) NoticesFile() string {
	return filepath.Join(s.DataDir, "notices.json")
}

// BodyLimit returns the largest request body accepted by the server
func (s StorageConfig) BodyLimit() int {
	return int(s.MaxFileSize)*s.MaxFiles + 1<<20
}

// RateLimitConfig holds limiter thresholds (requests per minute per IP)
type RateLimitConfig struct {
	Max      int `env:"RATE_LIMIT_MAX" envDefault:"100"`
	LoginMax int `env:"LOGIN_RATE_LIMIT_MAX" envDefault:"5"`
}

// DatabaseConfig holds the optional MySQL account store configuration
type DatabaseConfig struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"3306"`
	User     string `env:"USER" envDefault:"root"`
	Password string `env:"PASS"`
	DBName   string `env:"NAME" envDefault:"jangja_school"`
}

// Enabled reports whether a database was configured
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// RedisConfig holds the optional token denylist configuration
type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// Enabled reports whether Redis was configured
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// MinIOConfig holds the optional object storage configuration for uploads
type MinIOConfig struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET"`
	PublicURL string `env:"PUBLIC_URL"`
}

// Enabled reports whether MinIO was configured
func (m MinIOConfig) Enabled() bool {
	return m.Endpoint != ""
}

// BackupConfig holds the scheduled data document backup configuration
type BackupConfig struct {
	Enabled  bool   `env:"ENABLED" envDefault:"false"`
	Schedule string `env:"SCHEDULE" envDefault:"0 3 * * *"`
	Dir      string `env:"DIR" envDefault:"backups"`
	Retain   int    `env:"RETAIN" envDefault:"14"`
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", cfg.AppMode)
	return cfg, nil
}

// Parse builds the configuration from the current environment
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Sanitize applies guardrails to values loaded from env
func (c *Config) Sanitize() {
	// trim spaces for Windows compatibility
	c.AppMode = strings.TrimSpace(c.AppMode)

	if c.Storage.UploadDir == "" {
		c.Storage.UploadDir = filepath.Join(c.Storage.PublicDir, "images", "uploads")
	}
	c.Storage.UploadURLPrefix = "/" + strings.Trim(c.Storage.UploadURLPrefix, "/")

	if c.Storage.MaxFileSize <= 0 {
		c.Storage.MaxFileSize = 5 << 20
	}
	if c.Storage.MaxFiles <= 0 {
		c.Storage.MaxFiles = 10
	}
	if c.JWT.TTL <= 0 {
		c.JWT.TTL = 24 * time.Hour
	}
	if c.RateLimit.Max <= 0 {
		c.RateLimit.Max = 100
	}
	if c.RateLimit.LoginMax <= 0 {
		c.RateLimit.LoginMax = 5
	}
	if c.Backup.Retain < 1 {
		c.Backup.Retain = 1
	}
}

// Validate rejects configurations that must not run
func (c *Config) Validate() error {
	if c.AppMode != "dev" && c.AppMode != "prod" {
		return fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", c.AppMode)
	}
	if c.IsProd() && (c.JWT.Secret == "" || c.JWT.Secret == DefaultJWTSecret) {
		return errors.New("JWT_SECRET must be set to a non-default value in prod mode")
	}
	if c.MinIO.Enabled() && (c.MinIO.AccessKey == "" || c.MinIO.SecretKey == "" || c.MinIO.Bucket == "") {
		return errors.New("minio configuration incomplete")
	}
	return nil
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://jangjachristian.edu"
	}
	return c.AllowedOrigins
}
