package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Auth   AuthConfig
	Upload UploadConfig
	S3     S3Config
	CORS   CORSConfig
	Log    LogConfig
	Events EventsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// AuthConfig holds the shared access password and session token settings.
// PasswordHash is a bcrypt hash of the staff password; Password is a
// plaintext fallback for development setups.
type AuthConfig struct {
	Password      string        `mapstructure:"password"`
	PasswordHash  string        `mapstructure:"password_hash"`
	JWTSecret     string        `mapstructure:"jwt_secret"`
	SessionExpiry time.Duration `mapstructure:"session_expiry"`
	Issuer        string        `mapstructure:"issuer"`
}

// UploadConfig holds sales export upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// S3Config holds settings for optional archival of original export files.
// Archival is disabled when Bucket is empty.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EventsConfig holds the seed city list, as "key=SOURCE LABEL" pairs.
// Used only by first-run seeding; the events table is authoritative after.
type EventsConfig struct {
	Cities map[string]string
}

// Load reads configuration from environment variables with the BOXOFFICE_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BOXOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "boxoffice")
	v.SetDefault("db.password", "boxoffice_secret")
	v.SetDefault("db.name", "boxoffice_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Auth defaults
	v.SetDefault("auth.password", "")
	v.SetDefault("auth.password_hash", "")
	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.session_expiry", "12h")
	v.SetDefault("auth.issuer", "boxoffice")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 10)

	// S3 defaults (archival off unless a bucket is configured)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Events seed defaults
	v.SetDefault("events.cities", "dc=SWEATCON DC,atlanta=SWEATCON ATLANTA")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "BOXOFFICE_SERVER_PORT",
		"server.read_timeout":     "BOXOFFICE_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "BOXOFFICE_SERVER_WRITE_TIMEOUT",
		"server.environment":      "BOXOFFICE_SERVER_ENVIRONMENT",
		"db.host":                 "BOXOFFICE_DB_HOST",
		"db.port":                 "BOXOFFICE_DB_PORT",
		"db.user":                 "BOXOFFICE_DB_USER",
		"db.password":             "BOXOFFICE_DB_PASSWORD",
		"db.name":                 "BOXOFFICE_DB_NAME",
		"db.sslmode":              "BOXOFFICE_DB_SSLMODE",
		"db.max_open":             "BOXOFFICE_DB_MAX_OPEN",
		"db.max_idle":             "BOXOFFICE_DB_MAX_IDLE",
		"auth.password":           "BOXOFFICE_AUTH_PASSWORD",
		"auth.password_hash":      "BOXOFFICE_AUTH_PASSWORD_HASH",
		"auth.jwt_secret":         "BOXOFFICE_AUTH_JWT_SECRET",
		"auth.session_expiry":     "BOXOFFICE_AUTH_SESSION_EXPIRY",
		"auth.issuer":             "BOXOFFICE_AUTH_ISSUER",
		"upload.max_file_size_mb": "BOXOFFICE_UPLOAD_MAX_FILE_SIZE_MB",
		"s3.region":               "BOXOFFICE_S3_REGION",
		"s3.bucket":               "BOXOFFICE_S3_BUCKET",
		"s3.endpoint":             "BOXOFFICE_S3_ENDPOINT",
		"s3.access_key":           "BOXOFFICE_S3_ACCESS_KEY",
		"s3.secret_key":           "BOXOFFICE_S3_SECRET_KEY",
		"log.level":               "BOXOFFICE_LOG_LEVEL",
		"log.format":              "BOXOFFICE_LOG_FORMAT",
		"cors.allowed_origins":    "BOXOFFICE_CORS_ALLOWED_ORIGINS",
		"events.cities":           "BOXOFFICE_EVENTS_CITIES",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BOXOFFICE_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BOXOFFICE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Auth = AuthConfig{
		Password:      v.GetString("auth.password"),
		PasswordHash:  v.GetString("auth.password_hash"),
		JWTSecret:     v.GetString("auth.jwt_secret"),
		SessionExpiry: v.GetDuration("auth.session_expiry"),
		Issuer:        v.GetString("auth.issuer"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	// Parse seed cities from comma-separated "key=SOURCE LABEL" pairs
	cities := make(map[string]string)
	for _, pair := range strings.Split(v.GetString("events.cities"), ",") {
		key, label, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		label = strings.TrimSpace(label)
		if found && key != "" && label != "" {
			cities[key] = label
		}
	}
	cfg.Events = EventsConfig{Cities: cities}

	return cfg, nil
}
