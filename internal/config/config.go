package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service. It is loaded once at
// startup and never re-read while serving requests.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Metrics      MetricsConfig
	Auth         AuthConfig
	Storage      StorageConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior. Encoding is "json" or "console".
type LoggerConfig struct {
	Level    string
	Encoding string
}

// MetricsConfig configures the Prometheus scrape listener.
type MetricsConfig struct {
	Enabled bool
	Addr    string
}

// AuthConfig defines token issuance parameters. JWTSecret is the base64-encoded
// symmetric signing key; the session TTL in Redis equals the refresh lifetime.
type AuthConfig struct {
	JWTSecret              string
	AccessTokenTTLMinutes  int
	RefreshTokenTTLHours   int
	InviteCodeTTLMinutes   int
	AdminBcryptCost        int
	ProviderTokenURL       string
	ProviderUserInfoURL    string
	ProviderClientID       string
	ProviderClientSecret   string
	ProviderRedirectURI    string
	ProviderTimeoutSeconds int
}

// StorageConfig describes the object-storage collaborator used for upload and
// download URL issuance.
type StorageConfig struct {
	UploadBaseURL   string
	DownloadBaseURL string
}

// NotificationConfig holds the push collaborator endpoint.
type NotificationConfig struct {
	PushEndpoint string
	SenderName   string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "family-photo-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
			Addr:    getEnv("METRICS_ADDR", ":9090"),
		},
		Auth: AuthConfig{
			JWTSecret:              getEnv("AUTH_JWT_SECRET", "ZGV2LXNlY3JldC1kZXYtc2VjcmV0LWRldi1zZWNyZXQ="),
			AccessTokenTTLMinutes:  getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 3),
			RefreshTokenTTLHours:   getEnvAsInt("AUTH_REFRESH_TOKEN_TTL_HOURS", 72),
			InviteCodeTTLMinutes:   getEnvAsInt("AUTH_INVITE_CODE_TTL_MINUTES", 30),
			AdminBcryptCost:        getEnvAsInt("AUTH_ADMIN_BCRYPT_COST", 12),
			ProviderTokenURL:       getEnv("OAUTH_TOKEN_URL", "https://kauth.kakao.com/oauth/token"),
			ProviderUserInfoURL:    getEnv("OAUTH_USERINFO_URL", "https://kapi.kakao.com/v2/user/me"),
			ProviderClientID:       os.Getenv("OAUTH_CLIENT_ID"),
			ProviderClientSecret:   os.Getenv("OAUTH_CLIENT_SECRET"),
			ProviderRedirectURI:    os.Getenv("OAUTH_REDIRECT_URI"),
			ProviderTimeoutSeconds: getEnvAsInt("OAUTH_TIMEOUT_SECONDS", 5),
		},
		Storage: StorageConfig{
			UploadBaseURL:   getEnv("STORAGE_UPLOAD_BASE_URL", "https://storage.local/upload"),
			DownloadBaseURL: getEnv("STORAGE_DOWNLOAD_BASE_URL", "https://storage.local/files"),
		},
		Notification: NotificationConfig{
			PushEndpoint: getEnv("PUSH_ENDPOINT", ""),
			SenderName:   getEnv("PUSH_SENDER_NAME", "Memory Bubble"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTokenTTL is the lifetime of a newly minted access token.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// RefreshTokenTTL is the lifetime of a newly minted refresh token. Session
// records in Redis expire on the same clock.
func (a AuthConfig) RefreshTokenTTL() time.Duration {
	return time.Duration(a.RefreshTokenTTLHours) * time.Hour
}

// InviteCodeTTL bounds how long a family invite code stays redeemable.
func (a AuthConfig) InviteCodeTTL() time.Duration {
	return time.Duration(a.InviteCodeTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
