package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config groups the application configuration (read through Viper from env and optional files).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	SMTP    SMTPConfig
	Payment PaymentConfig
	Redis   RedisConfig
	Storage StorageConfig
	Orders  OrdersConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env       string // development, staging, production
	Name      string
	LogLevel  string
	PublicURL string // frontend base URL used in password reset links when the request has no Origin
}

// DBConfig PostgreSQL settings.
// When DatabaseURL is set it is used verbatim as the connection string.
// Driver "memory" keeps everything in process memory (local runs without a database).
type DBConfig struct {
	Driver      string // postgres | memory
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

// ConnectionString returns DATABASE_URL when present, otherwise the DSN built from the parts.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN builds a postgres URL, escaping special characters in the password.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig token settings.
type JWTConfig struct {
	Secret     string
	Expiration int // minutes
	Issuer     string
}

// HTTPConfig HTTP server settings.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string
}

// Addr returns host:port.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SMTPConfig outgoing mail server. An empty Host disables delivery (messages are only logged).
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// PaymentConfig card gateway credentials.
type PaymentConfig struct {
	URL             string
	Token           string
	GatewayUsername string
	Currency        string
	TimeoutSeconds  int
}

// RedisConfig cache connection. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StorageConfig image storage backend.
type StorageConfig struct {
	Driver        string // local | gcs
	LocalDir      string
	PublicPath    string
	GCSBucket     string
	GCSPublicBase string

	// GCSCredentialsJSON explicit service account key; empty uses application default credentials.
	GCSCredentialsJSON string
}

// OrdersConfig business settings for ordering.
type OrdersConfig struct {
	VATStandardRate int    // percentage applied when a product is flagged as VAT-able
	NotifyEmail     string // admin mailbox that receives a copy of each order
}

// Load reads configuration from environment variables and optionally from .env / config.env.
// Environment variables win.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:       getString(v, "APP_ENV", "development"),
			Name:      getString(v, "APP_NAME", "wholesale-api"),
			LogLevel:  getString(v, "LOG_LEVEL", "info"),
			PublicURL: getString(v, "APP_PUBLIC_URL", "http://localhost:3000"),
		},
		DB: DBConfig{
			Driver:      getString(v, "DB_DRIVER", "postgres"),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "wholesale"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 24*60),
			Issuer:     getString(v, "JWT_ISSUER", "wholesale-api"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 5000),
			CORSOrigins: getString(v, "CORS_ORIGINS", "*"),
		},
		SMTP: SMTPConfig{
			Host:     getString(v, "SMTP_HOST", ""),
			Port:     getInt(v, "SMTP_PORT", 587),
			User:     getString(v, "SMTP_USER", ""),
			Password: getString(v, "SMTP_PASS", ""),
			From:     getString(v, "SMTP_FROM", ""),
		},
		Payment: PaymentConfig{
			URL:             getString(v, "PAYMENTSENSE_URL", "https://api.paymentsense.com/api/v2/transactions"),
			Token:           getString(v, "PAYMENTSENSE_JWT", ""),
			GatewayUsername: getString(v, "PAYMENTSENSE_GATEWAY_USERNAME", ""),
			Currency:        getString(v, "PAYMENT_CURRENCY", "GBP"),
			TimeoutSeconds:  getInt(v, "PAYMENT_TIMEOUT_SECONDS", 20),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Driver:        getString(v, "STORAGE_DRIVER", "local"),
			LocalDir:      getString(v, "UPLOADS_DIR", "./uploads"),
			PublicPath:    getString(v, "UPLOADS_PUBLIC_PATH", "/uploads"),
			GCSBucket:     getString(v, "GCS_BUCKET", ""),
			GCSPublicBase: getString(v, "GCS_PUBLIC_BASE_URL", "https://storage.googleapis.com"),

			GCSCredentialsJSON: getString(v, "GCS_CREDENTIALS_JSON", ""),
		},
		Orders: OrdersConfig{
			VATStandardRate: getInt(v, "VAT_STANDARD_RATE", 20),
			NotifyEmail:     getString(v, "ORDER_NOTIFY_EMAIL", ""),
		},
	}

	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}
	if cfg.DB.Driver != "postgres" && cfg.DB.Driver != "memory" {
		return nil, fmt.Errorf("config: unknown DB_DRIVER %q", cfg.DB.Driver)
	}
	if cfg.Storage.Driver == "gcs" && cfg.Storage.GCSBucket == "" {
		return nil, fmt.Errorf("config: GCS_BUCKET is required when STORAGE_DRIVER=gcs")
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
