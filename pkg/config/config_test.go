package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 24*60, cfg.JWT.Expiration)
	assert.Equal(t, 20, cfg.Orders.VATStandardRate)
	assert.Equal(t, "GBP", cfg.Payment.Currency)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "0.0.0.0:5000", cfg.HTTP.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("VAT_STANDARD_RATE", "5")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("SMTP_USER", "orders@example.co.uk")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5, cfg.Orders.VATStandardRate)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "orders@example.co.uk", cfg.SMTP.From, "From falls back to the SMTP user")
}

func TestLoad_GCSRequiresBucket(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "gcs")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_UnknownDBDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "wholesale", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/wholesale?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}
