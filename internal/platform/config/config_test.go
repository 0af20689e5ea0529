package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "postagens.db", cfg.SQLitePath)
	assert.Equal(t, 8*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, "5-M", cfg.LoginRateLimit)
	assert.False(t, cfg.AuthEnabled)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_PostgresRequiresURL(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("PGSQL_URL", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE_DRIVER", "mysql")

	_, err := LoadConfig()
	assert.Error(t, err)
}
