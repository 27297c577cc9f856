package configs

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("DB_USER", "backoffice")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "shippings")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REDIS_CACHE_TTL", "30s")
	t.Setenv("ALLOWED_ROLES", "admin,warehouse")
	t.Setenv("AUTH_ENABLED", "false")

	cfg, err := LoadConfig(quietLogger())
	require.NoError(t, err)

	assert.Equal(t, "backoffice", cfg.Postgre.User)
	assert.Equal(t, 6543, cfg.Postgre.Port)
	assert.Equal(t, "localhost", cfg.Postgre.Host)
	assert.Equal(t, "file://db/migrations", cfg.Migration.Path)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, time.Hour, cfg.Redis.LookupTTL)
	assert.Equal(t, []string{"admin", "warehouse"}, cfg.Server.AllowedRoles)
	assert.False(t, cfg.Server.AuthEnabled)
	assert.Equal(t, "shipping.events", cfg.RabbitMQ.Exchange)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	for _, key := range []string{"DB_USER", "DB_PASSWORD", "DB_NAME"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	_, err := LoadConfig(quietLogger())
	assert.Error(t, err)
}
