package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"org-calendar-api/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	c, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", c.JWTSecret)
	assert.Equal(t, "8080", c.WebPort)
	assert.Equal(t, "50051", c.GRPCPort)
	assert.Equal(t, 2, c.NotifyWorkers)
	assert.Equal(t, 256, c.NotifyQueueSize)
	assert.Equal(t, "0 8 * * *", c.ReminderSpec)
	assert.Equal(t, 5.0, c.RateLimitRPS)
	assert.Equal(t, 10, c.RateLimitBurst)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("WEB_PORT", "9090")
	t.Setenv("NOTIFY_WORKERS", "0")
	t.Setenv("TIMEZONE", "America/New_York")

	c, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", c.WebPort)
	assert.Equal(t, 1, c.NotifyWorkers)

	loc, err := c.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}},
		{"bad timezone", map[string]string{"JWT_SECRET": "x", "TIMEZONE": "Mars/Olympus"}},
		{"empty queue", map[string]string{"JWT_SECRET": "x", "NOTIFY_QUEUE_SIZE": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
