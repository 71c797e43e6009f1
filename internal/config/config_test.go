package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, "postgres", cfg.DBDriver)
				assert.Equal(t, 25, cfg.DBMaxOpenConnections)
				assert.Equal(t, 5, cfg.DBMaxIdleConnections)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, float64(168), cfg.AccessLinkTTLHours)
				assert.Equal(t, 15*time.Minute, cfg.SignedURLTTL)
				assert.Equal(t, 14400*time.Second, cfg.ServiceTokenExpiration)
				assert.True(t, cfg.SweeperEnabled)
				assert.Equal(t, 15*time.Minute, cfg.SweeperInterval)
				assert.Equal(t, "bookgate", cfg.MetricsNamespace)
			},
		},
		{
			name: "load custom server configuration",
			envVars: map[string]string{
				"SERVER_HOST": "localhost",
				"SERVER_PORT": "9090",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost", cfg.ServerHost)
				assert.Equal(t, 9090, cfg.ServerPort)
			},
		},
		{
			name: "load custom access link configuration",
			envVars: map[string]string{
				"ACCESS_LINK_TTL_HOURS": "24",
				"SHARE_LINK_BASE_URL":   "https://read.afrireads.com",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, float64(24), cfg.AccessLinkTTLHours)
				assert.Equal(t, 24*time.Hour, cfg.AccessLinkTTL())
				assert.Equal(t, "https://read.afrireads.com", cfg.ShareLinkBaseURL)
			},
		},
		{
			name: "load custom storage and sweeper configuration",
			envVars: map[string]string{
				"DOCUMENT_BUCKET_URL":      "s3://afrireads-books",
				"SIGNED_URL_TTL_MINUTES":   "5",
				"SWEEPER_ENABLED":          "false",
				"SWEEPER_INTERVAL_MINUTES": "60",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "s3://afrireads-books", cfg.DocumentBucketURL)
				assert.Equal(t, 5*time.Minute, cfg.SignedURLTTL)
				assert.False(t, cfg.SweeperEnabled)
				assert.Equal(t, 60*time.Minute, cfg.SweeperInterval)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				require.NoError(t, os.Setenv(key, value))
			}
			defer func() {
				for key := range tt.envVars {
					_ = os.Unsetenv(key)
				}
			}()

			cfg := Load()
			tt.validate(t, cfg)
		})
	}
}

func TestAccessLinkTTL(t *testing.T) {
	cfg := &Config{AccessLinkTTLHours: 0.5}
	assert.Equal(t, 30*time.Minute, cfg.AccessLinkTTL())
}

func TestGetGinMode(t *testing.T) {
	assert.Equal(t, "debug", (&Config{LogLevel: "debug"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "info"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "unknown"}).GetGinMode())
}
