package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("STATE_DIR", t.TempDir())
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("NOTIFICATION_EMAIL", "")
	t.Setenv("POLL_INTERVAL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
	assert.Equal(t, "file", cfg.StorageBackend)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoad_TrimsBaseURLAndSplitsWatchURLs(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://insight.example.com/api/")
	t.Setenv("STATE_DIR", t.TempDir())
	t.Setenv("WATCH_URLS", "https://youtube.com/@a, ,https://youtube.com/@b")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://insight.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, []string{"https://youtube.com/@a", "https://youtube.com/@b"}, cfg.WatchURLs)
}

func TestConfig_validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			APIBaseURL:     "http://localhost:8080/api",
			PollInterval:   time.Second,
			RateLimitRPS:   1,
			RateLimitBurst: 1,
			StorageBackend: "file",
			StateDir:       "/tmp/insight",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "Valid", mutate: func(c *Config) {}},
		{name: "Relative base URL", mutate: func(c *Config) { c.APIBaseURL = "/api" }, wantErr: true},
		{name: "Zero poll interval", mutate: func(c *Config) { c.PollInterval = 0 }, wantErr: true},
		{name: "Unknown backend", mutate: func(c *Config) { c.StorageBackend = "s3" }, wantErr: true},
		{name: "Azure without account", mutate: func(c *Config) { c.StorageBackend = "azure" }, wantErr: true},
		{
			name: "Email without SMTP",
			mutate: func(c *Config) {
				c.NotificationEmail = "ops@example.com"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
