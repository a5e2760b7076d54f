package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:       AppConfig{Environment: "development"},
		Logger:    LoggerConfig{Level: "info"},
		Data:      DataConfig{BasePath: "/var/lib/curator"},
		Listing:   ListingConfig{PageSize: 20},
		RateLimit: RateLimitConfig{Enabled: true, Rate: 2, Burst: 10},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty environment", func(c *Config) { c.App.Environment = "" }},
		{"unknown environment", func(c *Config) { c.App.Environment = "test" }},
		{"bad level", func(c *Config) { c.Logger.Level = "loud" }},
		{"bad format", func(c *Config) { c.Logger.Format = "xml" }},
		{"empty data path", func(c *Config) { c.Data.BasePath = "" }},
		{"zero page size", func(c *Config) { c.Listing.PageSize = 0 }},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_FlagsBeatEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PAGE_SIZE", "50")
	t.Setenv("SERVER_PORT", "9000")

	cfg, err := Load([]string{
		"-data-path", dir,
		"-page-size", "5",
		"-env-file", filepath.Join(dir, "missing.env"),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Listing.PageSize)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, dir, cfg.Data.BasePath)
	assert.Equal(t, filepath.Join(dir, "curator.db"), cfg.Data.DatabasePath())
	assert.Equal(t, 720*time.Hour, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment\nCURATOR_TEST_ORIGINS=\"https://a.example, https://b.example\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))
	t.Setenv("CURATOR_TEST_ORIGINS", "")

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, splitList(os.Getenv("CURATOR_TEST_ORIGINS")))
}

func TestLoad_InvalidDuration(t *testing.T) {
	_, err := Load([]string{"-data-path", t.TempDir(), "-read-timeout", "soon"})
	assert.ErrorContains(t, err, "invalid read timeout")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/curator", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "curator"), got)

	got, err = expandPath("", "/fallback")
	require.NoError(t, err)
	assert.Equal(t, "/fallback", got)
}
