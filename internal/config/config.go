// Package config loads server configuration from flags, environment
// variables, and a .env file.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Data      DataConfig
	Server    ServerConfig
	Auth      AuthConfig
	Listing   ListingConfig
	RateLimit RateLimitConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level  string
	Format string // json or pretty; empty picks by environment
}

// DataConfig locates on-disk state.
type DataConfig struct {
	BasePath string // root for the database, search index, and keys
}

// DatabasePath is the SQLite file under BasePath.
func (d DataConfig) DatabasePath() string {
	return filepath.Join(d.BasePath, "curator.db")
}

// SearchIndexPath is the bleve index directory under BasePath.
func (d DataConfig) SearchIndexPath() string {
	return filepath.Join(d.BasePath, "search")
}

// KeyPath is the token key file under BasePath.
func (d DataConfig) KeyPath() string {
	return filepath.Join(d.BasePath, "token.key")
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
}

// AuthConfig holds token configuration.
type AuthConfig struct {
	// PASETO v4 symmetric key; filled in by auth.LoadOrGenerateKey.
	AccessTokenKey      []byte
	AccessTokenDuration time.Duration
}

// ListingConfig tunes catalog listings.
type ListingConfig struct {
	PageSize int
}

// RateLimitConfig throttles write endpoints per client.
type RateLimitConfig struct {
	Enabled bool
	Rate    float64 // requests per second
	Burst   int
}

// LoadConfig parses os.Args and the environment. Precedence:
// flags, then environment, then .env file, then defaults.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load is LoadConfig with explicit arguments.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("curator", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "", "Log format (json, pretty)")
	dataPath := fs.String("data-path", "", "Directory for the database and search index")
	port := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	origins := fs.String("allowed-origins", "", "Comma-separated CORS origins (default: *)")
	tokenDuration := fs.String("access-token-duration", "", "Access token lifetime (default: 720h)")
	pageSize := fs.String("page-size", "", "Items per catalog page (default: 20)")
	rateEnabled := fs.String("rate-limit", "", "Throttle write endpoints (default: true)")
	rateRPS := fs.String("rate-limit-rps", "", "Sustained writes per second per client (default: 2)")
	rateBurst := fs.String("rate-limit-burst", "", "Write burst per client (default: 10)")
	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Missing .env is fine.
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level:  getConfigValue(*logLevel, "LOG_LEVEL", "info"),
			Format: getConfigValue(*logFormat, "LOG_FORMAT", ""),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Server: ServerConfig{
			Port:           getConfigValue(*port, "SERVER_PORT", "8080"),
			AllowedOrigins: splitList(getConfigValue(*origins, "ALLOWED_ORIGINS", "*")),
		},
		Listing: ListingConfig{
			PageSize: getIntConfigValue(*pageSize, "PAGE_SIZE", 20),
		},
		RateLimit: RateLimitConfig{
			Enabled: getBoolConfigValue(*rateEnabled, "RATE_LIMIT_ENABLED", true),
			Rate:    getFloatConfigValue(*rateRPS, "RATE_LIMIT_RPS", 2),
			Burst:   getIntConfigValue(*rateBurst, "RATE_LIMIT_BURST", 10),
		},
	}

	durations := []struct {
		dst   *time.Duration
		flag  string
		env   string
		def   string
		label string
	}{
		{&cfg.Server.ReadTimeout, *readTimeout, "SERVER_READ_TIMEOUT", "15s", "read timeout"},
		{&cfg.Server.WriteTimeout, *writeTimeout, "SERVER_WRITE_TIMEOUT", "15s", "write timeout"},
		{&cfg.Server.IdleTimeout, *idleTimeout, "SERVER_IDLE_TIMEOUT", "60s", "idle timeout"},
		{&cfg.Auth.AccessTokenDuration, *tokenDuration, "ACCESS_TOKEN_DURATION", "720h", "access token duration"},
	}
	for _, d := range durations {
		raw := getConfigValue(d.flag, d.env, d.def)
		v, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.label, raw, err)
		}
		*d.dst = v
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case "development", "staging", "production":
	case "":
		return errors.New("ENV is required")
	default:
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.Logger.Format {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("invalid log format: %s (must be json or pretty)", c.Logger.Format)
	}

	if c.Data.BasePath == "" {
		return errors.New("data path cannot be empty after expansion")
	}
	if c.Listing.PageSize < 1 {
		return fmt.Errorf("page size must be positive, got %d", c.Listing.PageSize)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Rate <= 0 || c.RateLimit.Burst < 1) {
		return errors.New("rate limit needs a positive rate and burst")
	}
	return nil
}

// expandPath expands ~ and makes path absolute, falling back to defaultPath
// when path is empty.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return abs, nil
}

func (c *Config) expandDataPath() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	expanded, err := expandPath(c.Data.BasePath, filepath.Join(home, "Curator"))
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return defaultValue
}

// getBoolConfigValue accepts true, 1, and yes (case-insensitive) as true.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	s := getConfigValue(flagValue, envKey, "")
	if s == "" {
		return defaultValue
	}
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	n, err := strconv.Atoi(getConfigValue(flagValue, envKey, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	f, err := strconv.ParseFloat(getConfigValue(flagValue, envKey, ""), 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// loadEnvFile loads KEY=value lines from a .env file. Variables already in
// the environment win.
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- path comes from the operator
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}
