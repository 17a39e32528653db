// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/extract and cmd/dashboard.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jyoun110/FantasyComp/internal/league"
)

// --------------------------------------------------------------------------
// Table stores
// --------------------------------------------------------------------------

const (
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Default Yahoo Fantasy endpoints.
const (
	DefaultYahooAPIURL   = "https://fantasysports.yahooapis.com/fantasy/v2"
	DefaultYahooAuthURL  = "https://api.login.yahoo.com/oauth2/request_auth"
	DefaultYahooTokenURL = "https://api.login.yahoo.com/oauth2/get_token"
)

// ErrMissingCredentials is returned when any Yahoo OAuth credential is unset.
var ErrMissingCredentials = errors.New("missing Yahoo credentials")

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Yahoo OAuth2 credentials
	ConsumerKey    string
	ConsumerSecret string
	RefreshToken   string

	// Yahoo API
	YahooAPIURL       string
	YahooAuthURL      string
	YahooTokenURL     string
	GameCode          string
	LeagueKey         string // optional; skips the league lookup when set
	RequestsPerMinute int

	// Season shape
	Categories     league.Categories
	SeasonWeeks    int
	AnomalousWeeks []int

	// Extraction
	MaxFetchAttempts int
	RetryBackoff     time.Duration

	// Table persistence
	TableStore  string // file, postgres, sqlite
	TablePath   string
	DatabaseURL string
	SQLitePath  string

	// Database pool (postgres store)
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// Dashboard server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled  bool
	TableCacheTTL time.Duration
	WatchTable    bool
	TablePoll     time.Duration
	TableWarm     time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// Credentials are not validated here; the extractor calls Credentials.
func Load() (*Config, error) {
	cfg := &Config{
		ConsumerKey:    strings.TrimSpace(os.Getenv("CONSUMER_KEY")),
		ConsumerSecret: strings.TrimSpace(os.Getenv("CONSUMER_SECRET")),
		RefreshToken:   strings.TrimSpace(os.Getenv("REFRESH_TOKEN")),

		YahooAPIURL:       strings.TrimRight(envOr("YAHOO_API_URL", DefaultYahooAPIURL), "/"),
		YahooAuthURL:      envOr("YAHOO_AUTH_URL", DefaultYahooAuthURL),
		YahooTokenURL:     envOr("YAHOO_TOKEN_URL", DefaultYahooTokenURL),
		GameCode:          envOr("YAHOO_GAME_CODE", "nba"),
		LeagueKey:         envOr("YAHOO_LEAGUE_KEY", ""),
		RequestsPerMinute: envInt("YAHOO_REQUESTS_PER_MINUTE", 60),

		Categories:     league.DefaultCategories(),
		SeasonWeeks:    envInt("SEASON_WEEKS", league.DefaultSeasonWeeks),
		AnomalousWeeks: envIntList("ANOMALOUS_WEEKS", league.DefaultAnomalousWeeks),

		MaxFetchAttempts: envInt("EXTRACT_MAX_ATTEMPTS", 3),
		RetryBackoff:     time.Duration(envInt("EXTRACT_RETRY_BACKOFF_SECONDS", 2)) * time.Second,

		TableStore:  strings.ToLower(envOr("TABLE_STORE", StoreFile)),
		TablePath:   envOr("TABLE_PATH", "output.xlsx"),
		DatabaseURL: envOr("DATABASE_URL", ""),
		SQLitePath:  envOr("SQLITE_PATH", "fantasycomp.db"),

		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 4),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8501)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled:  envBool("CACHE_ENABLED", true),
		TableCacheTTL: time.Duration(envInt("TABLE_CACHE_TTL_MINUTES", 60)) * time.Minute,
		WatchTable:    envBool("WATCH_TABLE", true),
		TablePoll:     time.Duration(envInt("TABLE_POLL_SECONDS", 60)) * time.Second,
		TableWarm:     time.Duration(envInt("TABLE_WARM_MINUTES", 15)) * time.Minute,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.TableStore {
	case StoreFile:
		if c.TablePath == "" {
			return fmt.Errorf("TABLE_PATH must be set for the file store")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set for the postgres store")
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must be set for the sqlite store")
		}
	default:
		return fmt.Errorf("TABLE_STORE %q: must be one of file, postgres, sqlite", c.TableStore)
	}
	if c.SeasonWeeks < 1 {
		return fmt.Errorf("SEASON_WEEKS must be positive, got %d", c.SeasonWeeks)
	}
	if c.MaxFetchAttempts < 1 {
		c.MaxFetchAttempts = 1
	}
	if c.RequestsPerMinute < 1 {
		c.RequestsPerMinute = 60
	}
	return nil
}

// Credentials holds the three OAuth values the extractor needs.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Credentials returns the Yahoo OAuth credentials, or an error wrapping
// ErrMissingCredentials that names every missing variable.
func (c *Config) Credentials() (Credentials, error) {
	var missing []string
	if c.ConsumerKey == "" {
		missing = append(missing, "CONSUMER_KEY")
	}
	if c.ConsumerSecret == "" {
		missing = append(missing, "CONSUMER_SECRET")
	}
	if c.RefreshToken == "" {
		missing = append(missing, "REFRESH_TOKEN")
	}
	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return Credentials{
		ClientID:     c.ConsumerKey,
		ClientSecret: c.ConsumerSecret,
		RefreshToken: c.RefreshToken,
	}, nil
}

// AnomalousWeekSet returns the anomalous weeks as a set.
func (c *Config) AnomalousWeekSet() league.WeekSet {
	return league.NewWeekSet(c.AnomalousWeeks...)
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// envIntList parses a comma-separated list of integers. An explicitly empty
// value ("none") yields an empty list; unparseable entries are skipped.
func envIntList(key string, fallback []int) []int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return append([]int(nil), fallback...)
	}
	if strings.EqualFold(v, "none") {
		return []int{}
	}
	result := make([]int, 0, 4)
	for _, p := range strings.Split(v, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			result = append(result, n)
		}
	}
	return result
}
