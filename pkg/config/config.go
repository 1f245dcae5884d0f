package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	GroqAPIKey string
	GroqModel  string

	// Admin tokens are minted by external tooling; the service only verifies.
	AdminJWTSecret string
	AdminJWTIssuer string

	HarvestEnabled        bool
	HarvestSources        []string
	HarvestWindowHours    int
	HarvestQuery          string
	HarvestCron           string
	CleanupCron           string
	HarvestTimeout        time.Duration
	HarvestMaxConcurrency int

	GreenhouseBoards []string
	LeverCompanies   []string
	AshbyOrgs        []string

	JobTTLHours int
	MaxDBConns  int
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		GroqAPIKey: os.Getenv("GROQ_API_KEY"),
		GroqModel:  getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),

		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", "dev-secret-change"),
		AdminJWTIssuer: getEnv("ADMIN_JWT_ISSUER", "job-scout"),

		HarvestEnabled:        getEnvBool("HARVEST_ENABLED", false),
		HarvestSources:        getEnvList("HARVEST_SOURCES", "greenhouse,lever,ashby,workday"),
		HarvestWindowHours:    getEnvInt("HARVEST_WINDOW_HOURS", 24),
		HarvestQuery:          os.Getenv("HARVEST_QUERY"),
		HarvestCron:           getEnv("HARVEST_INTERVAL_CRON", "*/30 * * * *"),
		CleanupCron:           getEnv("CLEANUP_INTERVAL_CRON", "0 * * * *"),
		HarvestTimeout:        time.Duration(getEnvInt("HARVEST_TIMEOUT_SECS", 20)) * time.Second,
		HarvestMaxConcurrency: getEnvInt("HARVEST_MAX_CONCURRENCY", 6),

		GreenhouseBoards: getEnvList("GREENHOUSE_BOARDS", "stripe,notion,databricks,snowflake"),
		LeverCompanies:   getEnvList("LEVER_COMPANIES", "sentry,zapier,robinhood,nylas"),
		AshbyOrgs:        getEnvList("ASHBY_ORGS", "togetherai,perplexity,roblox"),

		JobTTLHours: getEnvInt("JOB_TTL_HOURS", 48),
		MaxDBConns:  getEnvInt("MAX_DB_CONNS", 10),
	}
}

// MissingError lists required settings that were not provided.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing required env(s): %s", strings.Join(e.Keys, ", "))
}

// Validate fails fast on absent required settings instead of logging a
// warning and limping along.
func (c Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.GroqAPIKey == "" {
		missing = append(missing, "GROQ_API_KEY")
	}
	if len(missing) > 0 {
		return &MissingError{Keys: missing}
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := strings.ToLower(os.Getenv(key))
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}

func getEnvList(key, def string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		raw = def
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
