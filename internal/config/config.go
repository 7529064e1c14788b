package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Oracle   OracleConfig
	Rank     RankConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

// DatabaseConfig covers both corpus backends. Driver selects which one:
// "postgres" (default) or "sqlite".
type DatabaseConfig struct {
	Driver string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	SQLitePath string

	PoolMaxConns        int32
	PoolMaxConnLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

// OracleConfig points at the Groq-compatible LLM endpoint. An empty APIKey
// disables both oracles; the pipeline then runs purely on its deterministic
// fallbacks.
type OracleConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type RankConfig struct {
	// RulesPath optionally points at a YAML file overriding the built-in
	// category tables and scoring tunables.
	RulesPath string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	// A local .env is a convenience, not a requirement.
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}

	cfg.App = AppConfig{
		AppName:     optDefault("APP_NAME", "jobrank"),
		Environment: optDefault("APP_ENV", "development"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		Driver:              strings.ToLower(optDefault("DB_DRIVER", "postgres")),
		DBHost:              opt("DB_HOST"),
		DBPort:              opt("DB_PORT"),
		DBName:              opt("DB_NAME"),
		DBUser:              opt("DB_USER"),
		DBPassword:          opt("DB_PASSWORD"),
		DBSSLMode:           optDefault("DB_SSL_MODE", "disable"),
		SQLitePath:          opt("SQLITE_PATH"),
		PoolMaxConns:        int32(envInt("DB_POOL_MAX_CONNS", 0)),
		PoolMaxConnLifetime: envSeconds("DB_POOL_MAX_CONN_LIFETIME", 0),
	}

	cfg.Redis = RedisConfig{
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      envSeconds("REDIS_TTL", 600),
	}

	cfg.Oracle = OracleConfig{
		BaseURL: optDefault("ORACLE_BASE_URL", "https://api.groq.com/openai/v1"),
		APIKey:  opt("GROQ_API_KEY"),
		Model:   optDefault("ORACLE_MODEL", "llama-3.3-70b-versatile"),
		Timeout: envSeconds("ORACLE_TIMEOUT", 8),
	}

	cfg.Rank = RankConfig{
		RulesPath: opt("RANK_RULES_PATH"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	if cfg.Database.Driver == "sqlite" && cfg.Database.SQLitePath == "" {
		return Config{}, fmt.Errorf("%w: SQLITE_PATH", errMissingRequiredEnv)
	}

	return cfg, nil
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func envSeconds(key string, defSeconds int) time.Duration {
	return time.Duration(envInt(key, defSeconds)) * time.Second
}
