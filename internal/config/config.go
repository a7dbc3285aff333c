package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the runtime configuration of the board server
type Config struct {
	Postgres
	HTTPServer
	Auth
	Limits
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

type Postgres struct {
	URL          string `env:"DATABASE_URL" env-required:"true"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" env-default:"20"`
}

type HTTPServer struct {
	Port               string        `env:"APP_PORT" env-default:"8080"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	ReadTimeout        time.Duration `env:"READ_TIMEOUT" env-default:"15s"`
	WriteTimeout       time.Duration `env:"WRITE_TIMEOUT" env-default:"15s"`
}

type Auth struct {
	JWTSecret string `env:"JWT_SECRET" env-required:"true"`
	JWTIssuer string `env:"JWT_ISSUER" env-default:"coveloper"`
}

type Limits struct {
	RateLimitRPS    float64       `env:"RATE_LIMIT_RPS" env-default:"10"`
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST" env-default:"20"`
	MemberCacheSize int           `env:"MEMBER_CACHE_SIZE" env-default:"1000"`
	MemberCacheTTL  time.Duration `env:"MEMBER_CACHE_TTL" env-default:"5m"`
}

// New loads envFile (when it exists) over the process environment and reads the config.
// An empty envFile skips the file.
func New(envFile string) (*Config, error) {
	conf := &Config{}

	if envFile != "" {
		if err := godotenv.Overload(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("godotenv.Overload: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(conf); err != nil {
		return nil, fmt.Errorf("cleanenv.ReadEnv: %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *Config) validate() error {
	if c.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.MemberCacheSize <= 0 {
		return fmt.Errorf("MEMBER_CACHE_SIZE must be positive")
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
