// Package config carga la configuración: defaults, archivo YAML opcional,
// .env opcional y por último variables de entorno. Luego valida.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"vet-booking-client/internal/platform/validation"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath    = "config.yml"
	DefaultBaseURL = "http://localhost:8080"
	DefaultTimeout = 10 * time.Second
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
	Mock    MockConfig    `yaml:"mock"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

type SessionConfig struct {
	Backend       string `yaml:"backend" validate:"oneof=memory file redis postgres"`
	FilePath      string `yaml:"file_path"`
	RedisAddr     string `yaml:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db" validate:"gte=0"`
	RedisKey      string `yaml:"redis_key"`
	PostgresDSN   string `yaml:"postgres_dsn" validate:"required_if=Backend postgres"`
	Namespace     string `yaml:"namespace"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MockConfig struct {
	Addr      string        `yaml:"addr" validate:"required"`
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl" validate:"gte=0"`
	Seed      bool          `yaml:"seed"`
}

func Default() Config {
	return Config{
		API:     APIConfig{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout},
		Session: SessionConfig{Backend: BackendFile, Namespace: "default"},
		Log:     LogConfig{Level: "info", Format: "text"},
		Mock:    MockConfig{Addr: ":8080", TokenTTL: 24 * time.Hour, Seed: true},
	}
}

// Load lee path (si existe; "" usa VETAPP_CONFIG o config.yml), .env y el entorno.
// Un archivo ausente no es error; uno mal formado sí.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("VETAPP_CONFIG")
	}
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	cfg.Session.Backend = strings.ToLower(strings.TrimSpace(cfg.Session.Backend))
	if err := validation.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	str("VETAPP_API_URL", &cfg.API.BaseURL)
	str("VETAPP_SESSION_BACKEND", &cfg.Session.Backend)
	str("VETAPP_SESSION_FILE", &cfg.Session.FilePath)
	str("REDIS_ADDR", &cfg.Session.RedisAddr)
	str("REDIS_PASSWORD", &cfg.Session.RedisPassword)
	str("DB_DSN", &cfg.Session.PostgresDSN)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	str("MOCK_ADDR", &cfg.Mock.Addr)
	str("JWT_SECRET", &cfg.Mock.JWTSecret)

	if v := strings.TrimSpace(os.Getenv("VETAPP_API_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: VETAPP_API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_DB")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: REDIS_DB: %w", err)
		}
		cfg.Session.RedisDB = n
	}
	return nil
}
