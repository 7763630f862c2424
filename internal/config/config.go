package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type StoreKind string

const (
	StoreSQLite   StoreKind = "sqlite"
	StorePostgres StoreKind = "postgres"
	StoreMemory   StoreKind = "memory"
)

type Config struct {
	Port        int       `yaml:"port"`
	Store       StoreKind `yaml:"store"`
	DatabaseURL string    `yaml:"database_url"`
	SQLitePath  string    `yaml:"sqlite_path"`
	RedisURL    string    `yaml:"redis_url"`

	SessionSecret       string `yaml:"session_secret"`
	SessionTTLHours     int    `yaml:"session_ttl_hours"`
	SessionPurgeMinutes int    `yaml:"session_purge_minutes"`
	SecureCookies       bool   `yaml:"secure_cookies"`

	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`

	LoginAttemptsPerMinute int `yaml:"login_attempts_per_minute"`
	LoginBurst             int `yaml:"login_burst"`

	Banner   string `yaml:"banner"`
	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Port:                   5000,
		SQLitePath:             "deskbook.db",
		SessionTTLHours:        24,
		SessionPurgeMinutes:    10,
		AdminUsername:          "admin",
		AdminPassword:          "admin",
		LoginAttemptsPerMinute: 10,
		LoginBurst:             5,
		LogLevel:               "info",
	}
}

// Load builds the configuration from defaults, the optional YAML file named by
// DESKBOOK_CONFIG, a .env file in the working directory and finally the
// process environment. Later sources win.
func Load() (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("DESKBOOK_CONFIG")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	_ = godotenv.Load()
	applyEnv(&cfg)

	if cfg.Store == "" {
		cfg.Store = StoreSQLite
		if cfg.DatabaseURL != "" {
			cfg.Store = StorePostgres
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DESKBOOK_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 && p < 65536 {
			cfg.Port = p
		}
	}

	if v := os.Getenv("DESKBOOK_STORE"); v != "" {
		cfg.Store = StoreKind(strings.ToLower(strings.TrimSpace(v)))
	}
	if v := os.Getenv("DESKBOOK_DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	} else if v := os.Getenv("DATABASE_URL"); v != "" && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("DESKBOOK_SQLITE_PATH"); v != "" {
		cfg.SQLitePath = v
	}
	if v := os.Getenv("DESKBOOK_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}

	if v := os.Getenv("DESKBOOK_SESSION_SECRET"); v != "" {
		cfg.SessionSecret = v
	}
	if v := os.Getenv("DESKBOOK_SESSION_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SessionTTLHours = n
		}
	}
	if v := os.Getenv("DESKBOOK_SESSION_PURGE_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SessionPurgeMinutes = n
		}
	}
	if v := os.Getenv("DESKBOOK_SECURE_COOKIES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SecureCookies = b
		}
	}

	if v := os.Getenv("DESKBOOK_ADMIN_USERNAME"); v != "" {
		cfg.AdminUsername = v
	}
	if v := os.Getenv("DESKBOOK_ADMIN_PASSWORD"); v != "" {
		cfg.AdminPassword = v
	}

	if v := os.Getenv("DESKBOOK_LOGIN_ATTEMPTS_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.LoginAttemptsPerMinute = n
		}
	}
	if v := os.Getenv("DESKBOOK_LOGIN_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LoginBurst = n
		}
	}

	if v := os.Getenv("DESKBOOK_BANNER"); v != "" {
		cfg.Banner = v
	}
	if v := os.Getenv("DESKBOOK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("sqlite store requires a sqlite path")
		}
	case StorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("postgres store requires a database url")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if strings.TrimSpace(c.AdminUsername) == "" || c.AdminPassword == "" {
		return fmt.Errorf("seed admin username and password are required")
	}
	return nil
}

func (c Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

func (c Config) SessionTTL() time.Duration {
	if c.SessionTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c Config) SessionPurgeInterval() time.Duration {
	if c.SessionPurgeMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.SessionPurgeMinutes) * time.Minute
}
