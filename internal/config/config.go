// Package config предоставляет структуры и функции для парсинга и загрузки конфига
// клиента дашборда и dev-сервера.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Бэкенды долговременного хранилища сессии.
const (
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env:"DASHBOARD_ENV" env-default:"local"`
	SeedPassword    string `yaml:"seed_password" env:"DASHBOARD_SEED_PASSWORD" env-default:"admin123"`
	API             `yaml:"api"`
	Storage         `yaml:"storage"`
	RedisConnection `yaml:"redis_connection"`
	HTTPServer      `yaml:"http_server"`
	JWTToken        `yaml:"jwttoken"`
}

// API структура для настройки клиента REST API
type API struct {
	BaseURL    string        `yaml:"base_url" env:"DASHBOARD_API_URL" env-default:"http://localhost:8080/dashboard/v1"`
	TimeoutAPI time.Duration `yaml:"timeoutapi" env:"DASHBOARD_API_TIMEOUT"`
}

// Storage структура для настройки хранилища сессии
type Storage struct {
	Backend   string `yaml:"backend" env:"DASHBOARD_STORAGE" env-default:"file"`
	Path      string `yaml:"path" env:"DASHBOARD_SESSION_FILE"`
	Namespace string `yaml:"namespace" env:"DASHBOARD_NAMESPACE" env-default:"payment-dashboard"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"DASHBOARD_REDIS_ADDR" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"DASHBOARD_REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// HTTPServer структура для настройки dev-сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"DASHBOARD_HTTP_ADDR" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	RateLimit   float64       `yaml:"rate_limit" env-default:"50"`
	RateBurst   int           `yaml:"rate_burst" env-default:"100"`
}

// JWTToken структура для работы с jwt-токеном dev-сервера
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"DASHBOARD_JWT_SECRET" env-default:"changeme"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Load читает конфиг из YAML-файла по пути path. Пустой путь означает,
// что настройки берутся только из переменных окружения и значений по умолчанию.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: file %s does not exist", op, path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	switch cfg.Backend {
	case StorageFile, StorageRedis, StorageMemory:
	default:
		return nil, fmt.Errorf("%s: unknown storage backend %q", op, cfg.Backend)
	}
	if cfg.Backend == StorageFile && cfg.Path == "" {
		cfg.Path = DefaultSessionPath()
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH,
// завершает процесс при ошибке
func MustLoad() *Config {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// DefaultSessionPath возвращает путь к файлу сессии:
// $XDG_CONFIG_HOME/payment-dashboard/session.json или ~/.config/payment-dashboard/session.json.
func DefaultSessionPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "payment-dashboard-session.json")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "payment-dashboard", "session.json")
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"API:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"Storage:\n"+
			"  Backend: %s\n"+
			"  Path: %s\n"+
			"  Namespace: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  User: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"  RateLimit: %g/s burst %d\n"+
			"JWTToken:\n"+
			"  TokenTTL: %s\n",
		c.Env,
		c.BaseURL,
		c.TimeoutAPI,
		c.Backend,
		c.Path,
		c.Namespace,
		c.AddressRedis,
		c.User,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.RateLimit,
		c.RateBurst,
		c.TokenTTL,
	)
}
