// Package config предоставляет структуры и функции для загрузки конфигурации сервиса.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Драйверы хранилища.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env             string `yaml:"env" env:"APP_ENV" env-default:"local"`
	StaticDir       string `yaml:"static_dir" env:"STATIC_DIR"`
	HTTPServer      `yaml:"http_server"`
	Storage         `yaml:"storage"`
	RedisConnection `yaml:"redis_connection"`
	RabbitMQ        `yaml:"rabbitmq"`
	SMTP            `yaml:"smtp"`
	Admin           `yaml:"admin"`
	JWTToken        `yaml:"jwttoken"`
	RateLimit       `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Storage выбирает хранилище: memory (по умолчанию) или postgres.
type Storage struct {
	Driver                  string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_DSN"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
}

// RedisConnection структура для настройки подключения к redis. Пустой адрес отключает кеш.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env-default:"1h"`
}

// RabbitMQ структура для подключения к брокеру. Пустой URL отключает уведомления о заявках.
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries int           `yaml:"max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// SMTP структура для отправки писем о новых заявках.
type SMTP struct {
	SMTPHost string `yaml:"host" env:"SMTP_HOST"`
	SMTPPort string `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	SMTPUser string `yaml:"user" env:"SMTP_USER"`
	SMTPPass string `yaml:"password" env:"SMTP_PASSWORD"`
	NotifyTo string `yaml:"notify_to" env:"SMTP_NOTIFY_TO"`
}

// Admin учётные данные администратора. Пароль задаётся только bcrypt-хэшем.
type Admin struct {
	AdminUsername     string `yaml:"username" env:"ADMIN_USERNAME" env-default:"admin"`
	AdminPasswordHash string `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
}

// JWTToken структура для работы с jwt-токеном.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"12h"`
}

// RateLimit ограничение частоты отправки контактной формы.
type RateLimit struct {
	ContactRPS   float64 `yaml:"contact_rps" env-default:"1"`
	ContactBurst int     `yaml:"contact_burst" env-default:"3"`
}

// MustLoad загружает конфиг из файла CONFIG_PATH и завершает процесс при ошибке.
// Перед чтением подхватывается .env, если он есть.
func MustLoad() *Config {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает и проверяет конфиг по указанному пути.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	switch c.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.StorageConnectionString == "" {
			return errors.New("storage_connection_string is required for postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Driver)
	}
	if c.JWTSecretKey == "" {
		return errors.New("jwt_secret_key is required")
	}
	if c.ContactRPS <= 0 || c.ContactBurst <= 0 {
		return errors.New("rate_limit values must be positive")
	}
	return nil
}

// MustLoadNotifier загружает конфиг для сервиса рассылки: нужны только брокер и SMTP.
func MustLoadNotifier() *Config {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	if cfg.RabbitMQURL == "" || cfg.SMTPHost == "" || cfg.NotifyTo == "" {
		log.Fatal("rabbitmq.url, smtp.host and smtp.notify_to are required")
	}
	return &cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StaticDir: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Storage:\n"+
			"  Driver: %s\n"+
			"  MigrationsPath: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"  CacheTTL: %s\n"+
			"RabbitMQ enabled: %t\n"+
			"SMTP:\n"+
			"  Host: %s\n"+
			"  NotifyTo: %s\n"+
			"Admin: %s\n"+
			"JWTToken:\n"+
			"  TokenTTL: %s\n",
		c.Env,
		c.StaticDir,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.Driver,
		c.MigrationsPath,
		c.AddressRedis,
		c.DB,
		c.CacheTTL,
		c.RabbitMQURL != "",
		c.SMTPHost,
		c.NotifyTo,
		c.AdminUsername,
		c.TokenTTL,
	)
}
