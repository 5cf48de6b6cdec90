// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек приложения.
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	StaticDir               string `yaml:"static_dir" env-default:"./static"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitConnection        `yaml:"rabbit_connection"`
	HTTPServer              `yaml:"http_server"`
	Sessions                `yaml:"sessions"`
	Subscriptions           `yaml:"subscriptions"`
	Platforms               []Platform `yaml:"platforms"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// RabbitConnection структура для настройки подключения к rabbitmq.
// Пустой адрес означает, что публикация уведомлений отключена.
type RabbitConnection struct {
	AddressRabbit string        `yaml:"addressrabbit"`
	Retries       int           `yaml:"retries" env-default:"5"`
	RetryDelay    time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// Sessions — времена жизни bearer-сессий и токена сброса пароля.
type Sessions struct {
	// InitialTTL — срок новой сессии, выдаваемой при регистрации и логине.
	InitialTTL time.Duration `yaml:"initial_ttl" env-default:"720h"`
	// TouchTTL — скользящее окно: каждый успешный запрос
	// переписывает expires_at на now + TouchTTL.
	TouchTTL time.Duration `yaml:"touch_ttl" env-default:"24h"`
	// ResetTokenTTL — срок действия токена сброса пароля.
	ResetTokenTTL time.Duration `yaml:"reset_token_ttl" env-default:"24h"`
}

// Subscriptions — параметры пробного периода и оплаченных подписок.
type Subscriptions struct {
	TrialDuration time.Duration `yaml:"trial_duration" env-default:"168h"`
	MonthDuration time.Duration `yaml:"month_duration" env-default:"720h"`
}

// Platform — запись каталога рекламных платформ.
// Каталог передается в маркетинговый сервис через конфиг,
// а не хранится глобальной таблицей в коде.
type Platform struct {
	Key          string `yaml:"key"`           // facebook, instagram, google
	Name         string `yaml:"name"`          // Отображаемое имя
	APIBase      string `yaml:"api_base"`      // База API платформы (для справки, вызовы симулируются)
	RequiredPlan string `yaml:"required_plan"` // Минимальный тариф: basic или premium
}

// MustLoad загружает конфиг из файла, указанного в CONFIG_PATH.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	if len(cfg.Platforms) == 0 {
		cfg.Platforms = DefaultPlatforms()
	}
	return &cfg
}

// DefaultPlatforms возвращает каталог платформ по умолчанию.
func DefaultPlatforms() []Platform {
	return []Platform{
		{Key: "facebook", Name: "Facebook", APIBase: "https://graph.facebook.com/v18.0", RequiredPlan: "basic"},
		{Key: "instagram", Name: "Instagram", APIBase: "https://graph.facebook.com/v18.0", RequiredPlan: "basic"},
		{Key: "google", Name: "Google Ads", APIBase: "https://googleads.googleapis.com/v14", RequiredPlan: "premium"},
	}
}
