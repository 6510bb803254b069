package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит всю конфигурацию приложения
type Config struct {
	Server    ServerConfig
	Directory UpstreamConfig // Сервис каталога пользователей
	Session   UpstreamConfig // Сервис сессий (аутентификация)
	JWT       JWTConfig
	CORS      CORSConfig
	AppEnv    string // Окружение приложения: development, production, etc.
}

// ServerConfig хранит конфигурацию HTTP-сервера консоли
type ServerConfig struct {
	Host string
	Port string
}

// UpstreamConfig хранит конфигурацию внешнего HTTP-сервиса
type UpstreamConfig struct {
	BaseURL string        // Базовый URL сервиса
	Timeout time.Duration // Таймаут запросов к сервису
}

// JWTConfig хранит конфигурацию локального access-токена консоли
type JWTConfig struct {
	AccessSecret string
	AccessTTL    time.Duration
	Issuer       string
}

// CORSConfig хранит конфигурацию CORS
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// Address возвращает адрес сервера (host:port)
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл (если существует)
	// В production переменные окружения должны быть установлены напрямую
	_ = godotenv.Load()

	cfg := &Config{}

	// Загружаем конфигурацию сервера
	cfg.Server.Host = getEnv("SERVER_HOST", "localhost")
	cfg.Server.Port = getEnv("SERVER_PORT", "8080")

	// Загружаем адреса внешних сервисов
	cfg.Directory.BaseURL = getEnv("DIRECTORY_BASE_URL", "http://localhost:4000/api")
	cfg.Directory.Timeout = getEnvAsDuration("DIRECTORY_TIMEOUT", 10*time.Second)
	cfg.Session.BaseURL = getEnv("SESSION_BASE_URL", "http://localhost:4000/api")
	cfg.Session.Timeout = getEnvAsDuration("SESSION_TIMEOUT", 10*time.Second)

	// Загружаем конфигурацию токена консоли
	cfg.JWT.AccessSecret = getEnv("JWT_ACCESS_SECRET", "dev-secret-change-me")
	cfg.JWT.AccessTTL = getEnvAsDuration("JWT_ACCESS_TTL", 30*time.Minute)
	cfg.JWT.Issuer = getEnv("JWT_ISSUER", "user-console")

	// Загружаем конфигурацию CORS
	cfg.CORS.AllowedOrigins = getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil)
	cfg.CORS.AllowedMethods = getEnvAsSlice("CORS_ALLOWED_METHODS",
		[]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"})
	cfg.CORS.AllowedHeaders = getEnvAsSlice("CORS_ALLOWED_HEADERS",
		[]string{"Origin", "Content-Type", "Authorization"})
	cfg.CORS.ExposedHeaders = getEnvAsSlice("CORS_EXPOSED_HEADERS", nil)
	cfg.CORS.AllowCredentials = getEnvAsBool("CORS_ALLOW_CREDENTIALS", true)
	cfg.CORS.MaxAge = getEnvAsDuration("CORS_MAX_AGE", 12*time.Hour)

	// Загружаем окружение приложения
	cfg.AppEnv = getEnv("APP_ENV", "development")

	// Валидируем конфигурацию
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return fmt.Errorf("SERVER_HOST не может быть пустым")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT не может быть пустым")
	}
	if c.Directory.BaseURL == "" {
		return fmt.Errorf("DIRECTORY_BASE_URL не может быть пустым")
	}
	if c.Session.BaseURL == "" {
		return fmt.Errorf("SESSION_BASE_URL не может быть пустым")
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET не может быть пустым")
	}
	if c.AppEnv == "production" && c.JWT.AccessSecret == "dev-secret-change-me" {
		return fmt.Errorf("JWT_ACCESS_SECRET должен быть переопределён в production")
	}
	return nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsBool получает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

// getEnvAsDuration получает переменную окружения как time.Duration или возвращает значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

// getEnvAsSlice получает переменную окружения как список значений через запятую
// или возвращает значение по умолчанию
func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
