package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит все настройки приложения
type Config struct {
	// Server
	Port string
	Host string

	// Database
	DBDriver string // "sqlite" или "postgres"
	DBDSN    string

	// Security
	JWTSecret     string
	JWTExpiration time.Duration

	// Учетная запись администратора по умолчанию
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл если он существует
	_ = godotenv.Load()

	config := &Config{
		Port:          getEnv("PORT", "8080"),
		Host:          getEnv("HOST", "0.0.0.0"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DBDSN:         getEnv("DB_DSN", "/tmp/edujournal.db"),
		JWTSecret:     getEnv("JWT_SECRET", "edujournal_secret_key"),
		JWTExpiration: 24 * time.Hour,
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@school.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
	}

	return config, nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
