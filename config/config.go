package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	Port       string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	JWTSecret  string
	CORSOrigin string
}

var (
	cfg  *Config
	once sync.Once
)

// LoadConfig reads .env (if present) and builds the configuration from
// environment variables.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found. Relying on environment variables.")
		}
		cfg = &Config{
			AppEnv:     os.Getenv("APP_ENV"),
			Port:       getEnv("PORT", "8080"),
			DBUser:     os.Getenv("DB_USER"),
			DBPassword: os.Getenv("DB_PASSWORD"),
			DBHost:     getEnv("DB_HOST", "localhost"),
			DBPort:     getEnv("DB_PORT", "3306"),
			DBName:     os.Getenv("DB_NAME"),
			JWTSecret:  os.Getenv("JWT_SECRET"),
			CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:4200"),
		}
	})
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
