package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv               string
	AppPort              string
	AllowedOrigins       string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBMaxIdleConns       int
	DBMaxOpenConns       int
	JWTSecret            string
	JWTExpirationSeconds int
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("%s not set, defaulting to %s", key, defaultValue)
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Invalid integer value for %s, defaulting to %d", key, defaultValue)
	}
	return defaultValue
}

func Load() Config {
	log.Println("Loading configuration...")

	// Load .env only if the file exists; process environment wins otherwise.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("Failed to load .env file: %v", err)
		}
	}

	return Config{
		AppEnv:               getEnv("APP_ENV", "development"),
		AppPort:              getEnv("APP_PORT", "3000"),
		AllowedOrigins:       getEnv("ALLOWED_ORIGINS", "*"),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBUser:               getEnv("DB_USER", "taskhive"),
		DBPassword:           getEnv("DB_PASSWORD", "taskhive"),
		DBName:               getEnv("DB_NAME", "taskhive"),
		DBMaxIdleConns:       getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns:       getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
		JWTSecret:            getEnv("JWT_SECRET", "your-super-secret-key-change-this-in-production"),
		JWTExpirationSeconds: getEnvAsInt("JWT_EXPIRATION_SECONDS", 3600),
	}
}
