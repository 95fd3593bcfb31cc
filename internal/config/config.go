package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	MongoURI     string
	DatabaseName string
	JWTSecret    string
	Origin       string
	UploadDir    string
	LogLevel     string
	Env          string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	Timeout      time.Duration
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		if os.IsNotExist(err) {
			// .env file not found, proceed with default values
		} else {
			panic("Error loading .env file")
		}
	}
	return Config{
		Port:         getEnv("PORT", "5000"),
		MongoURI:     getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DatabaseName: getEnv("DATABASE_NAME", "attendance_db"),
		JWTSecret:    getEnv("JWT_SECRET", "dev-secret-change-me"),
		Origin:       getEnv("CORS_ORIGIN", "http://localhost:3000"),
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Env:          getEnv("APP_ENV", "dev"),
		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		Timeout:      10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
