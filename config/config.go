package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	MediaStoreURL    string // Base URL of the remote media store (Supabase project URL)
	MediaStoreKey    string // Service key with upload/delete rights
	MediaStoreBucket string
	UploadTimeout    int // Seconds allowed for a full course media ingestion
	MaxUploadBytes   int // Fiber body limit for multipart course uploads

	AdminEmail    string // Seeded admin account, replaces any hard-coded credential
	AdminPassword string

	EmailSender string
	Password    string // SMTP Password
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "learninglife"),

		MediaStoreURL:    getEnv("MEDIA_STORE_URL", ""),
		MediaStoreKey:    getEnv("MEDIA_STORE_KEY", ""),
		MediaStoreBucket: getEnv("MEDIA_STORE_BUCKET", "courses"),
		UploadTimeout:    getEnvInt("UPLOAD_TIMEOUT_SECONDS", 120),
		MaxUploadBytes:   getEnvInt("MAX_UPLOAD_BYTES", 512*1024*1024),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("PASSWORD", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.MediaStoreURL == "" {
		log.Println("Warning: MEDIA_STORE_URL is not set. Course media uploads will fail.")
	}
	if AppConfig.AdminEmail == "" || AppConfig.AdminPassword == "" {
		log.Println("Warning: ADMIN_EMAIL/ADMIN_PASSWORD not set. No admin account will be seeded.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
