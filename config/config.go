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

	DBDriver   string // postgres, mysql, sqlite
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	DBLogLevel string // silent, error, warn, info

	UploadDir string

	SurveyApiURL   string
	SurveyApiKey   string
	SurveySyncCron string // empty disables the survey sync job

	RecalcCron       string // empty disables scheduled recalculation
	RecalcSemesterID uint

	AttainmentDefaultsFile string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "obe"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBLogLevel: getEnv("DB_LOG_LEVEL", "warn"),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads/marks"),

		SurveyApiURL:   getEnv("SURVEY_API_URL", ""),
		SurveyApiKey:   getEnv("SURVEY_API_KEY", ""),
		SurveySyncCron: getEnv("SURVEY_SYNC_CRON", ""),

		RecalcCron:       getEnv("RECALC_CRON", ""),
		RecalcSemesterID: uint(getEnvInt("RECALC_SEMESTER_ID", 0)),

		AttainmentDefaultsFile: getEnv("ATTAINMENT_DEFAULTS_FILE", "attainment.yaml"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.RecalcCron != "" && AppConfig.RecalcSemesterID == 0 {
		log.Println("Warning: RECALC_CRON is set without RECALC_SEMESTER_ID. Scheduled recalculation will be skipped.")
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
