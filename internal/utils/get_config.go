package utils

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

type Config struct {
	AppEnv string `yaml:"APP_ENV" envconfig:"APP_ENV"`
	Port   string `yaml:"PORT" envconfig:"PORT"`

	// Database configuration
	DBUser     string `yaml:"DB_USER" envconfig:"DB_USER"`
	DBName     string `yaml:"DB_NAME" envconfig:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD" envconfig:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT" envconfig:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST" envconfig:"DB_HOST"`

	// Identity
	AuthProvider        string `yaml:"AUTH_PROVIDER" envconfig:"AUTH_PROVIDER"`
	JWTSecret           string `yaml:"JWT_SECRET" envconfig:"JWT_SECRET"`
	FirebaseCredentials string `yaml:"FIREBASE_CREDENTIALS" envconfig:"FIREBASE_CREDENTIALS"`

	// Push delivery
	PushProvider string `yaml:"PUSH_PROVIDER" envconfig:"PUSH_PROVIDER"`
	ExpoPushURL  string `yaml:"EXPO_PUSH_URL" envconfig:"EXPO_PUSH_URL"`

	// OCR
	OCRProvider  string `yaml:"OCR_PROVIDER" envconfig:"OCR_PROVIDER"`
	GeminiAPIKey string `yaml:"GEMINI_API_KEY" envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `yaml:"GEMINI_MODEL" envconfig:"GEMINI_MODEL"`
	AIModelURL   string `yaml:"AI_MODEL_URL" envconfig:"AI_MODEL_URL"`

	// Shelf-life lookup
	OFFSearchURL          string `yaml:"OFF_SEARCH_URL" envconfig:"OFF_SEARCH_URL"`
	ExternalTimeoutSecond int    `yaml:"EXTERNAL_TIMEOUT_SECONDS" envconfig:"EXTERNAL_TIMEOUT_SECONDS"`
	RedisAddr             string `yaml:"REDIS_ADDR" envconfig:"REDIS_ADDR"`
	ShelfLifeCacheTTLHour int    `yaml:"SHELF_LIFE_CACHE_TTL_HOURS" envconfig:"SHELF_LIFE_CACHE_TTL_HOURS"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST" envconfig:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT" envconfig:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME" envconfig:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL" envconfig:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD" envconfig:"SMTP_AUTH_PASSWORD"`
	SweepReportEmail string `yaml:"SWEEP_REPORT_EMAIL" envconfig:"SWEEP_REPORT_EMAIL"`

	SweepIntervalMinute int `yaml:"SWEEP_INTERVAL_MINUTES" envconfig:"SWEEP_INTERVAL_MINUTES"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET" envconfig:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION" envconfig:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY" envconfig:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY" envconfig:"AWS_SECRET_KEY"`
}

var config Config

// LoadConfig reads config.yaml, then lets environment variables override it.
func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	if err := envconfig.Process("", &config); err != nil {
		log.Printf("Error reading environment: %s\n", err)
	}
	applyDefaults(&config)
}

func applyDefaults(c *Config) {
	if c.AppEnv == "" {
		c.AppEnv = "dev"
	}
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.AuthProvider == "" {
		c.AuthProvider = "jwt"
	}
	if c.PushProvider == "" {
		c.PushProvider = "expo"
	}
	if c.ExpoPushURL == "" {
		c.ExpoPushURL = "https://exp.host/--/api/v2/push/send"
	}
	if c.OCRProvider == "" {
		c.OCRProvider = "gemini"
	}
	if c.GeminiModel == "" {
		c.GeminiModel = "gemini-1.5-flash"
	}
	if c.OFFSearchURL == "" {
		c.OFFSearchURL = "https://world.openfoodfacts.org/cgi/search.pl"
	}
	if c.ExternalTimeoutSecond <= 0 {
		c.ExternalTimeoutSecond = 10
	}
	if c.ShelfLifeCacheTTLHour <= 0 {
		c.ShelfLifeCacheTTLHour = 24
	}
	if c.SweepIntervalMinute <= 0 {
		c.SweepIntervalMinute = 24 * 60
	}
}

func GetConfig(key string) string {
	switch key {
	case "APP_ENV":
		return config.AppEnv
	case "PORT":
		return config.Port
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "AUTH_PROVIDER":
		return config.AuthProvider
	case "JWT_SECRET":
		return config.JWTSecret
	case "FIREBASE_CREDENTIALS":
		return config.FirebaseCredentials
	case "PUSH_PROVIDER":
		return config.PushProvider
	case "EXPO_PUSH_URL":
		return config.ExpoPushURL
	case "OCR_PROVIDER":
		return config.OCRProvider
	case "GEMINI_API_KEY":
		return config.GeminiAPIKey
	case "GEMINI_MODEL":
		return config.GeminiModel
	case "AI_MODEL_URL":
		return config.AIModelURL
	case "OFF_SEARCH_URL":
		return config.OFFSearchURL
	case "EXTERNAL_TIMEOUT_SECONDS":
		return strconv.Itoa(config.ExternalTimeoutSecond)
	case "REDIS_ADDR":
		return config.RedisAddr
	case "SHELF_LIFE_CACHE_TTL_HOURS":
		return strconv.Itoa(config.ShelfLifeCacheTTLHour)
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "SWEEP_REPORT_EMAIL":
		return config.SweepReportEmail
	case "SWEEP_INTERVAL_MINUTES":
		return strconv.Itoa(config.SweepIntervalMinute)
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}

func ExternalTimeout() time.Duration {
	return time.Duration(config.ExternalTimeoutSecond) * time.Second
}

func ShelfLifeCacheTTL() time.Duration {
	return time.Duration(config.ShelfLifeCacheTTLHour) * time.Hour
}

func SweepInterval() time.Duration {
	return time.Duration(config.SweepIntervalMinute) * time.Minute
}
