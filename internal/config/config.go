package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server       ServerConfig
	Log          LogConfig
	Storage      StorageConfig
	LanguageData LanguageDataConfig
	Match        MatchConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type StorageConfig struct {
	MaxFileSize int64
}

type LanguageDataConfig struct {
	Path         string
	URL          string
	AllowFetch   bool
	FetchTimeout time.Duration
}

type MatchConfig struct {
	StrongThreshold   float64
	ModerateThreshold float64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	env := getEnv("ENV", "development")

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  env,
		},
		Log: LogConfig{
			JSON:  getEnvAsBool("LOG_JSON", env == "production"),
			Debug: getEnvAsBool("LOG_DEBUG", env == "development"),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		LanguageData: LanguageDataConfig{
			Path:         getEnv("NLTK_DATA_PATH", "./nltk_data"),
			URL:          getEnv("NLTK_DATA_URL", ""),
			AllowFetch:   getEnvAsBool("LANGUAGE_DATA_FETCH", true),
			FetchTimeout: getEnvAsDuration("LANGUAGE_DATA_TIMEOUT", "60s"),
		},
		Match: MatchConfig{
			StrongThreshold:   getEnvAsFloat("MATCH_STRONG_THRESHOLD", 70),
			ModerateThreshold: getEnvAsFloat("MATCH_MODERATE_THRESHOLD", 40),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
