package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Catalog  CatalogConfig
	Session  SessionConfig
	Pricing  PricingConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type CatalogConfig struct {
	ResourceDir  string
	SnapshotPath string
}

type SessionConfig struct {
	Store         string // "memory" or "redis"
	TTL           time.Duration
	SweepInterval time.Duration

	// Adaptive question batch sizes.
	BatchComplexFirst int
	BatchComplexNext  int
	BatchDefaultFirst int
	BatchDefaultNext  int
}

type PricingConfig struct {
	MatchThreshold    float64
	FallbackEP        float64
	FallbackMinEP     float64
	FallbackMaxEP     float64
	RiskBufferMin     float64
	RiskBufferMax     float64
	GenerationTimeout time.Duration
}

type AIConfig struct {
	LLMProvider   string // "ollama" or "none"
	LLMModel      string // e.g. "llama3", "qwen2.5"
	OllamaBaseURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Catalog: CatalogConfig{
			ResourceDir:  getEnv("CATALOG_RESOURCE_DIR", "resources/catalog"),
			SnapshotPath: getEnv("CATALOG_SNAPSHOT_PATH", "data/catalog.json"),
		},
		Session: SessionConfig{
			Store:         getEnv("SESSION_STORE", "memory"),
			TTL:           getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", 6*time.Hour),

			BatchComplexFirst: getEnvAsInt("SESSION_BATCH_COMPLEX_FIRST", 3),
			BatchComplexNext:  getEnvAsInt("SESSION_BATCH_COMPLEX_NEXT", 2),
			BatchDefaultFirst: getEnvAsInt("SESSION_BATCH_DEFAULT_FIRST", 5),
			BatchDefaultNext:  getEnvAsInt("SESSION_BATCH_DEFAULT_NEXT", 3),
		},
		Pricing: PricingConfig{
			MatchThreshold:    getEnvAsFloat("PRICING_MATCH_THRESHOLD", 0.6),
			FallbackEP:        getEnvAsFloat("PRICING_FALLBACK_EP", 100),
			FallbackMinEP:     getEnvAsFloat("PRICING_FALLBACK_MIN_EP", 80),
			FallbackMaxEP:     getEnvAsFloat("PRICING_FALLBACK_MAX_EP", 120),
			RiskBufferMin:     getEnvAsFloat("RISK_BUFFER_MIN", 0.05),
			RiskBufferMax:     getEnvAsFloat("RISK_BUFFER_MAX", 0.10),
			GenerationTimeout: getEnvAsDuration("GENERATION_TIMEOUT", 60*time.Second),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "none"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
