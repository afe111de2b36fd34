package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI    string
	DBName      string
	Port        string
	GinMode     string
	CORSOrigins []string

	// LLM configuration
	LLMProvider  string // "openai" (default), "google"
	LLMModel     string
	OpenAIAPIKey string
	GeminiAPIKey string

	// Embeddings configuration
	EmbeddingsProvider    string // "openai" (default), "google"
	OpenAIEmbeddingsModel string
	GoogleEmbeddingsModel string

	// Ingestion pipeline
	VectorIndexPath string
	MaxChunkSize    int
	ChunkOverlap    int
	MinChunkSize    int

	// Audio transcription service
	TranscribeServiceURL string
	TranscribeTimeout    int

	// Report delivery
	ReportAPIURL string
	ReportCron   string

	// Redis (asynq worker queue)
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// Tracing
	TracingEnabled bool
	OTLPEndpoint   string
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017/quizgen"),
		DBName:      getEnv("DB_NAME", "quizgen"),
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"), ","),

		// LLM
		LLMProvider:  getEnv("LLM_PROVIDER", "openai"),
		LLMModel:     getEnv("LLM_MODEL", "gpt-4o-mini"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),

		// Embeddings
		EmbeddingsProvider:    getEnv("EMBEDDINGS_PROVIDER", "openai"),
		OpenAIEmbeddingsModel: getEnv("OPENAI_EMBEDDINGS_MODEL", "text-embedding-3-small"),
		GoogleEmbeddingsModel: getEnv("GOOGLE_EMBEDDINGS_MODEL", "text-embedding-004"),

		// Ingestion
		VectorIndexPath: getEnv("VECTOR_INDEX_PATH", "uploaded_doc_index.json"),
		MaxChunkSize:    getEnvInt("MAX_CHUNK_SIZE", 1000),
		ChunkOverlap:    getEnvInt("CHUNK_OVERLAP", 200),
		MinChunkSize:    getEnvInt("MIN_CHUNK_SIZE", 100),

		// Transcription
		TranscribeServiceURL: getEnv("TRANSCRIBE_SERVICE_URL", "http://localhost:8001"),
		TranscribeTimeout:    getEnvInt("TRANSCRIBE_TIMEOUT", 300),

		// Reports
		ReportAPIURL: getEnv("REPORT_API_URL", ""),
		ReportCron:   getEnv("REPORT_CRON", "0 * * * *"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		// Tracing
		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		OTLPEndpoint:   getEnv("OTLP_ENDPOINT", "localhost:4317"),
	}

	// Validate required fields
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required - set it in .env file")
		}
	case "google":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required - set it in .env file")
		}
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.LLMProvider)
	}

	if cfg.MaxChunkSize <= cfg.ChunkOverlap {
		return nil, fmt.Errorf("MAX_CHUNK_SIZE must be greater than CHUNK_OVERLAP")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
