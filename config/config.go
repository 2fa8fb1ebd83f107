// Package config provides environment-sourced configuration for the server.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server configuration.
type Config struct {
	// Server settings
	Port           int
	AllowedOrigins []string

	// Upstream completion API
	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string

	// Document store
	MongoURI     string
	DatabaseName string

	// Input bounds
	MaxNameLength    int
	MaxProblemLength int
	MaxMessageLength int

	// Timeouts
	RequestTimeout time.Duration
	ConnectTimeout time.Duration

	// Sampling profile for the completion API
	Temperature      float64
	MaxTokens        int
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
	StopSequences    []string
}

// Load loads configuration from environment variables. A .env file is
// applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnvInt("PORT", 8000),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173,http://127.0.0.1:3000")),

		GroqAPIKey:  getEnv("GROQ_API_KEY", ""),
		GroqBaseURL: getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:   getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),

		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName: getEnv("DATABASE_NAME", "pulse_ai"),

		MaxNameLength:    getEnvInt("MAX_NAME_LENGTH", 100),
		MaxProblemLength: getEnvInt("MAX_PROBLEM_LENGTH", 200),
		MaxMessageLength: getEnvInt("MAX_MESSAGE_LENGTH", 2000),

		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_MS", 30000)) * time.Millisecond,
		ConnectTimeout: time.Duration(getEnvInt("CONNECT_TIMEOUT_MS", 5000)) * time.Millisecond,

		Temperature:      getEnvFloat("AI_TEMPERATURE", 0.2),
		MaxTokens:        getEnvInt("AI_MAX_TOKENS", 600),
		TopP:             getEnvFloat("AI_TOP_P", 0.9),
		FrequencyPenalty: getEnvFloat("AI_FREQUENCY_PENALTY", 1.0),
		PresencePenalty:  getEnvFloat("AI_PRESENCE_PENALTY", 0.7),
		StopSequences:    []string{"\n\nPatient:", "\n\nUser:", "\n\n---", "END_OF_RESPONSE"},
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
