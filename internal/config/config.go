package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Ai        AIConfig
	Assistant AssistantConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type AIConfig struct {
	CompletionBaseURL string // OpenAI-format proxy endpoint
	CompletionAPIKey  string
	CompletionModel   string
	TimeoutSeconds    int
}

type AssistantConfig struct {
	DefaultCity string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Ai: AIConfig{
			CompletionBaseURL: getEnv("COMPLETION_BASE_URL", "https://my-openai-gemini-theta-teal.vercel.app"),
			CompletionAPIKey:  getEnv("COMPLETION_API_KEY", ""),
			CompletionModel:   getEnv("COMPLETION_MODEL", "gemini-3-flash-preview"),
			TimeoutSeconds:    getEnvAsInt("COMPLETION_TIMEOUT_SECONDS", 60),
		},
		Assistant: AssistantConfig{
			DefaultCity: getEnv("DEFAULT_CITY", "深圳市"),
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
