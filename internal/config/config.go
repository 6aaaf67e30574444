// Package config loads service configuration from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Models    ModelsConfig
	LLM       LLMConfig
	Storage   StorageConfig
	CORS      CORSConfig
	IndexHTML string // Path of the front-end page; empty serves the embedded one
}

type ServerConfig struct {
	Port        string
	Environment string
}

type ModelsConfig struct {
	Available []string
	Default   string
	CompareA  string
	CompareB  string
}

type LLMConfig struct {
	Provider           string // generic, ollama, openai, anthropic
	Endpoint           string
	APIKey             string
	OllamaURL          string
	OpenAIKey          string
	OpenAIBaseURL      string
	AnthropicKey       string
	AnthropicBaseURL   string
	AnthropicMaxTokens int
	Timeout            time.Duration
	FallbackMode       string // mock or error
}

type StorageConfig struct {
	UploadDir    string
	WatchUploads bool
	Backend      string // memory or sqlite
	SQLiteDSN    string
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
}

// LoadConfig reads .env (if present) and the environment, then validates the result.
func LoadConfig() (*Config, error) {
	godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8000"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Models: ModelsConfig{
			Available: getEnvAsList("AVAILABLE_MODELS", "model-A,model-B,model-C"),
			Default:   getEnv("DEFAULT_MODEL", "model-A"),
			CompareA:  getEnv("COMPARE_MODEL_A", "model-A"),
			CompareB:  getEnv("COMPARE_MODEL_B", "model-B"),
		},
		LLM: LLMConfig{
			Provider:           getEnv("LLM_PROVIDER", "generic"),
			Endpoint:           getEnv("LLM_ENDPOINT", "https://api.liteLLM.com/generate"),
			APIKey:             getEnv("LLM_API_KEY", ""),
			OllamaURL:          getEnv("OLLAMA_URL", "http://localhost:11434"),
			OpenAIKey:          getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", ""),
			AnthropicKey:       getEnv("ANTHROPIC_API_KEY", ""),
			AnthropicBaseURL:   getEnv("ANTHROPIC_BASE_URL", ""),
			AnthropicMaxTokens: getEnvAsInt("ANTHROPIC_MAX_TOKENS", 1024),
			Timeout:            time.Duration(getEnvAsInt("GENERATION_TIMEOUT_SECONDS", 30)) * time.Second,
			FallbackMode:       getEnv("FALLBACK_MODE", "mock"),
		},
		Storage: StorageConfig{
			UploadDir:    getEnv("UPLOAD_DIR", "uploaded_files"),
			WatchUploads: getEnvAsBool("WATCH_UPLOADS", true),
			Backend:      getEnv("STORE_BACKEND", "memory"),
			SQLiteDSN:    getEnv("SQLITE_DSN", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getEnvAsList("CORS_ALLOWED_ORIGINS", "*"),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
		},
		IndexHTML: getEnv("INDEX_HTML", ""),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "generic", "ollama", "openai", "anthropic":
	default:
		return fmt.Errorf("LLM_PROVIDER: unknown provider %q", c.LLM.Provider)
	}
	switch c.LLM.FallbackMode {
	case "mock", "error":
	default:
		return fmt.Errorf("FALLBACK_MODE: must be mock or error, got %q", c.LLM.FallbackMode)
	}
	switch c.Storage.Backend {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("STORE_BACKEND: must be memory or sqlite, got %q", c.Storage.Backend)
	}
	if len(c.Models.Available) == 0 {
		return fmt.Errorf("AVAILABLE_MODELS: at least one model is required")
	}
	if !contains(c.Models.Available, c.Models.Default) {
		return fmt.Errorf("DEFAULT_MODEL: %q is not in AVAILABLE_MODELS", c.Models.Default)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("GENERATION_TIMEOUT_SECONDS: must be positive")
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated value, dropping blanks.
func getEnvAsList(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
