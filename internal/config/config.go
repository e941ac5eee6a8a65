package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	OpenAIAPIKey string
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string

	TelegramToken string

	// RequestTimeout bounds one classification exchange end to end.
	RequestTimeout time.Duration
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvSeconds(k string, def int) time.Duration {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(def) * time.Second
}

// Load reads everything from the environment. Which keys are actually
// required depends on the binary: each main checks its own.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8000"),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),

		RequestTimeout: getEnvSeconds("REQUEST_TIMEOUT_SEC", 180),
	}
}
