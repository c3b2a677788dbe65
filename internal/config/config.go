package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	DefaultEndpoint     = "https://chatbot-h0uz.onrender.com/chat"
	DefaultGeminiModel  = "gemini-2.5-flash"
	DefaultSystemPrompt = "You are a friendly, concise assistant chatting in a terminal. Keep replies short."
)

// ClientConfig configures the terminal chat client
type ClientConfig struct {
	Endpoint   string
	Timeout    time.Duration // 0 leaves the transport default
	LogFile    string
	LogLevel   string
	Markdown   bool
	ShowBanner bool
}

// ServerConfig configures the reference chat-reply server
type ServerConfig struct {
	Addr         string
	GeminiAPIKey string
	GeminiModel  string
	SystemPrompt string
	LogLevel     string
}

// LoadClient reads client settings from the environment and an optional .env file
func LoadClient() *ClientConfig {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &ClientConfig{
		Endpoint:   getEnvOrDefault("CHATBOT_URL", DefaultEndpoint),
		Timeout:    getEnvAsDurationOrDefault("CHATBOT_TIMEOUT", 0),
		LogFile:    getEnvOrDefault("CHATBOT_LOG_FILE", filepath.Join(os.TempDir(), "chatbot.log")),
		LogLevel:   getEnvOrDefault("CHATBOT_LOG_LEVEL", "info"),
		Markdown:   getEnvAsBoolOrDefault("CHATBOT_MARKDOWN", false),
		ShowBanner: getEnvAsBoolOrDefault("CHATBOT_SHOW_BANNER", true),
	}
}

// LoadServer reads server settings from the environment and an optional .env file
func LoadServer() (*ServerConfig, error) {
	_ = godotenv.Load()

	addr, err := parseAddr(os.Getenv("PORT"))
	if err != nil {
		return nil, err
	}

	return &ServerConfig{
		Addr:         addr,
		GeminiAPIKey: getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:  getEnvOrDefault("GEMINI_MODEL", DefaultGeminiModel),
		SystemPrompt: getEnvOrDefault("CHATBOT_SYSTEM_PROMPT", DefaultSystemPrompt),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
	}, nil
}

// parseAddr accepts a bare port, ":port" or "host:port"
func parseAddr(port string) (string, error) {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "8080"
	}
	if strings.Contains(port, " ") {
		return "", errors.Errorf("invalid PORT value: %q", port)
	}
	if strings.Contains(port, ":") {
		return port, nil
	}
	return ":" + port, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}
	return d
}
