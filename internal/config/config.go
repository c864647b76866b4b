package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Env      string
	Port     string
	LogLevel string

	// Remote pharmacy directory
	DirectoryURL string

	// Company identity used in templates and follow-up actions
	CompanyName  string
	CompanyEmail string
	CompanyPhone string

	// Template root directory
	PromptsDir string

	// OpenAI
	OpenAIAPIKey string
	OpenAIModel  string

	// SendGrid (optional; follow-up emails are stubbed when unset)
	SendGridAPIKey string
	FromEmail      string

	// Timeout applied to directory fetches and model calls
	DefaultTimeout time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Env:            getEnv("ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DirectoryURL:   getEnv("PHARMACY_API_URL", ""),
		CompanyName:    getEnv("COMPANY_NAME", "Pharmesol"),
		CompanyEmail:   getEnv("COMPANY_EMAIL", "contact@pharmesol.com"),
		CompanyPhone:   getEnv("COMPANY_PHONE", "+1-555-PHARMA-1"),
		PromptsDir:     getEnv("PROMPTS_DIR", "prompts"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		FromEmail:      getEnv("FROM_EMAIL", "noreply@pharmesol.com"),
		DefaultTimeout: getEnvAsDuration("DEFAULT_TIMEOUT", 30*time.Second),
	}
}

// Validate checks that required configuration values are present.
func (c *Config) Validate() error {
	if c.DirectoryURL == "" {
		return errors.New("config: PHARMACY_API_URL is not set")
	}
	if c.CompanyName == "" {
		return errors.New("config: COMPANY_NAME is not set")
	}
	if c.PromptsDir == "" {
		return errors.New("config: PROMPTS_DIR is not set")
	}
	if c.DefaultTimeout <= 0 {
		return errors.New("config: DEFAULT_TIMEOUT must be positive")
	}
	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration with a fallback.
// Accepts Go duration strings ("30s") or a bare number of seconds ("30").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	if secs, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	return defaultValue
}
