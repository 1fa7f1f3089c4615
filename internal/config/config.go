package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v6"
	_ "github.com/joho/godotenv/autoload"
)

const (
	ProviderLangchain = "langchain"
	ProviderOpenAI    = "openai"
)

// Config is built once at startup and passed to the components that need it.
// Nothing mutates it afterwards.
type Config struct {
	Port int `env:"PORT" envDefault:"8000"`

	// LLM settings
	APIKey      string  `env:"TOGETHER_API_KEY"`
	LLMProvider string  `env:"LLM_PROVIDER" envDefault:"langchain"`
	LLMBaseURL  string  `env:"LLM_BASE_URL" envDefault:"https://api.together.xyz/v1"`
	ModelName   string  `env:"MODEL_NAME" envDefault:"llama-2/7b"`
	MaxTokens   int     `env:"MAX_TOKENS" envDefault:"500"`
	Temperature float64 `env:"TEMPERATURE" envDefault:"0.7"`

	// Catalog
	DataPath string `env:"DATA_PATH" envDefault:"data/products.json"`

	// HTTP
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"true"`
}

// Load reads the configuration from the environment (and .env, if present).
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.LLMProvider) {
	case ProviderLangchain, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("TEMPERATURE must be within [0, 2], got %v", c.Temperature)
	}
	if strings.TrimSpace(c.ModelName) == "" {
		return fmt.Errorf("MODEL_NAME must not be empty")
	}
	if strings.TrimSpace(c.DataPath) == "" {
		return fmt.Errorf("DATA_PATH must not be empty")
	}
	return nil
}
