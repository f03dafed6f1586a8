package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding environment variable is unset
const (
	DefaultModelAnthropic = "claude-3-5-sonnet-20241022"
	DefaultModelOpenAI    = "gpt-4o"
	DefaultTemperature    = 0.2
	DefaultMaxTokens      = 4096
	DefaultTimeout        = 5 * time.Minute
	DefaultOutputDir      = "outputs"
)

// Settings holds all configuration for a workflow run. It is constructed
// once and passed down explicitly; engine code never reads the environment.
type Settings struct {
	AnthropicAPIKey string
	OpenAIAPIKey    string
	ModelAnthropic  string
	ModelOpenAI     string
	Temperature     float64
	MaxTokens       int
	Timeout         time.Duration
	OutputDir       string
}

// Load reads settings from the environment, honoring a .env file in the
// working directory when present.
func Load() (*Settings, error) {
	// Missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	s := &Settings{
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		ModelAnthropic:  envOr("BOPFLOW_MODEL_ANTHROPIC", DefaultModelAnthropic),
		ModelOpenAI:     envOr("BOPFLOW_MODEL_OPENAI", DefaultModelOpenAI),
		Temperature:     DefaultTemperature,
		MaxTokens:       DefaultMaxTokens,
		Timeout:         DefaultTimeout,
		OutputDir:       envOr("BOPFLOW_OUTPUT_DIR", DefaultOutputDir),
	}

	if v := os.Getenv("BOPFLOW_TEMPERATURE"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing BOPFLOW_TEMPERATURE: %w", err)
		}
		s.Temperature = t
	}
	if v := os.Getenv("BOPFLOW_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parsing BOPFLOW_MAX_TOKENS: %w", err)
		}
		s.MaxTokens = n
	}
	if v := os.Getenv("BOPFLOW_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parsing BOPFLOW_TIMEOUT_SECONDS: %w", err)
		}
		s.Timeout = time.Duration(n) * time.Second
	}

	return s, nil
}

// Validate checks that the settings can support the chosen backend
func (s *Settings) Validate(backendName string) error {
	if s.Temperature < 0 || s.Temperature > 2 {
		return fmt.Errorf("temperature %.2f out of range [0, 2]", s.Temperature)
	}
	if s.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", s.MaxTokens)
	}

	switch backendName {
	case "anthropic":
		if s.AnthropicAPIKey == "" {
			return fmt.Errorf("backend %q requires ANTHROPIC_API_KEY", backendName)
		}
	case "openai":
		if s.OpenAIAPIKey == "" {
			return fmt.Errorf("backend %q requires OPENAI_API_KEY", backendName)
		}
	case "mock":
		// no credentials needed
	default:
		return fmt.Errorf("unknown backend: %q", backendName)
	}
	return nil
}

// APIKey returns the credential for a backend name, empty when unset
func (s *Settings) APIKey(backendName string) string {
	switch backendName {
	case "anthropic":
		return s.AnthropicAPIKey
	case "openai":
		return s.OpenAIAPIKey
	}
	return ""
}

// Model returns the configured model for a backend name
func (s *Settings) Model(backendName string) string {
	switch backendName {
	case "anthropic":
		return s.ModelAnthropic
	case "openai":
		return s.ModelOpenAI
	}
	return ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
