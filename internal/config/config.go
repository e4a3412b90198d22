// Package config loads process settings from the environment, with an
// optional .env file underneath.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type LLMConfig struct {
	Provider        string
	OpenAIKey       string
	OpenAIModel     string
	OpenAIBaseURL   string
	GeminiKey       string
	GeminiModel     string
	MaxOutputTokens int
	Temperature     float32
	MaxInFlight     int64
}

type Config struct {
	HTTP struct {
		Port string
	}
	LLM      LLMConfig
	Pipeline struct {
		ItineraryTimeout time.Duration
		WeatherTimeout   time.Duration
	}
	Log struct {
		// Console is "stdout" or "stderr". It is not read from the environment.
		Console string
		File    string
		Level   string
	}
	Maps struct {
		APIKey string
	}
}

// LoadDotEnv reads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration from the environment. Every invalid value is
// reported in the returned error.
func Load() (Config, error) {
	var (
		cfg  Config
		errs []error
	)

	cfg.HTTP.Port = envOrDefault("PORT", "8080")

	cfg.LLM.Provider = strings.ToLower(envOrDefault("LLM_PROVIDER", ProviderOpenAI))
	cfg.LLM.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.LLM.OpenAIModel = envOrDefault("OPENAI_MODEL", "gpt-3.5-turbo-instruct")
	cfg.LLM.OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")
	cfg.LLM.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.LLM.GeminiModel = envOrDefault("GEMINI_MODEL", "gemini-1.5-flash")

	switch cfg.LLM.Provider {
	case ProviderOpenAI:
		if cfg.LLM.OpenAIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required when LLM_PROVIDER=openai"))
		}
	case ProviderGemini:
		if cfg.LLM.GeminiKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required when LLM_PROVIDER=gemini"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported LLM_PROVIDER %q, use %q or %q", cfg.LLM.Provider, ProviderOpenAI, ProviderGemini))
	}

	maxTokens, err := envInt("LLM_MAX_OUTPUT_TOKENS", 2048)
	if err == nil && maxTokens <= 0 {
		err = fmt.Errorf("LLM_MAX_OUTPUT_TOKENS must be positive, got %d", maxTokens)
	}
	errs = append(errs, err)
	cfg.LLM.MaxOutputTokens = maxTokens

	temperature, err := envFloat("LLM_TEMPERATURE", 0.7)
	if err == nil && (temperature < 0 || temperature > 2) {
		err = fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2, got %g", temperature)
	}
	errs = append(errs, err)
	cfg.LLM.Temperature = float32(temperature)

	inFlight, err := envInt("LLM_MAX_IN_FLIGHT", 0)
	if err == nil && inFlight < 0 {
		err = fmt.Errorf("LLM_MAX_IN_FLIGHT must not be negative, got %d", inFlight)
	}
	errs = append(errs, err)
	cfg.LLM.MaxInFlight = int64(inFlight)

	cfg.Pipeline.ItineraryTimeout, err = envDuration("ITINERARY_TIMEOUT", 90*time.Second)
	errs = append(errs, err)
	cfg.Pipeline.WeatherTimeout, err = envDuration("WEATHER_TIMEOUT", 60*time.Second)
	errs = append(errs, err)

	cfg.Log.Console = "stdout"
	cfg.Log.File = envOrDefault("LOG_FILE", "app.log")
	cfg.Log.Level = envOrDefault("LOG_LEVEL", "info")

	cfg.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return def, fmt.Errorf("%s must be a number, got %q", key, v)
	}
	return f, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s must be a duration such as 90s, got %q", key, v)
	}
	if d <= 0 {
		return def, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return d, nil
}
