package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/weather/providers"
)

const (
	RunModeLambda = "lambda"
	RunModeHTTP   = "http"
)

var validate = validator.New()

type AppConfig struct {
	// OpenWeatherAPIKey may be empty; the upstream then rejects the call.
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string `validate:"required,url"`

	DefaultCity string `validate:"required"`

	// UpstreamTimeout bounds the outbound call (0 = no timeout).
	UpstreamTimeout time.Duration `validate:"gte=0"`

	// RunMode selects the Lambda runtime or the local HTTP server.
	RunMode string `validate:"oneof=lambda http"`
	Port    string `validate:"required,numeric"`

	// ZipkinURL enables span export when set.
	ZipkinURL string `validate:"omitempty,url"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", providers.DefaultOpenWeatherURL)
	cfg.DefaultCity = getenvDefault("DEFAULT_CITY", weather.DefaultCity)

	timeout, err := time.ParseDuration(getenvDefault("UPSTREAM_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
	}
	cfg.UpstreamTimeout = timeout

	cfg.RunMode = getenvDefault("RUN_MODE", RunModeLambda)
	cfg.Port = getenvDefault("PORT", "8080")
	cfg.ZipkinURL = os.Getenv("ZIPKIN_URL")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
