package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	httpapi "github.com/i474232898/weather-lookup/internal/api/http"
	lambdaapi "github.com/i474232898/weather-lookup/internal/api/lambda"
	"github.com/i474232898/weather-lookup/internal/config"
	"github.com/i474232898/weather-lookup/internal/tracing"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	shutdownTracing, err := tracing.Init("weather-lookup", cfg.ZipkinURL)
	if err != nil {
		log.Fatalf("failed to init tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("error flushing traces: %v", err)
		}
	}()

	// Shared HTTP client for the upstream call. A zero timeout means none.
	httpClient := &http.Client{
		Timeout: cfg.UpstreamTimeout,
	}

	provider := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherBaseURL, cfg.OpenWeatherAPIKey)
	service := weather.NewService(provider, cfg.DefaultCity)
	handler := lambdaapi.NewHandler(service)

	if cfg.RunMode == config.RunModeLambda {
		// lambda.Start never returns; flush spans when the runtime sends SIGTERM.
		lambda.StartWithOptions(handler.Handle, lambda.WithEnableSIGTERM(func() {
			if err := shutdownTracing(context.Background()); err != nil {
				log.Printf("error flushing traces: %v", err)
			}
		}))
		return
	}

	serveHTTP(cfg, handler)
}

// serveHTTP runs the handler behind a local Fiber server until SIGINT/SIGTERM.
func serveHTTP(cfg *config.AppConfig, handler *lambdaapi.Handler) {
	app := httpapi.NewApp(handler)

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
