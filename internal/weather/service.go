package weather

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DefaultCity is used when a lookup names no city.
const DefaultCity = "Toronto"

var tracer = otel.Tracer("github.com/i474232898/weather-lookup/internal/weather")

// Service resolves a city, asks the provider for current conditions and
// projects them into a Report.
type Service struct {
	provider    Provider
	defaultCity string
}

// NewService creates a new Service. An empty defaultCity falls back to DefaultCity.
func NewService(provider Provider, defaultCity string) *Service {
	if defaultCity == "" {
		defaultCity = DefaultCity
	}
	return &Service{
		provider:    provider,
		defaultCity: defaultCity,
	}
}

// ResolveCity returns city, or the configured default when city is empty.
func (s *Service) ResolveCity(city string) string {
	if city == "" {
		return s.defaultCity
	}
	return city
}

// Lookup performs exactly one upstream call. Missing upstream fields degrade
// to nil; network and parse failures are returned untouched.
func (s *Service) Lookup(ctx context.Context, city string) (Report, error) {
	city = s.ResolveCity(city)

	ctx, span := tracer.Start(ctx, "weather.lookup")
	defer span.End()
	span.SetAttributes(
		attribute.String("weather.city", city),
		attribute.String("weather.provider", s.provider.Name()),
	)

	obs, err := s.provider.Current(ctx, city)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Report{}, err
	}

	if obs.StatusCode >= 400 {
		log.Printf("DEBUG: provider %s answered %d for %s", s.provider.Name(), obs.StatusCode, city)
	}
	span.SetAttributes(attribute.Int("http.status_code", obs.StatusCode))

	return Project(city, obs), nil
}

// Project builds a Report from an observation.
func Project(city string, obs Observation) Report {
	return Report{
		City:        city,
		Temperature: obs.TemperatureC,
		Weather:     obs.Description,
	}
}
