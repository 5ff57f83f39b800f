package weather

import "context"

// Provider abstracts the upstream current-weather source (OpenWeatherMap).
type Provider interface {
	Name() string
	Current(ctx context.Context, city string) (Observation, error)
}
