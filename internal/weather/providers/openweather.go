package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultOpenWeatherURL is the OpenWeatherMap current-weather endpoint.
const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	units   string
	client  *http.Client
}

// NewOpenWeatherProvider builds a provider. An empty baseURL selects
// DefaultOpenWeatherURL. The api key is sent even when empty.
func NewOpenWeatherProvider(client *http.Client, baseURL, apiKey string) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		units:   "metric",
		client:  client,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// openWeatherPayload is the subset of the current-weather schema we read.
// Each level stays raw until it is needed, so absent, null and mistyped
// values all resolve to nil.
type openWeatherPayload struct {
	Main    json.RawMessage `json:"main"`
	Weather json.RawMessage `json:"weather"`
}

type openWeatherMain struct {
	Temp json.RawMessage `json:"temp"`
}

type openWeatherCondition struct {
	Description json.RawMessage `json:"description"`
}

// Current fetches current conditions for city. The body is decoded whatever
// the upstream status is, so an error reply such as
// {"cod":401,"message":"Invalid API key"} yields an empty Observation.
func (p *OpenWeatherProvider) Current(ctx context.Context, city string) (weather.Observation, error) {
	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, p.requestURL(city), nil)
	}

	resp, err := doRequest(ctx, p.client, buildRequest)
	if err != nil {
		return weather.Observation{}, err
	}

	payload, err := decodeOpenWeather(resp.Body)
	if err != nil {
		return weather.Observation{}, err
	}

	return weather.Observation{
		StatusCode:   resp.StatusCode,
		TemperatureC: payload.temperature(),
		Description:  payload.description(),
	}, nil
}

// temperature is main?.temp.
func (p openWeatherPayload) temperature() *float64 {
	m := optional[openWeatherMain](p.Main)
	if m == nil {
		return nil
	}
	return optional[float64](m.Temp)
}

// description is weather?.[0]?.description.
func (p openWeatherPayload) description() *string {
	conds := optional[[]openWeatherCondition](p.Weather)
	if conds == nil || len(*conds) == 0 {
		return nil
	}
	return optional[string]((*conds)[0].Description)
}

// optional decodes raw into a T, or returns nil when raw is absent, null or
// of another JSON type.
func optional[T any](raw json.RawMessage) *T {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}

// decodeOpenWeather fails only on bodies that are not JSON at all. A JSON
// value that is not an object decodes to an empty payload.
func decodeOpenWeather(body []byte) (openWeatherPayload, error) {
	var payload openWeatherPayload
	if !json.Valid(body) {
		return payload, fmt.Errorf("%w: %q", weather.ErrUpstreamParse, truncate(body, 64))
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("DEBUG: openweathermap body is not an object: %v", err)
		return openWeatherPayload{}, nil
	}
	return payload, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

func (p *OpenWeatherProvider) requestURL(city string) string {
	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", p.apiKey)
	values.Set("units", p.units)

	return fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
}
