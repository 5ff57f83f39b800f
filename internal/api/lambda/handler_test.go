package lambdaapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/weather/providers"
)

// newTestHandler wires a Handler against a fake upstream and returns the
// channel of city names the upstream was asked for.
func newTestHandler(t *testing.T, status int, body string) (*Handler, <-chan string) {
	t.Helper()

	cities := make(chan string, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cities <- r.URL.Query().Get("q")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	p := providers.NewOpenWeatherProvider(srv.Client(), srv.URL, "test-key")
	return NewHandler(weather.NewService(p, "")), cities
}

func TestHandleDefaultsToToronto(t *testing.T) {
	for name, params := range map[string]map[string]string{
		"nil params":  nil,
		"no city key": {"units": "imperial"},
		"empty city":  {"city": ""},
	} {
		t.Run(name, func(t *testing.T) {
			h, cities := newTestHandler(t, http.StatusOK, `{}`)

			resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
				QueryStringParameters: params,
			})
			require.NoError(t, err)

			assert.Equal(t, "Toronto", <-cities)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, `{"city":"Toronto","temperature":null,"weather":null}`, resp.Body)
		})
	}
}

func TestHandleEchoesCity(t *testing.T) {
	h, cities := newTestHandler(t, http.StatusOK, `{"main":{"temp":17.25},"weather":[{"description":"light rain"}]}`)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		QueryStringParameters: map[string]string{"city": "Paris"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Paris", <-cities)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"city":"Paris","temperature":17.25,"weather":"light rain"}`, resp.Body)
}

func TestHandleFullPayload(t *testing.T) {
	h, _ := newTestHandler(t, http.StatusOK, `{"main":{"temp":21.5},"weather":[{"description":"clear sky"}]}`)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"city":"Toronto","temperature":21.5,"weather":"clear sky"}`, resp.Body)
}

func TestHandleMissingWeather(t *testing.T) {
	h, _ := newTestHandler(t, http.StatusOK, `{"main":{"temp":10}}`)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"city":"Toronto","temperature":10,"weather":null}`, resp.Body)
}

func TestHandleUpstreamErrorStatusStill200(t *testing.T) {
	h, _ := newTestHandler(t, http.StatusNotFound, `{"cod":"404","message":"city not found"}`)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		QueryStringParameters: map[string]string{"city": "Nowhere"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"city":"Nowhere","temperature":null,"weather":null}`, resp.Body)
}

func TestHandleNonJSONFails(t *testing.T) {
	h, _ := newTestHandler(t, http.StatusOK, "<html>maintenance</html>")

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{})
	require.Error(t, err)

	assert.ErrorIs(t, err, weather.ErrUpstreamParse)
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)
}
