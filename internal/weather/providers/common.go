package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/i474232898/weather-lookup/internal/weather"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var errNoHTTPClient = errors.New("http client not configured")

// upstreamResponse is a fully read upstream reply.
type upstreamResponse struct {
	StatusCode int
	Body       []byte
}

// doRequest executes the request exactly once and reads the whole body.
// The status code is returned as-is; callers decide what it means.
func doRequest(
	ctx context.Context,
	client *http.Client,
	buildRequest func() (*http.Request, error),
) (upstreamResponse, error) {
	if client == nil {
		return upstreamResponse{}, errNoHTTPClient
	}

	req, err := buildRequest()
	if err != nil {
		return upstreamResponse{}, err
	}
	req = req.WithContext(ctx)

	span := trace.SpanFromContext(ctx)

	resp, err := client.Do(req)
	if err != nil {
		span.RecordError(err)
		return upstreamResponse{}, fmt.Errorf("%w: %v", weather.ErrUpstreamNetwork, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return upstreamResponse{}, fmt.Errorf("%w: reading body: %v", weather.ErrUpstreamNetwork, err)
	}

	return upstreamResponse{StatusCode: resp.StatusCode, Body: body}, nil
}
