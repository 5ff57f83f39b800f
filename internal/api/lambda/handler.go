// Package lambdaapi adapts the weather lookup to the API Gateway proxy
// invocation contract.
package lambdaapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// CityParam is the query-string key naming the city to look up.
const CityParam = "city"

var tracer = otel.Tracer("github.com/i474232898/weather-lookup/internal/api/lambda")

// Handler serves one invocation per call and holds no per-call state.
type Handler struct {
	service *weather.Service
}

func NewHandler(service *weather.Service) *Handler {
	return &Handler{service: service}
}

// Handle resolves the city, performs the lookup and wraps the report.
// The status code is always 200 once the upstream body parsed, whatever the
// upstream status was. Network and parse failures are returned as errors so
// the platform reports the invocation as failed.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	ctx, span := tracer.Start(ctx, "invocation")
	defer span.End()
	span.SetAttributes(attribute.String("faas.invocation_id", req.RequestContext.RequestID))

	// A nil map reads as empty.
	city := req.QueryStringParameters[CityParam]

	report, err := h.service.Lookup(ctx, city)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	body, err := json.Marshal(report)
	if err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("encoding report: %w", err)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Body:       string(body),
	}, nil
}
