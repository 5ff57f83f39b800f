package httpapi

import (
	"errors"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	lambdaapi "github.com/i474232898/weather-lookup/internal/api/lambda"
	"github.com/i474232898/weather-lookup/internal/weather"
)

const appName = "weather-lookup"

// NewApp builds the Fiber app used by the local HTTP run mode.
func NewApp(handler *lambdaapi.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": appName,
		})
	})

	RegisterRoutes(app, handler)
	return app
}

// RegisterRoutes exposes the invocation handler as GET /weather. Each request
// is turned into the same proxy event API Gateway would deliver.
func RegisterRoutes(app *fiber.App, handler *lambdaapi.Handler) {
	app.Get("/weather", func(c *fiber.Ctx) error {
		resp, err := handler.Handle(c.UserContext(), toProxyRequest(c))
		if err != nil {
			if errors.Is(err, weather.ErrUpstreamNetwork) || errors.Is(err, weather.ErrUpstreamParse) {
				return fiber.NewError(fiber.StatusBadGateway, err.Error())
			}
			return err
		}

		for k, v := range resp.Headers {
			c.Set(k, v)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(resp.StatusCode).SendString(resp.Body)
	})
}

func toProxyRequest(c *fiber.Ctx) events.APIGatewayProxyRequest {
	var params map[string]string
	if q := c.Queries(); len(q) > 0 {
		params = make(map[string]string, len(q))
		for k, v := range q {
			// fasthttp reuses its buffers once the handler returns.
			params[k] = strings.Clone(v)
		}
	}

	return events.APIGatewayProxyRequest{
		HTTPMethod:            c.Method(),
		Path:                  c.Path(),
		QueryStringParameters: params,
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID: uuid.NewString(),
			Stage:     "local",
		},
	}
}
