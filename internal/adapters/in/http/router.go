// Package http is the REST adapter of the order service. It maps the
// generated OpenAPI server interface onto the command and query handlers and
// renders every failure as a uniform JSON error body.
package http

import (
	"log/slog"

	"logistics/internal/generated/servers"
	"logistics/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RouterOptions carries the cross-cutting dependencies of the router.
type RouterOptions struct {
	Logger  *slog.Logger
	Metrics *metrics.ServerMetrics
	// Spec enables request validation and the Swagger UI when set.
	Spec *openapi3.T
}

// NewRouter builds the echo instance serving server, /metrics and /swagger/.
//
// Middleware order, outermost first: panic recovery, request id, request
// logging, metrics, schema validation.
func NewRouter(server *Server, opts RouterOptions) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(RequestID())
	if opts.Logger != nil {
		e.Use(RequestLogger(opts.Logger))
	}
	if opts.Metrics != nil {
		e.Use(Metrics(opts.Metrics))
		e.GET("/metrics", echo.WrapHandler(opts.Metrics.Handler()))
	}

	if opts.Spec != nil {
		validator, err := OpenAPIValidator(opts.Spec)
		if err != nil {
			return nil, err
		}
		e.Use(validator)

		if err = registerSwagger(e, opts.Spec); err != nil {
			return nil, err
		}
	}

	servers.RegisterHandlers(e, server)
	return e, nil
}
