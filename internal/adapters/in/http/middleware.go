package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"logistics/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// requestIDLength keeps request ids short enough to scan in logs.
const requestIDLength = 8

// RequestID tags every request with a short id, returned as X-Request-ID.
// An id sent by the client is kept.
func RequestID() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return uuid.NewString()[:requestIDLength]
		},
	})
}

// RequestLogger logs one line per request after it completes. 5xx responses
// are logged at Error, 4xx at Warn.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http_request")

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogRequestID: true,
		LogMethod:    true,
		LogURI:       true,
		LogRemoteIP:  true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			switch {
			case v.Status >= http.StatusInternalServerError:
				level = slog.LevelError
			case v.Status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			attrs := []slog.Attr{
				slog.String("request_id", v.RequestID),
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.String("remote_ip", v.RemoteIP),
				slog.Int("status", v.Status),
				slog.Int64("duration_ms", v.Latency.Milliseconds()),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			logger.LogAttrs(c.Request().Context(), level, "Request handled", attrs...)
			return nil
		},
	})
}

// Metrics counts requests and records their latency per route template.
func Metrics(m *metrics.ServerMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			m.Requests.WithLabelValues(route, method, status).Inc()
			m.LatencyMS.WithLabelValues(route, method).Observe(float64(time.Since(start).Milliseconds()))
			return nil
		}
	}
}

// RequestValidationError is a request that does not match the API document.
type RequestValidationError struct {
	Message string
	Details map[string]string
	Err     error
}

func (e *RequestValidationError) Error() string {
	return e.Message
}

func (e *RequestValidationError) Unwrap() error {
	return e.Err
}

// OpenAPIValidator rejects requests whose parameters or body do not match
// doc. Requests for paths the document does not describe pass through.
func OpenAPIValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
			}
			if validateErr := openapi3filter.ValidateRequest(req.Context(), input); validateErr != nil {
				return describeValidationError(validateErr)
			}

			return next(c)
		}
	}, nil
}

func describeValidationError(err error) *RequestValidationError {
	var requestErr *openapi3filter.RequestError
	if !errors.As(err, &requestErr) {
		return &RequestValidationError{Message: "Request is invalid", Err: err}
	}

	field := "body"
	if requestErr.Parameter != nil {
		field = requestErr.Parameter.Name
	}

	reason := requestErr.Reason
	var schemaErr *openapi3.SchemaError
	if errors.As(requestErr.Err, &schemaErr) {
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			field = strings.Join(pointer, ".")
		}
		reason = schemaErr.Reason
	} else if reason == "" && requestErr.Err != nil {
		reason = requestErr.Err.Error()
	}

	return &RequestValidationError{
		Message: "Request does not match the API schema",
		Details: map[string]string{field: reason},
		Err:     err,
	}
}
