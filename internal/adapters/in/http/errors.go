package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/generated/servers"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps a use case error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, kernel.ErrUUIDFormatIsInvalid), errs.IsInvalidArgument(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrStateTransitionIsInvalid):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes the error body for err. Internal failures are logged
// and their text is not sent to the client.
func (s *Server) handleError(ctx echo.Context, err error) error {
	status := statusFor(err)

	switch status {
	case http.StatusInternalServerError:
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		return s.writeError(ctx, status, "An unexpected error occurred", nil)
	case http.StatusBadRequest:
		message, details := describeInvalidArgument(err)
		return s.writeError(ctx, status, message, details)
	default:
		return s.writeError(ctx, status, err.Error(), nil)
	}
}

func (s *Server) writeError(ctx echo.Context, status int, message string, details map[string]string) error {
	return ctx.JSON(status, newErrorBody(status, message, details))
}

func newErrorBody(status int, message string, details map[string]string) servers.Error {
	body := servers.Error{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
	}
	if len(details) > 0 {
		body.Details = &details
	}
	return body
}

// describeInvalidArgument returns the message and per-field details of a
// 400 response.
func describeInvalidArgument(err error) (string, map[string]string) {
	if errors.Is(err, kernel.ErrUUIDFormatIsInvalid) || errors.Is(err, kernel.ErrUUIDIsNotConstructed) {
		return "Invalid order id format", nil
	}

	details := fieldErrors(err)
	if len(details) > 1 {
		return "Validation failed", details
	}
	return err.Error(), details
}

// fieldErrors collects the parameter name and message of every argument
// error in err's tree.
func fieldErrors(err error) map[string]string {
	fields := make(map[string]string)
	collectFieldErrors(err, fields)
	return fields
}

func collectFieldErrors(err error, fields map[string]string) {
	switch e := err.(type) {
	case nil:
		return
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			collectFieldErrors(inner, fields)
		}
	case *errs.ValueIsRequiredError:
		fields[e.ParamName] = e.Error()
	case *errs.ValueIsInvalidError:
		fields[e.ParamName] = e.Error()
	case *errs.ValueIsOutOfRangeError:
		fields[e.ParamName] = e.Error()
	default:
		collectFieldErrors(errors.Unwrap(err), fields)
	}
}

// HTTPErrorHandler renders errors that never reached a handler, such as
// unknown routes and rejected requests, with the same body as handler errors.
func HTTPErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "An unexpected error occurred"
	var details map[string]string

	var httpErr *echo.HTTPError
	var validationErr *RequestValidationError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		message = validationErr.Message
		details = validationErr.Details
	case errors.As(err, &httpErr):
		status = httpErr.Code
		message = fmt.Sprint(httpErr.Message)
	}

	var writeErr error
	if ctx.Request().Method == http.MethodHead {
		writeErr = ctx.NoContent(status)
	} else {
		writeErr = ctx.JSON(status, newErrorBody(status, message, details))
	}
	if writeErr != nil {
		ctx.Logger().Error(writeErr)
	}
}
