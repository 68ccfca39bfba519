package errors

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Middleware converts errors returned by handlers into the JSON envelope.
// Plain echo HTTP errors pass through so the framework keeps their status codes.
// errorsTotal may be nil.
func Middleware(logger *zap.Logger, errorsTotal *prometheus.CounterVec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			// Structured errors win over any echo error they wrap as cause
			var structuredErr *Error
			if !errors.As(err, &structuredErr) {
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					return err
				}
				structuredErr = AsStructuredError(err)
			}

			if errorsTotal != nil {
				errorsTotal.WithLabelValues(string(structuredErr.Type)).Inc()
			}
			logError(logger, c, structuredErr)

			if err := c.JSON(structuredErr.HTTPStatus(), structuredErr.ToResponse()); err != nil {
				return fmt.Errorf("failed to write error response: %w", err)
			}
			return nil
		}
	}
}

func logError(logger *zap.Logger, c echo.Context, err *Error) {
	fields := []zap.Field{
		zap.String("error_type", string(err.Type)),
		zap.String("message", err.Message),
		zap.String("path", c.Request().URL.Path),
		zap.String("method", c.Request().Method),
		zap.Int("status", err.HTTPStatus()),
	}
	for k, v := range err.Fields {
		fields = append(fields, zap.Any(k, v))
	}
	if err.Cause != nil {
		fields = append(fields, zap.NamedError("cause", err.Cause))
	}

	switch err.Type {
	case TypeValidation, TypeNotFound, TypeUnauthorized:
		logger.Info("Request rejected", fields...)
	case TypeConflict:
		logger.Warn("Conflict", fields...)
	default:
		logger.Error("Request failed", fields...)
	}
}
