// Package handler exposes the word rotation, feedback intake and admin
// console over HTTP.
package handler

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"ereyga/internal/config"
	apperrors "ereyga/internal/errors"
	"ereyga/internal/metrics"
	"ereyga/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Pinger reports database reachability
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Services are the use cases served over HTTP
type Services struct {
	Auth     *service.AuthService
	Word     *service.WordService
	Admin    *service.AdminService
	Feedback *service.FeedbackService
}

// RateLimitStores back the global (daily and hourly) and feedback request limits
type RateLimitStores struct {
	Global       middleware.RateLimiterStore
	GlobalHourly middleware.RateLimiterStore
	Feedback     middleware.RateLimiterStore
}

// Server is the HTTP front of the service
type Server struct {
	echo      *echo.Echo
	config    *config.Config
	services  Services
	limits    RateLimitStores
	db        Pinger
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
	templates *template.Template
	logger    *zap.Logger
}

// NewServer builds the router with all middleware and routes registered
func NewServer(
	cfg *config.Config,
	services Services,
	limits RateLimitStores,
	db Pinger,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) (*Server, error) {
	templates, err := template.New("").Funcs(templateFuncs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler(logger)

	s := &Server{
		echo:      e,
		config:    cfg,
		services:  services,
		limits:    limits,
		db:        db,
		metrics:   m,
		gatherer:  gatherer,
		templates: templates,
		logger:    logger,
	}
	s.registerRoutes()

	return s, nil
}

// ServeHTTP lets the server be driven directly by tests and wrappers
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on the configured port until Shutdown
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("port", s.config.Port))
	if err := s.echo.Start(":" + s.config.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// httpErrorHandler writes framework errors (unknown route, bad method) in the JSON envelope
func httpErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Internal server error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
		} else {
			logger.Error("Unhandled error", zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, apperrors.Response{Error: message})
		}
		if err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
	}
}
