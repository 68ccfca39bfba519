package handler

import (
	"net/http"

	apperrors "ereyga/internal/errors"
	mw "ereyga/internal/middleware"
	"ereyga/internal/ratelimit"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func (s *Server) registerRoutes() {
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.echo.Use(s.requestLogger())
	// Recovered panics reach httpErrorHandler, which never echoes their text
	s.echo.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			s.logger.Error("Recovered from panic",
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
				zap.ByteString("stack", stack),
			)
			return err
		},
	}))
	s.echo.Use(s.metrics.Middleware())
	s.echo.Use(apperrors.Middleware(s.logger, s.metrics.ErrorsTotal))
	if len(s.config.AllowedOrigins) > 0 {
		s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.config.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		}))
	}
	s.echo.Use(ratelimit.Middleware(s.limits.Global, skipProbes))
	s.echo.Use(ratelimit.Middleware(s.limits.GlobalHourly, skipProbes))

	// Probes are never rate limited
	s.echo.GET("/healthz", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	s.echo.GET("/", s.handleIndex)
	s.echo.GET("/static/*", s.handleStatic)

	s.echo.GET("/api/word", s.handleDailyWord)
	s.echo.POST("/api/admin/feedback", s.handleSubmitFeedback, ratelimit.Middleware(s.limits.Feedback, nil))

	adminAuth := mw.AdminAuth(s.services.Auth, s.logger)
	s.echo.GET("/admin", s.handleAdminPage, adminAuth)

	admin := s.echo.Group("/api/admin/words", adminAuth)
	admin.POST("", s.handleAddWord)
	admin.PATCH("/:id", s.handleUpdateWord)
	admin.DELETE("/:id", s.handleDeleteWord)
}

func skipProbes(c echo.Context) bool {
	p := c.Path()
	return p == "/healthz" || p == "/metrics"
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			s.logger.Info("Request", fields...)
			return nil
		},
	})
}
