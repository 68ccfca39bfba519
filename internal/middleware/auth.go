package middleware

import (
	apperrors "ereyga/internal/errors"
	"ereyga/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthQueryParam carries the admin secret for requests sent by the console script
const AuthQueryParam = "auth"

// AdminAuth guards the admin routes with the shared secret.
// The password comes from HTTP Basic credentials (username ignored) or the auth query parameter.
func AdminAuth(authService *service.AuthService, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, password, ok := c.Request().BasicAuth(); ok && authService.CheckPassword(password) {
				return next(c)
			}

			if password := c.QueryParam(AuthQueryParam); password != "" && authService.CheckPassword(password) {
				return next(c)
			}

			logger.Warn("Rejected admin request",
				zap.String("path", c.Path()),
				zap.String("remote_ip", c.RealIP()),
			)
			return challenge(c)
		}
	}
}

// challenge asks the browser for credentials; the body is written by the error middleware
func challenge(c echo.Context) error {
	h := c.Response().Header()
	h.Set(echo.HeaderWWWAuthenticate, `Basic realm="Admin Area"`)
	h.Set(echo.HeaderCacheControl, "no-store, must-revalidate")
	h.Set("Pragma", "no-cache")
	return apperrors.UnauthorizedError("Authentication required")
}
