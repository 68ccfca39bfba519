package handler

import (
	"net/http"

	apperrors "ereyga/internal/errors"
	"ereyga/internal/service"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleSubmitFeedback(c echo.Context) error {
	var req service.FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("Invalid JSON body").WithCause(err)
	}

	if err := s.services.Feedback.Submit(c.Request().Context(), req, c.RealIP()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
