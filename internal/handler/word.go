package handler

import (
	"net/http"
	"strconv"

	"ereyga/internal/domain"
	apperrors "ereyga/internal/errors"

	"github.com/labstack/echo/v4"
)

type successResponse struct {
	Success bool `json:"success"`
	ID      int  `json:"id,omitempty"`
}

func (s *Server) handleDailyWord(c echo.Context) error {
	word, err := s.services.Word.DailyWord(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, word)
}

func (s *Server) handleAddWord(c echo.Context) error {
	var input domain.NewWord
	if err := c.Bind(&input); err != nil {
		return apperrors.ValidationError("Invalid JSON body").WithCause(err)
	}

	id, err := s.services.Admin.AddWord(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, ID: id})
}

func (s *Server) handleUpdateWord(c echo.Context) error {
	id, err := wordID(c)
	if err != nil {
		return err
	}

	var patch domain.WordPatch
	if err := c.Bind(&patch); err != nil {
		return apperrors.ValidationError("Invalid JSON body").WithCause(err)
	}

	if err := s.services.Admin.UpdateWord(c.Request().Context(), id, patch); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleDeleteWord(c echo.Context) error {
	id, err := wordID(c)
	if err != nil {
		return err
	}

	if err := s.services.Admin.DeleteWord(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func wordID(c echo.Context) (int, error) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperrors.ValidationError("Invalid word id").WithField("id", raw)
	}
	return id, nil
}
