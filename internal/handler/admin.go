package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"ereyga/internal/domain"
	mw "ereyga/internal/middleware"

	"github.com/labstack/echo/v4"
)

var templateFuncs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04")
	},
}

type adminPageData struct {
	Words     []domain.Word
	Feedback  []domain.Feedback
	AuthParam string
	Auth      string
}

func (s *Server) handleAdminPage(c echo.Context) error {
	ctx := c.Request().Context()

	words, err := s.services.Admin.ListWords(ctx)
	if err != nil {
		return err
	}
	feedback, err := s.services.Admin.RecentFeedback(ctx)
	if err != nil {
		return err
	}

	data := adminPageData{
		Words:     words,
		Feedback:  feedback,
		AuthParam: mw.AuthQueryParam,
		Auth:      c.QueryParam(mw.AuthQueryParam),
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "admin.html", data); err != nil {
		return fmt.Errorf("failed to render admin page: %w", err)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
