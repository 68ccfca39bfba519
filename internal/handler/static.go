package handler

import (
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// staticAssets are the only files served under /static/
var staticAssets = map[string]bool{
	"images/titleImg.png":   true,
	"images/logoImg.png":    true,
	"style.css":             true,
	"initializeDOM.js":      true,
	"initializeHCaptcha.js": true,
	"language.js":           true,
	"game.js":               true,
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.File(filepath.Join(s.config.StaticDir, "index.html"))
}

func (s *Server) handleStatic(c echo.Context) error {
	name := c.Param("*")
	if !staticAssets[name] {
		return echo.ErrNotFound
	}
	return c.File(filepath.Join(s.config.StaticDir, filepath.FromSlash(name)))
}
