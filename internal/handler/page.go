package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/placesapi/placesapi/internal/server"
)

// PageHandler serves the HTML pages kept in the static directory: the
// landing page and the OpenAPI UI, which loads openapi.json from /static.
type PageHandler struct {
	Handler
}

func NewPageHandler(s *server.Server) *PageHandler {
	return &PageHandler{
		Handler: NewHandler(s),
	}
}

func (h *PageHandler) ServeIndex(c echo.Context) error {
	return h.servePage(c, "index.html")
}

func (h *PageHandler) ServeDocs(c echo.Context) error {
	return h.servePage(c, "openapi.html")
}

// servePage reads the file on every request so edits show up without a
// restart; caching is disabled for the same reason.
func (h *PageHandler) servePage(c echo.Context, name string) error {
	page, err := os.ReadFile(filepath.Join(h.server.Config.Server.StaticDir, name))

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := c.HTMLBlob(http.StatusOK, page); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}

// StaticDir is the directory served under /static.
func (h *PageHandler) StaticDir() string {
	return h.server.Config.Server.StaticDir
}
