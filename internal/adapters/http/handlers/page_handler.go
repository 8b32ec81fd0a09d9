package handlers

import (
	"os"
	"path/filepath"

	"jangja-school/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PageHandler serves the site's HTML pages from the public directory
type PageHandler struct {
	publicDir string
}

// NewPageHandler creates a new page handler
func NewPageHandler(publicDir string) *PageHandler {
	return &PageHandler{publicDir: publicDir}
}

// Page returns a handler sending the named HTML file
func (h *PageHandler) Page(file string) fiber.Handler {
	path := filepath.Join(h.publicDir, file)
	return func(c *fiber.Ctx) error {
		return c.SendFile(path)
	}
}

// NotFound answers unmatched routes with the home page and a 404 status
func (h *PageHandler) NotFound(c *fiber.Ctx) error {
	index := filepath.Join(h.publicDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		return response.NotFound(c, "페이지를 찾을 수 없습니다.")
	}
	return c.Status(fiber.StatusNotFound).SendFile(index)
}
