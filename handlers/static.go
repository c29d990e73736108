package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// StaticHandler serves the pre-built site bundle and falls back to the entry
// document for client-side-routed paths.
type StaticHandler struct {
	Dir string
}

func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{Dir: dir}
}

// ServeHandler resolves any path not claimed by the API routes: a static
// asset, the index fallback when the client accepts HTML, or a JSON 404.
func (h *StaticHandler) ServeHandler(c *gin.Context) {
	requested := c.Request.URL.Path
	if requested == "/" {
		requested = "/index.html"
	}

	// Normalize and refuse to escape the bundle directory.
	clean := filepath.Clean("/" + requested)
	target := filepath.Join(h.Dir, clean)

	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		c.File(target)
		return
	}

	// SPA fallback for client-side routes.
	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		index := filepath.Join(h.Dir, "index.html")
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}
