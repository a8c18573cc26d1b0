package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// staticFallback serves the prebuilt frontend bundle for unmatched GET routes.
// Known files are served directly; anything else gets the index document so
// client-side routing works.
func staticFallback(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		// Clean against the leading slash so ".." cannot escape the bundle dir
		file := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.String(http.StatusInternalServerError,
				"Frontend build not found. Build the client and point STATIC_DIR at its output directory.")
			return
		}
		c.File(index)
	}
}
