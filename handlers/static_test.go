package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
)

func newStaticRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("entry"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatalf("write asset: %v", err)
	}
	// A file outside the bundle that traversal must never reach.
	if err := os.WriteFile(filepath.Join(filepath.Dir(dir), "secret.txt"), []byte("secret"), 0o644); err != nil {
		t.Fatalf("write secret: %v", err)
	}

	r := gin.New()
	r.NoRoute(NewStaticHandler(dir).ServeHandler)
	return r, dir
}

func TestStaticServesAsset(t *testing.T) {
	r, _ := newStaticRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/style.css", nil))
	if w.Code != http.StatusOK || w.Body.String() != "body{}" {
		t.Fatalf("asset not served: %d %s", w.Code, w.Body.String())
	}
}

func TestStaticRootServesIndex(t *testing.T) {
	r, _ := newStaticRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || w.Body.String() != "entry" {
		t.Fatalf("index not served: %d %s", w.Code, w.Body.String())
	}
}

func TestStaticRejectsTraversal(t *testing.T) {
	r, _ := newStaticRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/assets/app.js", nil)
	// Forge a traversal path that the router would not normally produce.
	req.URL.Path = "/../secret.txt"
	r.ServeHTTP(w, req)
	if w.Code == http.StatusOK && w.Body.String() == "secret" {
		t.Fatal("path traversal escaped the bundle directory")
	}
}

func TestStaticMissWithoutHTMLAcceptIs404(t *testing.T) {
	r, _ := newStaticRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nope.png", nil)
	req.Header.Set("Accept", "image/png")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
