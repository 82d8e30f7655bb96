package controllers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/cafepos/pkg/ctx"
)

// PageController serves the bundled HTML pages and uploaded assets.
type PageController struct {
	webRoot   string
	publicDir string
}

func NewPageController(webRoot, publicDir string) *PageController {
	return &PageController{webRoot: webRoot, publicDir: publicDir}
}

// Login serves the sign-in page for GET / and GET /login.
func (pc *PageController) Login(c *ctx.Context) error {
	return serveFile(c, pc.webRoot, "login.html")
}

// Public serves GET /public/* from the upload directory.
func (pc *PageController) Public(c *ctx.Context) error {
	return serveFile(c, pc.publicDir, chi.URLParam(c.R, "*"))
}

// Fallback handles every request no route matched: a GET or HEAD for an
// existing file under the web root is served, anything else is a 404.
func (pc *PageController) Fallback(c *ctx.Context) error {
	if c.R.Method != http.MethodGet && c.R.Method != http.MethodHead {
		return c.NotFound()
	}
	return serveFile(c, pc.webRoot, c.R.URL.Path)
}

// serveFile serves root/rel when it is a regular file. rel is cleaned as an
// absolute path first so it cannot climb out of root.
func serveFile(c *ctx.Context, root, rel string) error {
	full := filepath.Join(root, filepath.FromSlash(path.Clean("/"+rel)))

	info, err := os.Stat(full)
	if err != nil || !info.Mode().IsRegular() {
		return c.NotFound()
	}
	return c.File(full)
}
