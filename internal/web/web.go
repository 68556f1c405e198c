// Package web serves the embedded placeholder frontend.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Placeholder page copy.
const (
	ProductName = "redo"
	Tagline     = "Manage your recurring tasks."
)

// AssetsPrefix is where static files are mounted.
const AssetsPrefix = "/assets"

// reservedPrefixes never fall back to the page.
var reservedPrefixes = []string{"/api", "/health", "/metrics", AssetsPrefix}

// Page is the data rendered into the index template.
type Page struct {
	Title   string
	Tagline string
}

// DefaultPage returns the placeholder copy.
func DefaultPage() Page {
	return Page{Title: ProductName, Tagline: Tagline}
}

// Handler serves the placeholder page and its assets.
type Handler struct {
	page   Page
	tmpl   *template.Template
	assets http.FileSystem
}

// NewHandler parses the embedded templates.
func NewHandler(page Page) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	return &Handler{page: page, tmpl: tmpl, assets: http.FS(sub)}, nil
}

// Register mounts the page, the assets and the SPA fallback on router.
func (h *Handler) Register(router *gin.Engine) {
	router.SetHTMLTemplate(h.tmpl)
	router.StaticFS(AssetsPrefix, h.assets)
	router.GET("/", h.Index)
	router.GET("/index.html", h.Index)
	router.NoRoute(h.Fallback)
}

// Index renders the placeholder page.
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.page)
}

// Fallback renders the page for unknown GET routes so client-side routing
// works, and answers JSON 404 for API-like paths and other methods.
func (h *Handler) Fallback(c *gin.Context) {
	path := c.Request.URL.Path
	if c.Request.Method != http.MethodGet || isReserved(path) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "not found",
			"path":  path,
		})
		return
	}

	h.Index(c)
}

func isReserved(path string) bool {
	for _, prefix := range reservedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
