// Package web serves the dashboard and repository detail screens over HTTP.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stahnma/gh-explorer/internal/explorer"
	ghub "github.com/stahnma/gh-explorer/internal/github"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler serves the two screens and their JSON equivalents.
type Handler struct {
	dashboard *explorer.Dashboard
	client    ghub.Client
	logger    *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(dashboard *explorer.Dashboard, client ghub.Client, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{dashboard: dashboard, client: client, logger: logger}
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))
	r.SetHTMLTemplate(template.Must(template.New("").ParseFS(templateFS, "templates/*.html")))

	r.GET("/", h.Dashboard)
	r.POST("/", h.Search)
	r.GET("/repositories/*repository", h.Repository)

	api := r.Group("/api")
	api.GET("/repositories", h.ListRepositories)
	api.POST("/repositories", h.CreateRepository)
	api.GET("/repositories/*repository", h.GetRepository)

	return r
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
