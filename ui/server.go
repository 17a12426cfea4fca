// Package ui serves the dashboard: page rendering, upload handling, the
// JSON endpoints the charts draw from, SSE insight streaming and report
// downloads.
package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"edascope/internal/config"
	"edascope/internal/errors"
	"edascope/internal/ingest"
	"edascope/internal/insight"
	"edascope/internal/profile"
	"edascope/internal/session"
)

// Server is the dashboard web server
type Server struct {
	router   *gin.Engine
	cfg      *config.Config
	store    *session.Store
	reader   *ingest.Reader
	profiler *profile.Profiler
	insights insight.Streamer
}

// NewServer wires the dashboard server. assets must contain ui/templates
// and ui/static; in production it is the embedded filesystem.
func NewServer(cfg *config.Config, store *session.Store, insights insight.Streamer, assets fs.FS) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:   gin.Default(),
		cfg:      cfg,
		store:    store,
		reader:   ingest.NewReader(),
		profiler: profile.NewProfiler(),
		insights: insights,
	}

	templates, err := template.ParseFS(assets, "ui/templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}
	s.router.SetHTMLTemplate(templates)

	staticFS, err := fs.Sub(assets, "ui/static")
	if err != nil {
		return nil, errors.Wrap(err, "failed to mount static files")
	}
	s.router.StaticFS("/static", http.FS(staticFS))

	s.router.Use(s.sessionMiddleware())
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)

	api := s.router.Group("/api")
	{
		api.POST("/upload", s.handleUpload)
		api.GET("/overview", s.handleOverview)
		api.GET("/quality", s.handleQuality)
		api.GET("/stats", s.handleStats)

		api.GET("/charts/histogram", s.handleHistogram)
		api.GET("/charts/box", s.handleBoxPlot)
		api.GET("/charts/bar", s.handleBarChart)
		api.GET("/charts/scatter", s.handleScatter)

		api.GET("/insights/stream", s.handleInsightStream)

		api.GET("/report/html", s.handleReportHTML)
		api.GET("/report/xlsx", s.handleReportXLSX)
		api.GET("/report/csv", s.handleReportCSV)
	}
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := ":" + s.cfg.Server.Port
	log.Printf("[Server] Starting EDA dashboard on %s", addr)
	return s.router.Run(addr)
}

// respondError maps the error taxonomy onto HTTP statuses
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeConfigInvalid:
		status = http.StatusServiceUnavailable
	case errors.CodeExternalService:
		status = http.StatusBadGateway
	case errors.CodeComputation:
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

// handleIndex renders the dashboard page
func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"MaxUploadMB": fmt.Sprintf("%d", s.cfg.Upload.MaxBytes/(1024*1024)),
	})
}
