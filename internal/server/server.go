// Package server hosts the dashboard over HTTP.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"niptreport/internal/config"
	"niptreport/internal/log"
	"niptreport/internal/report"
	"niptreport/internal/server/handlers"
)

//go:embed templates/*.html
var templateFiles embed.FS

const shutdownTimeout = 5 * time.Second

// Server HTTP server
type Server struct {
	router   *gin.Engine
	handlers *handlers.Handlers
	logger   *log.Logger
}

// NewServer creates the server over a table source
func NewServer(cfg *config.AppConfig, source handlers.Source, sourcePath string, logger *log.Logger) (*Server, error) {
	logger = log.OrDiscard(logger).WithComponent(log.ComponentHTTP)

	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(gin.Recovery())
	if devMode {
		router.Use(gin.Logger())
	} else {
		router.Use(requestLogger(logger))
	}

	s := &Server{
		router: router,
		handlers: handlers.NewHandlers(source, handlers.Options{
			SourcePath:    sourcePath,
			Year:          cfg.Report.Year,
			TATTargetDays: cfg.Report.TATTargetDays,
			TopSales:      cfg.Report.TopSales,
		}, logger),
		logger: logger,
	}
	s.setupRoutes()
	return s, nil
}

// setupRoutes registers routes
func (s *Server) setupRoutes() {
	s.handlers.RegisterRoutes(s.router)

	s.router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "not found")
	})
}

// Handler http.Handler for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve serves on an existing listener until ctx is done
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", log.FieldAddr, ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	s.logger.Info("dashboard stopped")
	return nil
}

// Addr listen address for a port on localhost
func Addr(port int) string {
	return net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
}

var templateFuncs = template.FuncMap{
	"percent": func(v float64) string {
		return report.FormatFixed(v*100, 1) + "%"
	},
	"int": report.FormatInt,
	"datetime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04:05")
	},
}
