// Package api is the HTTP entry layer: the webhook endpoint that feeds the
// decision gate and dispatcher, and the synchronous analyze endpoint.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/prlens/internal/analysis"
	"github.com/prlens/internal/dispatch"
	"github.com/prlens/pkg/models"
)

// Analyzer runs one full analysis for a pull request.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (*models.AnalysisReport, error)
}

// Server is the API server.
type Server struct {
	echo          *echo.Echo
	port          int
	webhookSecret string
	dispatcher    *dispatch.Dispatcher
	analyzer      Analyzer
}

// NewServer creates an API server with routing and middleware configured.
func NewServer(port int, webhookSecret string, dispatcher *dispatch.Dispatcher, analyzer Analyzer) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	server := &Server{
		echo:          e,
		port:          port,
		webhookSecret: webhookSecret,
		dispatcher:    dispatcher,
		analyzer:      analyzer,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	v1 := s.echo.Group("/api/v1")
	v1.POST("/webhook/github", s.GitHubWebhookHandler)
	v1.POST("/analyze", s.AnalyzeHandler)
}

// Start runs the server until an interrupt, then shuts down gracefully.
func (s *Server) Start() error {
	go func() {
		if err := s.echo.Start(fmt.Sprintf(":%d", s.port)); err != nil && err != http.ErrServerClosed {
			s.echo.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.echo.Shutdown(ctx)
}
