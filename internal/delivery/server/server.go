// Package server exposes the assistant over HTTP: one interpret
// endpoint, notification history, a websocket feed, health, and
// metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"aria/internal/assistant"
	"aria/internal/config"
	"aria/internal/logging"
	"aria/internal/metrics"
	"aria/internal/notify"
)

// Server is the HTTP delivery surface.
type Server struct {
	cfg       config.ServerConfig
	assistant *assistant.Assistant
	center    *notify.Center
	metrics   *metrics.Metrics
	logger    logging.Logger
	engine    *gin.Engine
	http      *http.Server
}

// New builds the server and its routes.
func New(cfg config.ServerConfig, a *assistant.Assistant, center *notify.Center, m *metrics.Metrics, logger logging.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	engine.Use(cors.New(corsConfig))

	s := &Server{
		cfg:       cfg,
		assistant: a,
		center:    center,
		metrics:   m,
		logger:    logging.OrNop(logger),
		engine:    engine,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.handleHealthz)
	s.engine.POST("/interpret", s.handleInterpret)
	s.engine.GET("/notifications", s.handleNotifications)
	s.engine.GET("/ws", s.handleWebsocket)
	if s.metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.http = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening on %s", s.cfg.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

type interpretRequest struct {
	Text      string `json:"text" binding:"required"`
	SessionID string `json:"session_id"`
}

func (s *Server) handleInterpret(c *gin.Context) {
	var req interpretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	resp := s.assistant.Interpret(c.Request.Context(), req.SessionID, req.Text)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleNotifications(c *gin.Context) {
	history := []notify.Notification{}
	if s.center != nil {
		history = s.center.History()
	}
	c.JSON(http.StatusOK, gin.H{"notifications": history})
}
