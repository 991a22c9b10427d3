package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"stocksnip/internal/summarizer"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	DefaultRequestTimeout = 45 * time.Second

	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// ArticlePreparer turns an article URL into prompt-ready text.
type ArticlePreparer interface {
	Prepare(ctx context.Context, articleURL string) string
}

type Server struct {
	engine         *gin.Engine
	httpServer     *http.Server
	preparer       ArticlePreparer
	summarizer     summarizer.Summarizer
	requestTimeout time.Duration
	log            *slog.Logger
}

func New(
	addr string,
	preparer ArticlePreparer,
	s summarizer.Summarizer,
	requestTimeout time.Duration,
	log *slog.Logger,
) *Server {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}

	srv := &Server{
		preparer:       preparer,
		summarizer:     s,
		requestTimeout: requestTimeout,
		log:            log,
	}

	srv.engine = srv.routes()
	srv.httpServer = &http.Server{
		Addr:              addr,
		Handler:           srv.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return srv
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks until the server stops. A graceful Stop is not an error.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func (s *Server) routes() *gin.Engine {
	engine := gin.New()
	engine.Use(
		s.requestIDMiddleware(),
		s.accessLogMiddleware(),
		gin.CustomRecovery(s.recoverPanic),
	)

	engine.GET("/healthz", s.handleHealth)

	api := engine.Group("/api")
	api.POST("/getAnswer", s.handleAnswer)
	api.POST("/getSummary", s.handleSummary)

	return engine
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
