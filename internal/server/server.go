package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kapu/kokkai-giin-go/internal/domain"
	"github.com/kapu/kokkai-giin-go/internal/service/kokkai"
)

// MemberSource loads a stored member collection by file name.
type MemberSource interface {
	Load(name string) ([]domain.MemberRecord, error)
}

// ProceedingsSearcher proxies the Diet proceedings API.
type ProceedingsSearcher interface {
	SearchSpeeches(ctx context.Context, query kokkai.SpeechQuery) (json.RawMessage, error)
	SearchMeetings(ctx context.Context, query kokkai.MeetingQuery) (json.RawMessage, error)
	Health(ctx context.Context) kokkai.Health
}

type Config struct {
	Addr           string
	AllowedOrigins []string
	Canonical      string
}

// Server exposes the canonical collection and the proceedings proxy over HTTP.
type Server struct {
	cfg      Config
	members  MemberSource
	searcher ProceedingsSearcher
	router   *gin.Engine
	logger   *zap.Logger
}

func New(cfg Config, members MemberSource, searcher ProceedingsSearcher, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:      cfg,
		members:  members,
		searcher: searcher,
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(s.logger))
	router.Use(cors.New(cors.Config{
		AllowOriginFunc:  allowOrigin(s.cfg.AllowedOrigins),
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", s.healthCheck)

	api := router.Group("/api")
	api.GET("/politicians", s.listPoliticians)
	api.GET("/politicians/:id", s.getPolitician)
	api.GET("/speeches", s.searchSpeeches)
	api.GET("/meetings", s.searchMeetings)

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", s.cfg.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// allowOrigin accepts the configured origins, or any localhost origin when
// none are configured.
func allowOrigin(allowed []string) func(string) bool {
	return func(origin string) bool {
		if len(allowed) > 0 {
			for _, candidate := range allowed {
				if origin == candidate {
					return true
				}
			}
			return false
		}
		return strings.HasPrefix(origin, "http://localhost") || strings.HasPrefix(origin, "http://127.0.0.1")
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
