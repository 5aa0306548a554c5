package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/onboard/internal/logger"
)

// Defaults for Config.
const (
	DefaultAddr           = "127.0.0.1:8080"
	DefaultRateLimit      = 1.0
	DefaultRateBurst      = 3
	DefaultMaxUploadBytes = 10 << 20
)

// Config holds HTTP server settings.
type Config struct {
	// Addr is the listen address.
	Addr string

	// RateLimit is the sustained chat requests per second per client.
	// Zero means DefaultRateLimit; negative disables limiting.
	RateLimit float64

	// RateBurst is the chat burst size per client.
	RateBurst int

	// MaxUploadBytes caps multipart document uploads.
	MaxUploadBytes int64
}

// Server serves the JSON API.
type Server struct {
	ports  *Ports
	config Config
	engine *gin.Engine
}

// NewServer creates a server with routes mounted.
func NewServer(ports *Ports, cfg Config) (*Server, error) {
	if ports == nil {
		return nil, fmt.Errorf("validating ports: %w", ErrMissingChatService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = DefaultRateBurst
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	s := &Server{
		ports:  ports,
		config: cfg,
	}
	s.engine = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.config.Addr
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.RecoveryWithWriter(logger.Writer("error")), RequestLogger())
	r.MaxMultipartMemory = s.config.MaxUploadBytes

	r.GET("/health", s.health)

	api := r.Group("/api/v1")
	{
		chat := api.Group("/chat")
		chat.GET("/messages", s.getTranscript)
		chat.POST("/messages", RateLimit(NewClientLimiter(s.config.RateLimit, s.config.RateBurst)), s.submitMessage)

		refs := api.Group("/references")
		refs.GET("", s.listReferences)
		refs.GET("/:index/highlight", s.highlightReference)

		if s.ports.Documents != nil {
			docs := api.Group("/documents")
			docs.GET("", s.listDocuments)
			docs.POST("", s.createDocument)
			docs.GET("/:id", s.getDocument)
			docs.DELETE("/:id", s.deleteDocument)

			roles := api.Group("/roles")
			roles.GET("", s.listRoles)
			roles.POST("", s.createRole)
			roles.DELETE("/:id", s.deleteRole)
		}
	}

	return r
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("HTTP API listening on %s", s.config.Addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
