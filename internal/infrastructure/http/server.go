// Package http provides the HTTP server infrastructure.
package http

import (
	"context"
	_ "embed"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/0xcro3dile/chatassist/internal/domain/usecases"
)

//go:embed static/index.html
var indexHTML []byte

// Options configures the HTTP server.
type Options struct {
	Addr             string
	Environment      string
	IndexPath        string // Served instead of the embedded page when set
	AllowedOrigins   []string
	AllowCredentials bool
	WriteTimeout     time.Duration
}

// Server is the HTTP server for the chat API and UI.
type Server struct {
	chat   *usecases.ChatUseCase
	opts   Options
	router *gin.Engine
}

// NewServer creates a new HTTP server and registers its routes.
func NewServer(chat *usecases.ChatUseCase, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = ":8000"
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 120 * time.Second
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if opts.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{chat: chat, opts: opts}
	s.router = s.setupRouter()
	return s
}

func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOriginFunc:  originMatcher(s.opts.AllowedOrigins),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader},
		AllowCredentials: s.opts.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// UI
	router.GET("/", s.handleIndex)

	// API
	router.POST("/set_model", s.handleSetModel)
	router.POST("/upload_files", s.handleUploadFiles)
	router.POST("/chat", s.handleChat)
	router.POST("/compare", s.handleCompare)

	router.GET("/health", s.handleHealth)
	router.GET("/models", s.handleModels)
	router.GET("/history", s.handleHistory)
	router.GET("/files", s.handleFiles)

	return router
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.opts.WriteTimeout,
	}

	log.Printf("[INFO] Chat assistant listening on %s", s.opts.Addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[ERROR] Shutdown: %v", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// originMatcher allows every origin when the list holds "*".
func originMatcher(allowed []string) func(string) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(string) bool { return true }
		}
		set[o] = true
	}
	return func(origin string) bool { return set[origin] }
}
