// Package server exposes a store.Store over the HTTP protocol spoken by the
// remote store client. It is a local stand-in for the hosted record store.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/idilsaglam/tada-cloud/internal/store"
)

type Server struct {
	store  store.Store
	log    *zap.Logger
	token  string
	router *gin.Engine
}

type Option func(*Server)

// WithToken requires "Authorization: Bearer <token>" on every API request.
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.log = l }
}

func New(st store.Store, opts ...Option) *Server {
	s := &Server{store: st, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), s.accessLog())
	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api")
	api.Use(s.requireToken())
	{
		api.GET("/todos", s.handleList)
		api.POST("/todos", s.handleCreate)
		api.PATCH("/todos/:id", s.handleUpdate)
		api.DELETE("/todos/:id", s.handleDelete)
	}

	s.router = router
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Info("record store listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
