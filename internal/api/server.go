// Package api exposes the prediction service over HTTP: team and format
// discovery, the predict endpoint and a websocket stream of prediction
// events.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitch-predictor/internal/config"
	"github.com/yourusername/pitch-predictor/internal/predictor"
)

// NewRouter creates the chi router with the middleware stack and routes.
// hub may be nil; the /ws route is only mounted when it is set.
func NewRouter(cfg *config.Config, engine *predictor.Engine, hub *Hub, log *logrus.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.Server.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	if cfg.Server.RateLimitEnabled {
		r.Use(rateLimitMiddleware(cfg.Server.RateLimitPerSecond, cfg.Server.RateLimitBurst))
	}

	h := NewHandler(engine, hub, log)

	r.Get("/teams", h.GetTeams)
	r.Get("/formats", h.GetFormats)
	r.Post("/predict", h.PostPredict)

	if hub != nil {
		r.Get("/ws", hub.ServeWS)
	}

	return r
}

// Server wraps the API HTTP server lifecycle.
type Server struct {
	server *http.Server
	logger *logrus.Logger
}

// NewServer creates the API server on the configured port.
func NewServer(cfg *config.Config, engine *predictor.Engine, hub *Hub, log *logrus.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      NewRouter(cfg, engine, hub, log),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		logger: log,
	}
}

// Start runs the server in the background and shuts it down when ctx ends.
func (s *Server) Start(ctx context.Context) {
	go func() {
		s.logger.WithField("addr", s.server.Addr).Info("API server starting")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Error("API server error")
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.logger.Info("API server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
