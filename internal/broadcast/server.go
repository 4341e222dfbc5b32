package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/drone-dodger/internal/engine"
)

// Engine is the part of the simulation engine the HTTP surface needs.
type Engine interface {
	Source
	Stats() engine.Stats
}

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Address    string // host:port to listen on
	AllowReset bool   // Accept reset requests from HTTP and websocket clients
}

// StatsResponse is the body of GET /stats.
type StatsResponse struct {
	Engine  engine.Stats `json:"engine"`
	Clients int          `json:"clients"`
	Uptime  string       `json:"uptime"`
}

// Server exposes the engine over HTTP and websockets.
type Server struct {
	config    ServerConfig
	engine    Engine
	hub       *Hub
	logger    *log.Logger
	startTime time.Time
}

// NewServer creates a server and its websocket hub. Call Hub().Publish from
// the engine's listener to stream ticks.
func NewServer(cfg ServerConfig, eng Engine, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default().WithPrefix("http")
	}
	return &Server{
		config:    cfg,
		engine:    eng,
		hub:       NewHub(eng, logger.WithPrefix("ws"), WithClientReset(cfg.AllowReset)),
		logger:    logger,
		startTime: time.Now(),
	}
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))

	r.Get("/ws", s.hub.ServeHTTP)
	r.Get("/snapshot", s.handleSnapshot)
	r.Get("/geometry", s.handleGeometry)
	r.Get("/stats", s.handleStats)
	r.Post("/reset", s.handleReset)

	return r
}

// requestLogger logs each request at debug level with its status.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Latest())
}

func (s *Server) handleGeometry(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Geometry())
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, StatsResponse{
		Engine:  s.engine.Stats(),
		Clients: s.hub.Clients(),
		Uptime:  time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if !s.config.AllowReset {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "reset disabled"})
		return
	}
	s.engine.Reset()
	s.logger.Info("reset requested", "remote", r.RemoteAddr)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "reset pending"})
}

// writeJSON writes a JSON response with proper headers.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Headers are already sent; nothing useful left to do on failure
	json.NewEncoder(w).Encode(data)
}

// Serve handles requests on l until ctx is cancelled, then shuts down.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Info("starting HTTP server", "address", l.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		s.hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// ListenAndServe listens on the configured address and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("cannot listen on %s: %w", s.config.Address, err)
	}
	return s.Serve(ctx, l)
}
