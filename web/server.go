package web

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"datacleaners/config"
	"datacleaners/services"
	"datacleaners/utils"
)

// Server represents the web server
type Server struct {
	cfg        *config.Config
	logger     *utils.Logger
	router     *mux.Router
	httpServer *http.Server
}

// NewServer creates a new web server instance
func NewServer(cfg *config.Config, logger *utils.Logger, pipeline *services.Pipeline) (*Server, error) {
	h, err := NewHandlers(cfg, logger, pipeline)
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, logger: logger}
	s.setupRoutes(h)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(h *Handlers) {
	s.router = mux.NewRouter()

	s.router.HandleFunc("/", h.Index).Methods(http.MethodGet)
	s.router.HandleFunc("/leads", h.Leads).Methods(http.MethodGet, http.MethodPost)
	s.router.HandleFunc("/keywords", h.Keywords).Methods(http.MethodGet, http.MethodPost)
	s.router.HandleFunc("/report", h.Report).Methods(http.MethodGet, http.MethodPost)
	s.router.HandleFunc("/export", h.Export).Methods(http.MethodGet, http.MethodPost)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/leads", h.APILeads).Methods(http.MethodPost)
	api.HandleFunc("/keywords", h.APIKeywords).Methods(http.MethodPost)
	api.HandleFunc("/report", h.APIReport).Methods(http.MethodPost)
	api.HandleFunc("/export", h.APIExport).Methods(http.MethodPost)

	s.router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	s.router.Use(Recover(s.logger))
	s.router.Use(RequestLogging(s.logger))
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("[web] Listening on http://%s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-stop:
	}
	s.logger.Info("[web] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	s.logger.Info("[web] Server stopped")
	return nil
}
