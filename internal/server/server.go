package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"polaris/components/internal/component"
	"polaris/components/internal/config"
	"polaris/components/internal/routing"
	"polaris/components/internal/service"
)

type Server struct {
	service         *service.Service
	addr            string
	shutdownTimeout time.Duration
}

func New(svc *service.Service, cfg config.ServerConfig) *Server {
	return &Server{
		service:         svc,
		addr:            cfg.Addr(),
		shutdownTimeout: time.Duration(cfg.ShutdownTimeout) * time.Second,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /pages", s.handleListPages)
	mux.HandleFunc("GET /pages/{name}", s.handleRenderPage)
	mux.HandleFunc("POST /pages/{name}/actions/{key}", s.handleActivate)
	mux.HandleFunc("GET /resolve/{route}", s.handleResolve)
	return loggingMiddleware(mux)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("🌐 Listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleListPages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"pages": s.service.PageNames()})
}

func (s *Server) handleRenderPage(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.service.RenderPage(r.Context(), name, w)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrPageNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Errorf("❌ Failed to render page %s: %v", name, err)
		writeError(w, http.StatusInternalServerError, "failed to render page")
	}
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	event, err := s.service.Activate(r.Context(), r.PathValue("name"), r.PathValue("key"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusAccepted, event)
	case errors.Is(err, service.ErrPageNotFound), errors.Is(err, component.ErrUnknownAction):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, component.ErrActionDisabled):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Errorf("❌ Failed to activate action: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to activate action")
	}
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	route := r.PathValue("route")

	path, err := s.service.Resolve(route, r.URL.Query()["param"])
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"route": route, "path": path})
	case errors.Is(err, routing.ErrUnknownRoute):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	}
}
