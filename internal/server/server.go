package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Zachdehooge/phenology-viewer/internal/config"
	"github.com/Zachdehooge/phenology-viewer/internal/generator"
	"github.com/Zachdehooge/phenology-viewer/internal/metadata"
	"github.com/Zachdehooge/phenology-viewer/internal/selection"
	"github.com/Zachdehooge/phenology-viewer/internal/viewer"
)

const apiViewPath = "/api/view"

// Server serves the forecast viewer page, its metadata, the forecast images
// and the selection resolver.
type Server struct {
	cfg      config.Config
	store    *metadata.Store
	resolver *viewer.Resolver
	sessions *SessionStore
	hub      *Hub

	// LiveReload adds the reload socket to the page and the /ws route.
	LiveReload bool
	Debug      bool
}

// ViewResponse is the body returned by the resolve endpoint.
type ViewResponse struct {
	Session string      `json:"session"`
	View    viewer.View `json:"view"`
}

func New(cfg config.Config, store *metadata.Store) *Server {
	resolver := viewer.NewResolver(store, cfg.ImageBaseURL)
	resolver.Bounds = cfg.OverlayBounds
	resolver.Opacity = cfg.OverlayOpacity
	return &Server{
		cfg:      cfg,
		store:    store,
		resolver: resolver,
		sessions: NewSessionStore(DefaultSessionTTL, DefaultMaxSessions),
		hub:      newHub(),
	}
}

// Handler returns the routes of the viewer.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /image_metadata.json", s.handleMetadata)
	mux.HandleFunc("GET "+apiViewPath, s.handleView)
	mux.Handle("GET /images/", s.imageHandler())
	mux.HandleFunc("GET /healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "error", err)
		}
	})
	if s.LiveReload {
		mux.HandleFunc("GET /ws", s.hub.serveWs)
	}
	return mux
}

// NotifyReload tells every open page to reload.
func (s *Server) NotifyReload() {
	slog.Info("Triggering page reload", "clients", s.hub.count())
	s.hub.broadcast([]byte("reload"))
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Forecast viewer available", "addr", addr, "url", "http://localhost"+addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		slog.Info("Server stopped")
		return nil
	case err := <-serverErr:
		return err
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	meta, ok := s.store.Get()
	if !ok {
		s.writeError(w, viewer.ErrMetadataNotLoaded.Error(), http.StatusServiceUnavailable)
		return
	}

	data, err := generator.NewPageData(s.cfg, meta)
	if err != nil {
		s.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data.APIURL = apiViewPath
	data.MetadataURL = "/image_metadata.json"
	data.LiveReload = s.LiveReload
	data.Debug = s.Debug

	var buf bytes.Buffer
	if err := generator.RenderPage(&buf, data); err != nil {
		s.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("Unable to write page", "error", err)
	}
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	meta, ok := s.store.Get()
	if !ok {
		s.writeError(w, viewer.ErrMetadataNotLoaded.Error(), http.StatusServiceUnavailable)
		return
	}
	s.writeJSON(w, meta)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sel := selection.FromValues(query)

	var view viewer.View
	sessionID, err := s.sessions.With(query.Get("session"), func(d *viewer.Display) error {
		var err error
		view, err = s.resolver.Resolve(d, sel)
		return err
	})
	switch {
	case errors.Is(err, selection.ErrUnknownMapType):
		s.writeError(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, viewer.ErrMetadataNotLoaded):
		s.writeError(w, err.Error(), http.StatusServiceUnavailable)
		return
	case err != nil:
		s.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Debug("Resolved view", "session", sessionID, "map_type", view.MapType, "available", view.Available)
	s.writeJSON(w, ViewResponse{Session: sessionID, View: view})
}

func (s *Server) imageHandler() http.Handler {
	files := http.StripPrefix("/images/", http.FileServer(http.Dir(s.cfg.ImagesDir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "..") {
			http.Error(w, "Invalid file path", http.StatusBadRequest)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, message string, code int) {
	slog.Warn("Request failed", "status", code, "error", message)
	http.Error(w, message, code)
}
