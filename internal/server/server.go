// Package server is the minimal preview file server for watch mode. It maps
// request paths to files under the latest completed build output, read-only:
// it never triggers builds itself and may transiently serve stale content
// while a rebuild is in flight.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// contentTypes maps file extensions to content types. Anything unknown is
// served as a generic binary stream.
var contentTypes = map[string]string{
	".html":        "text/html",
	".css":         "text/css",
	".js":          "application/javascript",
	".json":        "application/json",
	".woff2":       "font/woff2",
	".png":         "image/png",
	".ico":         "image/x-icon",
	".xml":         "application/xml",
	".txt":         "text/plain",
	".webmanifest": "application/manifest+json",
}

const fallbackContentType = "application/octet-stream"

// Server serves a build output directory on a local port.
type Server struct {
	root string
	srv  *http.Server
}

// New creates a preview server rooted at the build output directory.
func New(root string, port int) *Server {
	s := &Server{root: root}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveFile)
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start begins listening and serves in the background. The returned error
// only covers the listen call; serve errors after a clean Stop are swallowed.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Preview server failed", "error", err)
		}
	}()
	slog.Info("Preview server listening", "addr", fmt.Sprintf("http://localhost%s", s.srv.Addr))
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request) {
	urlPath := r.URL.Path
	if urlPath == "/" {
		urlPath = "/index.html"
	}
	// Clean keeps lookups inside the output directory.
	filePath := filepath.Join(s.root, filepath.Clean("/"+urlPath))

	data, err := os.ReadFile(filePath)
	if err != nil {
		s.serveNotFound(w)
		return
	}
	w.Header().Set("Content-Type", typeFor(filePath))
	_, _ = w.Write(data)
}

func (s *Server) serveNotFound(w http.ResponseWriter) {
	page, err := os.ReadFile(filepath.Join(s.root, "404.html"))
	if err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(page)
}

func typeFor(filePath string) string {
	if ct, ok := contentTypes[filepath.Ext(filePath)]; ok {
		return ct
	}
	return fallbackContentType
}

// StartMetrics serves a metrics handler on its own port, keeping the preview
// server itself a pure file server.
func StartMetrics(port int, handler http.Handler) (*http.Server, error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on metrics port: %w", err)
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
	slog.Info("Metrics endpoint listening", "addr", fmt.Sprintf("http://localhost%s/metrics", srv.Addr))
	return srv, nil
}
