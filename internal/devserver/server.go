// Package devserver serves a scaffolded project the way the generated
// webpack devServer block describes: the bundle output first, then each
// content base in order, with the index document at "/".
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/reactboot/internal/logger"
)

type Config struct {
	// Listen host, empty for all interfaces
	Host string
	Port int
	// Index is served for directory requests
	Index string
	// ContentBases are searched in order for each request
	ContentBases []string
}

// DefaultConfig mirrors the generated webpack devServer block for a project at root
// whose bundles are written to outputDir.
func DefaultConfig(root, outputDir string) Config {
	return Config{
		Host:  "localhost",
		Port:  1337,
		Index: "index.html",
		ContentBases: []string{
			outputDir,
			root,
			filepath.Join(root, "dist"),
		},
	}
}

type Server struct {
	config Config
}

func New(config Config) *Server {
	return &Server{config: config}
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Host, fmt.Sprintf("%d", s.config.Port))
}

// Handler serves files from the content bases with gzip compression.
func (s *Server) Handler() http.Handler {
	files := http.HandlerFunc(s.serveFile)
	return logger.HTTPRequests(log.Logger)(gzhttp.GzipHandler(files))
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", "http://"+srv.Addr).Msg("Dev server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	name := path.Clean("/" + r.URL.Path)
	if strings.HasSuffix(name, "/") {
		name = path.Join(name, s.config.Index)
	}

	if file, ok := s.resolve(name); ok {
		http.ServeFile(w, r, file)
		return
	}

	http.NotFound(w, r)
}

// resolve returns the first regular file matching name across the content bases.
// A directory match falls back to its index document.
func (s *Server) resolve(name string) (string, bool) {
	rel := filepath.FromSlash(strings.TrimPrefix(name, "/"))

	for _, base := range s.config.ContentBases {
		candidate := filepath.Join(base, rel)

		info, err := os.Stat(candidate)
		if err != nil {
			continue
		}

		if info.IsDir() {
			candidate = filepath.Join(candidate, s.config.Index)
			if info, err = os.Stat(candidate); err != nil || info.IsDir() {
				continue
			}
		}

		return candidate, true
	}

	return "", false
}
