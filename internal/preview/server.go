// Package preview serves a live HTML preview of one Markdown file.
//
// The server re-renders the file on every page request, so fold toggles
// made through the page persist across reloads. A file watcher bumps a
// revision counter whenever the file content changes; the page polls
// /version and reloads itself when the revision moves.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdpreview/internal/logging"
	"github.com/yaklabco/mdpreview/pkg/foldstate"
	"github.com/yaklabco/mdpreview/pkg/fsutil"
)

// Defaults used when Options leaves a field empty.
const (
	DefaultAddr         = "127.0.0.1:7777"
	DefaultPollInterval = time.Second
	shutdownTimeout     = 5 * time.Second
	readHeaderTimeout   = 10 * time.Second
)

// ErrFoldingUnsupported is returned by POST /toggle when the engine has no fold state.
var ErrFoldingUnsupported = errors.New("engine does not support code folding")

// Engine renders Markdown into a complete HTML document.
type Engine interface {
	Render(text string) string
}

// Folder is implemented by engines that keep code block fold state.
type Folder interface {
	ToggleFold(id string) bool
	Folds() *foldstate.Store
}

// Options configures a Server.
type Options struct {
	// Path is the Markdown file to preview.
	Path string

	// Addr is the listen address. Empty means DefaultAddr.
	Addr string

	// StateFile persists fold state between runs. Empty disables persistence.
	StateFile string

	// Logger receives request and watcher logs. If nil, the package default logger is used.
	Logger *log.Logger
}

// Server is the preview HTTP server.
type Server struct {
	opts   Options
	engine Engine
	logger *log.Logger

	mu      sync.RWMutex
	content string
	info    *fsutil.FileInfo

	revision atomic.Uint64
	server   *http.Server
}

// New reads the file at opts.Path and returns a Server ready to serve it.
func New(ctx context.Context, engine Engine, opts Options) (*Server, error) {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}

	content, info, err := fsutil.ReadFile(ctx, opts.Path)
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", opts.Path, err)
	}

	s := &Server{
		opts:    opts,
		engine:  engine,
		logger:  opts.Logger,
		content: string(content),
		info:    info,
	}
	s.revision.Store(1)

	if err := s.loadState(); err != nil {
		s.logger.Warn("ignoring fold state file", logging.FieldPath, opts.StateFile, logging.FieldError, err)
	}
	return s, nil
}

// Revision returns the current content revision.
func (s *Server) Revision() uint64 {
	return s.revision.Load()
}

// Handler returns the HTTP handler serving the preview.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	mux.HandleFunc("/toggle", s.handleToggle)
	mux.HandleFunc("/version", s.handleVersion)
	mux.HandleFunc("/healthz", s.handleHealth)
	return s.logRequests(mux)
}

// Run serves until ctx is cancelled, watching the file for changes, then
// shuts the server down and saves fold state.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	watchErr := make(chan error, 1)
	go func() {
		if err := s.Watch(watchCtx); err != nil {
			watchErr <- err
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		err := s.server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	s.logger.Info("preview server listening",
		logging.FieldAddr, "http://"+listener.Addr().String(),
		logging.FieldPath, s.opts.Path,
	)

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			runErr = fmt.Errorf("serve: %w", err)
		}
	case err := <-watchErr:
		runErr = err
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("shutdown: %w", err))
	}

	if err := s.saveState(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, err)
	}
	return runErr
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if id := r.URL.Query().Get("toggle"); id != "" {
		if foreignRequest(r) {
			writeError(w, http.StatusForbidden, "cross-site toggle refused")
			return
		}
		if folder, ok := s.engine.(Folder); ok {
			collapsed := folder.ToggleFold(id)
			s.logger.Debug("fold toggled", logging.FieldBlockID, id, logging.FieldCollapsed, collapsed)
		}
		http.Redirect(w, r, "/#"+id, http.StatusSeeOther)
		return
	}

	s.mu.RLock()
	content := s.content
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write([]byte(s.engine.Render(content)))
	}
}

type toggleResponse struct {
	ID        string `json:"id"`
	Collapsed bool   `json:"collapsed"`
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if foreignRequest(r) {
		writeError(w, http.StatusForbidden, "cross-site toggle refused")
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	folder, ok := s.engine.(Folder)
	if !ok {
		writeError(w, http.StatusNotImplemented, ErrFoldingUnsupported.Error())
		return
	}

	collapsed := folder.ToggleFold(id)
	s.logger.Debug("fold toggled", logging.FieldBlockID, id, logging.FieldCollapsed, collapsed)
	writeJSON(w, http.StatusOK, toggleResponse{ID: id, Collapsed: collapsed})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, map[string]any{"revision": s.Revision()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			logging.FieldMethod, r.Method,
			logging.FieldPath, r.URL.Path,
			logging.FieldStatus, rec.status,
			logging.FieldDuration, time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// foreignRequest reports whether a browser sent r on behalf of another site.
// Requests without fetch metadata or an Origin header, such as curl, pass.
func foreignRequest(r *http.Request) bool {
	switch r.Header.Get("Sec-Fetch-Site") {
	case "cross-site", "same-site":
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return false
	}
	parsed, err := url.Parse(origin)
	return err != nil || parsed.Host != r.Host
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
