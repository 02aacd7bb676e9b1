package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/browser"
	"golang.org/x/sync/errgroup"

	"github.com/DevSymphony/forge/internal/assistant"
	"github.com/DevSymphony/forge/internal/logging"
)

//go:embed static/*
var staticFiles embed.FS

// SessionHeader carries the editing session ID between the page and the API.
const SessionHeader = "X-Forge-Session"

// DefaultPort is the dashboard port used when none is configured.
const DefaultPort = 8787

// DefaultSessionIdle is how long an unused session is kept.
const DefaultSessionIdle = 30 * time.Minute

// Options configures the dashboard.
type Options struct {
	Port         int
	OpenBrowser  bool
	HistoryLimit int
	MaxSessions  int
	SessionIdle  time.Duration
	Logger       *logging.Logger
}

type Server struct {
	port        int
	openBrowser bool
	assistant   *assistant.Assistant
	sessions    *assistant.Store
	sessionIdle time.Duration
	log         *logging.Logger
	upgrader    websocket.Upgrader
}

// NewServer creates a new dashboard server
func NewServer(a *assistant.Assistant, opts Options) *Server {
	port := opts.Port
	if port == 0 {
		port = DefaultPort
	}
	idle := opts.SessionIdle
	if idle <= 0 {
		idle = DefaultSessionIdle
	}
	return &Server{
		port:        port,
		openBrowser: opts.OpenBrowser,
		assistant:   a,
		sessions: assistant.NewStore(assistant.StoreOptions{
			HistoryLimit: opts.HistoryLimit,
			MaxSessions:  opts.MaxSessions,
		}),
		sessionIdle: idle,
		log:         opts.Logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				return strings.Contains(origin, "localhost") || strings.Contains(origin, "127.0.0.1")
			},
		},
	}
}

// Sessions returns the session store.
func (s *Server) Sessions() *assistant.Store { return s.sessions }

// Handler builds the routed handler, CORS included.
func (s *Server) Handler() (http.Handler, error) {
	mux := http.NewServeMux()

	// Suggest flow
	mux.HandleFunc("/api/suggest", s.handleSuggest)

	// History API endpoints
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/history/record", s.handleHistoryRecord)
	mux.HandleFunc("/api/history/undo", s.handleHistoryUndo)
	mux.HandleFunc("/api/history/redo", s.handleHistoryRedo)

	// Analysis
	mux.HandleFunc("/api/patterns", s.handlePatterns)
	mux.HandleFunc("/api/impact", s.handleImpact)
	mux.HandleFunc("/api/diff", s.handleDiff)

	// Catalogs
	mux.HandleFunc("/api/lessons", s.handleLessons)
	mux.HandleFunc("/api/examples", s.handleExamples)
	mux.HandleFunc("/api/models", s.handleModels)

	mux.HandleFunc("/ws/preview", s.handlePreview)

	// Static files
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, err
	}
	mux.Handle("/", http.FileServer(http.FS(staticFS)))

	return s.corsMiddleware(mux), nil
}

// Start serves the dashboard until ctx is cancelled, opening the browser
// when configured to.
func (s *Server) Start(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return gctx },
	}
	url := fmt.Sprintf("http://localhost:%d", s.port)

	fmt.Printf("Starting dashboard server at %s\n", url)
	fmt.Println("Press Ctrl+C to stop")
	s.log.LogOperation("serve", url)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("dashboard server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		s.pruneSessions(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if s.openBrowser {
		go func() {
			if err := browser.OpenURL(url); err != nil {
				fmt.Printf("Could not open browser: %v\n", err)
				fmt.Printf("Please manually open: %s\n", url)
			}
		}()
	}

	return g.Wait()
}

// corsMiddleware adds CORS headers
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+SessionHeader)
		w.Header().Set("Access-Control-Expose-Headers", SessionHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// pruneSessions drops idle sessions until ctx is done.
func (s *Server) pruneSessions(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Prune(s.sessionIdle); n > 0 {
				s.log.Logf("[SESSION] pruned %d idle", n)
			}
		}
	}
}

// existingSession resolves the caller's session from the request header and
// writes a 404 when it is missing or unknown.
func (s *Server) existingSession(w http.ResponseWriter, r *http.Request) (*assistant.Session, bool) {
	sess, ok := s.sessions.Get(r.Header.Get(SessionHeader))
	if !ok {
		http.Error(w, "Unknown session", http.StatusNotFound)
		return nil, false
	}
	w.Header().Set(SessionHeader, sess.ID)
	return sess, true
}

// session resolves the caller's session from the request header, creating
// one when the header is missing or unknown. The ID is echoed back.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *assistant.Session {
	id := r.Header.Get(SessionHeader)
	sess, created := s.sessions.GetOrCreate(id)
	if created {
		s.log.Logf("[SESSION] created %s", sess.ID)
	}
	w.Header().Set(SessionHeader, sess.ID)
	return sess
}
