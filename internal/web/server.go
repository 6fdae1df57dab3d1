// Package web provides the expense tracker's web UI.
package web

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/ProgrammerSahilG/Expense-tracker/internal/store"
)

// devTemplateDir is watched for edits when watch mode is enabled and
// the directory exists (i.e. running from a source checkout).
const devTemplateDir = "internal/web/templates"

// Server is the expense tracker web server.
type Server struct {
	store        store.Store
	sessionStore *sessions.CookieStore
	views        *Views
	port         int
	watch        bool
	watchDir     string
	currency     string
	logger       *slog.Logger
}

// Config holds configuration for the web server.
type Config struct {
	Store         store.Store
	Port          int
	Watch         bool
	SessionSecret string
	Currency      string
	Logger        *slog.Logger
}

// NewServer creates a new web server instance.
func NewServer(cfg Config) *Server {
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		// Per-process secret: sessions only carry flash messages, so
		// invalidating them on restart is fine.
		secret = make([]byte, 32)
		_, _ = rand.Read(secret)
	}

	sessionStore := sessions.NewCookieStore(secret)
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		store:        cfg.Store,
		sessionStore: sessionStore,
		port:         cfg.Port,
		watch:        cfg.Watch,
		currency:     cfg.Currency,
		logger:       logger,
	}

	if cfg.Watch {
		if info, err := os.Stat(devTemplateDir); err == nil && info.IsDir() {
			s.watchDir = devTemplateDir
			s.views = NewViewsFromDir(os.DirFS(devTemplateDir), cfg.Currency)
		} else {
			logger.Warn("watch requested but template directory not found, using embedded templates",
				"dir", devTemplateDir)
		}
	}
	if s.views == nil {
		s.views = NewViews(cfg.Currency)
	}

	return s
}

// Serve starts the web server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting web server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	handlers := NewHandlers(s.store, s.sessionStore, s.views, s.currency, s.logger)
	handlers.Routes(r)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watchDir != "" {
		eg.Go(func() error {
			return s.watchTemplates(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down web server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// watchTemplates invalidates the view cache whenever a template file
// changes on disk.
func (s *Server) watchTemplates(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.watchDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.watchDir, err)
	}
	s.logger.Debug("watching templates", "dir", s.watchDir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.logger.Debug("template changed, reloading", "file", event.Name)
				s.views.Invalidate()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("template watcher error", "error", err)
		}
	}
}
