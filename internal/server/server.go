// Package server exposes a session over HTTP and runs the background
// scheduler and store watcher next to it.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/pulse/internal/logger"
	"github.com/julianstephens/pulse/internal/notifier"
	"github.com/julianstephens/pulse/internal/scheduler"
	"github.com/julianstephens/pulse/internal/session"
	"github.com/julianstephens/pulse/internal/sse"
	"github.com/julianstephens/pulse/internal/watcher"
)

// NewRouter mounts the API for sess. The SSE stream is served from broker
// when it is non-nil. A non-empty token protects everything under /api.
func NewRouter(sess *session.Session, broker *sse.Broker, token string) chi.Router {
	h := NewHandler(sess, broker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(AuthMiddleware(token))

		r.Get("/catalog", h.Catalog)
		r.Get("/user", h.User)
		r.Put("/user/activities", h.SelectActivities)

		r.Get("/stats", h.Stats)
		r.Get("/streaks", h.Streaks)
		r.Get("/series", h.Series)

		r.Get("/history/{date}", h.GetDay)
		r.Put("/history/{date}/{activity}", h.RecordCompletion)

		r.Get("/notes", h.ListNotes)
		r.Post("/notes", h.CreateNote)
		r.Get("/notes/{id}", h.GetNote)
		r.Delete("/notes/{id}", h.DeleteNote)
		r.Post("/notes/{id}/toggle", h.ToggleNote)
		r.Post("/notes/{id}/snooze", h.SnoozeNote)

		if broker != nil {
			r.Get("/events", broker.ServeHTTP)
		}
	})
	return r
}

// Options configures Run.
type Options struct {
	Addr     string
	Token    string
	Interval time.Duration
	// Sink receives scheduler alerts in addition to SSE clients.
	Sink notifier.Sink
	// WatchPath is the store file to watch for writes by other processes.
	// Empty disables watching.
	WatchPath string
}

// Run serves sess until ctx is done or the process is signalled, with the
// scheduler and watcher running alongside.
func Run(ctx context.Context, sess *session.Session, opts Options) error {
	broker := sse.NewBroker()
	defer broker.Close()

	sinks := notifier.Multi{broker}
	if opts.Sink != nil {
		sinks = append(sinks, opts.Sink)
	}
	var schedOpts []scheduler.Option
	if opts.Interval > 0 {
		schedOpts = append(schedOpts, scheduler.WithInterval(opts.Interval))
	}
	sched := scheduler.New(sess, sinks, schedOpts...)

	httpServer := &http.Server{
		Addr:              opts.Addr,
		Handler:           NewRouter(sess, broker, opts.Token),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := sched.Start(gCtx); err != nil {
			return fmt.Errorf("scheduler: %w", err)
		}
		<-gCtx.Done()
		sched.Stop()
		return nil
	})

	if opts.WatchPath != "" {
		g.Go(func() error {
			return watcher.Watch(gCtx, opts.WatchPath, 0, func() {
				if err := sess.Reload(); err != nil {
					logger.Warn("Failed to reload after external change", "error", err)
					return
				}
				logger.Info("Reloaded state after external change")
				broker.Publish(sse.Event{Type: sse.EventReload, Data: map[string]string{"account": sess.Email()}})
			})
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", "address", opts.Addr, "auth", opts.Token != "")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", "signal", sig.String())
		case <-gCtx.Done():
		}

		// SSE handlers only return once the broker closes their channels.
		broker.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "error", err)
		}
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

var errShutdown = errors.New("shutdown")
