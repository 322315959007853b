package rest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 5 * time.Second

// NewRouter - builds the HTTP routes. Static files are served from the root.
func NewRouter(logger *slog.Logger, sessions sessionReader, static fs.FS) *chi.Mux {
	log := logger.With("component", "rest")
	h := newHandlers(log, sessions)

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(log))
	r.Use(recovery(log))

	r.Get("/ping", h.Ping)

	r.Route("/api", func(r chi.Router) {
		r.Get("/modes", h.Modes)
		r.Get("/sessions/{id}", h.Session)
	})

	if static != nil {
		r.Handle("/*", http.FileServerFS(static))
	}

	return r
}

// Start - serves handler until ctx is cancelled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	return serve(ctx, srv)
}

func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
