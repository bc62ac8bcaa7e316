// Package api exposes the bridge over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fd1az/usdt-bridge/api/handlers"
	"github.com/fd1az/usdt-bridge/internal/logger"
	"github.com/fd1az/usdt-bridge/internal/ratelimit"
)

// Handlers groups the route handlers.
type Handlers struct {
	Bridge *handlers.BridgeHandler
	Events *handlers.EventsHandler
}

// NewRouter builds the routes. Only issue-as-owner spends gas, so only it is
// rate limited.
func NewRouter(h Handlers, limiter *ratelimit.Limiter) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/uniswap").Subrouter()

	issue := http.Handler(http.HandlerFunc(h.Bridge.HandleIssue))
	if limiter != nil {
		issue = limiter.Middleware(issue)
	}
	api.Handle("/issue-as-owner", issue).Methods(http.MethodPost)
	api.HandleFunc("/quote", h.Bridge.HandleQuote).Methods(http.MethodGet)
	api.HandleFunc("/transactions/{hash}", h.Bridge.HandleTransaction).Methods(http.MethodGet)
	api.HandleFunc("/transactions/{hash}/history", h.Bridge.HandleHistory).Methods(http.MethodGet)
	if h.Events != nil {
		api.HandleFunc("/events", h.Events.HandleEvents).Methods(http.MethodGet)
	}

	return r
}

// Serve runs the API on addr until ctx is cancelled, then shuts down within
// shutdownTimeout.
func Serve(ctx context.Context, addr string, router http.Handler, shutdownTimeout time.Duration, log logger.LoggerInterface) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           otelhttp.NewHandler(router, "bridge-api"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "api server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("api server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "api server shutdown failed", "error", err)
		return err
	}
	log.Info(shutdownCtx, "api server shut down gracefully")
	return nil
}
